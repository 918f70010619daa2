package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/config"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/database"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/services"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Reseeds the catalogue and registers an OAuth client for a development user.
//
//	go run ./scripts -reset -role admin
func main() {
	reset := flag.Bool("reset", false, "Delete all restaurants, pizzas and prices before seeding")
	role := flag.String("role", "admin", "User role (admin or user)")
	flag.Parse()

	if *role != "admin" && *role != "user" {
		log.Fatalf("Invalid role %q: must be admin or user", *role)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
	log.SetFormatter(&log.JSONFormatter{})

	conf, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.InitDatabase(conf.Database())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	if *reset {
		log.Info("Clearing restaurants, pizzas and prices")
		if err := database.Reset(db); err != nil {
			log.WithError(err).Fatal("Failed to reset catalogue")
		}
	}
	if err := database.SeedIfEmpty(db); err != nil {
		log.WithError(err).Fatal("Failed to seed catalogue")
	}

	ctx := context.Background()
	user, err := services.NewUserService(db).GetOrCreateUser(ctx, &models.User{
		Email: fmt.Sprintf("%s@pizza.com", *role),
		Name:  fmt.Sprintf("%s User", *role),
		Role:  *role,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to get user for role")
	}

	client, secret, err := services.NewClientService(db).RegisterClient(ctx,
		fmt.Sprintf("Development %s Client", *role), user.ID, "read write")
	if err != nil {
		log.WithError(err).Fatal("Failed to create client")
	}

	fmt.Printf("Development OAuth client created for %s (user ID %d, role %s)\n", user.Email, user.ID, user.Role)
	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", secret)
	fmt.Println("\nThe secret is not stored in clear text and cannot be shown again. Request a token with:")
	fmt.Printf("curl -X POST http://%s:%d/oauth/token \\\n", conf.Host, conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", secret)
}
