package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys populated by OAuth2Auth.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextClientID = "clientID"
	ContextScopes   = "scopes"
)

var allowedRoles = map[string]bool{
	"admin": true,
	"user":  true,
}

// OAuth2Auth validates Bearer access tokens issued by /oauth/token and copies
// the caller's identity into the gin context.
func OAuth2Auth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_request",
				"Missing or malformed Authorization header. Format: 'Bearer <token>'")
			return
		}

		claims, err := parseAccessToken(tokenString, jwtSecret, time.Now())
		if err != nil {
			log.WithError(err).Debug("Rejected access token")
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		userID, err := claimUserID(claims)
		if err != nil {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}
		role, err := claimRole(claims)
		if err != nil {
			respondWithOAuth2Error(c, http.StatusUnauthorized, "invalid_token", err.Error())
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, role)
		if aud, err := claims.GetAudience(); err == nil && len(aud) > 0 {
			c.Set(ContextClientID, aud[0])
		}
		if scope, ok := claims["scope"].(string); ok && scope != "" {
			c.Set(ContextScopes, strings.Fields(scope))
		}

		c.Next()
	}
}

// respondWithOAuth2Error writes an RFC 6750 style error body
func respondWithOAuth2Error(c *gin.Context, status int, errorCode, description string) {
	c.Header("WWW-Authenticate", fmt.Sprintf(`Bearer error=%q`, errorCode))
	c.AbortWithStatusJSON(status, gin.H{
		"error":             errorCode,
		"error_description": description,
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// parseAccessToken only accepts HMAC signed tokens; exp, nbf and iat are checked against now.
func parseAccessToken(tokenString string, jwtSecret []byte, now time.Time) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	return claims, nil
}

// claimUserID reads "uid", issued as a numeric string
func claimUserID(claims jwt.MapClaims) (uint, error) {
	var parsed uint64
	switch uid := claims["uid"].(type) {
	case string:
		v, err := strconv.ParseUint(uid, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid uid claim: %q", uid)
		}
		parsed = v
	case float64:
		if uid < 1 {
			return 0, fmt.Errorf("invalid uid claim: %v", uid)
		}
		parsed = uint64(uid)
	default:
		return 0, fmt.Errorf("token missing required 'uid' claim")
	}
	if parsed == 0 {
		return 0, fmt.Errorf("invalid uid claim: cannot be zero")
	}
	return uint(parsed), nil
}

func claimRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim")
	}
	if !allowedRoles[role] {
		return "", fmt.Errorf("invalid role %q", role)
	}
	return role, nil
}
