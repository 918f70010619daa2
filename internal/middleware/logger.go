package middleware

import (
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// SetLogLevel adjusts the middleware logger, including the access log
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}
