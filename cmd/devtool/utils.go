package main

import (
	"fmt"
	"os"
	"regexp"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// databaseURL builds the connection string from DB_URL or the individual
// DB_* variables, matching the server's configuration defaults.
func databaseURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "rewards")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
}

var passwordPattern = regexp.MustCompile(`(://[^:/@]+):[^@]+@`)

// redactPassword hides the password portion of a connection string for logging
func redactPassword(connStr string) string {
	return passwordPattern.ReplaceAllString(connStr, "$1:***@")
}
