package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from .env file
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

// GetEnv gets an environment variable or returns a default value if not present
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Port returns the port for the HTTP API endpoint
func Port() string {
	return GetEnv("PORT", "8080")
}

// WSPort returns the port for the subscription (WebSocket) endpoint
func WSPort() string {
	return GetEnv("WS_PORT", "3123")
}
