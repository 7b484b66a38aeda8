package persistence_test

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env for integration tests. Tests run from
	// internal/infrastructure/persistence/, so probe upward to the repo root.
	paths := []string{
		"../../../.env",
		"../../.env",
		"../.env",
		".env",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				log.Printf("📁 Loaded .env from %s for tests", p)
				return
			}
		}
	}

	log.Println("⚠️  No .env file found for tests - database tests may fail")
}
