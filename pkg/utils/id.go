package utils

import (
	"log"

	"github.com/google/uuid"
)

// GenerateID returns a random UUID v4 for row and token IDs.
func GenerateID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		log.Printf("Failed to generate UUID: %v", err)
		return ""
	}
	return id.String()
}
