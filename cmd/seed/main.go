// cmd/seed/main.go
//
// Writes the default collections into a store backend so a deployment
// starts from known data. Existing collections are left untouched.
package main

import (
	"context"
	"log"
	"os"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"
)

func main() {
	ctx := context.Background()

	dir := os.Getenv("STORE_DIR")
	if dir == "" {
		dir = "./data"
	}

	backend, err := kvstore.NewFilesystemBackend(dir)
	if err != nil {
		log.Fatalf("Failed to open store directory: %v", err)
	}

	if _, err := kvstore.Open(ctx, backend, domain.Seeds()); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	log.Printf("Seeded collections in %s", dir)
}
