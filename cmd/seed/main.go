package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/mrzkhrmn/EventCampusWebAPI/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.NewSeeder(store.DB()).SeedAll(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
