// Command main runs the database seeder for Majlis.
package main

import (
	"flag"
	"log"

	"majlis/internal/config"
	"majlis/internal/database"
	"majlis/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of participants to create")
	numCamps := flag.Int("camps", 2, "Number of camps to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d camps, clean=%v", *numUsers, *numCamps, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(seed.Options{
		NumUsers: *numUsers,
		NumCamps: *numCamps,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
