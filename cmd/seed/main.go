// Command main runs the database seeder for Manavault.
package main

import (
	"flag"
	"log"

	"manavault/internal/config"
	"manavault/internal/database"
	"manavault/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	cardsPerUser := flag.Int("cards", 40, "Number of collection cards per user")
	decksPerUser := flag.Int("decks", 3, "Number of decks per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d cards and %d decks each, clean=%v\n",
		*numUsers, *cardsPerUser, *decksPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumUsers:     *numUsers,
		CardsPerUser: *cardsPerUser,
		DecksPerUser: *decksPerUser,
		ShouldClean:  *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
