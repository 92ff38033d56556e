package seed

import (
	"fmt"
	"log"

	"manavault/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers     int
	CardsPerUser int
	DecksPerUser int
	ShouldClean  bool
}

// Seeder populates the database with demo accounts, collections and decks.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.DeckCard{},
		&models.Deck{},
		&models.CardEntry{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds users with collections and decks according to opts.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	log.Printf("Seeding %d users (%d cards, %d decks each)...",
		opts.NumUsers, opts.CardsPerUser, opts.DecksPerUser)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		for j := 0; j < opts.CardsPerUser; j++ {
			if _, err := s.factory.CreateCardEntry(user); err != nil {
				return fmt.Errorf("failed to create card entry: %w", err)
			}
		}
		for j := 0; j < opts.DecksPerUser; j++ {
			if _, err := s.factory.CreateDeck(user); err != nil {
				return fmt.Errorf("failed to create deck: %w", err)
			}
		}
	}

	log.Printf("Seeding complete. All users log in with password %q.", DefaultPassword)
	return nil
}
