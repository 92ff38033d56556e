package seed

import (
	"testing"

	"manavault/internal/database"
	"manavault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeederRun(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{
		NumUsers:     3,
		CardsPerUser: 5,
		DecksPerUser: 2,
	}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(3), users)

	var decks int64
	require.NoError(t, db.Model(&models.Deck{}).Count(&decks).Error)
	assert.Equal(t, int64(6), decks)

	var entries []models.CardEntry
	require.NoError(t, db.Find(&entries).Error)
	assert.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Positive(t, e.Quantity)
		assert.NotEmpty(t, e.Name)
	}
}

func TestSeederClean(t *testing.T) {
	db := newTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Run(Options{NumUsers: 2, CardsPerUser: 3, DecksPerUser: 1}))
	require.NoError(t, s.Run(Options{NumUsers: 1, CardsPerUser: 1, DecksPerUser: 1, ShouldClean: true}))

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users)
}

func TestCommanderDecksAreSingleton(t *testing.T) {
	db := newTestDB(t)
	f := NewFactory(db)

	user, err := f.CreateUser()
	require.NoError(t, err)

	deck, err := f.CreateDeck(user, func(d *models.Deck) {
		d.Format = "commander"
	})
	require.NoError(t, err)

	for _, card := range deck.Cards {
		assert.Equal(t, 1, card.Quantity)
	}
}
