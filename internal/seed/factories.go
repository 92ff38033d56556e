// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"manavault/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user can log in with.
const DefaultPassword = "password123"

// sampleCards is a small pool of real card names with plausible metadata so
// seeded collections look right in a UI.
var sampleCards = []struct {
	Name     string
	SetCode  string
	TypeLine string
	Rarity   string
	Colors   []string
	CMC      float64
}{
	{"Lightning Bolt", "m10", "Instant", "common", []string{"R"}, 1},
	{"Counterspell", "mh2", "Instant", "common", []string{"U"}, 2},
	{"Sol Ring", "c21", "Artifact", "uncommon", nil, 1},
	{"Swords to Plowshares", "2x2", "Instant", "uncommon", []string{"W"}, 1},
	{"Llanowar Elves", "m19", "Creature — Elf Druid", "common", []string{"G"}, 1},
	{"Thoughtseize", "ths", "Sorcery", "rare", []string{"B"}, 1},
	{"Birds of Paradise", "m12", "Creature — Bird", "rare", []string{"G"}, 1},
	{"Brainstorm", "mmq", "Instant", "common", []string{"U"}, 1},
	{"Dark Ritual", "a25", "Instant", "common", []string{"B"}, 1},
	{"Path to Exile", "2x2", "Instant", "uncommon", []string{"W"}, 1},
	{"Goblin Guide", "zen", "Creature — Goblin Scout", "rare", []string{"R"}, 1},
	{"Cultivate", "m21", "Sorcery", "common", []string{"G"}, 3},
	{"Rhystic Study", "pcy", "Enchantment", "common", []string{"U"}, 3},
	{"Command Tower", "cmr", "Land", "common", nil, 0},
	{"Arcane Signet", "eld", "Artifact", "common", nil, 2},
	{"Plains", "unf", "Basic Land — Plains", "common", nil, 0},
	{"Island", "unf", "Basic Land — Island", "common", nil, 0},
	{"Swamp", "unf", "Basic Land — Swamp", "common", nil, 0},
	{"Mountain", "unf", "Basic Land — Mountain", "common", nil, 0},
	{"Forest", "unf", "Basic Land — Forest", "common", nil, 0},
}

var deckFormats = []string{"commander", "modern", "standard", "pauper", "legacy"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hash),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCardEntry persists a collection entry drawn from the sample card
// pool.
func (f *Factory) CreateCardEntry(user *models.User, overrides ...func(*models.CardEntry)) (*models.CardEntry, error) {
	card := sampleCards[f.rng.Intn(len(sampleCards))]

	entry := &models.CardEntry{
		UserID:    user.ID,
		Name:      card.Name,
		SetCode:   card.SetCode,
		Quantity:  f.rng.Intn(4) + 1,
		TypeLine:  card.TypeLine,
		Rarity:    card.Rarity,
		ManaValue: card.CMC,
		Colors:    colorsJSON(card.Colors),
	}
	for _, override := range overrides {
		override(entry)
	}

	// The pool is smaller than a big collection; merge instead of
	// violating the one-row-per-name shape real usage produces.
	var existing models.CardEntry
	err := f.db.Where("user_id = ? AND name = ?", user.ID, entry.Name).First(&existing).Error
	if err == nil {
		existing.Quantity += entry.Quantity
		if saveErr := f.db.Save(&existing).Error; saveErr != nil {
			return nil, saveErr
		}
		return &existing, nil
	}

	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateDeck persists a deck with a handful of cards from the sample pool.
func (f *Factory) CreateDeck(user *models.User, overrides ...func(*models.Deck)) (*models.Deck, error) {
	format := deckFormats[f.rng.Intn(len(deckFormats))]

	deck := &models.Deck{
		UserID:      user.ID,
		Name:        gofakeit.AdjectiveDescriptive() + " " + gofakeit.NounAbstract(),
		Format:      format,
		Description: gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(deck)
	}

	singleton := deck.IsCommander()
	picked := f.rng.Perm(len(sampleCards))
	for _, idx := range picked[:f.rng.Intn(8)+4] {
		card := sampleCards[idx]
		qty := f.rng.Intn(3) + 1
		if singleton {
			qty = 1
		}
		deck.Cards = append(deck.Cards, models.DeckCard{Name: card.Name, Quantity: qty})
	}

	if err := f.db.Create(deck).Error; err != nil {
		return nil, err
	}
	return deck, nil
}

func colorsJSON(colors []string) datatypes.JSON {
	if len(colors) == 0 {
		return nil
	}
	b, err := json.Marshal(colors)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
