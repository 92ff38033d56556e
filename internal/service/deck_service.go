package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"manavault/internal/models"
	"manavault/internal/mtg"
	"manavault/internal/observability"
	"manavault/internal/precon"
	"manavault/internal/repository"

	"gorm.io/datatypes"
)

// collectionWriter is the slice of CollectionService that deck operations
// need: recording deck cards as owned.
type collectionWriter interface {
	EnsureOwned(ctx context.Context, userID uint, additions []mtg.Addition) error
}

// DeckService manages decks and their card lists. Commander-format decks are
// held to the singleton rule on every write, and every card placed in a deck
// is also merged into the owner's collection.
type DeckService struct {
	deckRepo   repository.DeckRepository
	collection collectionWriter
	precons    *precon.Catalog
}

func NewDeckService(deckRepo repository.DeckRepository, collection collectionWriter, precons *precon.Catalog) *DeckService {
	return &DeckService{deckRepo: deckRepo, collection: collection, precons: precons}
}

type DeckCardInput struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CreateDeckInput struct {
	UserID      uint
	Name        string
	Format      string
	Commander   string
	Description string
	Colors      []string
	Cards       []DeckCardInput
}

type UpdateDeckInput struct {
	UserID      uint
	DeckID      uint
	Name        *string
	Format      *string
	Commander   *string
	Description *string
	Colors      []string
}

const maxDeckNameLen = 120

func toAdditions(cards []DeckCardInput) []mtg.Addition {
	out := make([]mtg.Addition, 0, len(cards))
	for _, c := range cards {
		qty := c.Quantity
		if qty == 0 {
			qty = 1
		}
		out = append(out, mtg.Addition{Name: c.Name, Quantity: qty})
	}
	return out
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

// singletonError folds violation messages into one validation error and
// counts the rejection.
func singletonError(violations []string) error {
	observability.DeckValidationRejections.Inc()
	return models.NewValidationError(
		fmt.Sprintf("Commander singleton rule violated: %s", strings.Join(violations, "; ")))
}

// CreateDeck creates a deck with an optional initial card list. For Commander
// decks the whole list must satisfy the singleton rule or nothing is created.
// Cards in the list are merged into the owner's collection as a side effect.
func (s *DeckService) CreateDeck(ctx context.Context, in CreateDeckInput) (*models.Deck, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Deck name is required")
	}
	if len(name) > maxDeckNameLen {
		return nil, models.NewValidationError("Deck name too long (max 120 characters)")
	}

	deck := &models.Deck{
		UserID:      in.UserID,
		Name:        name,
		Format:      strings.TrimSpace(in.Format),
		Commander:   strings.TrimSpace(in.Commander),
		Description: in.Description,
		Colors:      colorsJSON(in.Colors),
	}

	additions := toAdditions(in.Cards)
	if deck.IsCommander() {
		if violations := mtg.ValidateCommanderAdditions(nil, additions); len(violations) > 0 {
			return nil, singletonError(violations)
		}
	}

	merged := mergeAdditions(additions)
	for _, add := range merged {
		deck.Cards = append(deck.Cards, models.DeckCard{Name: add.Name, Quantity: add.Quantity})
	}

	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, err
	}

	if err := s.collection.EnsureOwned(ctx, in.UserID, merged); err != nil {
		return nil, err
	}
	return deck, nil
}

// mergeAdditions collapses duplicate names (case-insensitive) by summing
// quantity, preserving first-seen order and spelling.
func mergeAdditions(additions []mtg.Addition) []mtg.Addition {
	var out []mtg.Addition
	index := make(map[string]int, len(additions))

	for _, add := range additions {
		name := strings.TrimSpace(add.Name)
		if name == "" || add.Quantity <= 0 {
			continue
		}
		key := strings.ToLower(name)
		if i, ok := index[key]; ok {
			out[i].Quantity += add.Quantity
			continue
		}
		index[key] = len(out)
		out = append(out, mtg.Addition{Name: name, Quantity: add.Quantity})
	}
	return out
}

func (s *DeckService) GetDeck(ctx context.Context, userID, deckID uint) (*models.Deck, error) {
	return s.deckRepo.GetByID(ctx, userID, deckID)
}

// ListDecks returns the user's decks, most recently updated first.
func (s *DeckService) ListDecks(ctx context.Context, userID uint) ([]models.Deck, error) {
	return s.deckRepo.ListByUser(ctx, userID)
}

// UpdateDeck changes deck metadata. Changing the format to Commander is
// rejected while the current list violates the singleton rule.
func (s *DeckService) UpdateDeck(ctx context.Context, in UpdateDeckInput) (*models.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, in.UserID, in.DeckID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, models.NewValidationError("Deck name is required")
		}
		if len(name) > maxDeckNameLen {
			return nil, models.NewValidationError("Deck name too long (max 120 characters)")
		}
		deck.Name = name
	}
	if in.Format != nil {
		deck.Format = strings.TrimSpace(*in.Format)
	}
	if in.Commander != nil {
		deck.Commander = strings.TrimSpace(*in.Commander)
	}
	if in.Description != nil {
		deck.Description = *in.Description
	}
	if in.Colors != nil {
		deck.Colors = colorsJSON(in.Colors)
	}

	if deck.IsCommander() {
		var violations []string
		for _, card := range deck.Cards {
			if card.Quantity > 1 && !mtg.IsBasicLand(card.Name) {
				violations = append(violations,
					fmt.Sprintf("%q has %d copies (max 1 copy allowed in Commander)", card.Name, card.Quantity))
			}
		}
		if len(violations) > 0 {
			return nil, singletonError(violations)
		}
	}

	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, err
	}
	return deck, nil
}

func (s *DeckService) DeleteDeck(ctx context.Context, userID, deckID uint) error {
	return s.deckRepo.Delete(ctx, userID, deckID)
}

// AddCards adds cards to a deck, merging with existing entries by name. For
// Commander decks the batch is validated against the deck's current contents
// before any card is written. Added cards are merged into the owner's
// collection.
func (s *DeckService) AddCards(ctx context.Context, userID, deckID uint, cards []DeckCardInput) (*models.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	merged := mergeAdditions(toAdditions(cards))
	if len(merged) == 0 {
		return nil, models.NewValidationError("No cards to add")
	}

	if deck.IsCommander() {
		counts, err := s.deckRepo.CardCounts(ctx, deck.ID)
		if err != nil {
			return nil, err
		}
		if violations := mtg.ValidateCommanderAdditions(counts, merged); len(violations) > 0 {
			return nil, singletonError(violations)
		}
	}

	for _, add := range merged {
		if err := s.deckRepo.AddCard(ctx, deck.ID, add.Name, add.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.collection.EnsureOwned(ctx, userID, merged); err != nil {
		return nil, err
	}
	return s.deckRepo.GetByID(ctx, userID, deckID)
}

// RemoveCard removes quantity copies of a card from a deck. The owner's
// collection is untouched; taking a card out of a deck does not mean it left
// the binder.
func (s *DeckService) RemoveCard(ctx context.Context, userID, deckID uint, name string, quantity int) (*models.Deck, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Card name is required")
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, models.NewValidationError("Quantity must be positive")
	}

	deck, err := s.deckRepo.GetByID(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}

	if err := s.deckRepo.RemoveCard(ctx, deck.ID, name, quantity); err != nil {
		return nil, err
	}
	return s.deckRepo.GetByID(ctx, userID, deckID)
}

// ListPrecons returns the available preconstructed deck templates.
func (s *DeckService) ListPrecons() []precon.Template {
	return s.precons.List()
}

// ImportPrecon copies a preconstructed template into the user's account as a
// new deck. Commander templates are trimmed to singleton counts rather than
// rejected.
func (s *DeckService) ImportPrecon(ctx context.Context, userID uint, preconID string) (*models.Deck, error) {
	tpl, ok := s.precons.Get(preconID)
	if !ok {
		return nil, models.NewNotFoundError("Precon")
	}

	cards := make([]DeckCardInput, 0, len(tpl.Cards))
	if deck := (models.Deck{Format: tpl.Format}); deck.IsCommander() {
		additions := make([]mtg.Addition, 0, len(tpl.Cards))
		for _, c := range tpl.Cards {
			additions = append(additions, mtg.Addition{Name: c.Name, Quantity: c.Quantity})
		}
		for _, add := range mtg.TrimToSingleton(additions) {
			cards = append(cards, DeckCardInput{Name: add.Name, Quantity: add.Quantity})
		}
	} else {
		for _, c := range tpl.Cards {
			cards = append(cards, DeckCardInput{Name: c.Name, Quantity: c.Quantity})
		}
	}

	return s.CreateDeck(ctx, CreateDeckInput{
		UserID:      userID,
		Name:        tpl.Name,
		Format:      tpl.Format,
		Commander:   tpl.Commander,
		Description: tpl.Description,
		Colors:      tpl.Colors,
		Cards:       cards,
	})
}
