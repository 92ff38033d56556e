package service

import (
	"context"
	"encoding/json"
	"strings"

	"manavault/internal/middleware"
	"manavault/internal/models"
	"manavault/internal/mtg"
	"manavault/internal/repository"
	"manavault/internal/scryfall"

	"gorm.io/datatypes"
)

// CardLookup is the card-metadata dependency of CollectionService. Satisfied
// by *scryfall.Client.
type CardLookup interface {
	Named(ctx context.Context, name string) (*scryfall.Card, error)
}

// CollectionService manages a user's card collection. Adds merge by card name
// rather than stacking duplicate rows: adding "Sol Ring" twice yields one
// entry with the summed quantity.
type CollectionService struct {
	cardRepo repository.CardRepository
	lookup   CardLookup
}

func NewCollectionService(cardRepo repository.CardRepository, lookup CardLookup) *CollectionService {
	return &CollectionService{cardRepo: cardRepo, lookup: lookup}
}

type AddCardInput struct {
	UserID     uint
	Name       string
	SetCode    string
	Quantity   int
	ScryfallID string
	Colors     []string
	ManaValue  float64
	TypeLine   string
	Rarity     string
	ImageURL   string
}

type UpdateEntryInput struct {
	UserID   uint
	EntryID  uint
	Quantity int
	SetCode  string
}

// AddCard adds a card to the collection, merging into an existing entry of
// the same name. Metadata supplied by the caller is persisted as-is; any
// fields the caller left empty are filled from the card database on a
// best-effort basis, and an unreachable upstream never blocks the add.
func (s *CollectionService) AddCard(ctx context.Context, in AddCardInput) (*models.CardEntry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Card name is required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 0 {
		return nil, models.NewValidationError("Quantity must be positive")
	}

	existing, err := s.cardRepo.GetByName(ctx, in.UserID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += in.Quantity
		if in.SetCode != "" {
			existing.SetCode = in.SetCode
		}
		if err := s.cardRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	entry := &models.CardEntry{
		UserID:     in.UserID,
		Name:       name,
		SetCode:    in.SetCode,
		Quantity:   in.Quantity,
		ScryfallID: in.ScryfallID,
		ManaValue:  in.ManaValue,
		TypeLine:   in.TypeLine,
		Rarity:     in.Rarity,
		ImageURL:   in.ImageURL,
	}
	if len(in.Colors) > 0 {
		if colors, err := json.Marshal(in.Colors); err == nil {
			entry.Colors = datatypes.JSON(colors)
		}
	}
	// A caller that sends a Scryfall ID already has the full record; skip
	// the upstream round trip.
	if entry.ScryfallID == "" {
		s.enrich(ctx, entry)
	}

	if err := s.cardRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// enrich fills empty metadata fields from the card database. Caller-supplied
// values are never overwritten. Failures are logged and swallowed; the entry
// keeps whatever the user supplied.
func (s *CollectionService) enrich(ctx context.Context, entry *models.CardEntry) {
	if s.lookup == nil {
		return
	}

	card, err := s.lookup.Named(ctx, entry.Name)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "card metadata lookup failed",
			"card", entry.Name, "error", err)
		return
	}

	entry.Name = card.Name
	entry.ScryfallID = card.ScryfallID
	if entry.ManaValue == 0 {
		entry.ManaValue = card.ManaValue
	}
	if entry.TypeLine == "" {
		entry.TypeLine = card.TypeLine
	}
	if entry.Rarity == "" {
		entry.Rarity = card.Rarity
	}
	if entry.ImageURL == "" {
		entry.ImageURL = card.ImageURL
	}
	if entry.SetCode == "" {
		entry.SetCode = card.SetCode
	}
	if len(entry.Colors) == 0 {
		if colors, err := json.Marshal(card.Colors); err == nil {
			entry.Colors = datatypes.JSON(colors)
		}
	}
}

func (s *CollectionService) GetEntry(ctx context.Context, userID, id uint) (*models.CardEntry, error) {
	return s.cardRepo.GetByID(ctx, userID, id)
}

func (s *CollectionService) List(ctx context.Context, userID uint, limit, offset int) ([]models.CardEntry, error) {
	return s.cardRepo.List(ctx, userID, limit, offset)
}

func (s *CollectionService) Search(ctx context.Context, userID uint, query string) ([]models.CardEntry, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.cardRepo.Search(ctx, userID, query)
}

func (s *CollectionService) Stats(ctx context.Context, userID uint) (*models.CollectionStats, error) {
	return s.cardRepo.Stats(ctx, userID)
}

// UpdateEntry changes an entry's quantity or set code. Quantity must remain
// positive; removal is a separate, explicit operation.
func (s *CollectionService) UpdateEntry(ctx context.Context, in UpdateEntryInput) (*models.CardEntry, error) {
	if in.Quantity < 1 {
		return nil, models.NewValidationError("Quantity must be at least 1; delete the entry to remove it")
	}

	entry, err := s.cardRepo.GetByID(ctx, in.UserID, in.EntryID)
	if err != nil {
		return nil, err
	}

	entry.Quantity = in.Quantity
	if in.SetCode != "" {
		entry.SetCode = in.SetCode
	}
	if err := s.cardRepo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *CollectionService) RemoveEntry(ctx context.Context, userID, id uint) error {
	return s.cardRepo.Delete(ctx, userID, id)
}

// EnsureOwned merges the given cards into the user's collection. Deck
// operations call this so building a deck also records ownership; entries are
// name-only merges with no metadata lookup.
func (s *CollectionService) EnsureOwned(ctx context.Context, userID uint, additions []mtg.Addition) error {
	for _, add := range additions {
		name := strings.TrimSpace(add.Name)
		if name == "" || add.Quantity <= 0 {
			continue
		}

		existing, err := s.cardRepo.GetByName(ctx, userID, name)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Quantity += add.Quantity
			if err := s.cardRepo.Update(ctx, existing); err != nil {
				return err
			}
			continue
		}

		entry := &models.CardEntry{UserID: userID, Name: name, Quantity: add.Quantity}
		if err := s.cardRepo.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
