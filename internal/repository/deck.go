package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"manavault/internal/models"
	"manavault/internal/observability"

	"gorm.io/gorm"
)

// DeckRepository defines persistence operations for decks and their card
// lists. Like CardRepository, every read and write is scoped to the owner.
type DeckRepository interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, userID, id uint) (*models.Deck, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Deck, error)
	Update(ctx context.Context, deck *models.Deck) error
	Delete(ctx context.Context, userID, id uint) error
	CardCounts(ctx context.Context, deckID uint) (map[string]int, error)
	AddCard(ctx context.Context, deckID uint, name string, quantity int) error
	RemoveCard(ctx context.Context, deckID uint, name string, quantity int) error
}

type deckRepository struct {
	db *gorm.DB
}

// NewDeckRepository returns a new DeckRepository implementation.
func NewDeckRepository(db *gorm.DB) DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Create(ctx context.Context, deck *models.Deck) error {
	defer observability.TrackQuery("create", "decks")()

	if err := r.db.WithContext(ctx).Create(deck).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *deckRepository) GetByID(ctx context.Context, userID, id uint) (*models.Deck, error) {
	defer observability.TrackQuery("get_by_id", "decks")()

	var deck models.Deck
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("user_id = ?", userID).
		First(&deck, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Deck")
		}
		return nil, models.NewInternalError(err)
	}
	return &deck, nil
}

func (r *deckRepository) ListByUser(ctx context.Context, userID uint) ([]models.Deck, error) {
	defer observability.TrackQuery("list_by_user", "decks")()

	var decks []models.Deck
	err := r.db.WithContext(ctx).
		Preload("Cards").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&decks).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return decks, nil
}

func (r *deckRepository) Update(ctx context.Context, deck *models.Deck) error {
	defer observability.TrackQuery("update", "decks")()

	// Save rewrites updated_at even when only nested fields changed.
	deck.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Omit("Cards").Save(deck).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete is idempotent: deleting a missing deck is not an error.
func (r *deckRepository) Delete(ctx context.Context, userID, id uint) error {
	defer observability.TrackQuery("delete", "decks")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ?", userID).Delete(&models.Deck{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("deck_id = ?", id).Delete(&models.DeckCard{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}

// CardCounts returns the deck's current quantities keyed by lowercased card name.
func (r *deckRepository) CardCounts(ctx context.Context, deckID uint) (map[string]int, error) {
	defer observability.TrackQuery("card_counts", "deck_cards")()

	var cards []models.DeckCard
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Find(&cards).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[string]int, len(cards))
	for _, c := range cards {
		counts[strings.ToLower(c.Name)] += c.Quantity
	}
	return counts, nil
}

// AddCard merges quantity into an existing row of the same name (case-insensitive)
// or inserts a new row, then touches the deck's updated_at.
func (r *deckRepository) AddCard(ctx context.Context, deckID uint, name string, quantity int) error {
	defer observability.TrackQuery("add_card", "deck_cards")()

	name = strings.TrimSpace(name)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.DeckCard
		err := tx.Where("deck_id = ? AND LOWER(name) = ?", deckID, strings.ToLower(name)).
			First(&card).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			card = models.DeckCard{DeckID: deckID, Name: name, Quantity: quantity}
			if err := tx.Create(&card).Error; err != nil {
				return models.NewInternalError(err)
			}
		case err != nil:
			return models.NewInternalError(err)
		default:
			card.Quantity += quantity
			if err := tx.Save(&card).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		return touchDeck(tx, deckID)
	})
}

// RemoveCard decrements a card's quantity, dropping the row at zero. Removing
// a name the deck does not contain reports NotFound.
func (r *deckRepository) RemoveCard(ctx context.Context, deckID uint, name string, quantity int) error {
	defer observability.TrackQuery("remove_card", "deck_cards")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var card models.DeckCard
		err := tx.Where("deck_id = ? AND LOWER(name) = ?", deckID, strings.ToLower(strings.TrimSpace(name))).
			First(&card).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Card")
		}
		if err != nil {
			return models.NewInternalError(err)
		}

		card.Quantity -= quantity
		if card.Quantity > 0 {
			if err := tx.Save(&card).Error; err != nil {
				return models.NewInternalError(err)
			}
		} else {
			if err := tx.Delete(&card).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		return touchDeck(tx, deckID)
	})
}

func touchDeck(tx *gorm.DB, deckID uint) error {
	err := tx.Model(&models.Deck{}).
		Where("id = ?", deckID).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
