package repository

import (
	"context"
	"errors"
	"strings"

	"manavault/internal/models"
	"manavault/internal/observability"

	"gorm.io/gorm"
)

// CardRepository defines persistence operations for collection entries. Every
// operation is scoped to one owning user; entries of other users are invisible.
type CardRepository interface {
	GetByID(ctx context.Context, userID, id uint) (*models.CardEntry, error)
	GetByName(ctx context.Context, userID uint, name string) (*models.CardEntry, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]models.CardEntry, error)
	Search(ctx context.Context, userID uint, query string) ([]models.CardEntry, error)
	Create(ctx context.Context, entry *models.CardEntry) error
	Update(ctx context.Context, entry *models.CardEntry) error
	Delete(ctx context.Context, userID, id uint) error
	Stats(ctx context.Context, userID uint) (*models.CollectionStats, error)
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository returns a new CardRepository implementation.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) GetByID(ctx context.Context, userID, id uint) (*models.CardEntry, error) {
	defer observability.TrackQuery("get_by_id", "card_entries")()

	var entry models.CardEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Card")
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *cardRepository) GetByName(ctx context.Context, userID uint, name string) (*models.CardEntry, error) {
	defer observability.TrackQuery("get_by_name", "card_entries")()

	var entry models.CardEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = ?", userID, strings.ToLower(strings.TrimSpace(name))).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *cardRepository) List(ctx context.Context, userID uint, limit, offset int) ([]models.CardEntry, error) {
	defer observability.TrackQuery("list", "card_entries")()

	var entries []models.CardEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *cardRepository) Search(ctx context.Context, userID uint, query string) ([]models.CardEntry, error) {
	defer observability.TrackQuery("search", "card_entries")()

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var entries []models.CardEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(name) LIKE ? OR LOWER(set_code) LIKE ? OR LOWER(type_line) LIKE ?",
			pattern, pattern, pattern).
		Order("name ASC").
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *cardRepository) Create(ctx context.Context, entry *models.CardEntry) error {
	defer observability.TrackQuery("create", "card_entries")()

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cardRepository) Update(ctx context.Context, entry *models.CardEntry) error {
	defer observability.TrackQuery("update", "card_entries")()

	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, userID, id uint) error {
	defer observability.TrackQuery("delete", "card_entries")()

	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CardEntry{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Card")
	}
	return nil
}

func (r *cardRepository) Stats(ctx context.Context, userID uint) (*models.CollectionStats, error) {
	defer observability.TrackQuery("stats", "card_entries")()

	var stats models.CollectionStats
	err := r.db.WithContext(ctx).
		Model(&models.CardEntry{}).
		Select("COALESCE(SUM(quantity), 0) AS total, COUNT(DISTINCT LOWER(name)) AS \"unique\"").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}
