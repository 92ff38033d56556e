package models

import (
	"time"

	"gorm.io/datatypes"
)

// CardEntry represents one owned card in a user's collection. Entries are
// keyed by (user, lowercased name); repeated adds of the same name merge into
// a single row by summing quantity.
type CardEntry struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       *User          `gorm:"foreignKey:UserID" json:"-"`
	Name       string         `gorm:"size:200;not null;index" json:"name"`
	SetCode    string         `gorm:"size:10" json:"set_code"`
	Quantity   int            `gorm:"not null;default:1" json:"quantity"`
	ScryfallID string         `gorm:"size:40" json:"scryfall_id"`
	Colors     datatypes.JSON `json:"colors"`
	ManaValue  float64        `json:"mana_value"`
	TypeLine   string         `gorm:"size:200" json:"type_line"`
	Rarity     string         `gorm:"size:20" json:"rarity"`
	ImageURL   string         `json:"image_url"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (CardEntry) TableName() string {
	return "card_entries"
}

// CollectionStats aggregates a user's collection.
type CollectionStats struct {
	// Total is the summed quantity across all entries.
	Total int `json:"total"`
	// Unique is the number of distinct card names.
	Unique int `json:"unique"`
}
