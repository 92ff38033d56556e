package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Deck represents a named deck owned by a single user. The card list lives in
// deck_cards rows; a deck may reference cards the owner does not hold in their
// collection.
type Deck struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	User        *User          `gorm:"foreignKey:UserID" json:"-"`
	Name        string         `gorm:"size:120;not null" json:"name"`
	Format      string         `gorm:"size:40" json:"format"`
	Commander   string         `gorm:"size:200" json:"commander"`
	Description string         `gorm:"type:text" json:"description"`
	Colors      datatypes.JSON `json:"colors"`
	Cards       []DeckCard     `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// IsCommander reports whether the deck's format tag marks it as Commander/EDH.
func (d *Deck) IsCommander() bool {
	switch strings.ToLower(strings.TrimSpace(d.Format)) {
	case "commander", "edh":
		return true
	}
	return false
}

// DeckCard is one (card name, quantity) pair inside a deck.
type DeckCard struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    uint      `gorm:"not null;index" json:"deck_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (DeckCard) TableName() string {
	return "deck_cards"
}
