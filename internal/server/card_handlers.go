package server

import (
	"manavault/internal/scryfall"

	"github.com/gofiber/fiber/v2"
)

// SearchCards handles GET /api/cards/search, proxying a full-text search to
// the card database.
func (s *Server) SearchCards(c *fiber.Ctx) error {
	cards, err := s.cardSearch.Search(c.Context(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	if cards == nil {
		cards = []scryfall.Card{}
	}
	return c.JSON(fiber.Map{"cards": cards})
}

// GetCardByName handles GET /api/cards/named?name=
func (s *Server) GetCardByName(c *fiber.Ctx) error {
	card, err := s.cardSearch.Named(c.Context(), c.Query("name"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(card)
}

// AutocompleteCards handles GET /api/cards/autocomplete?q=
func (s *Server) AutocompleteCards(c *fiber.Ctx) error {
	names, err := s.cardSearch.Autocomplete(c.Context(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(fiber.Map{"names": names})
}
