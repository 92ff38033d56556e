package server

import (
	"manavault/internal/models"
	"manavault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDecks handles GET /api/decks. Decks come back most recently updated
// first.
func (s *Server) GetDecks(c *fiber.Ctx) error {
	decks, err := s.decks.ListDecks(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if decks == nil {
		decks = []models.Deck{}
	}
	return c.JSON(fiber.Map{"decks": decks})
}

// GetDeck handles GET /api/decks/:id
func (s *Server) GetDeck(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	deck, err := s.decks.GetDeck(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(deck)
}

// CreateDeck handles POST /api/decks
func (s *Server) CreateDeck(c *fiber.Ctx) error {
	var req struct {
		Name        string                  `json:"name"`
		Format      string                  `json:"format"`
		Commander   string                  `json:"commander"`
		Description string                  `json:"description"`
		Colors      []string                `json:"colors"`
		Cards       []service.DeckCardInput `json:"cards"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deck, err := s.decks.CreateDeck(c.Context(), service.CreateDeckInput{
		UserID:      currentUserID(c),
		Name:        req.Name,
		Format:      req.Format,
		Commander:   req.Commander,
		Description: req.Description,
		Colors:      req.Colors,
		Cards:       req.Cards,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deck)
}

// UpdateDeck handles PUT /api/decks/:id. Only metadata changes here; the card
// list has its own endpoints.
func (s *Server) UpdateDeck(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name        *string  `json:"name"`
		Format      *string  `json:"format"`
		Commander   *string  `json:"commander"`
		Description *string  `json:"description"`
		Colors      []string `json:"colors"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deck, err := s.decks.UpdateDeck(c.Context(), service.UpdateDeckInput{
		UserID:      currentUserID(c),
		DeckID:      id,
		Name:        req.Name,
		Format:      req.Format,
		Commander:   req.Commander,
		Description: req.Description,
		Colors:      req.Colors,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(deck)
}

// DeleteDeck handles DELETE /api/decks/:id
func (s *Server) DeleteDeck(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.decks.DeleteDeck(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddDeckCards handles POST /api/decks/:id/cards. Accepts either a single
// card object or a list under "cards".
func (s *Server) AddDeckCards(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name     string                  `json:"name"`
		Quantity int                     `json:"quantity"`
		Cards    []service.DeckCardInput `json:"cards"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	cards := req.Cards
	if len(cards) == 0 && req.Name != "" {
		cards = []service.DeckCardInput{{Name: req.Name, Quantity: req.Quantity}}
	}

	deck, err := s.decks.AddCards(c.Context(), currentUserID(c), id, cards)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(deck)
}

// RemoveDeckCard handles DELETE /api/decks/:id/cards
func (s *Server) RemoveDeckCard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	deck, err := s.decks.RemoveCard(c.Context(), currentUserID(c), id, req.Name, req.Quantity)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(deck)
}

// ListPrecons handles GET /api/precons
func (s *Server) ListPrecons(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"precons": s.decks.ListPrecons()})
}

// ImportPrecon handles POST /api/precons/:preconId/import
func (s *Server) ImportPrecon(c *fiber.Ctx) error {
	preconID := c.Params("preconId")
	if preconID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid precon ID"))
	}

	deck, err := s.decks.ImportPrecon(c.Context(), currentUserID(c), preconID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(deck)
}
