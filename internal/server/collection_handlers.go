package server

import (
	"manavault/internal/models"
	"manavault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCollection handles GET /api/collection
func (s *Server) GetCollection(c *fiber.Ctx) error {
	p := parsePagination(c, 50)

	entries, err := s.collection.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.CardEntry{}
	}
	return c.JSON(fiber.Map{
		"cards":  entries,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// SearchCollection handles GET /api/collection/search
func (s *Server) SearchCollection(c *fiber.Ctx) error {
	entries, err := s.collection.Search(c.Context(), currentUserID(c), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.CardEntry{}
	}
	return c.JSON(fiber.Map{"cards": entries})
}

// GetCollectionStats handles GET /api/collection/stats
func (s *Server) GetCollectionStats(c *fiber.Ctx) error {
	stats, err := s.collection.Stats(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}

// GetCollectionEntry handles GET /api/collection/:id
func (s *Server) GetCollectionEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.collection.GetEntry(c.Context(), currentUserID(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// AddCollectionCard handles POST /api/collection
func (s *Server) AddCollectionCard(c *fiber.Ctx) error {
	var req struct {
		Name       string   `json:"name"`
		SetCode    string   `json:"set_code"`
		Quantity   int      `json:"quantity"`
		ScryfallID string   `json:"scryfall_id"`
		Colors     []string `json:"colors"`
		ManaValue  float64  `json:"mana_value"`
		TypeLine   string   `json:"type_line"`
		Rarity     string   `json:"rarity"`
		ImageURL   string   `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.collection.AddCard(c.Context(), service.AddCardInput{
		UserID:     currentUserID(c),
		Name:       req.Name,
		SetCode:    req.SetCode,
		Quantity:   req.Quantity,
		ScryfallID: req.ScryfallID,
		Colors:     req.Colors,
		ManaValue:  req.ManaValue,
		TypeLine:   req.TypeLine,
		Rarity:     req.Rarity,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateCollectionEntry handles PUT /api/collection/:id
func (s *Server) UpdateCollectionEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Quantity int    `json:"quantity"`
		SetCode  string `json:"set_code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry, err := s.collection.UpdateEntry(c.Context(), service.UpdateEntryInput{
		UserID:   currentUserID(c),
		EntryID:  id,
		Quantity: req.Quantity,
		SetCode:  req.SetCode,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(entry)
}

// DeleteCollectionEntry handles DELETE /api/collection/:id
func (s *Server) DeleteCollectionEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.collection.RemoveEntry(c.Context(), currentUserID(c), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
