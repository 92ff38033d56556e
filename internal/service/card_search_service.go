package service

import (
	"context"
	"strings"

	"manavault/internal/cache"
	"manavault/internal/models"
	"manavault/internal/scryfall"
)

// CardSearcher is the full card-database dependency of CardSearchService.
// Satisfied by *scryfall.Client.
type CardSearcher interface {
	CardLookup
	Search(ctx context.Context, query string, limit int) ([]scryfall.Card, error)
	Autocomplete(ctx context.Context, query string) ([]string, error)
}

// CardSearchService proxies card-database lookups, serving repeated queries
// from cache so the upstream's rate limits are never the user's problem.
type CardSearchService struct {
	client CardSearcher
}

func NewCardSearchService(client CardSearcher) *CardSearchService {
	return &CardSearchService{client: client}
}

const searchLimit = 60

func (s *CardSearchService) Search(ctx context.Context, query string) ([]scryfall.Card, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}

	var cards []scryfall.Card
	err := cache.Aside(ctx, cache.ScryfallSearchKey(query), &cards, cache.ScryfallTTL, func() error {
		var fetchErr error
		cards, fetchErr = s.client.Search(ctx, query, searchLimit)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *CardSearchService) Named(ctx context.Context, name string) (*scryfall.Card, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewValidationError("Card name is required")
	}

	var card scryfall.Card
	err := cache.Aside(ctx, cache.ScryfallNamedKey(name), &card, cache.ScryfallTTL, func() error {
		found, fetchErr := s.client.Named(ctx, name)
		if fetchErr != nil {
			return fetchErr
		}
		card = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *CardSearchService) Autocomplete(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	var names []string
	err := cache.Aside(ctx, cache.ScryfallAutocompleteKey(query), &names, cache.ScryfallTTL, func() error {
		var fetchErr error
		names, fetchErr = s.client.Autocomplete(ctx, query)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
