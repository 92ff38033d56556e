// Package scryfall is a client for the Scryfall card-metadata API. Card data
// is consumed, never reimplemented; the client flattens Scryfall's card shape
// into the handful of fields the rest of the application stores.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"manavault/internal/models"
	"manavault/internal/observability"
)

const (
	// DefaultBaseURL is the public Scryfall API endpoint.
	DefaultBaseURL = "https://api.scryfall.com"

	// Scryfall asks for 50-100ms between requests.
	minRequestInterval = 100 * time.Millisecond
)

// Card is the flattened card shape used across the application.
type Card struct {
	Name       string   `json:"name"`
	SetCode    string   `json:"set_code"`
	ScryfallID string   `json:"scryfall_id"`
	Colors     []string `json:"colors"`
	ManaValue  float64  `json:"mana_value"`
	TypeLine   string   `json:"type_line"`
	Rarity     string   `json:"rarity"`
	OracleText string   `json:"oracle_text"`
	ImageURL   string   `json:"image_url"`
}

// Client is a Scryfall API client with a polite request interval.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a new Scryfall client. An empty baseURL selects the
// public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// imageURIs is the nested image block Scryfall attaches per face or card.
type imageURIs struct {
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

type cardFace struct {
	Name      string     `json:"name"`
	TypeLine  string     `json:"type_line"`
	Colors    []string   `json:"colors"`
	ImageURIs *imageURIs `json:"image_uris"`
}

type scryfallCard struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Set           string     `json:"set"`
	Colors        []string   `json:"colors"`
	ColorIdentity []string   `json:"color_identity"`
	CMC           float64    `json:"cmc"`
	TypeLine      string     `json:"type_line"`
	Rarity        string     `json:"rarity"`
	OracleText    string     `json:"oracle_text"`
	ImageURIs     *imageURIs `json:"image_uris"`
	CardFaces     []cardFace `json:"card_faces"`
}

type searchResponse struct {
	Data []scryfallCard `json:"data"`
}

type autocompleteResponse struct {
	Data []string `json:"data"`
}

// mapCard flattens a Scryfall card. Single-faced cards carry image_uris at
// the top level; double-faced cards only per face.
func mapCard(c scryfallCard) Card {
	img := ""
	if c.ImageURIs != nil {
		img = c.ImageURIs.Normal
		if img == "" {
			img = c.ImageURIs.Large
		}
	} else if len(c.CardFaces) > 0 && c.CardFaces[0].ImageURIs != nil {
		img = c.CardFaces[0].ImageURIs.Normal
		if img == "" {
			img = c.CardFaces[0].ImageURIs.Large
		}
	}

	colors := c.Colors
	if len(colors) == 0 {
		colors = c.ColorIdentity
	}

	return Card{
		Name:       c.Name,
		SetCode:    c.Set,
		ScryfallID: c.ID,
		Colors:     colors,
		ManaValue:  c.CMC,
		TypeLine:   c.TypeLine,
		Rarity:     c.Rarity,
		OracleText: c.OracleText,
		ImageURL:   img,
	}
}

// get performs a GET request and decodes the JSON response. A 404 is reported
// as-is so callers can decide whether "no results" is an error.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) (int, error) {
	c.mu.Lock()
	if elapsed := time.Since(c.lastRequest); elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequest = time.Now()
	c.mu.Unlock()

	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "manavault/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveScryfallRequest(endpoint, "error", start)
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		observability.ObserveScryfallRequest(endpoint, "ok", start)
	case http.StatusNotFound:
		// Scryfall answers "no results" with a JSON 404.
		observability.ObserveScryfallRequest(endpoint, "not_found", start)
		return resp.StatusCode, nil
	default:
		observability.ObserveScryfallRequest(endpoint, "error", start)
		return resp.StatusCode, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// Search runs a full-text card search, returning at most limit cards ordered
// by release date. No results is an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Card, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("unique", "prints")
	q.Set("order", "released")
	q.Set("dir", "desc")

	var body searchResponse
	status, err := c.get(ctx, "/cards/search", q, &body)
	if err != nil {
		return nil, models.NewUpstreamError("Card database", err)
	}
	if status == http.StatusNotFound {
		return []Card{}, nil
	}

	cards := make([]Card, 0, len(body.Data))
	for _, sc := range body.Data {
		cards = append(cards, mapCard(sc))
		if limit > 0 && len(cards) >= limit {
			break
		}
	}
	return cards, nil
}

// Named looks a card up by exact name.
func (c *Client) Named(ctx context.Context, name string) (*Card, error) {
	q := url.Values{}
	q.Set("exact", name)

	var body scryfallCard
	status, err := c.get(ctx, "/cards/named", q, &body)
	if err != nil {
		return nil, models.NewUpstreamError("Card database", err)
	}
	if status == http.StatusNotFound {
		return nil, models.NewNotFoundError("Card")
	}

	card := mapCard(body)
	return &card, nil
}

// Autocomplete returns up to 20 card-name completions for a partial name.
func (c *Client) Autocomplete(ctx context.Context, query string) ([]string, error) {
	q := url.Values{}
	q.Set("q", query)

	var body autocompleteResponse
	status, err := c.get(ctx, "/cards/autocomplete", q, &body)
	if err != nil {
		return nil, models.NewUpstreamError("Card database", err)
	}
	if status == http.StatusNotFound {
		return []string{}, nil
	}
	return body.Data, nil
}
