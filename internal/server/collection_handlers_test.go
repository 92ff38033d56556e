package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"manavault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCollectionCard(t *testing.T) {
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token, map[string]any{
		"name":     "Lightning Bolt",
		"set_code": "m10",
		"quantity": 4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decodeBody[models.CardEntry](t, resp)
	assert.Equal(t, "Lightning Bolt", entry.Name)
	assert.Equal(t, 4, entry.Quantity)
	assert.Equal(t, "m10", entry.SetCode)
}

func TestAddCollectionCardMerges(t *testing.T) {
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token,
		map[string]any{"name": "Lightning Bolt", "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/collection/", token,
		map[string]any{"name": "lightning bolt", "quantity": 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decodeBody[models.CardEntry](t, resp)
	assert.Equal(t, 5, entry.Quantity)

	// Still one row.
	resp = doJSON(t, app, http.MethodGet, "/api/collection/", token, nil)
	body := decodeBody[struct {
		Cards []models.CardEntry `json:"cards"`
	}](t, resp)
	assert.Len(t, body.Cards, 1)
}

func TestAddCollectionCardEnrichment(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cards/named", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "bolt-1", "name": "Lightning Bolt", "set": "m10",
			"cmc": 1, "type_line": "Instant", "rarity": "common",
			"colors":     []string{"R"},
			"image_uris": map[string]string{"normal": "https://img.example/bolt.jpg"},
		})
	}))
	t.Cleanup(upstream.Close)

	s, app := newTestServerWithUpstream(t, upstream.URL)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token,
		map[string]any{"name": "Lightning Bolt"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decodeBody[models.CardEntry](t, resp)
	assert.Equal(t, "bolt-1", entry.ScryfallID)
	assert.Equal(t, "Instant", entry.TypeLine)
	assert.Equal(t, "m10", entry.SetCode)
	assert.Equal(t, "https://img.example/bolt.jpg", entry.ImageURL)
}

func TestAddCollectionCardWithMetadata(t *testing.T) {
	// newTestServer's upstream knows no cards, so everything asserted here
	// must come from the request body.
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token, map[string]any{
		"name":        "Lightning Bolt",
		"set_code":    "m10",
		"quantity":    4,
		"scryfall_id": "bolt-1",
		"colors":      []string{"R"},
		"mana_value":  1,
		"type_line":   "Instant",
		"rarity":      "common",
		"image_url":   "https://img.example/bolt.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decodeBody[models.CardEntry](t, resp)
	assert.Equal(t, "bolt-1", entry.ScryfallID)
	assert.Equal(t, float64(1), entry.ManaValue)
	assert.Equal(t, "Instant", entry.TypeLine)
	assert.Equal(t, "common", entry.Rarity)
	assert.Equal(t, "https://img.example/bolt.jpg", entry.ImageURL)
	assert.JSONEq(t, `["R"]`, string(entry.Colors))
}

func TestCollectionSearchAndStats(t *testing.T) {
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	for _, card := range []map[string]any{
		{"name": "Lightning Bolt", "quantity": 4},
		{"name": "Counterspell", "quantity": 2},
		{"name": "Lightning Strike", "quantity": 1},
	} {
		resp := doJSON(t, app, http.MethodPost, "/api/collection/", token, card)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/collection/search?q=lightning", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	search := decodeBody[struct {
		Cards []models.CardEntry `json:"cards"`
	}](t, resp)
	assert.Len(t, search.Cards, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/collection/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeBody[models.CollectionStats](t, resp)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 3, stats.Unique)
}

func TestUpdateCollectionEntry(t *testing.T) {
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token,
		map[string]any{"name": "Counterspell", "quantity": 1})
	entry := decodeBody[models.CardEntry](t, resp)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/collection/%d", entry.ID), token,
		map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[models.CardEntry](t, resp)
	assert.Equal(t, 3, updated.Quantity)

	// Zero quantity is not a delete.
	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/collection/%d", entry.ID), token,
		map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCollectionEntry(t *testing.T) {
	s, app := newTestServer(t)
	_, token := registerTestUser(t, s, "collector")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", token,
		map[string]any{"name": "Counterspell"})
	entry := decodeBody[models.CardEntry](t, resp)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/collection/%d", entry.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/collection/%d", entry.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCollectionIsPerUser(t *testing.T) {
	s, app := newTestServer(t)
	_, aliceToken := registerTestUser(t, s, "alice")
	_, bobToken := registerTestUser(t, s, "bob")

	resp := doJSON(t, app, http.MethodPost, "/api/collection/", aliceToken,
		map[string]any{"name": "Black Lotus"})
	entry := decodeBody[models.CardEntry](t, resp)

	// Bob cannot see or delete Alice's entry.
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/collection/%d", entry.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/collection/%d", entry.ID), bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/collection/", bobToken, nil)
	body := decodeBody[struct {
		Cards []models.CardEntry `json:"cards"`
	}](t, resp)
	assert.Empty(t, body.Cards)
}
