package repository

import (
	"testing"
	"time"

	"manavault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "ajani")
	ctx := t.Context()

	deck := &models.Deck{
		UserID:    user.ID,
		Name:      "Mono White",
		Format:    "Standard",
		Commander: "",
	}
	require.NoError(t, repo.Create(ctx, deck))
	require.NoError(t, repo.AddCard(ctx, deck.ID, "Plains", 20))

	got, err := repo.GetByID(ctx, user.ID, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mono White", got.Name)
	require.Len(t, got.Cards, 1)
	assert.Equal(t, 20, got.Cards[0].Quantity)
}

func TestDeckRepository_ListOrderedByRecency(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "sorin")
	ctx := t.Context()

	first := &models.Deck{UserID: user.ID, Name: "Old Deck"}
	second := &models.Deck{UserID: user.ID, Name: "New Deck"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// Touch the older deck so it becomes the most recently updated.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.AddCard(ctx, first.ID, "Swamp", 4))

	decks, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, decks, 2)
	assert.Equal(t, "Old Deck", decks[0].Name)
}

func TestDeckRepository_AddCardMergesByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "gideon")
	ctx := t.Context()

	deck := &models.Deck{UserID: user.ID, Name: "Boros Aggro"}
	require.NoError(t, repo.Create(ctx, deck))

	require.NoError(t, repo.AddCard(ctx, deck.ID, "Lightning Bolt", 2))
	require.NoError(t, repo.AddCard(ctx, deck.ID, "lightning bolt", 2))

	counts, err := repo.CardCounts(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"lightning bolt": 4}, counts)
}

func TestDeckRepository_RemoveCardDecrementsAndDrops(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "vraska")
	ctx := t.Context()

	deck := &models.Deck{UserID: user.ID, Name: "Golgari"}
	require.NoError(t, repo.Create(ctx, deck))
	require.NoError(t, repo.AddCard(ctx, deck.ID, "Forest", 3))

	require.NoError(t, repo.RemoveCard(ctx, deck.ID, "Forest", 1))
	counts, err := repo.CardCounts(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["forest"])

	require.NoError(t, repo.RemoveCard(ctx, deck.ID, "Forest", 5))
	counts, err = repo.CardCounts(ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, counts)

	err = repo.RemoveCard(ctx, deck.ID, "Forest", 1)
	require.Error(t, err)
}

func TestDeckRepository_DeleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "tibalt")
	ctx := t.Context()

	deck := &models.Deck{UserID: user.ID, Name: "Doomed"}
	other := &models.Deck{UserID: user.ID, Name: "Survivor"}
	require.NoError(t, repo.Create(ctx, deck))
	require.NoError(t, repo.Create(ctx, other))
	require.NoError(t, repo.AddCard(ctx, deck.ID, "Mountain", 10))

	require.NoError(t, repo.Delete(ctx, user.ID, deck.ID))
	require.NoError(t, repo.Delete(ctx, user.ID, deck.ID))

	// The other deck is untouched.
	got, err := repo.GetByID(ctx, user.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survivor", got.Name)
}

func TestDeckRepository_IsolationBetweenOwners(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := t.Context()

	aliceDeck := &models.Deck{UserID: alice.ID, Name: "Mono Red"}
	bobDeck := &models.Deck{UserID: bob.ID, Name: "Mono Red"}
	require.NoError(t, repo.Create(ctx, aliceDeck))
	require.NoError(t, repo.Create(ctx, bobDeck))

	aliceDecks, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceDecks, 1)
	assert.Equal(t, aliceDeck.ID, aliceDecks[0].ID)

	_, err = repo.GetByID(ctx, alice.ID, bobDeck.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestDeckRepository_UpdateRefreshesTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewDeckRepository(db)
	user := seedUser(t, db, "elspeth")
	ctx := t.Context()

	deck := &models.Deck{UserID: user.ID, Name: "Before"}
	require.NoError(t, repo.Create(ctx, deck))
	created := deck.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	deck.Name = "After"
	require.NoError(t, repo.Update(ctx, deck))

	got, err := repo.GetByID(ctx, user.ID, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.True(t, got.UpdatedAt.After(created))
}
