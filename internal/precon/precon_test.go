package precon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, catalog.List())

	for _, tpl := range catalog.List() {
		assert.NotEmpty(t, tpl.ID)
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Format)
		assert.NotEmpty(t, tpl.Cards)
		for _, card := range tpl.Cards {
			assert.NotEmpty(t, card.Name, "precon %s has a card without a name", tpl.ID)
			assert.Positive(t, card.Quantity, "precon %s: %s has non-positive quantity", tpl.ID, card.Name)
		}
	}
}

func TestListSortedByName(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	list := catalog.List()
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, list[i-1].Name, list[i].Name)
	}
}

func TestGet(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	tpl, ok := catalog.Get("goblin-rush")
	require.True(t, ok)
	assert.Equal(t, "Goblin Rush", tpl.Name)
	assert.Equal(t, 60, tpl.CardCount())

	_, ok = catalog.Get("no-such-precon")
	assert.False(t, ok)
}

func TestCommanderPreconsIncludeCommander(t *testing.T) {
	catalog, err := Load()
	require.NoError(t, err)

	for _, tpl := range catalog.List() {
		if tpl.Commander == "" {
			continue
		}
		found := false
		for _, card := range tpl.Cards {
			if card.Name == tpl.Commander {
				found = true
				break
			}
		}
		assert.True(t, found, "precon %s does not list its commander %s", tpl.ID, tpl.Commander)
	}
}
