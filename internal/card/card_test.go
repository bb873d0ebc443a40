package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, 52, "a trix deck has 52 cards")

	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		assert.False(t, seen[c], "duplicate card %s in deck", c.ID())
		seen[c] = true
	}

	perSuit := make(map[Suit]int)
	for _, c := range deck {
		perSuit[c.Suit]++
	}
	for s := Hearts; s <= Spades; s++ {
		assert.Equal(t, 13, perSuit[s], "suit %s should have 13 cards", s)
	}
}

func TestDeckShuffle(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle()

	require.Len(t, deck, 52, "shuffle must not change the deck size")
	seen := make(map[Card]bool, 52)
	for _, c := range deck {
		assert.False(t, seen[c], "shuffle must not duplicate %s", c.ID())
		seen[c] = true
	}
}

func TestCardID_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range NewDeck() {
		id := c.ID()
		require.Len(t, id, 2, "wire identity is always two characters")

		parsed, err := FromID(id)
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestFromID_Invalid(t *testing.T) {
	t.Parallel()

	for _, id := range []string{"", "H", "XK", "H1", "HKK", "hk"} {
		_, err := FromID(id)
		assert.Error(t, err, "id %q should not parse", id)
	}
}

func TestRankOrdering(t *testing.T) {
	t.Parallel()

	assert.True(t, RankA > RankK)
	assert.True(t, RankK > RankQ)
	assert.True(t, RankQ > RankJ)
	assert.True(t, RankJ > Rank10)
	assert.True(t, Rank3 > Rank2)
}

func TestKingOfHearts(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "HK", KingOfHearts.ID())
	assert.Equal(t, Hearts, KingOfHearts.Suit)
	assert.Equal(t, RankK, KingOfHearts.Rank)
}
