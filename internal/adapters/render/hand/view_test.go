package hand

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karu-dev/deckhand/internal/domain"
)

func TestRenderSessionWithHand(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	output, err := Render(domain.SessionState{
		Deck: &domain.DeckDescriptor{ID: "abc123", Shuffled: true, Remaining: 47},
		Cards: []domain.Card{
			{Code: "AS", Value: "ACE", Suit: "SPADES"},
			{Code: "0H", Value: "10", Suit: "HEARTS"},
		},
		UpdatedAt: now.Add(-time.Minute),
	}, RenderOptions{Now: now, StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "Deck Session")
	assert.Contains(t, output, "cards held: 2")
	assert.Contains(t, output, "deck abc123:")
	assert.Contains(t, output, "47 remaining")
	assert.Contains(t, output, "A♠")
	assert.Contains(t, output, "10♥")
	assert.NotContains(t, output, "stale")
	assert.NotContains(t, output, "error:")
}

func TestRenderEmptySession(t *testing.T) {
	output, err := Render(domain.SessionState{}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No active deck")
	assert.Contains(t, output, "cards held: 0")
}

func TestRenderSessionWithErrorAndLoading(t *testing.T) {
	output, err := Render(domain.SessionState{
		Deck:      &domain.DeckDescriptor{ID: "abc123", Remaining: 0},
		Loading:   true,
		LastError: "could not draw 5 cards: deck service declined the request",
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "operation in flight")
	assert.Contains(t, output, "error: could not draw 5 cards")
	assert.Contains(t, output, "No cards drawn yet.")
}

func TestRenderMarksStaleSnapshot(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	output, err := Render(domain.SessionState{
		Deck:      &domain.DeckDescriptor{ID: "abc123", Remaining: 10},
		UpdatedAt: now.Add(-2 * time.Hour),
	}, RenderOptions{Now: now, StaleAfter: time.Hour})

	require.NoError(t, err)
	assert.Contains(t, output, "[stale snapshot]")
}
