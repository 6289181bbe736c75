package deckapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karu-dev/deckhand/internal/domain"
)

func TestNewDeckParsesSuccessResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/new/shuffle/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("deck_count"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"deck_id":"abc123","shuffled":true,"remaining":52}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	deck, err := client.NewDeck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DeckID("abc123"), deck.ID)
	assert.True(t, deck.Shuffled)
	assert.Equal(t, 52, deck.Remaining)
}

func TestNewDeckFailsOnDeclinedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.NewDeck(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteDeclined))
}

func TestNewDeckFailsOnServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.NewDeck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewDeckFailsOnEmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.NewDeck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewDeckFailsOnMissingDeckID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"shuffled":true,"remaining":52}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.NewDeck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing deck id")
}

func TestNewDeckTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"deck_id":"abc123","shuffled":true,"remaining":52}`))
	}))
	t.Cleanup(server.Close)

	client := Client{
		BaseURL:        server.URL,
		HTTPClient:     server.Client(),
		RequestTimeout: 20 * time.Millisecond,
	}

	_, err := client.NewDeck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create deck")
}

func TestDrawParsesCardsInServiceOrder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/abc123/draw/", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("count"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"deck_id": "abc123",
			"cards": [
				{"code":"AS","image":"https://example.com/AS.png","images":{"svg":"https://example.com/AS.svg","png":"https://example.com/AS.png"},"value":"ACE","suit":"SPADES"},
				{"code":"KH","image":"https://example.com/KH.png","images":{"svg":"https://example.com/KH.svg","png":"https://example.com/KH.png"},"value":"KING","suit":"HEARTS"}
			],
			"remaining": 50
		}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	result, err := client.Draw(context.Background(), "abc123", 2)
	require.NoError(t, err)
	assert.Equal(t, domain.DeckID("abc123"), result.DeckID)
	assert.Equal(t, 50, result.Remaining)
	require.Len(t, result.Cards, 2)
	assert.Equal(t, domain.Card{
		Code:  "AS",
		Value: "ACE",
		Suit:  "SPADES",
		Image: "https://example.com/AS.png",
		Images: domain.CardImages{
			SVG: "https://example.com/AS.svg",
			PNG: "https://example.com/AS.png",
		},
	}, result.Cards[0])
	assert.Equal(t, "KH", result.Cards[1].Code)
}

func TestDrawFailsOnExhaustedDeck(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"deck_id":"abc123","cards":[],"remaining":0}`))
	}))
	t.Cleanup(server.Close)

	client := Client{BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.Draw(context.Background(), "abc123", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRemoteDeclined))
}

func TestDrawRequiresDeckID(t *testing.T) {
	t.Parallel()

	client := Client{BaseURL: "https://example.com"}

	_, err := client.Draw(context.Background(), "", 5)
	require.ErrorIs(t, err, domain.ErrNoDeck)
}

func TestBuildAPIURLValidation(t *testing.T) {
	t.Parallel()

	_, err := buildAPIURL("", "new/shuffle/", nil)
	require.Error(t, err)

	_, err = buildAPIURL("ftp://example.com", "new/shuffle/", nil)
	require.Error(t, err)

	endpoint, err := buildAPIURL("https://example.com/api/deck", "abc123/draw/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/deck/abc123/draw/", endpoint)
}
