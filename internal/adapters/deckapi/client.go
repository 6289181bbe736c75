// Package deckapi is the HTTP adapter for the remote card-deck service.
package deckapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/karu-dev/deckhand/internal/domain"
	"github.com/karu-dev/deckhand/internal/ports"
)

const (
	// DefaultBaseURL is the public deck service endpoint.
	DefaultBaseURL = "https://deckofcardsapi.com/api/deck"

	// deckCount is fixed: one remote deck per session.
	deckCount = 1

	defaultRequestTimeout = 30 * time.Second
	maxResponseBytes      = 1 << 20
)

// Client performs the two deck-service operations over HTTP. The zero
// value is not usable; BaseURL must be set. HTTPClient and Logger are
// optional and default to http.DefaultClient and slog.Default.
type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

var _ ports.DeckAPI = Client{}

type deckResponse struct {
	Success   bool   `json:"success"`
	DeckID    string `json:"deck_id"`
	Shuffled  bool   `json:"shuffled"`
	Remaining int    `json:"remaining"`
}

type cardImagesResponse struct {
	SVG string `json:"svg"`
	PNG string `json:"png"`
}

type cardResponse struct {
	Code   string             `json:"code"`
	Image  string             `json:"image"`
	Images cardImagesResponse `json:"images"`
	Value  string             `json:"value"`
	Suit   string             `json:"suit"`
}

type drawResponse struct {
	Success   bool           `json:"success"`
	DeckID    string         `json:"deck_id"`
	Cards     []cardResponse `json:"cards"`
	Remaining int            `json:"remaining"`
}

// NewDeck requests a freshly shuffled deck. Each call mints a new remote
// deck; the returned descriptor supersedes any previously held one.
func (c Client) NewDeck(ctx context.Context) (domain.DeckDescriptor, error) {
	endpoint, err := buildAPIURL(c.BaseURL, "new/shuffle/", url.Values{
		"deck_count": []string{strconv.Itoa(deckCount)},
	})
	if err != nil {
		return domain.DeckDescriptor{}, err
	}

	var payload deckResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		c.logger().Warn("create deck failed", "error", err)
		return domain.DeckDescriptor{}, fmt.Errorf("create deck: %w", err)
	}

	if !payload.Success {
		c.logger().Warn("create deck declined by service")
		return domain.DeckDescriptor{}, fmt.Errorf("create deck: %w", domain.ErrRemoteDeclined)
	}
	if payload.DeckID == "" {
		c.logger().Warn("create deck response missing deck id")
		return domain.DeckDescriptor{}, errors.New("create deck: response missing deck id")
	}

	return domain.DeckDescriptor{
		ID:        domain.DeckID(payload.DeckID),
		Shuffled:  payload.Shuffled,
		Remaining: payload.Remaining,
	}, nil
}

// Draw requests count cards from the given deck. The count is passed
// through untouched; the service is the source of truth for exhaustion
// and reports it as a declined request.
func (c Client) Draw(ctx context.Context, deckID domain.DeckID, count int) (domain.DrawResult, error) {
	if deckID == "" {
		return domain.DrawResult{}, domain.ErrNoDeck
	}

	endpoint, err := buildAPIURL(c.BaseURL, string(deckID)+"/draw/", url.Values{
		"count": []string{strconv.Itoa(count)},
	})
	if err != nil {
		return domain.DrawResult{}, err
	}

	var payload drawResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		c.logger().Warn("draw failed", "deck_id", deckID, "count", count, "error", err)
		return domain.DrawResult{}, fmt.Errorf("draw cards: %w", err)
	}

	if !payload.Success {
		c.logger().Warn("draw declined by service", "deck_id", deckID, "count", count, "remaining", payload.Remaining)
		return domain.DrawResult{}, fmt.Errorf("draw cards: %w", domain.ErrRemoteDeclined)
	}

	cards := make([]domain.Card, 0, len(payload.Cards))
	for _, card := range payload.Cards {
		cards = append(cards, domain.Card{
			Code:  card.Code,
			Value: card.Value,
			Suit:  card.Suit,
			Image: card.Image,
			Images: domain.CardImages{
				SVG: card.Images.SVG,
				PNG: card.Images.PNG,
			},
		})
	}

	return domain.DrawResult{
		DeckID:    domain.DeckID(payload.DeckID),
		Cards:     cards,
		Remaining: payload.Remaining,
	}, nil
}

func (c Client) getJSON(ctx context.Context, endpoint string, out any) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "deckhand")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(detail))
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func buildAPIURL(baseURL string, path string, query url.Values) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint := parsed.JoinPath(path)
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}
