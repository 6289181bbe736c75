package ports

import (
	"context"

	"github.com/karu-dev/deckhand/internal/domain"
)

// DeckAPI is the remote card-deck service seen from the application layer:
// one call to mint a shuffled deck, one call to draw from it. Every failure
// mode (transport, non-2xx, remote decline, empty body) surfaces as an
// error; there is no partial result.
type DeckAPI interface {
	NewDeck(ctx context.Context) (domain.DeckDescriptor, error)
	Draw(ctx context.Context, deckID domain.DeckID, count int) (domain.DrawResult, error)
}
