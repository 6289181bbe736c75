// Package application holds the deck-session manager: it sequences deck
// service calls and owns the observable session state the presentation
// layer renders from.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/karu-dev/deckhand/internal/domain"
	"github.com/karu-dev/deckhand/internal/ports"
)

const (
	// DefaultDrawCount is how many cards a fresh draw deals.
	DefaultDrawCount = 5
	// DefaultTopUpCount is how many cards a top-up draw appends.
	DefaultTopUpCount = 2
)

// SessionManager owns one deck session: the held descriptor, the cards
// drawn so far, and the loading/error markers. All mutation goes through
// CreateDeck, DrawCards and DrawMoreCards; consumers read via Snapshot or
// Subscribe.
//
// Operations are safe to invoke from multiple goroutines, but no ordering
// is enforced between overlapping operations: each one independently flips
// the loading flag and applies its outcome in completion order. Callers
// that need at most one in-flight operation per kind opt in with
// WithSingleFlight; the bundled table UI instead disables its controls
// while loading.
type SessionManager struct {
	api    ports.DeckAPI
	clock  ports.Clock
	logger *slog.Logger
	id     string

	flight *singleflight.Group

	mu      sync.Mutex
	state   domain.SessionState
	subs    map[int]chan domain.SessionState
	nextSub int
}

// Option configures a SessionManager at construction time.
type Option func(*SessionManager)

// WithClock substitutes the wall clock, for deterministic tests.
func WithClock(clock ports.Clock) Option {
	return func(m *SessionManager) {
		m.clock = clock
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *SessionManager) {
		m.logger = logger
	}
}

// WithInitialState seeds the session with a previously saved snapshot.
// Loading and error markers are discarded; only descriptor and cards
// carry over.
func WithInitialState(state domain.SessionState) Option {
	return func(m *SessionManager) {
		seeded := state.Clone()
		seeded.Loading = false
		seeded.LastError = ""
		m.state = seeded
	}
}

// WithSingleFlight coalesces concurrent invocations of the same operation
// kind into a single upstream round trip whose outcome is committed to the
// session exactly once.
func WithSingleFlight() Option {
	return func(m *SessionManager) {
		m.flight = &singleflight.Group{}
	}
}

// NewSessionManager wires a manager to its deck service. A nil api is a
// construction-time contract violation, not a runtime state.
func NewSessionManager(api ports.DeckAPI, opts ...Option) (*SessionManager, error) {
	if api == nil {
		return nil, domain.ErrNoDeckAPI
	}

	m := &SessionManager{
		api:  api,
		id:   uuid.NewString(),
		subs: map[int]chan domain.SessionState{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.clock == nil {
		m.clock = ports.SystemClock{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("session_id", m.id)

	return m, nil
}

// ID returns the manager's session identifier, used for log correlation.
func (m *SessionManager) ID() string {
	return m.id
}

// Snapshot returns a deep copy of the current session state.
func (m *SessionManager) Snapshot() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Subscribe registers an observer. The channel carries the latest snapshot
// after every state change; a slow consumer only ever misses intermediate
// snapshots, never the most recent one. The returned function cancels the
// subscription and closes the channel.
func (m *SessionManager) Subscribe() (<-chan domain.SessionState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan domain.SessionState, 1)
	m.subs[id] = ch

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if sub, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// CreateDeck requests a fresh shuffled deck and replaces the held
// descriptor with the result. The held cards are untouched either way: on
// failure the prior descriptor also survives and only the error marker
// changes. Clears any previous error at the start.
func (m *SessionManager) CreateDeck(ctx context.Context) error {
	m.begin()
	defer m.settle()

	deck, err := m.call("create", func() (any, error) {
		descriptor, err := m.api.NewDeck(ctx)
		if err != nil {
			return nil, err
		}
		m.succeed(func(state *domain.SessionState) {
			state.Deck = &descriptor
		})
		return descriptor, nil
	})
	if err != nil {
		m.fail(fmt.Sprintf("could not create a new deck: %v", err))
		return err
	}

	descriptor := deck.(domain.DeckDescriptor)
	m.logger.Debug("deck created", "deck_id", descriptor.ID, "remaining", descriptor.Remaining)
	return nil
}

// DrawCards draws count cards and replaces the held hand with exactly the
// cards returned. Clears any previous error at the start. Without a held
// deck it records and returns ErrNoDeck.
func (m *SessionManager) DrawCards(ctx context.Context, count int) error {
	return m.draw(ctx, "draw", count, func(state *domain.SessionState, cards []domain.Card) {
		state.Cards = cards
	})
}

// DrawMoreCards draws count cards and appends them to the held hand in
// returned order. Clears any previous error at the start, same as the
// other operations. Without a held deck it records and returns ErrNoDeck.
func (m *SessionManager) DrawMoreCards(ctx context.Context, count int) error {
	return m.draw(ctx, "draw-more", count, func(state *domain.SessionState, cards []domain.Card) {
		state.Cards = append(state.Cards, cards...)
	})
}

func (m *SessionManager) draw(ctx context.Context, kind string, count int, merge func(*domain.SessionState, []domain.Card)) error {
	m.mu.Lock()
	var deckID domain.DeckID
	if m.state.Deck != nil {
		deckID = m.state.Deck.ID
	}
	m.mu.Unlock()

	if deckID == "" {
		m.fail("no active deck: create one first")
		return domain.ErrNoDeck
	}

	m.begin()
	defer m.settle()

	// the merge runs inside the call so a coalesced group commits the shared
	// draw to the session exactly once
	result, err := m.call(kind, func() (any, error) {
		drawn, err := m.api.Draw(ctx, deckID, count)
		if err != nil {
			return nil, err
		}
		cards := make([]domain.Card, len(drawn.Cards))
		copy(cards, drawn.Cards)
		m.succeed(func(state *domain.SessionState) {
			merge(state, cards)
			if state.Deck != nil {
				state.Deck.Remaining = drawn.Remaining
			}
		})
		return drawn, nil
	})
	if err != nil {
		m.fail(fmt.Sprintf("could not draw %d cards: %v", count, err))
		return err
	}

	drawn := result.(domain.DrawResult)
	m.logger.Debug("cards drawn", "kind", kind, "count", len(drawn.Cards), "remaining", drawn.Remaining)
	return nil
}

// call routes the operation through the single-flight group when one is
// configured, so overlapping invocations of the same kind share a result.
func (m *SessionManager) call(kind string, op func() (any, error)) (any, error) {
	if m.flight == nil {
		return op()
	}
	result, err, _ := m.flight.Do(kind, op)
	return result, err
}

// begin marks the operation start: loading on, previous error cleared.
func (m *SessionManager) begin() {
	m.apply(func(state *domain.SessionState) {
		state.Loading = true
		state.LastError = ""
	})
}

// succeed applies the operation outcome and ends the loading window.
func (m *SessionManager) succeed(mutate func(*domain.SessionState)) {
	m.apply(func(state *domain.SessionState) {
		mutate(state)
		state.Loading = false
	})
}

// settle ends the loading window if it is still open. Deferred by every
// operation so that neither a panicking deck service nor a coalesced
// caller whose begin landed after the shared commit leaves the session
// stuck loading.
func (m *SessionManager) settle() {
	m.mu.Lock()
	open := m.state.Loading
	m.mu.Unlock()
	if open {
		m.apply(func(state *domain.SessionState) {
			state.Loading = false
		})
	}
}

// fail records the failure and drops the loading flag; descriptor and
// cards are left exactly as they were.
func (m *SessionManager) fail(message string) {
	m.apply(func(state *domain.SessionState) {
		state.Loading = false
		state.LastError = message
	})
	m.logger.Warn("operation failed", "error", message)
}

func (m *SessionManager) apply(mutate func(*domain.SessionState)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mutate(&m.state)
	m.state.UpdatedAt = m.clock.Now()

	snapshot := m.state.Clone()
	for _, sub := range m.subs {
		// latest-wins: drop the stale snapshot before offering the new one
		select {
		case <-sub:
		default:
		}
		select {
		case sub <- snapshot:
		default:
		}
	}
}
