package domain

import "time"

// SessionState is a snapshot of one deck session: the held descriptor,
// the cards drawn so far in draw order, and the in-flight/error markers
// the presentation layer renders from. The session manager owns the live
// value; consumers only ever see copies.
type SessionState struct {
	Deck      *DeckDescriptor
	Cards     []Card
	Loading   bool
	LastError string
	UpdatedAt time.Time
}

// HasDeck reports whether the session currently holds a deck descriptor.
func (s SessionState) HasDeck() bool {
	return s.Deck != nil
}

// Clone returns a deep copy: the card slice and descriptor are duplicated
// so the caller can hold the snapshot without aliasing live state.
func (s SessionState) Clone() SessionState {
	out := s
	if s.Deck != nil {
		deck := *s.Deck
		out.Deck = &deck
	}
	if s.Cards != nil {
		out.Cards = make([]Card, len(s.Cards))
		copy(out.Cards, s.Cards)
	}
	return out
}
