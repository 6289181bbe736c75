package domain

// DeckID identifies a shuffled deck held by the remote service.
type DeckID string

// DeckDescriptor is the client-held summary of a remote deck. A new
// descriptor is produced by every successful deck creation; descriptors
// are never mutated in place except for the Remaining count, which tracks
// the service's view after each draw.
type DeckDescriptor struct {
	ID        DeckID
	Shuffled  bool
	Remaining int
}

// DrawResult is the outcome of a successful draw: the cards handed out in
// service order plus the count of cards left in the remote deck.
type DrawResult struct {
	DeckID    DeckID
	Cards     []Card
	Remaining int
}
