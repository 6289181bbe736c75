package domain

// Card is a single playing card as reported by the remote deck service.
// Cards are never constructed locally; they arrive fully formed from a
// draw response and are treated as immutable values.
type Card struct {
	Code   string
	Value  string
	Suit   string
	Image  string
	Images CardImages
}

// CardImages holds the image URL variants the service publishes per card.
type CardImages struct {
	SVG string
	PNG string
}

var rankOrder = map[string]int{
	"ACE":   1,
	"2":     2,
	"3":     3,
	"4":     4,
	"5":     5,
	"6":     6,
	"7":     7,
	"8":     8,
	"9":     9,
	"10":    10,
	"JACK":  11,
	"QUEEN": 12,
	"KING":  13,
}

// RankOrder returns the card's position in ace-low rank order, or 0 when
// the value is not a recognized rank.
func (c Card) RankOrder() int {
	return rankOrder[c.Value]
}

// SuitSymbol returns the playing-card glyph for the card's suit, falling
// back to the raw suit name when it is unrecognized.
func (c Card) SuitSymbol() string {
	switch c.Suit {
	case "SPADES":
		return "♠"
	case "HEARTS":
		return "♥"
	case "DIAMONDS":
		return "♦"
	case "CLUBS":
		return "♣"
	default:
		return c.Suit
	}
}

// IsRed reports whether the card belongs to a red suit.
func (c Card) IsRed() bool {
	return c.Suit == "HEARTS" || c.Suit == "DIAMONDS"
}
