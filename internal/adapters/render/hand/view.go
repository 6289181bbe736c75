package hand

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/karu-dev/deckhand/internal/domain"
)

// fullDeckSize calibrates the remaining-cards meter.
const fullDeckSize = 52

type RenderOptions struct {
	Now        time.Time
	StaleAfter time.Duration
}

// Format renders a snapshot directly, for embedding inside an already
// running bubbletea program.
func Format(state domain.SessionState, opts RenderOptions) string {
	return renderView(state, opts, newStyles())
}

func renderView(state domain.SessionState, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Deck Session"),
		s.header.Render(headerLine(state)),
	}

	if state.Loading {
		lines = append(lines, s.loading.Render("operation in flight..."))
	}
	if state.LastError != "" {
		lines = append(lines, s.warning.Render("error: "+state.LastError))
	}

	if !state.HasDeck() {
		lines = append(lines, s.empty.Render("No active deck. Run `dh new` to shuffle one."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, deckLine(*state.Deck, s))

	if len(state.Cards) == 0 {
		lines = append(lines, s.empty.Render("No cards drawn yet."))
	} else {
		lines = append(lines, s.detail.Render("hand:"))
		for _, card := range state.Cards {
			lines = append(lines, "  "+cardLine(card, s))
		}
	}

	if stale(state, opts) {
		lines = append(lines, s.warning.Render("[stale snapshot]"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(state domain.SessionState) string {
	return fmt.Sprintf("cards held: %d", len(state.Cards))
}

func deckLine(deck domain.DeckDescriptor, s styles) string {
	meter := renderRemainingMeter(deck.Remaining, 24, s)
	label := s.detail.Render(fmt.Sprintf("deck %s:", deck.ID))
	count := s.detail.Render(fmt.Sprintf("%d remaining", deck.Remaining))

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", meter, " ", count)
}

func cardLine(card domain.Card, s styles) string {
	style := s.blackCard
	if card.IsRed() {
		style = s.redCard
	}

	return style.Render(fmt.Sprintf("%s%s", rankLabel(card.Value), card.SuitSymbol()))
}

func rankLabel(value string) string {
	switch value {
	case "ACE":
		return "A"
	case "KING":
		return "K"
	case "QUEEN":
		return "Q"
	case "JACK":
		return "J"
	default:
		return value
	}
}

func renderRemainingMeter(remaining, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := float64(remaining) / float64(fullDeckSize)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Round(float64(width) * fraction))
	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func stale(state domain.SessionState, opts RenderOptions) bool {
	if opts.Now.IsZero() || opts.StaleAfter <= 0 || state.UpdatedAt.IsZero() {
		return false
	}

	return opts.Now.Sub(state.UpdatedAt) > opts.StaleAfter
}
