// Package hand renders a deck-session snapshot for the terminal.
package hand

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karu-dev/deckhand/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	state  domain.SessionState
	opts   RenderOptions
	styles styles
	output string
}

func newModel(state domain.SessionState, opts RenderOptions) model {
	return model{
		state:  state,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.state, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render formats a session snapshot through a one-shot bubbletea program
// so the output goes through the same style pipeline as the interactive
// table.
func Render(state domain.SessionState, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(state, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
