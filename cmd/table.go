package cmd

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	handadapter "github.com/karu-dev/deckhand/internal/adapters/render/hand"
	"github.com/karu-dev/deckhand/internal/application"
	"github.com/karu-dev/deckhand/internal/domain"
)

func newTableCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Interactive deck session",
		Long:  "table runs an interactive session: n shuffles a new deck, d draws a fresh hand, m draws more cards onto it, q quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}

			updates, cancel := manager.Subscribe()
			defer cancel()

			p := tea.NewProgram(
				newTableModel(cmd.Context(), manager, updates),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return err
			}

			return app.persist(cmd.Context(), manager)
		},
	}
}

type sessionUpdateMsg struct {
	state domain.SessionState
}

type operationFinishedMsg struct{}

type tableModel struct {
	ctx     context.Context
	manager *application.SessionManager
	updates <-chan domain.SessionState
	spinner spinner.Model
	state   domain.SessionState
	keyHint lipgloss.Style
}

func newTableModel(ctx context.Context, manager *application.SessionManager, updates <-chan domain.SessionState) tableModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return tableModel{
		ctx:     ctx,
		manager: manager,
		updates: updates,
		spinner: s,
		state:   manager.Snapshot(),
		keyHint: lipgloss.NewStyle().Faint(true),
	}
}

func (m tableModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.updates))
}

func (m tableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionUpdateMsg:
		m.state = msg.state
		return m, waitForUpdate(m.updates)

	case operationFinishedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}

		// controls are disabled while an operation is in flight
		if m.state.Loading {
			return m, nil
		}

		switch msg.String() {
		case "n":
			return m, m.dispatch(func(ctx context.Context) error {
				return m.manager.CreateDeck(ctx)
			})
		case "d":
			return m, m.dispatch(func(ctx context.Context) error {
				return m.manager.DrawCards(ctx, application.DefaultDrawCount)
			})
		case "m":
			return m, m.dispatch(func(ctx context.Context) error {
				return m.manager.DrawMoreCards(ctx, application.DefaultTopUpCount)
			})
		}
		return m, nil

	default:
		return m, nil
	}
}

// dispatch runs one manager operation off the UI loop; its outcome arrives
// through the subscription, the returned message only ends the tea.Cmd.
func (m tableModel) dispatch(operation func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		_ = operation(m.ctx)
		return operationFinishedMsg{}
	}
}

func (m tableModel) View() string {
	view := handadapter.Format(m.state, handadapter.RenderOptions{})

	if m.state.Loading {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.spinner.View()+" working...")
	}

	hint := m.keyHint.Render("n: new deck  d: draw  m: more  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, view, "", hint)
}

func waitForUpdate(updates <-chan domain.SessionState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return sessionUpdateMsg{state: state}
	}
}
