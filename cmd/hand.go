package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	handadapter "github.com/karu-dev/deckhand/internal/adapters/render/hand"
	"github.com/karu-dev/deckhand/internal/domain"
)

// staleAfter marks saved snapshots older than this when rendering; the
// remote service expires idle decks after two weeks.
const staleAfter = 14 * 24 * time.Hour

func newHandCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "hand",
		Short: "Show the current deck session and drawn cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}

			return writeSessionWith(cmd, app, manager.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved deck session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Clear(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
			return err
		},
	}
}

func writeSession(cmd *cobra.Command, app *app, state domain.SessionState) error {
	return writeSessionWith(cmd, app, state, false)
}

func writeSessionWith(cmd *cobra.Command, app *app, state domain.SessionState, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}

	rendered, err := app.renderer(state, handadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleAfter,
	})
	if err != nil {
		return fmt.Errorf("render session: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
