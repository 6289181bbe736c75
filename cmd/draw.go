package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karu-dev/deckhand/internal/application"
)

func newDrawCmd(app *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a new hand, replacing any previously drawn cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}

			operation := func(ctx context.Context) error {
				return manager.DrawCards(ctx, count)
			}
			label := fmt.Sprintf("Drawing %d cards...", count)
			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, operation); err != nil {
				return err
			}

			if err := app.persist(cmd.Context(), manager); err != nil {
				return err
			}

			return writeSession(cmd, app, manager.Snapshot())
		},
	}

	cmd.Flags().IntVar(&count, "count", application.DefaultDrawCount, "Number of cards to draw")

	return cmd
}
