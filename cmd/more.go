package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karu-dev/deckhand/internal/application"
)

func newMoreCmd(app *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "more",
		Short: "Draw additional cards and append them to the current hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}

			operation := func(ctx context.Context) error {
				return manager.DrawMoreCards(ctx, count)
			}
			label := fmt.Sprintf("Drawing %d more cards...", count)
			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), label, operation); err != nil {
				return err
			}

			if err := app.persist(cmd.Context(), manager); err != nil {
				return err
			}

			return writeSession(cmd, app, manager.Snapshot())
		},
	}

	cmd.Flags().IntVar(&count, "count", application.DefaultTopUpCount, "Number of cards to append")

	return cmd
}
