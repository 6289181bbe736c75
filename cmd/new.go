package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newNewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Shuffle a fresh deck (replaces the current one, keeps the hand)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := app.manager(cmd.Context())
			if err != nil {
				return err
			}

			operation := func(ctx context.Context) error {
				return manager.CreateDeck(ctx)
			}
			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Shuffling a new deck...", operation); err != nil {
				return err
			}

			if err := app.persist(cmd.Context(), manager); err != nil {
				return err
			}

			return writeSession(cmd, app, manager.Snapshot())
		},
	}
}
