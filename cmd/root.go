package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dh",
		Short:         "deckhand (dh): draw playing cards from a remote deck service",
		Long:          "dh (deckhand) tracks a deck session against a card-deck REST service: shuffle a fresh deck, draw a hand, top it up, and view the cards from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var verbose bool
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	// version needs no wiring and must keep working even when it fails
	rootCmd.AddCommand(newVersionCmd())

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		app.setVerbose(verbose)
	}

	rootCmd.AddCommand(
		newNewCmd(app),
		newDrawCmd(app),
		newMoreCmd(app),
		newHandCmd(app),
		newTableCmd(app),
		newResetCmd(app),
	)

	return rootCmd
}
