package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pt",
		Short:         "Parcel tracking CLI (pt): look up shipments across carriers",
		Long:          "pt looks up parcel shipments through the SweetTracker API, showing a five-stage progress indicator and the newest-first event timeline for domestic and international carriers.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newCarriersCmd(app),
		newTrackCmd(app),
		newTUICmd(app),
		newKeyCmd(app),
		newDefaultsCmd(app),
	)

	return rootCmd
}
