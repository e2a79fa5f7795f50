package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the tracking service API key",
	}

	cmd.AddCommand(newKeySetCmd(app), newKeyRemoveCmd(app))

	return cmd
}

func newKeySetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key in the secret store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.SetAPIKey(cmd.Context(), value); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "api key stored")
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "API key value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newKeyRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.service.RemoveAPIKey(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "api key removed")
			return err
		},
	}
}
