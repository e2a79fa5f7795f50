package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/spf13/cobra"
)

func newCarriersCmd(app *app) *cobra.Command {
	var scopeRaw string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "carriers",
		Short: "List carriers offered by the tracking service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := domain.ParseScope(scopeRaw)
			if err != nil {
				return err
			}

			client, err := app.trackingClient(cmd.Context())
			if err != nil {
				return err
			}

			directory, err := client.FetchAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("load carrier directory: %w", err)
			}
			if err := domain.ValidateDirectory(directory); err != nil {
				return fmt.Errorf("load carrier directory: %w", err)
			}

			carriers := domain.FilterByScope(directory, scope)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(carriers)
			}

			rendered, err := app.carrierRenderer(carriers, scope)
			if err != nil {
				return fmt.Errorf("render carriers: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&scopeRaw, "scope", "all", "Carrier scope: domestic, international or all")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
