package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
	"github.com/spf13/cobra"
)

func newDefaultsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show or change the carrier preselected for each scope",
	}

	cmd.AddCommand(newDefaultsShowCmd(app), newDefaultsSetCmd(app))

	return cmd
}

func newDefaultsShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the scope defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defaults, err := app.service.ScopeDefaults(cmd.Context())
			if err != nil {
				return err
			}

			return writeScopeDefaults(cmd, defaults, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newDefaultsSetCmd(app *app) *cobra.Command {
	var scopeRaw string
	var code string
	var name string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the default carrier of a scope",
		Long:  "Change the default carrier of a scope. Without --name the carrier name is looked up in the carrier directory, which needs an API key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			scope, err := domain.ParseScope(scopeRaw)
			if err != nil {
				return err
			}

			var carriers ports.CarrierSource
			if name == "" {
				client, err := app.trackingClient(cmd.Context())
				if err != nil {
					return err
				}
				carriers = client
			}

			defaults, err := app.service.SetScopeDefault(cmd.Context(), carriers, scope, code, name)
			if err != nil {
				return err
			}

			return writeScopeDefaults(cmd, defaults, false)
		},
	}

	cmd.Flags().StringVar(&scopeRaw, "scope", "", "Scope: domestic or international")
	cmd.Flags().StringVar(&code, "code", "", "Carrier code")
	cmd.Flags().StringVar(&name, "name", "", "Carrier name (default: looked up by code)")
	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func writeScopeDefaults(cmd *cobra.Command, defaults domain.ScopeDefaults, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(defaults)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "domestic:      %s %s\ninternational: %s %s\n",
		defaults.Domestic.Code, defaults.Domestic.Name,
		defaults.International.Code, defaults.International.Name,
	)
	return err
}
