package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	trackingrender "github.com/bnema/parceltrack/internal/adapters/render/tracking"
	"github.com/bnema/parceltrack/internal/application"
	"github.com/bnema/parceltrack/internal/domain"
	"github.com/spf13/cobra"
)

type trackOptions struct {
	invoice        string
	scope          string
	carrier        string
	asJSON         bool
	upstreamLabels bool
}

// trackOutput is the JSON shape of a lookup. The selectable carrier list is
// left out; `pt carriers --json` serves it.
type trackOutput struct {
	State        application.State
	Scope        domain.Scope
	Carrier      domain.Carrier
	Invoice      string
	ErrorMessage string `json:",omitempty"`
	Result       *domain.TrackingResult
	Progress     []domain.StageView
	Timeline     []domain.TimelineEntry
}

func newTrackCmd(app *app) *cobra.Command {
	var opts trackOptions

	cmd := &cobra.Command{
		Use:   "track",
		Short: "Look up a shipment by invoice number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTrack(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.invoice, "invoice", "", "Invoice (tracking) number")
	cmd.Flags().StringVar(&opts.scope, "scope", "domestic", "Carrier scope: domestic, international or all")
	cmd.Flags().StringVar(&opts.carrier, "carrier", "", "Carrier code (default: the scope's default carrier)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&opts.upstreamLabels, "upstream-labels", false, "Show stage names as the tracking service words them")
	_ = cmd.MarkFlagRequired("invoice")

	return cmd
}

func runTrack(cmd *cobra.Command, app *app, opts trackOptions) error {
	scope, err := domain.ParseScope(opts.scope)
	if err != nil {
		return err
	}

	session, err := app.newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer session.Close()

	session.SelectScope(scope)
	if opts.carrier != "" && !session.SelectCarrier(opts.carrier) {
		return fmt.Errorf("carrier %q is not available for scope %s", opts.carrier, scope)
	}
	session.UpdateInvoiceInput(opts.invoice)

	submit := func(ctx context.Context) error {
		_, err := session.Submit(ctx)
		return err
	}

	if opts.asJSON {
		err = submit(cmd.Context())
	} else {
		err = runLookupSpinner(cmd.Context(), cmd.ErrOrStderr(), "Looking up shipment...", submit)
	}
	if err != nil {
		return err
	}

	snapshot := session.Snapshot()
	if opts.asJSON {
		if err := writeTrackJSON(cmd, snapshot); err != nil {
			return err
		}
	} else if snapshot.State != application.StateError {
		rendered, err := app.resultRenderer(snapshot, trackingrender.RenderOptions{UpstreamLabels: opts.upstreamLabels})
		if err != nil {
			return fmt.Errorf("render tracking result: %w", err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
			return err
		}
	}

	if snapshot.State == application.StateError {
		return errors.New(snapshot.ErrorMessage)
	}

	return nil
}

func writeTrackJSON(cmd *cobra.Command, snapshot application.Snapshot) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(trackOutput{
		State:        snapshot.State,
		Scope:        snapshot.Scope,
		Carrier:      snapshot.Carrier,
		Invoice:      snapshot.Invoice,
		ErrorMessage: snapshot.ErrorMessage,
		Result:       snapshot.Result,
		Progress:     snapshot.Progress,
		Timeline:     snapshot.Timeline,
	})
}
