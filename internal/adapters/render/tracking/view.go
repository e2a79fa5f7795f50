package tracking

import (
	"fmt"
	"strings"

	"github.com/bnema/parceltrack/internal/application"
	"github.com/bnema/parceltrack/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// UpstreamLabels shows stage names as the tracking service words them.
	UpstreamLabels bool
}

// Render draws the session result: header, progress indicator and timeline.
// An error state draws only the error message.
func Render(snapshot application.Snapshot, opts RenderOptions) (string, error) {
	return run(func(s styles) string {
		return renderSnapshot(snapshot, opts, s)
	})
}

// Frame draws what Render draws without starting a bubbletea program, for
// callers that already run one.
func Frame(snapshot application.Snapshot, opts RenderOptions) string {
	return renderSnapshot(snapshot, opts, newStyles())
}

func RenderCarriers(carriers []domain.Carrier, scope domain.Scope) (string, error) {
	return run(func(s styles) string {
		return renderCarrierList(carriers, scope, s)
	})
}

func renderSnapshot(snapshot application.Snapshot, opts RenderOptions, s styles) string {
	switch snapshot.State {
	case application.StateError:
		return s.errorText.Render(snapshot.ErrorMessage)
	case application.StateLoading:
		return s.empty.Render("Looking up shipment...")
	}

	if snapshot.Result == nil {
		return s.empty.Render("No shipment looked up yet.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(*snapshot.Result, s),
		s.section.Render(renderProgress(snapshot.Progress, opts, s)),
		s.section.Render(renderTimeline(snapshot.Timeline, s)),
	)
}

func renderHeader(result domain.TrackingResult, s styles) string {
	lines := []string{
		field("Invoice", result.InvoiceNo, s),
		field("Carrier", result.CarrierName, s),
	}
	if item := strings.TrimSpace(result.ItemName); item != "" {
		lines = append(lines, field("Item", item, s))
	}
	if receiver := strings.TrimSpace(result.ReceiverName); receiver != "" {
		lines = append(lines, field("Receiver", receiver, s))
	}
	if estimate := strings.TrimSpace(result.Estimate); estimate != "" {
		lines = append(lines, field("Estimate", estimate, s))
	}
	if result.Complete {
		lines = append(lines, field("Status", "delivered", s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.label.Render(fmt.Sprintf("%-9s", label+":")),
		" ",
		s.value.Render(value),
	)
}

func renderProgress(stages []domain.StageView, opts RenderOptions, s styles) string {
	parts := make([]string, 0, len(stages)*2)
	for i, stage := range stages {
		if i > 0 {
			parts = append(parts, s.connector.Render(" ── "))
		}

		label := stage.Label
		if opts.UpstreamLabels {
			label = stage.UpstreamLabel
		}

		if stage.Active {
			parts = append(parts, s.stageActive.Render("● "+label))
			continue
		}
		parts = append(parts, s.stage.Render("○ "+label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderTimeline(entries []domain.TimelineEntry, s styles) string {
	if len(entries) == 0 {
		return s.empty.Render("No tracking events.")
	}

	blocks := make([]string, 0, len(entries))
	for i, entry := range entries {
		marker := s.node.Render("○")
		if entry.Current {
			marker = s.nodeCurrent.Render("●")
		}

		lines := []string{
			marker + " " + s.eventTitle.Render(fmt.Sprintf("%s | %s", entry.Event.Location, entry.Event.StageLabel)),
		}
		gutter := s.connector.Render("│")
		if i == len(entries)-1 {
			gutter = " "
		}
		if phone := strings.TrimSpace(entry.Event.ContactPhone); phone != "" {
			lines = append(lines, gutter+" "+s.eventMeta.Render(phone))
		}
		lines = append(lines, gutter+" "+s.eventMeta.Render(entry.Event.TimestampDisplay))

		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderCarrierList(carriers []domain.Carrier, scope domain.Scope, s styles) string {
	lines := []string{
		s.title.Render("Carriers"),
		s.header.Render(fmt.Sprintf("scope: %s, carriers: %d", scope, len(carriers))),
	}

	if len(carriers) == 0 {
		lines = append(lines, s.empty.Render("No carriers available."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, carrier := range carriers {
		kind := "domestic"
		if carrier.International {
			kind = "international"
		}
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			s.code.Render(fmt.Sprintf("%-4s", carrier.Code)),
			carrier.Name,
			s.label.Render("("+kind+")"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
