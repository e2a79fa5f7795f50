package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	trackingrender "github.com/bnema/parceltrack/internal/adapters/render/tracking"
	"github.com/bnema/parceltrack/internal/application"
	"github.com/bnema/parceltrack/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const carrierWindow = 8

var scopeCycle = []domain.Scope{domain.ScopeUnselected, domain.ScopeDomestic, domain.ScopeInternational}

func newTUICmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Track shipments interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer session.Close()

			p := tea.NewProgram(
				newTrackerModel(cmd.Context(), session),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
			)
			_, err = p.Run()
			return err
		},
	}
}

type trackerDoneMsg struct {
	err error
}

type trackerStyles struct {
	title    lipgloss.Style
	scope    lipgloss.Style
	scopeOn  lipgloss.Style
	carrier  lipgloss.Style
	selected lipgloss.Style
	label    lipgloss.Style
	input    lipgloss.Style
	help     lipgloss.Style
}

func newTrackerStyles() trackerStyles {
	return trackerStyles{
		title:    lipgloss.NewStyle().Bold(true),
		scope:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		scopeOn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Padding(0, 1),
		carrier:  lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("77")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		input:    lipgloss.NewStyle().Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
	}
}

// trackerModel drives a Session from the keyboard: tab cycles the scope,
// up/down picks a carrier, typing edits the invoice and enter submits.
type trackerModel struct {
	ctx      context.Context
	session  *application.Session
	spinner  spinner.Model
	styles   trackerStyles
	loading  bool
	upstream bool
	quitting bool
}

func newTrackerModel(ctx context.Context, session *application.Session) trackerModel {
	return trackerModel{
		ctx:     ctx,
		session: session,
		spinner: newLookupSpinner(),
		styles:  newTrackerStyles(),
	}
}

func (m trackerModel) Init() tea.Cmd {
	return nil
}

func (m trackerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case trackerDoneMsg:
		m.loading = false
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m trackerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snapshot := m.session.Snapshot()

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	case tea.KeyTab:
		m.session.SelectScope(nextScope(snapshot.Scope))
	case tea.KeyUp:
		m.moveCarrier(snapshot, -1)
	case tea.KeyDown:
		m.moveCarrier(snapshot, 1)
	case tea.KeyCtrlT:
		m.upstream = !m.upstream
	case tea.KeyBackspace:
		runes := []rune(snapshot.Invoice)
		if len(runes) > 0 {
			m.session.UpdateInvoiceInput(string(runes[:len(runes)-1]))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.session.UpdateInvoiceInput(snapshot.Invoice + string(msg.Runes))
	case tea.KeyEnter:
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}

	return m, nil
}

func (m trackerModel) submit() tea.Cmd {
	session := m.session
	ctx := m.ctx
	return func() tea.Msg {
		_, err := session.Submit(ctx)
		if errors.Is(err, domain.ErrQueryInFlight) {
			err = nil
		}
		return trackerDoneMsg{err: err}
	}
}

func (m trackerModel) moveCarrier(snapshot application.Snapshot, delta int) {
	if len(snapshot.Carriers) == 0 {
		return
	}

	next := carrierIndex(snapshot) + delta
	if next < 0 {
		next = 0
	}
	if next >= len(snapshot.Carriers) {
		next = len(snapshot.Carriers) - 1
	}

	m.session.SelectCarrier(snapshot.Carriers[next].Code)
}

func (m trackerModel) View() string {
	if m.quitting {
		return ""
	}

	snapshot := m.session.Snapshot()
	s := m.styles

	var body string
	if m.loading {
		body = fmt.Sprintf("%s Looking up shipment...", m.spinner.View())
	} else {
		body = trackingrender.Frame(snapshot, trackingrender.RenderOptions{UpstreamLabels: m.upstream})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render("Parcel tracking"),
		m.viewScopes(snapshot.Scope),
		"",
		m.viewCarriers(snapshot),
		"",
		s.label.Render("Invoice: ")+s.input.Render(snapshot.Invoice+"_"),
		"",
		body,
		"",
		s.help.Render("tab scope • ↑/↓ carrier • enter track • ctrl+t stage labels • esc quit"),
	)
}

func (m trackerModel) viewScopes(current domain.Scope) string {
	tabs := make([]string, 0, len(scopeCycle))
	for _, scope := range scopeCycle {
		style := m.styles.scope
		if scope == current {
			style = m.styles.scopeOn
		}
		tabs = append(tabs, style.Render(scope.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m trackerModel) viewCarriers(snapshot application.Snapshot) string {
	if len(snapshot.Carriers) == 0 {
		return m.styles.label.Render("No carriers for this scope.")
	}

	selected := carrierIndex(snapshot)
	start := selected - carrierWindow/2
	if start < 0 || selected < 0 {
		start = 0
	}
	end := start + carrierWindow
	if end > len(snapshot.Carriers) {
		end = len(snapshot.Carriers)
		start = max(0, end-carrierWindow)
	}

	lines := make([]string, 0, end-start+1)
	if selected < 0 {
		lines = append(lines, m.styles.label.Render(fmt.Sprintf("carrier: %s (%s)", snapshot.Carrier.Name, snapshot.Carrier.Code)))
	}
	for i := start; i < end; i++ {
		carrier := snapshot.Carriers[i]
		line := fmt.Sprintf("%-4s %s", carrier.Code, carrier.Name)
		if i == selected {
			lines = append(lines, m.styles.selected.Render("› "+line))
			continue
		}
		lines = append(lines, m.styles.carrier.Render("  "+line))
	}

	return strings.Join(lines, "\n")
}

func nextScope(current domain.Scope) domain.Scope {
	for i, scope := range scopeCycle {
		if scope == current {
			return scopeCycle[(i+1)%len(scopeCycle)]
		}
	}

	return scopeCycle[0]
}

// carrierIndex returns the position of the selected carrier in the selectable
// list, or -1 when it is not listed.
func carrierIndex(snapshot application.Snapshot) int {
	for i, carrier := range snapshot.Carriers {
		if carrier.Code == snapshot.Carrier.Code {
			return i
		}
	}

	return -1
}
