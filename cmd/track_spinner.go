package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type lookupDoneMsg struct {
	err error
}

type lookupSpinnerModel struct {
	spinner spinner.Model
	label   string
	lookup  tea.Cmd
	err     error
	done    bool
}

func newLookupSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)
}

func newLookupSpinnerModel(label string, lookup tea.Cmd) lookupSpinnerModel {
	return lookupSpinnerModel{
		spinner: newLookupSpinner(),
		label:   label,
		lookup:  lookup,
	}
}

func (m lookupSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.lookup)
}

func (m lookupSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case lookupDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m lookupSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runLookupSpinner(ctx context.Context, output io.Writer, label string, lookup func(context.Context) error) error {
	lookupCmd := func() tea.Msg {
		return lookupDoneMsg{err: lookup(ctx)}
	}

	p := tea.NewProgram(
		newLookupSpinnerModel(label, lookupCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(lookupSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
