package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// bridgeDialedMsg ends the spin. fellBack is set when the coordinator
// started but the bridge refused and the fallback source took over.
type bridgeDialedMsg struct {
	fellBack bool
	err      error
}

// bridgeSpinnerModel spins while the coordinator starts and dials the device
// bridge, showing how long the handshake has been running, then keeps the
// outcome of the dial.
type bridgeSpinnerModel struct {
	spinner  spinner.Model
	url      string
	started  time.Time
	now      func() time.Time
	dial     tea.Cmd
	err      error
	dialed   bool
	fellBack bool
	took     time.Duration
}

func newBridgeSpinnerModel(url string, now func() time.Time, dial tea.Cmd) bridgeSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return bridgeSpinnerModel{
		spinner: s,
		url:     url,
		started: now(),
		now:     now,
		dial:    dial,
	}
}

func (m bridgeSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dial)
}

func (m bridgeSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case bridgeDialedMsg:
		m.dialed = true
		m.err = msg.err
		m.fellBack = msg.fellBack
		m.took = m.now().Sub(m.started)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m bridgeSpinnerModel) View() string {
	if m.dialed {
		return ""
	}

	elapsed := m.now().Sub(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s Connecting to device bridge %s (%s)", m.spinner.View(), m.url, elapsed)
}

// outcome is the line left behind once the spinner is gone. It is empty
// while dialling and when the coordinator itself failed to start.
func (m bridgeSpinnerModel) outcome() string {
	if !m.dialed || m.err != nil {
		return ""
	}

	took := m.took.Round(time.Millisecond)
	if m.fellBack {
		return fmt.Sprintf("device bridge %s unavailable after %s, continuing without it", m.url, took)
	}
	return fmt.Sprintf("connected to device bridge %s in %s", m.url, took)
}

// runBridgeSpinner runs start behind the spinner and returns the outcome
// line. start reports whether the fallback source took over.
func runBridgeSpinner(ctx context.Context, output io.Writer, url string, start func(context.Context) (bool, error)) (string, error) {
	dial := func() tea.Msg {
		fellBack, err := start(ctx)
		return bridgeDialedMsg{fellBack: fellBack, err: err}
	}

	p := tea.NewProgram(
		newBridgeSpinnerModel(url, time.Now, dial),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(bridgeSpinnerModel)
	if !ok {
		return "", fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.outcome(), result.err
}
