package status

import (
	"errors"
	"io"
	"strings"

	"github.com/bnema/locsim/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

// model renders a single frame and quits. A window size message arriving
// first narrows the frame.
type model struct {
	status application.Status
	opts   RenderOptions
	styles styles
	frame  string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.opts.Width == 0 || msg.Width < m.opts.Width {
			m.opts.Width = msg.Width
		}
		return m, nil
	case renderReadyMsg:
		m.frame = clampWidth(renderView(m.status, m.opts, m.styles), m.opts.Width)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.frame
}

func clampWidth(frame string, width int) string {
	if width <= 0 {
		return frame
	}

	lines := strings.Split(frame, "\n")
	limit := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		lines[i] = limit.Render(line)
	}
	return strings.Join(lines, "\n")
}

// Render draws status once through a bubbletea program that reads no input.
func Render(status application.Status, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		model{status: status, opts: opts, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
