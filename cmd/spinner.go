package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/azdo-agent-scaler/internal/application"
	"github.com/bnema/azdo-agent-scaler/internal/ports"
)

// slowReadAfter is when the spinner starts showing how long the read takes.
const slowReadAfter = 2 * time.Second

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type poolReadDoneMsg struct {
	status application.PoolStatus
	err    error
}

// poolReadModel shows progress while the pool is read from Azure DevOps.
type poolReadModel struct {
	spinner      spinner.Model
	pool         string
	organization string
	clock        ports.Clock
	started      time.Time
	read         tea.Cmd

	status application.PoolStatus
	err    error
	done   bool
}

func newPoolReadModel(pool, organization string, clock ports.Clock, read tea.Cmd) poolReadModel {
	return poolReadModel{
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		pool:         pool,
		organization: organization,
		clock:        clock,
		started:      clock.Now(),
		read:         read,
	}
}

func (m poolReadModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.read)
}

func (m poolReadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case poolReadDoneMsg:
		m.done = true
		m.status = msg.status
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m poolReadModel) View() string {
	if m.done {
		return ""
	}

	line := fmt.Sprintf("%s Reading pool '%s' in %s...", m.spinner.View(), m.pool, m.organization)
	if elapsed := m.clock.Now().Sub(m.started); elapsed >= slowReadAfter {
		line += " " + elapsedStyle.Render(fmt.Sprintf("(%s)", elapsed.Truncate(time.Second)))
	}
	return line
}

// runPoolReadSpinner runs read behind a spinner on output and hands back its
// result once it completes.
func runPoolReadSpinner(
	ctx context.Context,
	output io.Writer,
	clock ports.Clock,
	pool, organization string,
	read func(context.Context) (application.PoolStatus, error),
) (application.PoolStatus, error) {
	readCmd := func() tea.Msg {
		status, err := read(ctx)
		return poolReadDoneMsg{status: status, err: err}
	}

	p := tea.NewProgram(
		newPoolReadModel(pool, organization, clock, readCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.PoolStatus{}, err
	}

	result, ok := finalModel.(poolReadModel)
	if !ok {
		return application.PoolStatus{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.status, result.err
}
