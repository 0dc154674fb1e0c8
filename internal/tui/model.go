package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"SIPPlanner/internal/chart"
	"SIPPlanner/internal/model"
	"SIPPlanner/internal/page"
)

type planLoadedMsg struct {
	snap *model.PlanSnapshot
	err  error
}

type projectionMsg struct {
	pending page.Pending
	result  *model.ProjectionResult
	err     error
}

// Model is the Bubbletea model for the SIP calculator page.
type Model struct {
	ctx      context.Context
	client   page.PlanClient
	ctrl     *page.Controller
	regions  *regions
	input    textinput.Model
	spinner  spinner.Model
	log      *zap.SugaredLogger
	loading  bool
	inflight int
	width    int
	height   int
	quitting bool
}

// New creates the page model. Plan details are requested by Init.
func New(ctx context.Context, c page.PlanClient, log *zap.SugaredLogger) Model {
	ti := textinput.New()
	ti.Placeholder = "e.g. 5000"
	ti.Prompt = "₹ "
	ti.CharLimit = 15
	ti.Width = 20
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = labelStyle

	r := &regions{}
	ctrl := page.NewController(c, r, log)
	ctrl.BeginLoad()

	return Model{
		ctx:     ctx,
		client:  c,
		ctrl:    ctrl,
		regions: r,
		input:   ti,
		spinner: sp,
		log:     log,
		loading: true,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.loadPlan())
}

func (m Model) loadPlan() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.client.FetchPlanDetails(m.ctx)
		return planLoadedMsg{snap: snap, err: err}
	}
}

func (m Model) requestProjection(p page.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := m.client.RequestProjection(m.ctx, p.Amount)
		return projectionMsg{pending: p, result: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case planLoadedMsg:
		m.loading = false
		m.ctrl.FinishLoad(msg.snap, msg.err)
		return m, nil

	case projectionMsg:
		m.inflight--
		_ = m.ctrl.Finish(msg.pending, msg.result, msg.err)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	m.regions.input = m.input.Value()
	m.regions.focus = false
	p, err := m.ctrl.Begin()
	if m.regions.focus {
		m.input.Focus()
		m.input.CursorEnd()
	}
	if err != nil {
		m.log.Debugf("submission rejected: %v", err)
		return m, nil
	}
	m.inflight++
	return m, m.requestProjection(p)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("SIP Calculator"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Monthly Investment Amount"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	r := m.regions
	if r.errorVisible {
		b.WriteString(errorStyle.Render(r.errorMsg))
		b.WriteString("\n")
	}
	if m.loading {
		b.WriteString(m.spinner.View() + " Loading portfolio analysis...\n")
	}

	if r.summaryVisible {
		b.WriteString(sectionStyle.Render(m.summaryView()))
		b.WriteString("\n")
	}
	if r.resultsVisible {
		b.WriteString(sectionStyle.Render(m.resultsView()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: calculate • esc: quit"))
	return b.String()
}

func (m Model) summaryView() string {
	r := m.regions
	if r.summary == nil {
		return errorStyle.Render(r.summaryError)
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(r.summary.Heading()))
	b.WriteString("\n")
	for i, line := range r.summary.Lines()[1:] {
		if i > 0 {
			line = "  • " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) resultsView() string {
	r := m.regions
	var b strings.Builder
	if m.inflight > 0 {
		b.WriteString(m.spinner.View() + " Calculating...\n")
	}
	if r.roiHeading != "" {
		b.WriteString(headingStyle.Render(r.roiHeading))
		b.WriteString("\n\n")
	}
	if r.figure != nil {
		width := m.width - 20
		if width < 20 {
			width = 20
		}
		b.WriteString(chart.ASCII(*r.figure, width, 10))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Run starts the interactive page.
func Run(ctx context.Context, c page.PlanClient, log *zap.SugaredLogger) error {
	p := tea.NewProgram(New(ctx, c, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
