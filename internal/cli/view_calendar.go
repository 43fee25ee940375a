package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/allot/internal/app"
	"github.com/alexanderramin/allot/internal/cli/formatter"
	"github.com/alexanderramin/allot/internal/domain"
	"github.com/alexanderramin/allot/internal/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// calendarLoadedMsg carries the outcome of one calendar load back to the
// model together with the request it answers.
type calendarLoadedMsg struct {
	req viewmodel.Request
	res viewmodel.Result
}

type calendarKeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Filter key.Binding
	Retry  key.Binding
	Quit   key.Binding
}

func (k calendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Filter, k.Retry, k.Quit}
}

func (k calendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultCalendarKeys() calendarKeyMap {
	return calendarKeyMap{
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev month")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next month")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// calendarView is the interactive month calendar. All state transitions go
// through the view model; loads run as tea.Cmds and report back with
// calendarLoadedMsg.
type calendarView struct {
	ctx     context.Context
	loader  app.CalendarUseCase
	timeout time.Duration

	vm      *viewmodel.ViewModel
	initial viewmodel.Params
	roster  []*domain.Resource

	keys    calendarKeyMap
	help    help.Model
	spinner spinner.Model
	width   int
}

func newCalendarView(ctx context.Context, loader app.CalendarUseCase, timeout time.Duration, initial viewmodel.Params) *calendarView {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return &calendarView{
		ctx:     ctx,
		loader:  loader,
		timeout: timeout,
		vm:      viewmodel.New(),
		initial: initial,
		keys:    defaultCalendarKeys(),
		help:    help.New(),
		spinner: sp,
	}
}

func (v *calendarView) Init() tea.Cmd {
	return v.start(v.vm.Load(v.initial))
}

// start runs req and keeps the spinner turning until it lands.
func (v *calendarView) start(req viewmodel.Request) tea.Cmd {
	ctx, loader, timeout := v.ctx, v.loader, v.timeout
	load := func() tea.Msg {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()
		return calendarLoadedMsg{req: req, res: viewmodel.Run(runCtx, loader, req)}
	}
	return tea.Batch(load, v.spinner.Tick)
}

func (v *calendarView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		if v.vm.Resolve(msg.req, msg.res) && v.vm.Phase() == viewmodel.PhaseReady {
			v.roster = v.vm.Snapshot().Roster
		}
		return v, nil

	case spinner.TickMsg:
		if v.vm.Phase() != viewmodel.PhaseLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *calendarView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Prev):
		return v, v.start(v.vm.PreviousMonth())
	case key.Matches(msg, v.keys.Next):
		return v, v.start(v.vm.NextMonth())
	case key.Matches(msg, v.keys.Filter):
		next := viewmodel.NextFilter(v.vm.Params().ResourceFilter, v.roster)
		return v, v.start(v.vm.SetResourceFilter(next))
	case key.Matches(msg, v.keys.Retry):
		if req, ok := v.vm.Retry(); ok {
			return v, v.start(req)
		}
	}
	return v, nil
}

func (v *calendarView) View() string {
	var b strings.Builder
	params := v.vm.Params()

	switch v.vm.Phase() {
	case viewmodel.PhaseIdle:
		return ""

	case viewmodel.PhaseLoading:
		b.WriteString(formatter.Bold(params.Project) + formatter.Dim(" · ") + formatter.StyleHeader.Render(params.Month.Title()))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s %s", v.spinner.View(), formatter.Dim("Loading "+params.Month.Title()+"…")))

	case viewmodel.PhaseReady:
		snap := v.vm.Snapshot()
		b.WriteString(formatter.CalendarTitle(snap.Project, snap.Calendar))
		b.WriteString("\n\n")
		b.WriteString(formatter.FormatCalendarBody(snap.Calendar))

	case viewmodel.PhaseFailed:
		b.WriteString(formatter.Bold(params.Project) + formatter.Dim(" · ") + formatter.StyleHeader.Render(params.Month.Title()))
		b.WriteString("\n\n")
		b.WriteString(formatter.StyleRed.Render("Could not load calendar: " + v.vm.Err().Error()))
		b.WriteString("\n")
		b.WriteString(formatter.Dim("Press r to retry."))
	}

	b.WriteString("\n\n")
	b.WriteString(v.help.View(v.keys))
	return b.String()
}
