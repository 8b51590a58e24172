// Package app is the root Bubble Tea model of the calendar UI.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"go.uber.org/zap"

	"tableflip.dev/contcal/pkg/config"
	"tableflip.dev/contcal/pkg/grid"
	"tableflip.dev/contcal/pkg/nav"
	"tableflip.dev/contcal/pkg/people"
	"tableflip.dev/contcal/pkg/prefs"
	"tableflip.dev/contcal/pkg/selection"
	"tableflip.dev/contcal/pkg/snack"
	"tableflip.dev/contcal/pkg/store"
	"tableflip.dev/contcal/pkg/tui/components/calendar"
	"tableflip.dev/contcal/pkg/tui/components/detail"
	"tableflip.dev/contcal/pkg/tui/components/eventlog"
	"tableflip.dev/contcal/pkg/tui/components/help"
	"tableflip.dev/contcal/pkg/tui/components/snackbar"
	"tableflip.dev/contcal/pkg/tui/events"
	"tableflip.dev/contcal/pkg/tui/keys"
	"tableflip.dev/contcal/pkg/tui/theme"
	"tableflip.dev/contcal/pkg/tui/ui/overlay"
)

// Options wires the model to its collaborators. Everything is optional.
type Options struct {
	// Persistence supplies assignments and receives theme changes.
	Persistence store.Persistence
	// Index seeds the assignments, for example from a people file. It is
	// replaced by the store contents when Persistence is set.
	Index *people.Index
	// Prefs receives theme changes. Defaults to Persistence.
	Prefs prefs.Store

	Theme     prefs.Mode
	Detect    prefs.Detector
	Size      config.Size
	SnackMode snack.Mode

	Logger    *zap.Logger
	Now       func() time.Time
	Scheduler snack.Scheduler

	// OnSelectDate and OnClick run on every activation with the resolved
	// date, even when nobody is scheduled.
	OnSelectDate func(iso string, list []people.Person)
	OnClick      func(day, month, year int)
}

// Model composes the calendar, the assignment dialog, the help overlay and
// the snack stack.
type Model struct {
	opts   Options
	logger *zap.Logger
	keys   keys.Map
	now    func() time.Time

	nav    *nav.State
	index  *people.Index
	sel    selection.Controller
	snacks *snack.Stack
	theme  *prefs.Theme

	styles  theme.Theme
	metrics theme.Metrics

	calendar *calendar.Model
	detail   *detail.Model
	help     *help.Model

	showHelp bool
	jumping  bool
	jump     textinput.Model
	status   string

	width  int
	height int

	watch <-chan store.Event
}

type storeEventMsg struct {
	event store.Event
	ok    bool
}

// New constructs the root model.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	detect := opts.Detect
	if detect == nil {
		detect = prefs.TerminalDetector
	}
	if opts.Prefs == nil && opts.Persistence != nil {
		opts.Prefs = opts.Persistence
	}

	m := &Model{
		opts:    opts,
		logger:  logger.Named("tui"),
		keys:    keys.Default(),
		now:     now,
		nav:     nav.New(nav.WithClock(now)),
		index:   opts.Index,
		theme:   prefs.Load(opts.Theme, opts.Prefs, detect),
		metrics: theme.MetricsFor(opts.Size),
	}
	if m.index == nil {
		m.index = people.NewIndex(nil)
	}
	m.snacks = snack.New(opts.Scheduler,
		snack.WithMode(opts.SnackMode),
		snack.WithClock(now),
	)
	m.styles = theme.New(m.theme.Dark())

	m.calendar = calendar.New(m.styles, m.metrics, m.nav.Current())
	m.calendar.SetClock(now)
	m.calendar.SetIndex(m.index)
	m.calendar.SetPanel(m.nav.Current(), now().Day())
	m.detail = detail.New(m.styles, m.metrics.DialogWidth)
	m.help = help.New(m.styles, m.keys, 60, 20)

	ti := textinput.New()
	ti.Placeholder = "MM YYYY"
	ti.CharLimit = 24
	ti.Prompt = "jump to: "
	m.jump = ti
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Persistence != nil {
		cmds = append(cmds, m.loadIndex(""))
	}
	if m.watch != nil {
		cmds = append(cmds, m.waitForStore())
	}
	return tea.Batch(cmds...)
}

// Close tears down pending snack timers.
func (m *Model) Close() {
	m.snacks.Close()
}

// Update routes Bubble Tea messages to composed components.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.fitCalendar(v.Width)
		m.help.SetSize(min(72, v.Width-4), max(v.Height-4, 8))
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(v)

	case tea.MouseClickMsg:
		if v.Button == tea.MouseLeft && !m.sel.IsOpen() && !m.showHelp && !m.jumping {
			if c, ok := m.calendar.CellAt(v.X, v.Y); ok {
				return m, m.activate(c)
			}
		}
		return m, nil

	case events.SnackTimerMsg:
		if v.Fire != nil {
			v.Fire()
		}
		return m, m.snacksChanged()

	case events.SnackChangedMsg:
		return m, nil

	case events.DateActivatedMsg:
		return m, nil

	case events.AssignmentsChangedMsg:
		if v.Err != nil {
			m.status = "reload failed: " + v.Err.Error()
			return m, nil
		}
		m.setIndex(v.Index)
		return m, nil

	case events.ThemeChangedMsg:
		if v.Err != nil {
			m.status = "theme not saved: " + v.Err.Error()
		}
		m.applyTheme()
		return m, nil

	case storeEventMsg:
		if !v.ok {
			m.watch = nil
			return m, nil
		}
		var cmd tea.Cmd
		switch v.event.Type {
		case store.EventPrefsChanged:
			cmd = m.reloadTheme()
		default:
			cmd = m.loadIndex(v.event.Date)
		}
		return m, tea.Batch(cmd, m.waitForStore())
	}

	if m.jumping {
		var cmd tea.Cmd
		m.jump, cmd = m.jump.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.jumping {
		return m.handleJumpKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
			m.showHelp = false
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}

	if m.sel.IsOpen() {
		switch {
		case key.Matches(msg, m.keys.Cycle), key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
			m.sel.Next()
		case key.Matches(msg, m.keys.CycleBack), key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
			m.sel.Previous()
		case key.Matches(msg, m.keys.Close):
			m.sel.Close()
		case key.Matches(msg, m.keys.Theme):
			return m, m.toggleTheme()
		case key.Matches(msg, m.keys.Dismiss):
			return m, m.dismissSnack()
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		m.detail.Sync(&m.sel)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, m.keys.Next):
		m.nav.Next()
		m.calendar.SetPanel(m.nav.Current(), m.calendar.Cursor().Day)
	case key.Matches(msg, m.keys.Previous):
		m.nav.Previous()
		m.calendar.SetPanel(m.nav.Current(), m.calendar.Cursor().Day)
	case key.Matches(msg, m.keys.Today):
		m.nav.Today()
		m.calendar.SetPanel(m.nav.Current(), m.now().Day())
	case key.Matches(msg, m.keys.Activate):
		return m, m.activate(m.calendar.Cursor())
	case key.Matches(msg, m.keys.Theme):
		return m, m.toggleTheme()
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.dismissSnack()
	case key.Matches(msg, m.keys.Jump):
		m.jumping = true
		m.jump.SetValue("")
		m.status = ""
		return m, m.jump.Focus()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m *Model) handleJumpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jumping = false
		m.jump.Blur()
		return m, nil
	case "enter":
		month, year, err := ParseJump(m.jump.Value(), m.nav.Year())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.jumping = false
		m.jump.Blur()
		m.nav.Jump(month, year)
		m.calendar.SetPanel(m.nav.Current(), m.calendar.Cursor().Day)
		m.status = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

// fitCalendar steps down from the configured size until the panel fits
// within width. The smallest size is kept when nothing fits.
func (m *Model) fitCalendar(width int) {
	for _, size := range sizesFrom(m.opts.Size) {
		m.metrics = theme.MetricsFor(size)
		m.calendar.SetMetrics(m.metrics)
		if lipgloss.Width(m.calendar.View()) <= width {
			break
		}
	}
	m.detail.SetWidth(min(m.metrics.DialogWidth, width))
}

func sizesFrom(size config.Size) []config.Size {
	switch size {
	case config.SizeXL:
		return []config.Size{config.SizeXL, config.SizeLG, config.SizeMD}
	case config.SizeMD:
		return []config.Size{config.SizeMD}
	default:
		return []config.Size{config.SizeLG, config.SizeMD}
	}
}

// moveCursor shifts the cursor by days, following it into adjacent months.
func (m *Model) moveCursor(days int) {
	d := m.calendar.Cursor().Date(time.UTC).AddDate(0, 0, days)
	month := int(d.Month()) - 1
	if month != m.nav.Month() || d.Year() != m.nav.Year() {
		m.nav.Jump(month, d.Year())
	}
	m.calendar.SetPanel(m.nav.Current(), d.Day())
}

// activate resolves c against the displayed panel, notifies the callbacks,
// opens the dialog when somebody is scheduled and pushes a snack.
func (m *Model) activate(c grid.Cell) tea.Cmd {
	panel := m.calendar.Panel()
	day, month, year := grid.Normalize(c.Day, panel.Month+c.Offset, panel.Year)
	cell := grid.Cell{Day: day, Month: month, Year: year, Offset: c.Offset}
	iso := cell.ISO()
	list := m.index.AssignmentsFor(iso)

	if m.opts.OnClick != nil {
		m.opts.OnClick(day, month, year)
	}
	if m.opts.OnSelectDate != nil {
		m.opts.OnSelectDate(iso, list)
	}

	if !c.InMonth() {
		m.nav.Jump(month, year)
		m.calendar.SetPanel(m.nav.Current(), day)
	}

	if m.sel.Activate(iso, list) {
		m.detail.Sync(&m.sel)
	}

	dmy := grid.FormatDMY(day, month, year)
	var err error
	if len(list) == 0 {
		_, err = m.snacks.Create("No one scheduled on "+dmy, snack.Error)
	} else {
		_, err = m.snacks.Create("Selected "+dmy, snack.Success)
	}
	if err != nil {
		m.logger.Warn("snack", zap.Error(err))
	}

	return tea.Batch(
		events.DateActivatedCmd(day, month, year, iso, list),
		m.snacksChanged(),
	)
}

func (m *Model) snacksChanged() tea.Cmd {
	snapshot := m.snacks.Snacks()
	return func() tea.Msg {
		return events.SnackChangedMsg{Snacks: snapshot}
	}
}

// dismissSnack removes the newest snack early, cancelling its timers.
func (m *Model) dismissSnack() tea.Cmd {
	list := m.snacks.Snacks()
	if len(list) == 0 {
		return nil
	}
	m.snacks.Dismiss(list[len(list)-1].ID)
	return m.snacksChanged()
}

func (m *Model) toggleTheme() tea.Cmd {
	err := m.theme.Toggle()
	dark := m.theme.Dark()
	return func() tea.Msg {
		return events.ThemeChangedMsg{Dark: dark, Err: err}
	}
}

func (m *Model) reloadTheme() tea.Cmd {
	detect := m.opts.Detect
	if detect == nil {
		detect = prefs.TerminalDetector
	}
	m.theme = prefs.Load(m.theme.Mode(), m.opts.Prefs, detect)
	dark := m.theme.Dark()
	return func() tea.Msg {
		return events.ThemeChangedMsg{Dark: dark}
	}
}

func (m *Model) applyTheme() {
	m.styles = theme.New(m.theme.Dark())
	m.calendar.SetTheme(m.styles)
	m.detail.SetTheme(m.styles)
	m.help.SetTheme(m.styles)
}

func (m *Model) setIndex(idx *people.Index) {
	m.index = idx
	m.calendar.SetIndex(idx)
	if m.sel.IsOpen() {
		// Reopen with fresh data; a day that emptied closes the dialog.
		date, active := m.sel.Date(), m.sel.ActiveID()
		m.sel.Close()
		if m.sel.Activate(date, idx.AssignmentsFor(date)) {
			m.sel.SelectEntity(active)
		}
		m.detail.Sync(&m.sel)
	}
}

func (m *Model) loadIndex(date string) tea.Cmd {
	p := m.opts.Persistence
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		idx := p.Index(ctx)
		return events.AssignmentsChangedMsg{Index: idx, Date: date, Err: ctx.Err()}
	}
}

func (m *Model) waitForStore() tea.Cmd {
	ch := m.watch
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return storeEventMsg{event: ev, ok: ok}
	}
}

// View renders the composed UI.
func (m *Model) View() string {
	background := lipgloss.JoinVertical(lipgloss.Left, m.calendar.View(), m.footer())

	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = lipgloss.Width(background), lipgloss.Height(background)+4
	}

	view := background
	if m.showHelp {
		view = overlay.Compose(view, width, height, m.help.View(), overlay.Center)
	}
	if m.detail.Visible() {
		view = overlay.Compose(view, width, height, m.detail.View(), overlay.Center)
	}
	if s := snackbar.View(m.styles, m.snacks.Snacks()); s != "" {
		view = overlay.Compose(view, width, height, s, overlay.BottomLeft(1, 0))
	} else {
		view = overlay.Compose(view, width, height, "", overlay.Center)
	}
	return view
}

func (m *Model) footer() string {
	ft := m.styles.Footer
	if m.jumping {
		return m.jump.View() + "  " + ft.Status.Render(m.status)
	}

	bindings := m.keys.ShortHelp()
	if m.sel.IsOpen() {
		bindings = m.keys.DialogHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, ft.Prompt.Render(b.Help().Key)+" "+ft.Help.Render(b.Help().Desc))
	}
	line := strings.Join(parts, ft.Help.Render(" · "))
	if m.status != "" {
		line = ft.Status.Render(m.status) + "\n" + line
	}
	return line
}

func (m *Model) noteEvent(msg tea.Msg) {
	if ce := m.logger.Check(zap.DebugLevel, "event"); ce != nil {
		if desc := describeMsg(msg); desc != "" {
			ce.Write(zap.String("type", fmt.Sprintf("%T", msg)), zap.String("detail", desc))
		}
	}
}

func describeMsg(msg tea.Msg) string {
	if v, ok := msg.(storeEventMsg); ok {
		return fmt.Sprintf("store=%s date=%q", v.event.Type, v.event.Date)
	}
	return eventlog.Describe(msg)
}
