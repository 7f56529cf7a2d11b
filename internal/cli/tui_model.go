package cli

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/interaction"
	"github.com/alexanderramin/syllabus/internal/report"
)

// Input regions that scroll on their own instead of driving navigation.
const (
	regionModules   interaction.RegionID = "modules"
	regionSelection interaction.RegionID = "selection"
)

// compactWidth is the terminal width below which "auto" picks the compact layout.
const compactWidth = 100

// easeAlpha is the fraction of the remaining distance the displayed index
// covers per frame.
const easeAlpha = 0.35

type (
	// refreshMsg re-renders after a timer or workflow state change.
	refreshMsg struct{}
	// uiConfigMsg carries UI settings from a config reload.
	uiConfigMsg config.UIConfig
	// frameMsg advances animations.
	frameMsg time.Time
	// reportDoneMsg marks the end of an in-flight report request.
	reportDoneMsg struct{}
)

// tuiDeps are the collaborators of the TUI model.
type tuiDeps struct {
	Controller *interaction.Controller
	Workflow   *report.Workflow
	UI         config.UIConfig
	// Events delivers refreshMsg and uiConfigMsg from outside the program.
	Events <-chan tea.Msg
	// ConfirmSubmit asks for confirmation before each report request.
	ConfirmSubmit bool
}

// tuiModel is the root bubbletea model. All interaction state lives in the
// controller and the workflow; the model only holds presentation state.
type tuiModel struct {
	ctx    context.Context
	ctrl   *interaction.Controller
	flow   *report.Workflow
	ui     config.UIConfig
	keys   tuiKeyMap
	events <-chan tea.Msg

	width, height int
	display       float64 // eased navigation index used for rendering
	cursor        int
	cursorDomain  string
	hovered       string
	status        string
	spinner       spinner.Model

	confirmSubmit bool
	confirm       *huh.Form
	confirmed     *bool

	quitting bool
}

func newTUIModel(ctx context.Context, deps tuiDeps) tuiModel {
	regions := deps.Controller.Regions()
	regions.Register(regionModules, interaction.RootRegion, true)
	regions.Register(regionSelection, interaction.RootRegion, true)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = formatter.StylePurple

	return tuiModel{
		ctx:           ctx,
		ctrl:          deps.Controller,
		flow:          deps.Workflow,
		ui:            deps.UI,
		keys:          defaultTUIKeys(),
		events:        deps.Events,
		display:       deps.Controller.Snapshot().Index,
		spinner:       sp,
		confirmSubmit: deps.ConfirmSubmit,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(listen(m.events), frameTick(m.ui.FrameInterval))
}

// listen waits for the next external event.
func listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func frameTick(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func waitForReport(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return reportDoneMsg{}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(tuiModel)
	nm.settle()
	return nm, cmd
}

func (m tuiModel) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil

	case frameMsg:
		m.display = interaction.Ease(m.display, m.ctrl.Snapshot().Index, easeAlpha)
		return m, frameTick(m.ui.FrameInterval)

	case refreshMsg:
		return m, listen(m.events)

	case uiConfigMsg:
		m.ui = config.UIConfig(msg)
		m.applyLayout()
		return m, listen(m.events)

	case reportDoneMsg:
		if st := m.flow.State(); st.Phase == domain.ReportFailure {
			m.status = formatter.StyleRed.Render(st.Message)
		}
		return m, nil

	case spinner.TickMsg:
		if m.flow.Phase() != domain.ReportPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return m, nil
}

// settle snaps the displayed index when animation is disabled.
func (m *tuiModel) settle() {
	if m.ui.FrameInterval <= 0 {
		m.display = m.ctrl.Snapshot().Index
	}
}

func (m *tuiModel) applyLayout() {
	kind := domain.LayoutKind(m.ui.Layout)
	if m.ui.Layout == "auto" || m.ui.Layout == "" {
		kind = domain.LayoutWide
		if m.width > 0 && m.width < compactWidth {
			kind = domain.LayoutCompact
		}
	}
	m.ctrl.SetLayout(interaction.LayoutFor(kind))
}

func (m tuiModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m.quit()
	}

	if m.confirm != nil {
		if key.Matches(msg, m.keys.Back) {
			m.confirm = nil
			m.status = formatter.Dim("Cancelled.")
			return m, nil
		}
		return m.updateConfirm(msg)
	}

	if next, cmd, handled := m.handleReportKey(msg); handled {
		return next, cmd
	}

	snap := m.ctrl.Snapshot()

	if snap.Guide.Open {
		switch {
		case key.Matches(msg, m.keys.GuideNext):
			m.ctrl.NextGuideStep()
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.ctrl.SkipGuide()
			return m, nil
		}
	}

	if snap.Detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail):
			m.ctrl.CloseDetail()
		case key.Matches(msg, m.keys.Add):
			m.addModule(*snap.Detail, 0.5, 0.5)
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	slot, expanded := expandedSlot(snap)
	if expanded {
		m.syncCursor(slot.Domain)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Prev):
		if !expanded || !m.moveCursor(slot.Domain, -1) {
			m.ctrl.HandleEvent(interaction.KeyEvent{Direction: interaction.Backward})
		}

	case key.Matches(msg, m.keys.Next):
		if !expanded || !m.moveCursor(slot.Domain, 1) {
			m.ctrl.HandleEvent(interaction.KeyEvent{Direction: interaction.Forward})
		}

	case key.Matches(msg, m.keys.Expand):
		if cur, ok := currentSlot(snap); ok {
			m.ctrl.Activate(cur.Domain.ID)
		}

	case key.Matches(msg, m.keys.Back):
		switch {
		case expanded:
			m.ctrl.HoverLeave()
		case snap.PanelOpen:
			m.ctrl.ToggleSelectionPanel()
		}

	case key.Matches(msg, m.keys.Add):
		if mod, ok := m.cursorModule(slot.Domain, expanded); ok {
			x, y := m.originOf(snap, mod.ID)
			m.addModule(mod, x, y)
		}

	case key.Matches(msg, m.keys.Remove):
		if mod, ok := m.cursorModule(slot.Domain, expanded); ok {
			if m.ctrl.RemoveFromSelection(mod.ID) {
				m.status = "Removed " + mod.Name
			}
		}

	case key.Matches(msg, m.keys.Detail):
		if mod, ok := m.cursorModule(slot.Domain, expanded); ok {
			_ = m.ctrl.OpenDetail(mod.ID)
		}

	case key.Matches(msg, m.keys.Panel):
		m.ctrl.ToggleSelectionPanel()

	case key.Matches(msg, m.keys.Submit):
		return m.requestSubmit()
	}

	return m, nil
}

// handleReportKey routes keys while a report is pending or shown. The
// overlay swallows every key it does not use.
func (m tuiModel) handleReportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	st := m.flow.State()
	switch st.Phase {
	case domain.ReportPending:
		if key.Matches(msg, m.keys.Back) {
			m.flow.Reset()
			m.status = formatter.Dim("Report request cancelled.")
			return m, nil, true
		}
		return m, nil, false

	case domain.ReportSuccess:
		n := len(st.Tiers)
		switch {
		case key.Matches(msg, m.keys.NextTab):
			m.flow.SelectTab((st.ActiveTab + 1) % n)
		case key.Matches(msg, m.keys.PrevTab):
			m.flow.SelectTab((st.ActiveTab - 1 + n) % n)
		case key.Matches(msg, m.keys.Back):
			m.flow.Reset()
		case key.Matches(msg, m.keys.Quit):
			next, cmd := m.quit()
			return next, cmd, true
		default:
			if i, ok := tabIndex(msg.String()); ok {
				m.flow.SelectTab(i)
			}
		}
		return m, nil, true

	case domain.ReportFailure:
		switch {
		case key.Matches(msg, m.keys.Submit):
			next, cmd := m.submit()
			return next, cmd, true
		case key.Matches(msg, m.keys.Back):
			m.flow.Reset()
			m.status = ""
		case key.Matches(msg, m.keys.Quit):
			next, cmd := m.quit()
			return next, cmd, true
		}
		return m, nil, true
	}
	return m, nil, false
}

func (m tuiModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		return m, nil
	}
	snap := m.ctrl.Snapshot()
	line := m.lineAt(snap, msg.Y)

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMoved(float64(msg.X), float64(msg.Y), float64(m.width), float64(m.height))
		if !m.blocked(snap) {
			m.hover(line.domainID)
		}

	case msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		delta := m.ui.WheelDelta
		dir := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta, dir = -delta, -1
		}
		target := interaction.RootRegion
		if line.moduleID != "" {
			target = regionModules
		}
		res := m.ctrl.HandleEvent(interaction.WheelEvent{DeltaY: delta, Target: target})
		if res.Reason == interaction.IgnoredRegion {
			if slot, ok := expandedSlot(snap); ok {
				m.syncCursor(slot.Domain)
				m.moveCursor(slot.Domain, dir)
			}
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.blocked(snap) {
			return m, nil
		}
		switch {
		case line.moduleID != "":
			if mod, ok := m.ctrl.Catalog().Module(line.moduleID); ok {
				m.cursorDomain = line.domainID
				m.cursor = line.moduleIndex
				m.addModule(mod, ratio(msg.X, m.width), ratio(msg.Y, m.height))
			}
		case line.domainID != "":
			m.ctrl.Activate(line.domainID)
		}
	}
	return m, nil
}

// blocked reports whether an overlay covers the stack for pointer input.
func (m tuiModel) blocked(snap interaction.Snapshot) bool {
	return snap.Detail != nil || snap.Guide.Open || m.flow.OverlayOpen()
}

func (m *tuiModel) hover(domainID string) {
	if domainID == m.hovered {
		return
	}
	if m.hovered != "" {
		m.ctrl.HoverLeave()
	}
	if domainID != "" {
		m.ctrl.HoverEnter(domainID)
	}
	m.hovered = domainID
}

func (m *tuiModel) addModule(mod domain.Module, x, y float64) {
	added, _, err := m.ctrl.AddToSelection(mod.ID, x, y)
	switch {
	case err != nil:
		m.status = formatter.StyleRed.Render(err.Error())
	case added:
		m.status = formatter.StyleGreen.Render("Added ") + mod.Name
	default:
		m.status = mod.Name + formatter.Dim(" is already selected")
	}
}

func (m tuiModel) requestSubmit() (tea.Model, tea.Cmd) {
	sel := m.ctrl.Selection().Items()
	if len(sel) == 0 {
		m.status = formatter.StyleYellow.Render("Select at least one module first.")
		return m, nil
	}
	if m.flow.Phase() == domain.ReportPending {
		return m, nil
	}
	if !m.confirmSubmit {
		return m.submit()
	}
	m.confirmed = new(bool)
	*m.confirmed = true
	m.confirm = confirmSubmitForm(sel, m.confirmed)
	return m, m.confirm.Init()
}

func (m tuiModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		if *m.confirmed {
			return m.submit()
		}
		m.status = formatter.Dim("Cancelled.")
		return m, nil
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

func (m tuiModel) submit() (tea.Model, tea.Cmd) {
	done, ok := m.flow.Submit(m.ctx, m.ctrl.Selection().IDs())
	if !ok {
		return m, nil
	}
	m.status = ""
	return m, tea.Batch(waitForReport(done), m.spinner.Tick)
}

// syncCursor resets the module cursor when the expanded domain changes.
func (m *tuiModel) syncCursor(d domain.Domain) {
	if d.ID != m.cursorDomain {
		m.cursorDomain = d.ID
		m.cursor = 0
	}
	m.cursor = max(0, min(m.cursor, len(d.Modules)-1))
}

// cursorIn is the cursor position as it applies to the given domain; a
// domain the cursor has not visited starts at its first module.
func (m tuiModel) cursorIn(domainID string) int {
	if domainID != m.cursorDomain {
		return 0
	}
	return m.cursor
}

// moveCursor moves within the expanded domain's modules and reports false
// at either end of the list.
func (m *tuiModel) moveCursor(d domain.Domain, delta int) bool {
	next := m.cursor + delta
	if next < 0 || next >= len(d.Modules) {
		return false
	}
	m.cursor = next
	return true
}

func (m tuiModel) cursorModule(d domain.Domain, expanded bool) (domain.Module, bool) {
	if !expanded || m.cursor < 0 || m.cursor >= len(d.Modules) {
		return domain.Module{}, false
	}
	return d.Modules[m.cursor], true
}

// originOf returns the normalized screen position of a module row.
func (m tuiModel) originOf(snap interaction.Snapshot, moduleID string) (float64, float64) {
	for i, l := range m.stackLines(snap) {
		if l.moduleID == moduleID {
			return 0.25, ratio(headerRows+i, m.height)
		}
	}
	return 0.5, 0.5
}

// currentSlot returns the slot nearest the navigation index.
func currentSlot(snap interaction.Snapshot) (interaction.SlotView, bool) {
	i := int(math.Round(snap.Index))
	if i < 0 || i >= len(snap.Slots) {
		return interaction.SlotView{}, false
	}
	return snap.Slots[i], true
}

// expandedSlot returns the slot rendered in its expanded state, if any.
func expandedSlot(snap interaction.Snapshot) (interaction.SlotView, bool) {
	for _, s := range snap.Slots {
		if s.Active {
			return s, true
		}
	}
	return interaction.SlotView{}, false
}

func ratio(v, total int) float64 {
	if total <= 0 {
		return 0.5
	}
	return float64(v) / float64(total)
}
