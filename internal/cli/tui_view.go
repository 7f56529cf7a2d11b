package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/interaction"
	"github.com/alexanderramin/syllabus/internal/report"
)

// headerRows is the number of rows above the stack: title and separator.
const headerRows = 2

// guideText is the copy shown for each onboarding step.
var guideText = map[interaction.GuideTarget]string{
	interaction.TargetScroll: "Scroll the wheel or press ↑/↓ to move between domains.",
	interaction.TargetExpand: "Hover a domain or press enter to expand it.",
	interaction.TargetAdd:    "Press a or click a module to add it to your selection.",
	interaction.TargetCore:   "Press r to turn your selection into a tiered report.",
}

// stackLine is one rendered row of the domain stack. Rows are hit-tested
// by index, so rendering and pointer input share this list.
type stackLine struct {
	text        string
	domainID    string
	moduleID    string
	moduleIndex int
}

func (m tuiModel) stackLines(snap interaction.Snapshot) []stackLine {
	sel := make(map[string]bool, len(snap.Selection))
	for _, mod := range snap.Selection {
		sel[mod.ID] = true
	}
	current := int(math.Round(snap.Index))

	var lines []stackLine
	for _, slot := range snap.Slots {
		p := interaction.SlotVisual(slot.Index, m.display, snap.Total, slot.Active, snap.Layout)
		if !p.Visible {
			continue
		}

		indent := strings.Repeat(" ", int(math.Round((1.05-p.Scale)*10)))
		marker := " "
		if slot.Index == current {
			marker = formatter.StylePurple.Render("▸")
		}
		title := formatter.OpacityStyle(p.Opacity).Render(slot.Domain.Title)
		if snap.Dimmed {
			title = formatter.StyleFaint.Render(slot.Domain.Title)
		}
		text := indent + marker + " " + title
		if p.ContentVisible && !slot.Active {
			text += formatter.Dim(fmt.Sprintf("  %d modules", len(slot.Domain.Modules)))
		}
		lines = append(lines, stackLine{text: text, domainID: slot.Domain.ID})

		if !slot.Active {
			continue
		}
		for i, mod := range slot.Domain.Modules {
			cursor := "  "
			if i == m.cursorIn(slot.Domain.ID) {
				cursor = formatter.StyleHeader.Render("› ")
			}
			check := formatter.Dim("○ ")
			if sel[mod.ID] {
				check = formatter.StyleGreen.Render("✔ ")
			}
			lines = append(lines, stackLine{
				text:        indent + "    " + cursor + check + mod.Name + " " + formatter.Dim(mod.ID),
				domainID:    slot.Domain.ID,
				moduleID:    mod.ID,
				moduleIndex: i,
			})
		}
	}
	return lines
}

// lineAt returns the stack row under screen row y.
func (m tuiModel) lineAt(snap interaction.Snapshot, y int) stackLine {
	lines := m.stackLines(snap)
	i := y - headerRows
	if i < 0 || i >= len(lines) {
		return stackLine{}
	}
	return lines[i]
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.ctrl.Snapshot()
	st := m.flow.State()

	sections := []string{m.renderHeader(snap)}

	switch {
	case m.confirm != nil:
		sections = append(sections, "", m.confirm.View())
	case st.Phase == domain.ReportSuccess || st.Phase == domain.ReportFailure:
		sections = append(sections, m.renderReport(st))
	default:
		sections = append(sections, m.renderBody(snap))
	}

	sections = append(sections, m.renderStatus(snap, st), m.renderHints(snap, st))
	result := strings.Join(sections, "\n")

	// Pad to terminal height so the line-diff renderer leaves no stale rows.
	if m.height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.height {
			result += strings.Repeat("\n", m.height-lines)
		}
	}
	return result
}

func (m tuiModel) renderHeader(snap interaction.Snapshot) string {
	header := formatter.StylePurple.Render("syllabus")
	if cur, ok := currentSlot(snap); ok {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(cur.Domain.Title)
	}
	if n := len(snap.Selection); n > 0 {
		header += "  " + formatter.Dim("[") + formatter.StyleGreen.Render(fmt.Sprintf("%d selected", n)) + formatter.Dim("]")
	}

	// The separator carries a parallax marker that follows the pointer and
	// fades while the background is covered.
	width := max(m.width, 20)
	pos := int(math.Round(snap.Pointer.X * float64(width-1)))
	sepStyle := formatter.StyleDim
	if snap.BackgroundFocused {
		sepStyle = formatter.StyleFaint
	}
	sep := sepStyle.Render(strings.Repeat("─", pos)) +
		formatter.StyleFaint.Render("◆") +
		sepStyle.Render(strings.Repeat("─", max(width-pos-1, 0)))
	return header + "\n" + sep
}

func (m tuiModel) renderBody(snap interaction.Snapshot) string {
	rows := make([]string, 0, len(snap.Slots))
	for _, l := range m.stackLines(snap) {
		rows = append(rows, l.text)
	}
	stack := strings.Join(rows, "\n")

	var below []string
	if snap.Detail != nil {
		selected := false
		for _, mod := range snap.Selection {
			selected = selected || mod.ID == snap.Detail.ID
		}
		below = append(below, formatter.RenderAccentBox("Module", formatter.FormatModule(*snap.Detail, selected)))
	}
	if snap.Guide.Open {
		text := guideText[snap.Guide.Target]
		progress := formatter.Dim(fmt.Sprintf("%d/%d", snap.Guide.Step+1, snap.Guide.Total))
		below = append(below, formatter.RenderAccentBox("Getting started", text+"\n\n"+progress))
	}

	body := stack
	if snap.PanelOpen {
		panel := m.renderSelection(snap)
		if snap.Layout.Kind == domain.LayoutWide {
			body = lipgloss.JoinHorizontal(lipgloss.Top, lipgloss.NewStyle().Width(max(m.width/2, 40)).Render(stack), panel)
		} else {
			below = append([]string{panel}, below...)
		}
	}
	if len(below) > 0 {
		body += "\n\n" + strings.Join(below, "\n")
	}
	return body
}

func (m tuiModel) renderSelection(snap interaction.Snapshot) string {
	if len(snap.Selection) == 0 {
		return formatter.RenderBox("Selection", formatter.Dim("Nothing selected yet."))
	}
	var b strings.Builder
	for i, mod := range snap.Selection {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(formatter.StyleGreen.Render("✔ ") + mod.Name + " " + formatter.Dim(mod.ID))
	}
	b.WriteString("\n\n")
	b.WriteString(formatter.Dim("r: generate report"))
	return formatter.RenderBox(fmt.Sprintf("Selection (%d)", len(snap.Selection)), b.String())
}

func (m tuiModel) renderReport(st report.State) string {
	if st.Phase == domain.ReportFailure {
		msg := formatter.StyleRed.Render("✖ "+st.Message) + "\n\n" + formatter.Dim("r: retry  esc: close")
		return formatter.RenderBox("Report failed", msg)
	}
	tier, _ := st.ActiveTier()
	content := formatter.FormatTabs(st.Tiers, st.ActiveTab) + "\n\n" + formatter.FormatTier(tier)
	return formatter.RenderAccentBox("Report", strings.TrimRight(content, "\n"))
}

func (m tuiModel) renderStatus(snap interaction.Snapshot, st report.State) string {
	var parts []string
	if st.Phase == domain.ReportPending {
		parts = append(parts, m.spinner.View()+" "+
			formatter.Dim(fmt.Sprintf("Generating report for %d modules... (esc to cancel)", len(st.RequestedModuleIDs))))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if n := len(snap.Tokens); n > 0 {
		parts = append(parts, formatter.StyleGreen.Render(strings.Repeat("+", n)))
	}
	return strings.Join(parts, "  ")
}

func (m tuiModel) renderHints(snap interaction.Snapshot, st report.State) string {
	var bindings []key.Binding
	switch {
	case m.confirm != nil:
		bindings = []key.Binding{key.NewBinding(key.WithHelp("enter", "confirm")), m.keys.Back}
	case st.Phase == domain.ReportSuccess:
		bindings = []key.Binding{m.keys.NextTab, m.keys.PrevTab, key.NewBinding(key.WithHelp("1-9", "tier")), m.keys.Back}
	case st.Phase == domain.ReportFailure:
		bindings = []key.Binding{key.NewBinding(key.WithHelp("r", "retry")), m.keys.Back}
	case snap.Guide.Open:
		bindings = []key.Binding{m.keys.GuideNext, key.NewBinding(key.WithHelp("esc", "skip"))}
	case snap.Detail != nil:
		bindings = []key.Binding{m.keys.Add, m.keys.Back}
	default:
		bindings = []key.Binding{m.keys.Prev, m.keys.Next, m.keys.Expand}
		if _, ok := expandedSlot(snap); ok {
			bindings = append(bindings, m.keys.Add, m.keys.Remove, m.keys.Detail)
		}
		bindings = append(bindings, m.keys.Panel, m.keys.Submit)
	}
	bindings = append(bindings, m.keys.Quit)

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
