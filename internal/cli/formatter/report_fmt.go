package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// FormatTabs renders the tier tab strip with the active tab highlighted.
func FormatTabs(tiers []domain.Tier, active int) string {
	tabs := make([]string, len(tiers))
	for i, t := range tiers {
		label := fmt.Sprintf(" %d %s ", i+1, t.Title())
		if i == active {
			tabs[i] = StyleHeader.Render("[" + strings.TrimSpace(label) + "]")
		} else {
			tabs[i] = Dim(label)
		}
	}
	return strings.Join(tabs, " ")
}

// FormatTier renders one tier's content.
func FormatTier(t domain.Tier) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(t.Title()), Dim(t.GradeLabel))
	writeField(&b, "Class time", t.ClassTimeText)
	writeField(&b, "Manual prep", t.ManualResourceText)
	writeField(&b, "Assisted prep", t.AIResourceText)

	if len(t.Schedule) > 0 {
		b.WriteString("\n")
		b.WriteString(Bold("Schedule"))
		b.WriteString("\n")
		for _, s := range t.Schedule {
			fmt.Fprintf(&b, "  %s  %s\n", StyleBlue.Render(fmt.Sprintf("%-8s", s.Day)), s.Content)
		}
	}

	if len(t.PromoTitles) > 0 {
		b.WriteString("\n")
		b.WriteString(Bold("Sessions"))
		b.WriteString("\n")
		for _, p := range t.PromoTitles {
			fmt.Fprintf(&b, "  %s %s\n", StylePurple.Render("•"), p)
		}
	}

	if t.LeverageText != "" {
		b.WriteString("\n")
		b.WriteString(StyleGreen.Render(t.LeverageText))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatReport renders every tier in order, for non-interactive output.
func FormatReport(requestID string, tiers []domain.Tier) string {
	var b strings.Builder
	b.WriteString(Header("Report"))
	b.WriteString("\n")
	if requestID != "" {
		b.WriteString(Dim("request " + requestID))
		b.WriteString("\n")
	}
	for _, t := range tiers {
		b.WriteString("\n")
		b.WriteString(FormatTier(t))
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", Dim(fmt.Sprintf("%-14s", label+":")), value)
}
