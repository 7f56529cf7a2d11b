package formatter

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestFormatCatalog(t *testing.T) {
	c := testutil.NewTestCatalog(t, 2)

	out := stripANSI(FormatCatalog(c))

	assert.Contains(t, out, "CATALOG")
	assert.Contains(t, out, "Domain 0")
	assert.Contains(t, out, "(d1)")
	assert.Contains(t, out, "m4")
	assert.Contains(t, out, "2 domains, 4 modules")
	assert.Less(t, strings.Index(out, "d0"), strings.Index(out, "d1"), "domains keep catalog order")
}

func TestFormatValidation(t *testing.T) {
	ok := stripANSI(FormatValidation("catalog.yaml", 3, 9, nil))
	assert.Equal(t, "✔ catalog.yaml (3 domains, 9 modules)\n", ok)

	bad := stripANSI(FormatValidation("", 0, 0, []error{
		errors.New("domains[0].id is required"),
		errors.New("catalog must contain at least one domain"),
	}))
	assert.Contains(t, bad, "✖ built-in catalog (2 problems)")
	assert.Contains(t, bad, "• domains[0].id is required")
}

func TestFormatModule(t *testing.T) {
	m := domain.Module{ID: "m1", Name: "Prompting", Description: "Write better prompts."}

	out := stripANSI(FormatModule(m, true))
	assert.Contains(t, out, "Prompting  m1  ✔ selected")
	assert.Contains(t, out, "Write better prompts.")

	assert.NotContains(t, stripANSI(FormatModule(m, false)), "selected")
}

func TestFormatTabs_HighlightsActive(t *testing.T) {
	tiers := testutil.NewTestTiers(3)

	out := stripANSI(FormatTabs(tiers, 1))

	assert.Contains(t, out, "[2 "+tiers[1].DisplayLabel+"]")
	assert.NotContains(t, out, "[1 ")
	assert.NotContains(t, out, "[3 ")
}

func TestFormatTier(t *testing.T) {
	tier := domain.Tier{
		GradeLabel:    "Grade 1-3",
		DisplayLabel:  "Starter",
		ClassTimeText: "6 x 35 min",
		Schedule:      []domain.ScheduleEntry{{Day: "Week 1", Content: "Intro"}},
		PromoTitles:   []string{"Hello AI"},
		LeverageText:  "Reuse everything",
	}

	out := stripANSI(FormatTier(tier))

	assert.Contains(t, out, "Starter  Grade 1-3")
	assert.Contains(t, out, "Class time:")
	assert.Contains(t, out, "6 x 35 min")
	assert.NotContains(t, out, "Manual prep", "empty fields are omitted")
	assert.Contains(t, out, "Week 1")
	assert.Contains(t, out, "• Hello AI")
	assert.Contains(t, out, "Reuse everything")
}

func TestFormatTier_FallsBackToGradeLabel(t *testing.T) {
	out := stripANSI(FormatTabs([]domain.Tier{{GradeLabel: "Grade 9-12"}}, 0))
	assert.Contains(t, out, "[1 Grade 9-12]")
}

func TestFormatReport(t *testing.T) {
	out := stripANSI(FormatReport("req-1", testutil.NewTestTiers(2)))

	assert.Contains(t, out, "REPORT")
	assert.Contains(t, out, "request req-1")
	assert.Equal(t, 2, strings.Count(out, "Schedule"))
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	runs := []*domain.ReportRun{
		testutil.NewTestRun(testutil.WithRequestedAt(now.Add(-5*time.Minute))),
		testutil.NewTestRun(
			testutil.WithRequestedAt(now.Add(-2*time.Hour)),
			testutil.WithFailure("service unavailable"),
		),
	}

	out := stripANSI(FormatHistory(runs, now))

	assert.Contains(t, out, "REPORT HISTORY")
	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "● success")
	assert.Contains(t, out, "● failure")
	assert.Contains(t, out, "service unavailable")
}

func TestFormatHistory_Empty(t *testing.T) {
	assert.Equal(t, "No reports generated yet.\n", stripANSI(FormatHistory(nil, time.Now())))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleGreen.Render("long value"), "x"}, {"s", "y"}},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", HumanTimestamp(now.Add(-10*time.Second), now))
	assert.Equal(t, "42m ago", HumanTimestamp(now.Add(-42*time.Minute), now))
	assert.Equal(t, "3h ago", HumanTimestamp(now.Add(-3*time.Hour), now))
}

func TestFormatLatency(t *testing.T) {
	assert.Equal(t, "850ms", FormatLatency(850))
	assert.Equal(t, "2.2s", FormatLatency(2200))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestOpacityStyle_Steps(t *testing.T) {
	assert.Equal(t, StyleBold.Render("x"), OpacityStyle(1).Render("x"))
	assert.Equal(t, StyleFaint.Render("x"), OpacityStyle(0.05).Render("x"))
}

func TestSpinner_StopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "working")
	stop()
	stop()

	out := buf.String()
	assert.Contains(t, stripANSI(out), "working")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}
