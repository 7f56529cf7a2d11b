package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// FormatHistory renders recorded report runs as a table, newest first.
func FormatHistory(runs []*domain.ReportRun, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No reports generated yet.") + "\n"
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		detail := fmt.Sprintf("%d tiers", r.TierCount)
		if r.Outcome == domain.OutcomeFailure {
			detail = StyleRed.Render(Truncate(r.Message, 40))
		}
		rows = append(rows, []string{
			TruncID(r.RequestID),
			HumanTimestamp(r.RequestedAt, now),
			OutcomeIndicator(r.Outcome),
			Truncate(strings.Join(r.ModuleIDs, ","), 30),
			FormatLatency(r.LatencyMs),
			detail,
		})
	}

	return Header("Report history") + "\n\n" +
		RenderTable([]string{"REQUEST", "WHEN", "OUTCOME", "MODULES", "LATENCY", "RESULT"}, rows)
}
