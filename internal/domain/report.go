package domain

import "time"

// ScheduleEntry is one day of a tier's deployment schedule.
type ScheduleEntry struct {
	Day     string
	Content string
}

// Tier is one grade band's worth of report content. Immutable once received.
type Tier struct {
	GradeLabel         string
	DisplayLabel       string
	ClassTimeText      string
	ManualResourceText string
	AIResourceText     string
	Schedule           []ScheduleEntry
	PromoTitles        []string
	LeverageText       string
}

// Title is the label shown for the tier, preferring the display label.
func (t Tier) Title() string {
	return CoalesceStr(t.DisplayLabel, t.GradeLabel)
}

// ModuleIDs extracts the ID of each module, preserving order.
func ModuleIDs(mods []Module) []string {
	ids := make([]string, len(mods))
	for i, m := range mods {
		ids[i] = m.ID
	}
	return ids
}

// ReportRun is the persisted record of one completed report submission.
type ReportRun struct {
	ID          string
	RequestID   string
	RequestedAt time.Time
	ModuleIDs   []string
	Outcome     RunOutcome
	Message     string
	TierCount   int
	LatencyMs   int64
}
