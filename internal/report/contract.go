package report

import (
	"encoding/json"
	"fmt"
	"mime"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Request is the outbound report request.
type Request struct {
	ID        string
	ModuleIDs []string
}

// Response is a successfully validated report.
type Response struct {
	Tiers     []domain.Tier
	LatencyMs int64
}

// wireRequest is the JSON body sent to the report endpoint.
type wireRequest struct {
	Modules []string `json:"modules"`
}

// wireEnvelope is the JSON body returned by the report endpoint.
type wireEnvelope struct {
	Success *bool      `json:"success"`
	Data    []wireTier `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
}

type wireTier struct {
	Grade                 string         `json:"grade"`
	Label                 string         `json:"label"`
	ClassTime             string         `json:"classTime"`
	TeacherResourceManual string         `json:"teacherResourceManual"`
	TeacherResourceAI     string         `json:"teacherResourceAI"`
	Schedule              []wireSchedule `json:"schedule"`
	PromoTitles           []string       `json:"promoTitles"`
	Leverage              string         `json:"leverage"`
}

type wireSchedule struct {
	Day     string `json:"day"`
	Content string `json:"content"`
}

// isJSONMediaType accepts application/json and structured +json suffixes.
func isJSONMediaType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}

// decodeEnvelope parses a JSON response body and validates it against the
// contract. A logical failure yields *LogicalError; a success claim that
// does not validate yields ErrMalformed.
func decodeEnvelope(body []byte) ([]domain.Tier, error) {
	var env wireEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Success == nil {
		return nil, fmt.Errorf("%w: missing success flag", ErrMalformed)
	}
	if !*env.Success {
		return nil, &LogicalError{Message: strings.TrimSpace(env.Message)}
	}
	if err := validateTiers(env.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return toDomainTiers(env.Data), nil
}

func validateTiers(tiers []wireTier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("data must contain at least one tier")
	}
	for i, t := range tiers {
		if strings.TrimSpace(t.Grade) == "" {
			return fmt.Errorf("data[%d].grade is required", i)
		}
		for j, s := range t.Schedule {
			if strings.TrimSpace(s.Day) == "" {
				return fmt.Errorf("data[%d].schedule[%d].day is required", i, j)
			}
		}
	}
	return nil
}

func toDomainTiers(in []wireTier) []domain.Tier {
	out := make([]domain.Tier, len(in))
	for i, t := range in {
		sched := make([]domain.ScheduleEntry, len(t.Schedule))
		for j, s := range t.Schedule {
			sched[j] = domain.ScheduleEntry{Day: s.Day, Content: s.Content}
		}
		promos := make([]string, len(t.PromoTitles))
		copy(promos, t.PromoTitles)
		out[i] = domain.Tier{
			GradeLabel:         t.Grade,
			DisplayLabel:       t.Label,
			ClassTimeText:      t.ClassTime,
			ManualResourceText: t.TeacherResourceManual,
			AIResourceText:     t.TeacherResourceAI,
			Schedule:           sched,
			PromoTitles:        promos,
			LeverageText:       t.Leverage,
		}
	}
	return out
}

func fromDomainTiers(in []domain.Tier) []wireTier {
	out := make([]wireTier, len(in))
	for i, t := range in {
		sched := make([]wireSchedule, len(t.Schedule))
		for j, s := range t.Schedule {
			sched[j] = wireSchedule{Day: s.Day, Content: s.Content}
		}
		out[i] = wireTier{
			Grade:                 t.GradeLabel,
			Label:                 t.DisplayLabel,
			ClassTime:             t.ClassTimeText,
			TeacherResourceManual: t.ManualResourceText,
			TeacherResourceAI:     t.AIResourceText,
			Schedule:              sched,
			PromoTitles:           t.PromoTitles,
			Leverage:              t.LeverageText,
		}
	}
	return out
}
