package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/syllabus/internal/clock"
	"github.com/alexanderramin/syllabus/internal/domain"
)

// FixtureTransport fabricates a report locally after a fixed delay. It
// honors the same contract as the HTTP transport and backs the offline
// mode and tests.
type FixtureTransport struct {
	Delay time.Duration
	Clock clock.Clock

	// FailWith, when set, makes every request end in a logical failure
	// carrying this message.
	FailWith string
}

// NewFixtureTransport returns a fixture transport on the real clock.
func NewFixtureTransport(delay time.Duration) *FixtureTransport {
	return &FixtureTransport{Delay: delay, Clock: clock.Real{}}
}

func (f *FixtureTransport) Generate(ctx context.Context, req Request) (*Response, error) {
	clk := f.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	start := clk.Now()

	if f.Delay > 0 {
		fired := make(chan struct{})
		t := clk.AfterFunc(f.Delay, func() { close(fired) })
		select {
		case <-fired:
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		}
	}

	if f.FailWith != "" {
		return nil, &LogicalError{Message: f.FailWith}
	}
	if len(req.ModuleIDs) == 0 {
		return nil, &LogicalError{Message: "no modules selected"}
	}
	return &Response{
		Tiers:     BuildFixtureTiers(len(req.ModuleIDs)),
		LatencyMs: clk.Now().Sub(start).Milliseconds(),
	}, nil
}

// BuildFixtureTiers computes the four grade bands for n selected modules.
// Class sessions scale as 2n, n, ceil(0.8n) and ceil(0.5n).
func BuildFixtureTiers(n int) []domain.Tier {
	ceil := func(f float64) int { return int(math.Ceil(f)) }
	return []domain.Tier{
		{
			GradeLabel:         "Grade 1-3",
			DisplayLabel:       "Foundation Discovery Tier",
			ClassTimeText:      fmt.Sprintf("%d x 35 min sessions (high interaction)", n*2),
			ManualResourceText: "Two senior teachers. About 12 hours building teaching aids and game flows.",
			AIResourceText:     "One teacher. Generated lesson levels cut preparation to 2 hours.",
			Schedule: []domain.ScheduleEntry{
				{Day: "Day 1", Content: "First contact: find the hidden robot to learn about perception."},
				{Day: "Day 2", Content: "Creative workshop: draw and share a first science fiction story."},
				{Day: "Day 3", Content: "Logic maze: steer a toy car around obstacles with visual blocks."},
			},
			PromoTitles: []string{
				"Sparking the future: an AI adventure for grades 1-3",
				"Playing with technology: AI basics through games",
				"Little architects: a first portfolio built with AI",
			},
			LeverageText: "65% efficiency gain",
		},
		{
			GradeLabel:         "Grade 3-6",
			DisplayLabel:       "Logical Framework Tier",
			ClassTimeText:      fmt.Sprintf("%d x 45 min sessions (standard cycle)", n),
			ManualResourceText: "A teacher with programming literacy. Eight exercise sets and three case studies written by hand.",
			AIResourceText:     "Generated feedback and a dynamic case library answer most questions.",
			Schedule: []domain.ScheduleEntry{
				{Day: "Day 1", Content: "Neural networks made visible: how a model tells cats from dogs."},
				{Day: "Day 2", Content: "Data alchemy: collect and clean a small data set end to end."},
				{Day: "Day 3", Content: "Team challenge: a campus monitoring station built on image recognition."},
			},
			PromoTitles: []string{
				"Logic awakening: cross-disciplinary AI thinking",
				"Zero to one: understanding how algorithms work",
				"Elite track: getting hands-on with generative AI",
			},
			LeverageText: "82% efficiency gain",
		},
		{
			GradeLabel:         "Grade 6-9",
			DisplayLabel:       "Junior Innovator Tier",
			ClassTimeText:      fmt.Sprintf("%d x 60 min sessions (project based)", ceil(float64(n)*0.8)),
			ManualResourceText: "A Python instructor. About 15 hours setting up lab servers.",
			AIResourceText:     "Cloud sandboxes with live code correction. Any subject teacher can run the class.",
			Schedule: []domain.ScheduleEntry{
				{Day: "Day 1", Content: "Working with language models: prompts that automate real tasks."},
				{Day: "Day 2", Content: "Multimodal lab: combine audio and text into a virtual guide."},
				{Day: "Day 3", Content: "Launch day: present an AI fix for a community problem."},
			},
			PromoTitles: []string{
				"Changemakers: generative AI for middle school",
				"Tech leadership: from prompts to project management",
				"Future communities: solving real problems with AI",
			},
			LeverageText: "88% efficiency gain",
		},
		{
			GradeLabel:         "Grade 9-12",
			DisplayLabel:       "Advanced Tech Tier",
			ClassTimeText:      fmt.Sprintf("%d x 90 min sessions (deep seminar)", ceil(float64(n)*0.5)),
			ManualResourceText: "A computer science specialist coaching each student one to one.",
			AIResourceText:     "Most deployment errors are handled automatically. Teachers focus on theory.",
			Schedule: []domain.ScheduleEntry{
				{Day: "Day 1", Content: "Inside the transformer: from attention to trillion parameter models."},
				{Day: "Day 2", Content: "Frontier practice: fine-tune a model of your own with LoRA."},
				{Day: "Day 3", Content: "Ethics and the future: AI safety and the shape of careers."},
			},
			PromoTitles: []string{
				"Peak technology: a pre-university AI curriculum",
				"Researcher path: from first principles to fine-tuning",
				"Leading tomorrow: a head start in technology for seniors",
			},
			LeverageText: "94% efficiency gain",
		},
	}
}
