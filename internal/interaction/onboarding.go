package interaction

// GuideTarget names the interaction a guide step teaches.
type GuideTarget string

const (
	TargetScroll GuideTarget = "scroll"
	TargetExpand GuideTarget = "expand"
	TargetAdd    GuideTarget = "add"
	TargetCore   GuideTarget = "core"
)

// GuideSteps is the fixed onboarding sequence.
var GuideSteps = []GuideTarget{TargetScroll, TargetExpand, TargetAdd, TargetCore}

// Guide is the first-run walkthrough. While open it suppresses navigation.
type Guide struct {
	open bool
	step int
}

// NewGuide returns a guide, open only when show is true.
func NewGuide(show bool) *Guide {
	return &Guide{open: show}
}

// Next advances one step and closes the guide after the last one.
func (g *Guide) Next() {
	if !g.open {
		return
	}
	if g.step < len(GuideSteps)-1 {
		g.step++
		return
	}
	g.open = false
}

// Skip closes the guide.
func (g *Guide) Skip() { g.open = false }

// Open reports whether the guide is showing.
func (g *Guide) Open() bool { return g.open }

// Step returns the current step index and its target.
func (g *Guide) Step() (int, GuideTarget) {
	return g.step, GuideSteps[g.step]
}
