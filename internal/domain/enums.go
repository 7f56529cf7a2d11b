package domain

// ReportPhase tags the variant held by the report workflow.
type ReportPhase string

const (
	ReportIdle    ReportPhase = "idle"
	ReportPending ReportPhase = "pending"
	ReportSuccess ReportPhase = "success"
	ReportFailure ReportPhase = "failure"
)

// InputCapability is decided once per session and selects the focus strategy.
type InputCapability string

const (
	InputPointer InputCapability = "pointer" // hover-capable pointer
	InputTouch   InputCapability = "touch"   // touch-primary, tap to toggle
)

// LayoutKind selects the per-breakpoint constants of the visual function.
type LayoutKind string

const (
	LayoutWide    LayoutKind = "wide"
	LayoutCompact LayoutKind = "compact"
)

// RunOutcome records how a report submission terminated.
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailure RunOutcome = "failure"
)
