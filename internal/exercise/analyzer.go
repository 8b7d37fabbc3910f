// Package exercise implements per-exercise form validation and the
// repetition state machines that consume smoothed pose frames.
package exercise

// Exercise identifies the externally selected exercise type.
type Exercise string

const (
	Pushup Exercise = "pushup"
	Squat  Exercise = "squat"
	Plank  Exercise = "plank"
)

// Phase is the discrete state of a repetition state machine.
type Phase string

const (
	PhaseUp   Phase = "up"
	PhaseDown Phase = "down"
)

// Result is the snapshot judgment for one frame. It is consumed
// immediately by the caller and never persisted.
type Result struct {
	Valid   bool
	Reason  string
	Metrics map[string]float64
}

// RepState holds the mutable per-session state of a rep-counting
// exercise. Baseline is a calibrated reference body position; nil until
// the analyzer's calibration rule fires. Count never decreases within a
// session.
type RepState struct {
	Phase    Phase
	Count    int
	Baseline *float64
}

// NewRepState returns a RepState in the UP phase with no baseline.
func NewRepState() *RepState {
	return &RepState{Phase: PhaseUp}
}

// Reset returns the state to phase UP, count zero, no baseline.
func (s *RepState) Reset() {
	s.Phase = PhaseUp
	s.Count = 0
	s.Baseline = nil
}

// Shared reason strings. These are the reason codes surfaced to the
// caller through FormStatus events, so their exact text is stable.
const (
	ReasonNotVisible     = "not all body parts visible"
	ReasonOutOfView      = "position yourself in view"
	ReasonBodyHigher     = "keep body higher"
	ReasonBodyStraight   = "keep body straight"
	ReasonBodyHorizontal = "keep body horizontal"
	ReasonSymmetry       = "work both arms symmetrically"
	ReasonBendArms       = "bend arms more"
	ReasonStraightenArms = "straighten arms completely"
	ReasonStandToStart   = "stand up straight to start"
	ReasonLegsBalanced   = "keep both legs balanced"
	ReasonGoLower        = "go lower"
)

func invalid(reason string, metrics map[string]float64) Result {
	return Result{Valid: false, Reason: reason, Metrics: metrics}
}

func valid(metrics map[string]float64) Result {
	return Result{Valid: true, Metrics: metrics}
}
