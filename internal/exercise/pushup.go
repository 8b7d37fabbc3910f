package exercise

import (
	"math"

	"github.com/fitmotion/repcore/internal/geom"
	"github.com/fitmotion/repcore/internal/pose"
)

// PushupAnalyzer validates push-up form and drives the push-up
// repetition state machine. It is stateless itself; all mutable state
// lives in the RepState passed to Analyze.
type PushupAnalyzer struct {
	cfg PushupConfig
}

// NewPushupAnalyzer creates an analyzer with the given thresholds.
func NewPushupAnalyzer(cfg PushupConfig) *PushupAnalyzer {
	return &PushupAnalyzer{cfg: cfg}
}

// Exercise returns Pushup.
func (a *PushupAnalyzer) Exercise() Exercise { return Pushup }

// Analyze judges one smoothed frame and advances the state machine.
// The returned bool reports whether this frame completed a repetition
// (a DOWN→UP transition).
//
// Validity checks run in strict priority order; the first failing check
// supplies the reason. Phase transitions require only an established
// baseline and the body-position safety checks, so a frame can advance
// the state machine while still being judged invalid on a later rule.
func (a *PushupAnalyzer) Analyze(f *pose.Frame, st *RepState) (Result, bool) {
	if !f.Visible(a.cfg.VisibilityThreshold,
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow,
		pose.LeftWrist, pose.RightWrist) {
		return invalid(ReasonNotVisible, nil), false
	}

	leftElbow := geom.AngleAtVertex(f[pose.LeftShoulder], f[pose.LeftElbow], f[pose.LeftWrist])
	rightElbow := geom.AngleAtVertex(f[pose.RightShoulder], f[pose.RightElbow], f[pose.RightWrist])
	avgElbow := (leftElbow + rightElbow) / 2
	symmetryGap := math.Abs(leftElbow - rightElbow)

	avgShoulderY := (f[pose.LeftShoulder].Y + f[pose.RightShoulder].Y) / 2
	avgHipY := (f[pose.LeftHip].Y + f[pose.RightHip].Y) / 2
	bodyTilt := math.Max(
		math.Abs(f[pose.LeftShoulder].Y-f[pose.RightShoulder].Y),
		math.Abs(f[pose.LeftHip].Y-f[pose.RightHip].Y),
	)

	// Smaller Y is higher in the frame.
	shouldersAboveHips := avgShoulderY < avgHipY
	aligned := bodyTilt < a.cfg.MaxBodyTilt

	metrics := map[string]float64{
		"left_elbow_angle":  leftElbow,
		"right_elbow_angle": rightElbow,
		"avg_elbow_angle":   avgElbow,
		"symmetry_gap":      symmetryGap,
		"body_tilt":         bodyTilt,
		"avg_shoulder_y":    avgShoulderY,
		"avg_hip_y":         avgHipY,
	}

	// Baseline capture: top position with arms essentially straight.
	if st.Baseline == nil && shouldersAboveHips && aligned && avgElbow > a.cfg.CalibrationElbowMin {
		baseline := avgShoulderY
		st.Baseline = &baseline
	}

	repCompleted := false
	if st.Baseline != nil && shouldersAboveHips && aligned {
		shoulderMovement := avgShoulderY - *st.Baseline
		metrics["shoulder_movement"] = shoulderMovement

		switch st.Phase {
		case PhaseUp:
			if shoulderMovement > 2*a.cfg.MinShoulderDrop && avgElbow < a.cfg.DownElbowMax {
				st.Phase = PhaseDown
			}
		case PhaseDown:
			if shoulderMovement < 0.5*a.cfg.MinShoulderDrop && avgElbow > a.cfg.UpElbowMin {
				st.Phase = PhaseUp
				st.Count++
				repCompleted = true
				// Adaptive rebase: track drift in camera/body position
				// across reps.
				baseline := avgShoulderY
				st.Baseline = &baseline
			}
		}
	}

	switch {
	case !shouldersAboveHips:
		return invalid(ReasonBodyHigher, metrics), repCompleted
	case !aligned:
		return invalid(ReasonBodyStraight, metrics), repCompleted
	case symmetryGap >= a.cfg.MaxSymmetryGap:
		return invalid(ReasonSymmetry, metrics), repCompleted
	case st.Phase == PhaseDown && (leftElbow >= a.cfg.BentElbowMax || rightElbow >= a.cfg.BentElbowMax):
		return invalid(ReasonBendArms, metrics), repCompleted
	case st.Phase == PhaseUp && avgElbow < a.cfg.ExtendedElbowMin:
		return invalid(ReasonStraightenArms, metrics), repCompleted
	}

	return valid(metrics), repCompleted
}
