package exercise

import (
	"math"

	"github.com/fitmotion/repcore/internal/geom"
	"github.com/fitmotion/repcore/internal/pose"
)

// SquatAnalyzer validates squat form and drives the squat repetition
// state machine. Unlike the push-up analyzer, the standing baseline is
// captured once and never rebased on rep completion.
type SquatAnalyzer struct {
	cfg SquatConfig
}

// NewSquatAnalyzer creates an analyzer with the given thresholds.
func NewSquatAnalyzer(cfg SquatConfig) *SquatAnalyzer {
	return &SquatAnalyzer{cfg: cfg}
}

// Exercise returns Squat.
func (a *SquatAnalyzer) Exercise() Exercise { return Squat }

// Analyze judges one smoothed frame and advances the state machine.
// The returned bool reports whether this frame completed a repetition.
// The DOWN phase is only entered through a valid bottom position, so a
// shallow squat ("go lower") never produces a counted rep.
func (a *SquatAnalyzer) Analyze(f *pose.Frame, st *RepState) (Result, bool) {
	if !f.Visible(a.cfg.VisibilityThreshold,
		pose.LeftHip, pose.RightHip,
		pose.LeftKnee, pose.RightKnee,
		pose.LeftAnkle, pose.RightAnkle) {
		return invalid(ReasonNotVisible, nil), false
	}

	leftKnee := geom.AngleAtVertex(f[pose.LeftHip], f[pose.LeftKnee], f[pose.LeftAnkle])
	rightKnee := geom.AngleAtVertex(f[pose.RightHip], f[pose.RightKnee], f[pose.RightAnkle])
	avgKnee := (leftKnee + rightKnee) / 2
	angleDifference := math.Abs(leftKnee - rightKnee)
	avgHipY := (f[pose.LeftHip].Y + f[pose.RightHip].Y) / 2

	metrics := map[string]float64{
		"left_knee_angle":  leftKnee,
		"right_knee_angle": rightKnee,
		"avg_knee_angle":   avgKnee,
		"angle_difference": angleDifference,
		"avg_hip_y":        avgHipY,
	}

	// Standing baseline: captured once, used to measure hip drop.
	if st.Baseline == nil && avgKnee > a.cfg.StandingKneeMin {
		baseline := avgHipY
		st.Baseline = &baseline
	}

	result := a.judge(st, avgKnee, angleDifference, avgHipY, metrics)

	repCompleted := false
	if st.Baseline != nil {
		switch st.Phase {
		case PhaseUp:
			if avgKnee < a.cfg.BentKneeMax && result.Valid {
				st.Phase = PhaseDown
			}
		case PhaseDown:
			if avgKnee > a.cfg.StandingKneeMin {
				st.Phase = PhaseUp
				st.Count++
				repCompleted = true
			}
		}
	}

	return result, repCompleted
}

// judge applies the validity rules in priority order.
func (a *SquatAnalyzer) judge(st *RepState, avgKnee, angleDifference, avgHipY float64, metrics map[string]float64) Result {
	switch {
	case st.Baseline == nil:
		return invalid(ReasonStandToStart, metrics)
	case angleDifference >= a.cfg.MaxAngleDifference:
		return invalid(ReasonLegsBalanced, metrics)
	case avgKnee < a.cfg.BentKneeMax:
		hipDrop := avgHipY - *st.Baseline
		metrics["hip_drop"] = hipDrop
		if hipDrop > a.cfg.MinHipDrop {
			return valid(metrics)
		}
		return invalid(ReasonGoLower, metrics)
	case avgKnee > a.cfg.StandingKneeMin:
		return valid(metrics)
	}
	return invalid(ReasonOutOfView, metrics)
}
