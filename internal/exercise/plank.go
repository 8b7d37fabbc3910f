package exercise

import (
	"math"

	"github.com/fitmotion/repcore/internal/pose"
)

// PlankAnalyzer judges plank form: the body must be laterally aligned
// and roughly horizontal. It has no repetition state machine; the
// continuous-hold timer lives in the session layer and is fed by this
// analyzer's per-frame verdict.
type PlankAnalyzer struct {
	cfg PlankConfig
}

// NewPlankAnalyzer creates an analyzer with the given thresholds.
func NewPlankAnalyzer(cfg PlankConfig) *PlankAnalyzer {
	return &PlankAnalyzer{cfg: cfg}
}

// Exercise returns Plank.
func (a *PlankAnalyzer) Exercise() Exercise { return Plank }

// Analyze judges one smoothed frame.
func (a *PlankAnalyzer) Analyze(f *pose.Frame) Result {
	if !f.Visible(a.cfg.VisibilityThreshold,
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftHip, pose.RightHip) {
		return invalid(ReasonOutOfView, nil)
	}

	avgShoulderY := (f[pose.LeftShoulder].Y + f[pose.RightShoulder].Y) / 2
	avgHipY := (f[pose.LeftHip].Y + f[pose.RightHip].Y) / 2
	bodyTilt := math.Max(
		math.Abs(f[pose.LeftShoulder].Y-f[pose.RightShoulder].Y),
		math.Abs(f[pose.LeftHip].Y-f[pose.RightHip].Y),
	)
	verticalDiff := math.Abs(avgShoulderY - avgHipY)

	metrics := map[string]float64{
		"body_tilt":      bodyTilt,
		"vertical_diff":  verticalDiff,
		"avg_shoulder_y": avgShoulderY,
		"avg_hip_y":      avgHipY,
	}

	switch {
	case bodyTilt >= a.cfg.MaxBodyTilt:
		return invalid(ReasonBodyStraight, metrics)
	case verticalDiff >= a.cfg.MaxVerticalDiff:
		return invalid(ReasonBodyHorizontal, metrics)
	}

	return valid(metrics)
}
