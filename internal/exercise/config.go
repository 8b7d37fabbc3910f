package exercise

// PushupConfig holds threshold parameters for the push-up analyzer.
type PushupConfig struct {
	VisibilityThreshold float64 // minimum landmark visibility
	MaxBodyTilt         float64 // left/right Y gap before "keep body straight"
	MaxSymmetryGap      float64 // degrees of elbow-angle asymmetry allowed
	BentElbowMax        float64 // degrees; both elbows must be below this in the DOWN phase
	ExtendedElbowMin    float64 // degrees; average elbow must reach this in the UP phase
	CalibrationElbowMin float64 // degrees; arms considered straight for baseline capture
	MinShoulderDrop     float64 // dropUnit: minimum shoulder drop as fraction of frame height
	DownElbowMax        float64 // degrees; elbow gate for the UP→DOWN transition
	UpElbowMin          float64 // degrees; elbow gate for the DOWN→UP transition
}

// DefaultPushupConfig returns production-default push-up thresholds.
func DefaultPushupConfig() PushupConfig {
	return PushupConfig{
		VisibilityThreshold: 0.5,
		MaxBodyTilt:         0.03,
		MaxSymmetryGap:      15,
		BentElbowMax:        120,
		ExtendedElbowMin:    100,
		CalibrationElbowMin: 140,
		MinShoulderDrop:     0.02,
		DownElbowMax:        120,
		UpElbowMin:          110,
	}
}

// SquatConfig holds threshold parameters for the squat analyzer.
type SquatConfig struct {
	VisibilityThreshold float64 // minimum landmark visibility
	MaxAngleDifference  float64 // degrees of knee-angle asymmetry allowed
	BentKneeMax         float64 // degrees; below this counts as squatting
	StandingKneeMin     float64 // degrees; above this counts as standing
	MinHipDrop          float64 // required hip drop below standing baseline
}

// DefaultSquatConfig returns production-default squat thresholds.
func DefaultSquatConfig() SquatConfig {
	return SquatConfig{
		VisibilityThreshold: 0.5,
		MaxAngleDifference:  20,
		BentKneeMax:         120,
		StandingKneeMin:     150,
		MinHipDrop:          0.15,
	}
}

// PlankConfig holds threshold parameters for the plank analyzer.
type PlankConfig struct {
	VisibilityThreshold float64 // minimum landmark visibility
	MaxBodyTilt         float64 // left/right Y gap before "keep body straight"
	MaxVerticalDiff     float64 // shoulder/hip Y gap before "keep body horizontal"
}

// DefaultPlankConfig returns production-default plank thresholds.
func DefaultPlankConfig() PlankConfig {
	return PlankConfig{
		VisibilityThreshold: 0.5,
		MaxBodyTilt:         0.03,
		MaxVerticalDiff:     0.2,
	}
}
