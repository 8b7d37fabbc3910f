package pose

// DefaultSmoothingAlpha is the weight given to the previous smoothed
// frame; the raw frame contributes 1-alpha.
const DefaultSmoothingAlpha = 0.7

// Smoother applies an exponential moving average across frames to
// suppress per-frame estimator jitter. It adds at most one frame of
// material lag. A Smoother is owned by a single session and is not
// safe for concurrent use.
type Smoother struct {
	alpha float64
	prev  *Frame
}

// NewSmoother creates a Smoother with the given alpha in [0, 1).
// An alpha outside that range falls back to DefaultSmoothingAlpha.
func NewSmoother(alpha float64) *Smoother {
	if alpha < 0 || alpha >= 1 {
		alpha = DefaultSmoothingAlpha
	}
	return &Smoother{alpha: alpha}
}

// Smooth blends the raw frame with the stored previous frame and
// returns the result. The first frame after construction or Reset is
// returned unchanged and becomes the stored state. Visibility is
// passed through from the raw frame unsmoothed.
func (s *Smoother) Smooth(raw Frame) Frame {
	if s.prev == nil {
		stored := raw
		s.prev = &stored
		return raw
	}

	var out Frame
	for i := range raw {
		out[i] = Keypoint{
			X:          raw[i].X*(1-s.alpha) + s.prev[i].X*s.alpha,
			Y:          raw[i].Y*(1-s.alpha) + s.prev[i].Y*s.alpha,
			Z:          raw[i].Z*(1-s.alpha) + s.prev[i].Z*s.alpha,
			Visibility: raw[i].Visibility,
		}
	}
	*s.prev = out
	return out
}

// Reset discards the stored frame so the next call to Smooth starts a
// fresh smoothing era.
func (s *Smoother) Reset() {
	s.prev = nil
}
