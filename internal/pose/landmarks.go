// Package pose defines the body-landmark frame format produced by the
// upstream pose estimator and the temporal smoothing applied to it.
package pose

// Body landmark indices following the MediaPipe Pose convention.
// The numbering is a wire contract with the upstream estimator and
// must not be changed.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28
	NumLandmarks  = 33
)

// Keypoint is one tracked body point. X and Y are normalised to the
// frame (0 = left/top), Z is estimator depth (unbounded), Visibility
// is the estimator's confidence in [0, 1].
type Keypoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Frame is the complete set of landmarks for one instant.
type Frame [NumLandmarks]Keypoint

// Visible reports whether every listed landmark has visibility strictly
// above threshold.
func (f *Frame) Visible(threshold float64, indices ...int) bool {
	for _, i := range indices {
		if f[i].Visibility <= threshold {
			return false
		}
	}
	return true
}
