// Package geom provides joint-angle geometry over pose keypoints.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/fitmotion/repcore/internal/pose"
)

// AngleAtVertex returns the angle in degrees formed at vertex b between
// the rays b→a and b→c. The result is always in [0, 180]. If either ray
// has zero length the angle is undefined and 0 is returned rather than
// propagating a NaN into threshold comparisons.
func AngleAtVertex(a, b, c pose.Keypoint) float64 {
	u := r3.Vec{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
	v := r3.Vec{X: c.X - b.X, Y: c.Y - b.Y, Z: c.Z - b.Z}

	nu := r3.Norm(u)
	nv := r3.Norm(v)
	if nu == 0 || nv == 0 {
		return 0
	}

	// Clamp before Acos: floating-point drift can push the cosine just
	// outside [-1, 1] for near-collinear points.
	cos := r3.Dot(u, v) / (nu * nv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}
