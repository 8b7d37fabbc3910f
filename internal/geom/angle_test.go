package geom

import (
	"math"
	"testing"

	"github.com/fitmotion/repcore/internal/pose"
)

func kp(x, y, z float64) pose.Keypoint {
	return pose.Keypoint{X: x, Y: y, Z: z}
}

func TestAngleAtVertex_RightAngle(t *testing.T) {
	got := AngleAtVertex(kp(1, 0, 0), kp(0, 0, 0), kp(0, 1, 0))
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("expected 90 degrees, got %v", got)
	}
}

func TestAngleAtVertex_Straight(t *testing.T) {
	got := AngleAtVertex(kp(-1, 0, 0), kp(0, 0, 0), kp(1, 0, 0))
	if math.Abs(got-180) > 1e-9 {
		t.Errorf("expected 180 degrees, got %v", got)
	}
}

func TestAngleAtVertex_Collinear(t *testing.T) {
	// Same direction rays: zero angle, and the acos input must be
	// clamped so no NaN leaks out.
	got := AngleAtVertex(kp(2, 2, 2), kp(0, 0, 0), kp(1, 1, 1))
	if math.IsNaN(got) {
		t.Fatal("expected a number, got NaN")
	}
	if math.Abs(got) > 1e-6 {
		t.Errorf("expected 0 degrees, got %v", got)
	}
}

func TestAngleAtVertex_ZeroLengthVector(t *testing.T) {
	// a coincides with the vertex: the angle is undefined and the
	// sentinel 0 must come back instead of a NaN.
	got := AngleAtVertex(kp(0.5, 0.5, 0), kp(0.5, 0.5, 0), kp(1, 1, 0))
	if got != 0 {
		t.Errorf("expected sentinel 0, got %v", got)
	}
}

func TestAngleAtVertex_Range(t *testing.T) {
	// For a sweep of non-degenerate inputs the result stays in [0, 180].
	for deg := 1; deg < 360; deg += 7 {
		rad := float64(deg) * math.Pi / 180
		a := kp(1, 0, 0)
		b := kp(0, 0, 0)
		c := kp(math.Cos(rad), math.Sin(rad), 0)

		got := AngleAtVertex(a, b, c)
		if got < 0 || got > 180 {
			t.Errorf("angle for %d degrees out of range: %v", deg, got)
		}
		if math.IsNaN(got) {
			t.Errorf("angle for %d degrees is NaN", deg)
		}
	}
}

func TestAngleAtVertex_UsesZ(t *testing.T) {
	got := AngleAtVertex(kp(1, 0, 0), kp(0, 0, 0), kp(0, 0, 1))
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("expected 90 degrees across the Z axis, got %v", got)
	}
}
