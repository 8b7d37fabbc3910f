package exercise

import (
	"math"

	"github.com/fitmotion/repcore/internal/pose"
)

const limbLen = 0.12

// setJoint writes a three-landmark chain into f: mid sits at (x, midY),
// outer directly above it, and far placed so the interior angle at mid
// equals angleDeg. Y grows downward, matching normalised frame coords.
func setJoint(f *pose.Frame, outer, mid, far int, x, midY, angleDeg float64) {
	f[outer] = pose.Keypoint{X: x, Y: midY - limbLen, Visibility: 1}
	f[mid] = pose.Keypoint{X: x, Y: midY, Visibility: 1}

	// The outer ray points straight up (-90 deg); rotate by the interior
	// angle to place the far landmark.
	phi := (angleDeg - 90) * math.Pi / 180
	f[far] = pose.Keypoint{
		X:          x + limbLen*math.Cos(phi),
		Y:          midY + limbLen*math.Sin(phi),
		Visibility: 1,
	}
}

// pushupFrame builds a push-up pose with the given elbow angles and
// average shoulder/hip heights. Both sides share the same Y values, so
// the body reads as laterally aligned.
func pushupFrame(elbowL, elbowR, shoulderY, hipY float64) pose.Frame {
	var f pose.Frame
	setJoint(&f, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist, 0.35, shoulderY+limbLen, elbowL)
	setJoint(&f, pose.RightShoulder, pose.RightElbow, pose.RightWrist, 0.65, shoulderY+limbLen, elbowR)
	f[pose.LeftHip] = pose.Keypoint{X: 0.45, Y: hipY, Visibility: 1}
	f[pose.RightHip] = pose.Keypoint{X: 0.55, Y: hipY, Visibility: 1}
	return f
}

// squatFrame builds a squat pose with per-side knee angles and the
// given hip height.
func squatFrame(kneeL, kneeR, hipY float64) pose.Frame {
	var f pose.Frame
	setJoint(&f, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle, 0.45, hipY+limbLen, kneeL)
	setJoint(&f, pose.RightHip, pose.RightKnee, pose.RightAnkle, 0.55, hipY+limbLen, kneeR)
	return f
}

// plankFrame builds a plank pose with explicit per-side shoulder
// heights and a shared hip height.
func plankFrame(shoulderLY, shoulderRY, hipY float64) pose.Frame {
	var f pose.Frame
	f[pose.LeftShoulder] = pose.Keypoint{X: 0.3, Y: shoulderLY, Visibility: 1}
	f[pose.RightShoulder] = pose.Keypoint{X: 0.7, Y: shoulderRY, Visibility: 1}
	f[pose.LeftHip] = pose.Keypoint{X: 0.4, Y: hipY, Visibility: 1}
	f[pose.RightHip] = pose.Keypoint{X: 0.6, Y: hipY, Visibility: 1}
	return f
}
