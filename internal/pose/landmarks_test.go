package pose

import "testing"

func TestLandmarkIndexContract(t *testing.T) {
	// The numbering is a wire contract with the upstream estimator.
	checks := map[string][2]int{
		"nose":      {Nose, 0},
		"shoulders": {LeftShoulder, 11},
		"elbows":    {LeftElbow, 13},
		"wrists":    {LeftWrist, 15},
		"hips":      {LeftHip, 23},
		"knees":     {LeftKnee, 25},
		"ankles":    {LeftAnkle, 27},
	}
	for name, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s index changed: got %d, want %d", name, c[0], c[1])
		}
	}
	if RightShoulder != LeftShoulder+1 || RightHip != LeftHip+1 || RightAnkle != LeftAnkle+1 {
		t.Error("right-side landmarks must directly follow their left counterparts")
	}
	if NumLandmarks != 33 {
		t.Errorf("expected 33 landmarks, got %d", NumLandmarks)
	}
}

func TestFrameVisible(t *testing.T) {
	var f Frame
	f[LeftShoulder].Visibility = 0.9
	f[RightShoulder].Visibility = 0.51

	if !f.Visible(0.5, LeftShoulder, RightShoulder) {
		t.Error("expected both shoulders visible above 0.5")
	}
	if f.Visible(0.5, LeftShoulder, LeftHip) {
		t.Error("expected hidden hip to fail the check")
	}
	// Threshold is strict: exactly at the threshold is not visible.
	f[LeftElbow].Visibility = 0.5
	if f.Visible(0.5, LeftElbow) {
		t.Error("visibility equal to the threshold should not pass")
	}
}
