package exercise

import "testing"

func TestSynthesize(t *testing.T) {
	tests := []struct {
		name        string
		ex          Exercise
		result      Result
		wantVerdict string
		wantReason  string
	}{
		{
			name:        "valid pushup",
			ex:          Pushup,
			result:      Result{Valid: true},
			wantVerdict: "Correct",
		},
		{
			name:        "valid squat",
			ex:          Squat,
			result:      Result{Valid: true},
			wantVerdict: "Correct",
		},
		{
			name:        "valid plank",
			ex:          Plank,
			result:      Result{Valid: true},
			wantVerdict: "Good plank form",
		},
		{
			name:        "invalid carries the reason",
			ex:          Pushup,
			result:      Result{Valid: false, Reason: ReasonBodyStraight},
			wantVerdict: "Incorrect",
			wantReason:  ReasonBodyStraight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := Synthesize(tt.ex, tt.result)
			if fb.Verdict != tt.wantVerdict {
				t.Errorf("verdict: got %q, want %q", fb.Verdict, tt.wantVerdict)
			}
			if fb.Reason != tt.wantReason {
				t.Errorf("reason: got %q, want %q", fb.Reason, tt.wantReason)
			}
		})
	}
}
