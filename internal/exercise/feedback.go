package exercise

// Feedback is the user-facing status derived from one analysis result:
// a short verdict plus, when the form is invalid, the analyzer's reason.
type Feedback struct {
	Verdict string `json:"verdict"`
	Reason  string `json:"reason,omitempty"`
}

// Synthesize maps an analysis result to its user-facing feedback. Pure;
// called once per frame after the analyzer step.
func Synthesize(ex Exercise, r Result) Feedback {
	if !r.Valid {
		return Feedback{Verdict: "Incorrect", Reason: r.Reason}
	}
	if ex == Plank {
		return Feedback{Verdict: "Good plank form"}
	}
	return Feedback{Verdict: "Correct"}
}
