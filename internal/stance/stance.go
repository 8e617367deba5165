// Package stance provides the categorical stance model: pure mapping from a
// 0–100 attitude score to one of four named stances, plus range clamping.
package stance

// Category is a participant's categorical attitude toward the proposal.
type Category string

const (
	Support    Category = "Support"
	Oppose     Category = "Oppose"
	Neutral    Category = "Neutral"
	Compromise Category = "Compromise" // Reserved — no rule currently produces it.
)

// Score range and derivation thresholds.
const (
	MinScore = 0
	MaxScore = 100

	// Score <= OpposeMax derives Oppose; score >= SupportMin derives Support;
	// everything between is Neutral.
	OpposeMax  = 39
	SupportMin = 61

	NeutralScore = 50
)

// FromScore derives the stance category for a score. Total over [0,100];
// out-of-range inputs are treated as their clamped value.
func FromScore(score int) Category {
	score = Clamp(score)
	switch {
	case score <= OpposeMax:
		return Oppose
	case score >= SupportMin:
		return Support
	default:
		return Neutral
	}
}

// Clamp bounds a stance, trust, or climate value to [0,100].
func Clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
