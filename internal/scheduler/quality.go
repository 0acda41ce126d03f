package scheduler

// QualityInputs are the facts a placement is scored on.
type QualityInputs struct {
	HasInstructor       bool
	HasClassroom        bool
	PreferredInstructor bool
	PreferredClassroom  bool
	Conflicts           int
	Warnings            int
}

// QualityScore rates a placement in [0, 100]. The score is advisory and never gates generation.
func QualityScore(in QualityInputs) int {
	score := 0
	if in.HasInstructor {
		score += 30
	}
	if in.HasClassroom {
		score += 30
	}
	if in.PreferredInstructor {
		score += 20
	}
	if in.PreferredClassroom {
		score += 10
	}
	score -= 10 * in.Conflicts
	score -= 2 * in.Warnings

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
