package app

import "quiz-session-service/internal/domain"

// DefaultPassThreshold is the share of correct answers needed to pass.
const DefaultPassThreshold = 0.5

// CorrectAnswer returns the text of the first option marked correct.
// ok is false when the question carries no correct marker.
func CorrectAnswer(q domain.Question) (string, bool) {
	for _, opt := range q.Options {
		if opt.Correct {
			return opt.Text, true
		}
	}
	return "", false
}

// IsCorrect reports whether answer exactly matches the marked-correct option.
// Questions without a correct marker never score.
func IsCorrect(q domain.Question, answer string) bool {
	correct, ok := CorrectAnswer(q)
	return ok && correct == answer
}

// Passed applies the inclusive pass threshold to a score.
func Passed(score, total int, threshold float64) bool {
	return float64(score) >= float64(total)*threshold
}

func hasOption(q domain.Question, answer string) bool {
	for _, opt := range q.Options {
		if opt.Text == answer {
			return true
		}
	}
	return false
}
