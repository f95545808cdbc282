package domain

import "fmt"

// Phase is the coarse screen state of a quiz session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for a subject
	PhaseInProgress              // Answering questions
	PhaseCompleted               // Result screen
	PhaseReviewing               // Result screen with missed questions listed
	PhaseExited                  // Session discarded by the learner
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "notStarted"
	case PhaseInProgress:
		return "inProgress"
	case PhaseCompleted:
		return "completed"
	case PhaseReviewing:
		return "reviewing"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// MarshalText lets phases travel as strings in JSON payloads.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the names produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for candidate := PhaseNotStarted; candidate <= PhaseExited; candidate++ {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Feedback is the indicator shown after an answer is submitted.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

func (f Feedback) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Feedback) UnmarshalText(text []byte) error {
	for candidate := FeedbackNone; candidate <= FeedbackIncorrect; candidate++ {
		if candidate.String() == string(text) {
			*f = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown feedback %q", text)
}

// Result summarizes a completed session.
type Result struct {
	Score          int   `json:"score"`
	Total          int   `json:"total"`
	ElapsedSeconds int64 `json:"elapsedSeconds"`
	Passed         bool  `json:"passed"`
}

// Headline is the title shown on the result screen.
func (r Result) Headline() string {
	if r.Passed {
		return "Congratulations!!"
	}
	return "Completed!"
}

// Tagline is the encouragement line under the headline.
func (r Result) Tagline() string {
	if r.Passed {
		return "You are amazing!!"
	}
	return "Better luck next time!"
}

// QuestionView is a question as presented to the learner. Correctness markers are
// never included; the correct answer is revealed through SessionSnapshot.CorrectAnswer.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// SessionSnapshot is the read-only state handed to a presentation layer.
type SessionSnapshot struct {
	SessionID       string            `json:"sessionId"`
	Phase           Phase             `json:"phase"`
	SubjectID       string            `json:"subjectId,omitempty"`
	SubjectName     string            `json:"subjectName,omitempty"`
	QuestionIndex   int               `json:"questionIndex"`
	TotalQuestions  int               `json:"totalQuestions"`
	Question        *QuestionView     `json:"question,omitempty"`
	SelectedAnswer  string            `json:"selectedAnswer,omitempty"`
	AwaitingAdvance bool              `json:"awaitingAdvance"`
	Feedback        Feedback          `json:"feedback"`
	CorrectAnswer   string            `json:"correctAnswer,omitempty"`
	Score           int               `json:"score"`
	Incorrect       []IncorrectAnswer `json:"incorrect"`
	Result          *Result           `json:"result,omitempty"`
}
