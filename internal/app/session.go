package app

import (
	"fmt"
	"sync"
	"time"

	"quiz-session-service/internal/domain"
)

// ExitMessage is the acknowledgment returned when a learner leaves the quiz.
const ExitMessage = "Exiting the Quiz App"

// Session is one learner's attempt at a subject. All transitions are serialized.
type Session struct {
	id        string
	now       func() time.Time
	threshold float64
	mu        sync.Mutex

	phase           domain.Phase
	subject         *domain.Subject
	questionIndex   int
	selected        string
	awaitingAdvance bool
	feedback        domain.Feedback
	score           int
	incorrect       []domain.IncorrectAnswer
	startedAt       time.Time
	endedAt         time.Time
	result          *domain.Result
}

// NewSession creates a session waiting for a subject.
func NewSession(id string, threshold float64) *Session {
	return NewSessionWithClock(id, threshold, time.Now)
}

// NewSessionWithClock is used by tests for deterministic timestamps.
func NewSessionWithClock(id string, threshold float64, now func() time.Time) *Session {
	if threshold <= 0 {
		threshold = DefaultPassThreshold
	}
	return &Session{
		id:        id,
		now:       now,
		threshold: threshold,
		phase:     domain.PhaseNotStarted,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SelectSubject starts play on subject.
func (s *Session) SelectSubject(subject domain.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseNotStarted && s.phase != domain.PhaseExited {
		return s.invalidLocked("selectSubject")
	}
	if len(subject.Questions) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEmptySubject, subject.ID)
	}

	s.resetLocked()
	s.subject = &subject
	s.startedAt = s.now()
	s.phase = domain.PhaseInProgress
	return nil
}

// SelectAnswer marks answer as the learner's choice for the current question.
func (s *Session) SelectAnswer(answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress || s.awaitingAdvance {
		return s.invalidLocked("selectAnswer")
	}
	if answer == "" || !hasOption(s.currentLocked(), answer) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownOption, answer)
	}
	s.selected = answer
	return nil
}

// Confirm evaluates the selected answer, or advances once feedback has been shown.
func (s *Session) Confirm() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != domain.PhaseInProgress {
		return s.invalidLocked("confirm")
	}
	if s.awaitingAdvance {
		s.advanceLocked()
		return nil
	}
	if s.selected == "" {
		return domain.ErrNoAnswerSelected
	}

	q := s.currentLocked()
	if IsCorrect(q, s.selected) {
		s.score++
		s.feedback = domain.FeedbackCorrect
	} else {
		correct, _ := CorrectAnswer(q)
		s.incorrect = append(s.incorrect, domain.IncorrectAnswer{
			Question:  q.Prompt,
			Submitted: s.selected,
			Correct:   correct,
		})
		s.feedback = domain.FeedbackIncorrect
	}
	s.awaitingAdvance = true
	return nil
}

func (s *Session) advanceLocked() {
	s.awaitingAdvance = false
	s.feedback = domain.FeedbackNone
	s.selected = ""

	if s.questionIndex < len(s.subject.Questions)-1 {
		s.questionIndex++
		return
	}
	s.endLocked()
}

// endLocked closes the attempt. endedAt is captured once; later calls keep the first result.
func (s *Session) endLocked() {
	if !s.endedAt.IsZero() {
		return
	}
	s.endedAt = s.now()

	elapsed := s.endedAt.Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	total := len(s.subject.Questions)
	s.result = &domain.Result{
		Score:          s.score,
		Total:          total,
		ElapsedSeconds: int64(elapsed / time.Second),
		Passed:         Passed(s.score, total, s.threshold),
	}
	s.phase = domain.PhaseCompleted
}

// Review lists the missed questions.
func (s *Session) Review() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseCompleted {
		return s.invalidLocked("review")
	}
	s.phase = domain.PhaseReviewing
	return nil
}

// ExitReview returns to the result screen.
func (s *Session) ExitReview() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseReviewing {
		return s.invalidLocked("exitReview")
	}
	s.phase = domain.PhaseCompleted
	return nil
}

// Replay returns to subject selection. The last result stays visible until
// the next subject is selected.
func (s *Session) Replay() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseCompleted && s.phase != domain.PhaseReviewing {
		return s.invalidLocked("replay")
	}
	result := s.result
	s.resetLocked()
	s.result = result
	s.phase = domain.PhaseNotStarted
	return nil
}

// ExitApp discards every field of the session and returns the acknowledgment.
func (s *Session) ExitApp() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.phase = domain.PhaseExited
	return ExitMessage
}

// Snapshot returns a copy of the state for rendering.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := domain.SessionSnapshot{
		SessionID:       s.id,
		Phase:           s.phase,
		QuestionIndex:   s.questionIndex,
		SelectedAnswer:  s.selected,
		AwaitingAdvance: s.awaitingAdvance,
		Feedback:        s.feedback,
		Score:           s.score,
		Incorrect:       append([]domain.IncorrectAnswer{}, s.incorrect...),
	}
	if s.subject != nil {
		snap.SubjectID = s.subject.ID
		snap.SubjectName = s.subject.Name
		snap.TotalQuestions = len(s.subject.Questions)
	}
	if s.phase == domain.PhaseInProgress {
		q := s.currentLocked()
		view := &domain.QuestionView{ID: q.ID, Prompt: q.Prompt}
		for _, opt := range q.Options {
			view.Options = append(view.Options, opt.Text)
		}
		snap.Question = view
		if s.awaitingAdvance {
			snap.CorrectAnswer, _ = CorrectAnswer(q)
		}
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

func (s *Session) currentLocked() domain.Question {
	return s.subject.Questions[s.questionIndex]
}

func (s *Session) resetLocked() {
	s.subject = nil
	s.questionIndex = 0
	s.selected = ""
	s.awaitingAdvance = false
	s.feedback = domain.FeedbackNone
	s.score = 0
	s.incorrect = nil
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.result = nil
}

func (s *Session) invalidLocked(intent string) error {
	return fmt.Errorf("%w: %s during %s", domain.ErrInvalidTransition, intent, s.phase)
}
