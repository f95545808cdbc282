package app

import (
	"testing"
	"time"

	"quiz-session-service/internal/domain"
)

func TestEndIsCapturedOnce(t *testing.T) {
	now := time.Date(2024, 11, 22, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	s := NewSessionWithClock("s1", DefaultPassThreshold, clock)
	subj := domain.Subject{ID: "one", Questions: []domain.Question{
		{Prompt: "?", Options: []domain.Option{{Text: "a", Correct: true}, {Text: "b"}}},
	}}
	if err := s.SelectSubject(subj); err != nil {
		t.Fatalf("select subject: %v", err)
	}

	now = now.Add(1999 * time.Millisecond)
	s.mu.Lock()
	s.endLocked()
	endedAt := s.endedAt
	now = now.Add(time.Hour)
	s.endLocked()
	s.mu.Unlock()

	if !s.endedAt.Equal(endedAt) {
		t.Fatalf("endedAt moved from %v to %v", endedAt, s.endedAt)
	}
	if s.result.ElapsedSeconds != 1 {
		t.Fatalf("expected 1 elapsed second, got %d", s.result.ElapsedSeconds)
	}
}

func TestIsCorrectExactMatch(t *testing.T) {
	q := domain.Question{Options: []domain.Option{{Text: "Paris", Correct: true}, {Text: "Rome"}}}
	if !IsCorrect(q, "Paris") {
		t.Fatalf("expected exact match to be correct")
	}
	for _, answer := range []string{"paris", "Paris ", "Par", "Rome", ""} {
		if IsCorrect(q, answer) {
			t.Fatalf("expected %q to be incorrect", answer)
		}
	}
}
