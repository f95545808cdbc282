package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"quiz-session-service/internal/domain"

	"github.com/google/uuid"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogLoader fetches subjects from a data provider (HTTP, Postgres, SQLite...).
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) ([]domain.Subject, error)
}

// CatalogRepository serves the catalog, possibly from a cache in front of a loader.
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]domain.Subject, error)
}

// QuizService contains the quiz use cases shared by every presentation layer.
type QuizService struct {
	sessions  SessionRepository
	catalogs  CatalogRepository
	threshold float64
	now       func() time.Time
	newID     func() string

	mu      sync.RWMutex
	catalog []domain.Subject
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithPassThreshold overrides the share of correct answers needed to pass.
func WithPassThreshold(threshold float64) Option {
	return func(s *QuizService) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// WithClock is used by tests for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

func NewQuizService(store SessionRepository, catalogs CatalogRepository, opts ...Option) *QuizService {
	s := &QuizService{
		sessions:  store,
		catalogs:  catalogs,
		threshold: DefaultPassThreshold,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCatalog fetches the catalog once. A failure is logged and leaves the catalog empty.
func (s *QuizService) LoadCatalog(ctx context.Context) error {
	subjects, err := s.catalogs.GetCatalog(ctx)
	if err != nil {
		log.Printf("load catalog: %v", err)
		subjects = nil
	}

	s.mu.Lock()
	s.catalog = subjects
	s.mu.Unlock()
	return err
}

// Subjects lists the loaded catalog.
func (s *QuizService) Subjects() []domain.SubjectSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Summaries(s.catalog)
}

func (s *QuizService) subject(subjectID string) (domain.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, subj := range s.catalog {
		if subj.ID == subjectID {
			return subj, nil
		}
	}
	return domain.Subject{}, fmt.Errorf("%w: %s", domain.ErrSubjectNotFound, subjectID)
}

// NewSession registers a fresh session waiting for a subject.
func (s *QuizService) NewSession(_ context.Context) domain.SessionSnapshot {
	session := NewSessionWithClock(s.newID(), s.threshold, s.now)
	s.sessions.Save(session)
	return session.Snapshot()
}

// Snapshot returns the current state of a session.
func (s *QuizService) Snapshot(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

// SelectSubject starts the chosen subject.
func (s *QuizService) SelectSubject(ctx context.Context, sessionID, subjectID string) (domain.SessionSnapshot, error) {
	subj, err := s.subject(subjectID)
	if err != nil {
		return domain.SessionSnapshot{}, err
	}
	return s.apply(sessionID, func(session *Session) error {
		return session.SelectSubject(subj)
	})
}

// SelectAnswer records the learner's choice for the current question.
func (s *QuizService) SelectAnswer(_ context.Context, sessionID, answer string) (domain.SessionSnapshot, error) {
	return s.apply(sessionID, func(session *Session) error {
		return session.SelectAnswer(answer)
	})
}

// Confirm submits the selected answer or advances to the next question.
func (s *QuizService) Confirm(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	return s.apply(sessionID, (*Session).Confirm)
}

// Review shows the missed questions of a completed session.
func (s *QuizService) Review(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	return s.apply(sessionID, (*Session).Review)
}

// ExitReview hides the missed questions again.
func (s *QuizService) ExitReview(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	return s.apply(sessionID, (*Session).ExitReview)
}

// Replay sends the learner back to subject selection.
func (s *QuizService) Replay(_ context.Context, sessionID string) (domain.SessionSnapshot, error) {
	return s.apply(sessionID, (*Session).Replay)
}

// Exit discards the session and returns the acknowledgment message.
func (s *QuizService) Exit(_ context.Context, sessionID string) (string, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	msg := session.ExitApp()
	s.sessions.Delete(sessionID)
	return msg, nil
}

func (s *QuizService) apply(sessionID string, transition func(*Session) error) (domain.SessionSnapshot, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionSnapshot{}, domain.ErrSessionNotFound
	}
	if err := transition(session); err != nil {
		return session.Snapshot(), err
	}
	return session.Snapshot(), nil
}
