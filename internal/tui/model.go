// Package tui is the terminal presentation of a quiz session.
package tui

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
)

// Model renders one learner's session and turns key presses into intents.
type Model struct {
	ctx      context.Context
	service  *app.QuizService
	subjects []domain.SubjectSummary
	snap     domain.SessionSnapshot
	cursor   int
	notice   string
	farewell string
}

// New starts a fresh session on service. The catalog must already be loaded.
func New(ctx context.Context, service *app.QuizService) *Model {
	return &Model{
		ctx:      ctx,
		service:  service,
		subjects: service.Subjects(),
		snap:     service.NewSession(ctx),
	}
}

// Farewell is the acknowledgment shown after the learner exits, empty otherwise.
func (m *Model) Farewell() string {
	return m.farewell
}

// Snapshot is the last rendered session state.
func (m *Model) Snapshot() domain.SessionSnapshot {
	return m.snap
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	m.notice = ""

	switch m.snap.Phase {
	case domain.PhaseNotStarted, domain.PhaseExited:
		return m.updateMenu(key)
	case domain.PhaseInProgress:
		return m.updateQuestion(key)
	default:
		return m.updateResult(key)
	}
}

func (m *Model) updateMenu(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.moveCursor(-1, len(m.subjects))
	case "down", "j":
		m.moveCursor(1, len(m.subjects))
	case "enter":
		if len(m.subjects) == 0 {
			return m, nil
		}
		m.apply(m.service.SelectSubject(m.ctx, m.snap.SessionID, m.subjects[m.cursor].ID))
		m.cursor = 0
	case "q", "esc":
		return m.exit()
	}
	return m, nil
}

func (m *Model) updateQuestion(key string) (tea.Model, tea.Cmd) {
	var options []string
	if m.snap.Question != nil {
		options = m.snap.Question.Options
	}

	switch key {
	case "up", "k":
		if !m.snap.AwaitingAdvance && m.moveCursor(-1, len(options)) {
			m.apply(m.service.SelectAnswer(m.ctx, m.snap.SessionID, options[m.cursor]))
		}
	case "down", "j":
		if !m.snap.AwaitingAdvance && m.moveCursor(1, len(options)) {
			m.apply(m.service.SelectAnswer(m.ctx, m.snap.SessionID, options[m.cursor]))
		}
	case "space", " ":
		if !m.snap.AwaitingAdvance && m.cursor < len(options) {
			m.apply(m.service.SelectAnswer(m.ctx, m.snap.SessionID, options[m.cursor]))
		}
	case "enter":
		advancing := m.snap.AwaitingAdvance
		if !advancing && m.snap.SelectedAnswer == "" && m.cursor < len(options) {
			snap, err := m.service.SelectAnswer(m.ctx, m.snap.SessionID, options[m.cursor])
			m.apply(snap, err)
			if err != nil {
				return m, nil
			}
		}
		m.apply(m.service.Confirm(m.ctx, m.snap.SessionID))
		if advancing {
			m.cursor = 0
		}
	case "q", "esc":
		return m.exit()
	}
	return m, nil
}

func (m *Model) updateResult(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "r":
		if m.snap.Phase == domain.PhaseReviewing {
			m.apply(m.service.ExitReview(m.ctx, m.snap.SessionID))
		} else {
			m.apply(m.service.Review(m.ctx, m.snap.SessionID))
		}
	case "esc":
		if m.snap.Phase == domain.PhaseReviewing {
			m.apply(m.service.ExitReview(m.ctx, m.snap.SessionID))
		}
	case "p":
		m.apply(m.service.Replay(m.ctx, m.snap.SessionID))
		m.cursor = 0
	case "q":
		return m.exit()
	}
	return m, nil
}

func (m *Model) exit() (tea.Model, tea.Cmd) {
	msg, err := m.service.Exit(m.ctx, m.snap.SessionID)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.farewell = msg
	m.snap.Phase = domain.PhaseExited
	return m, tea.Quit
}

// moveCursor shifts the cursor within n entries and reports whether it moved.
func (m *Model) moveCursor(delta, n int) bool {
	next := m.cursor + delta
	if next < 0 || next >= n {
		return false
	}
	m.cursor = next
	return true
}

func (m *Model) apply(snap domain.SessionSnapshot, err error) {
	if snap.SessionID != "" {
		m.snap = snap
	}
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoAnswerSelected):
		m.notice = "Pick an answer first"
	default:
		m.notice = err.Error()
	}
}
