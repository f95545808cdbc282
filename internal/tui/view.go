package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"quiz-session-service/internal/domain"
)

func (m *Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	var body string
	switch m.snap.Phase {
	case domain.PhaseNotStarted, domain.PhaseExited:
		body = m.renderMenu()
	case domain.PhaseInProgress:
		body = m.renderQuestion()
	default:
		body = m.renderResult()
	}
	if m.notice != "" {
		body += "\n" + wrongStyle.Render(m.notice) + "\n"
	}
	return cardStyle.Render(body)
}

func (m *Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quiz App!") + "\n\n")
	if r := m.snap.Result; r != nil {
		b.WriteString(dimStyle.Render(fmt.Sprintf("Last attempt: %d/%d in %d seconds", r.Score, r.Total, r.ElapsedSeconds)) + "\n\n")
	}

	if len(m.subjects) == 0 {
		b.WriteString(dimStyle.Render("No subjects available.") + "\n")
	}
	for i, subj := range m.subjects {
		line := fmt.Sprintf("%s (%d questions)", subj.Name, subj.QuestionCount)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString(bodyStyle.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + hintStyle.Render("↑↓ choose · enter start · q exit"))
	return b.String()
}

func (m *Model) renderQuestion() string {
	var b strings.Builder
	s := m.snap
	b.WriteString(titleStyle.Render(s.SubjectName) + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Question %d/%d", s.QuestionIndex+1, s.TotalQuestions)) + "\n\n")
	if s.Question == nil {
		return b.String()
	}
	b.WriteString(bodyStyle.Bold(true).Render(s.Question.Prompt) + "\n\n")

	for i, opt := range s.Question.Options {
		pointer := "  "
		if !s.AwaitingAdvance && i == m.cursor {
			pointer = "▸ "
		}
		marker := "( )"
		if opt == s.SelectedAnswer {
			marker = "(•)"
		}
		line := pointer + marker + " " + opt
		switch {
		case s.AwaitingAdvance && opt == s.CorrectAnswer:
			b.WriteString(correctStyle.Render(line) + "\n")
		case s.AwaitingAdvance && opt == s.SelectedAnswer:
			b.WriteString(wrongStyle.Render(line) + "\n")
		case opt == s.SelectedAnswer, !s.AwaitingAdvance && i == m.cursor:
			b.WriteString(selectedStyle.Render(line) + "\n")
		default:
			b.WriteString(bodyStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	switch s.Feedback {
	case domain.FeedbackCorrect:
		b.WriteString(correctStyle.Render("Correct!") + "\n")
	case domain.FeedbackIncorrect:
		b.WriteString(wrongStyle.Render("Incorrect.") + "\n")
	}
	if s.AwaitingAdvance {
		b.WriteString(hintStyle.Render("enter next · q exit"))
	} else {
		b.WriteString(hintStyle.Render("↑↓ select · enter submit · q exit"))
	}
	return b.String()
}

func (m *Model) renderResult() string {
	var b strings.Builder
	s := m.snap
	if s.Result == nil {
		return ""
	}
	r := *s.Result
	b.WriteString(titleStyle.Render(r.Headline()) + "\n")
	b.WriteString(bodyStyle.Render(r.Tagline()) + "\n\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("%d/%d correct answers in %d seconds", r.Score, r.Total, r.ElapsedSeconds)) + "\n")

	if s.Phase == domain.PhaseReviewing {
		b.WriteString("\n")
		if len(s.Incorrect) == 0 {
			b.WriteString(correctStyle.Render("No incorrect answers.") + "\n")
		} else {
			b.WriteString(wrongStyle.Render("Incorrect Answers:") + "\n")
		}
		for _, miss := range s.Incorrect {
			b.WriteString(bodyStyle.Render("Question: "+miss.Question) + "\n")
			b.WriteString(wrongStyle.Render("  Your Answer: "+miss.Submitted) + "\n")
			b.WriteString(correctStyle.Render("  Correct Answer: "+miss.Correct) + "\n")
		}
		b.WriteString("\n" + hintStyle.Render("r exit review · p play again · q exit"))
	} else {
		b.WriteString("\n" + hintStyle.Render("r review · p play again · q exit"))
	}
	return b.String()
}
