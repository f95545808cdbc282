package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-session-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, path, body string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoadSubjects(t *testing.T) {
	server := serve(t, "/subjects", `[
		{"id": "geo", "name": "Geography", "questions": [
			{"id": "q1", "prompt": "Capital of France?", "options": [
				{"text": "Paris", "correct": true}, {"text": "Rome"}
			]}
		]}
	]`)

	subjects, err := NewLoader(server.URL, ShapeSubjects, nil).LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Geography", subjects[0].Name)
	assert.True(t, subjects[0].Questions[0].Options[0].Correct)
}

func TestLoadFlatQuestionsAsSingleSubject(t *testing.T) {
	server := serve(t, "/questions", `[
		{"question": "2 + 2?", "answers": ["3", "4"], "correctAnswerIndex": 1},
		{"question": "Broken?", "answers": ["a", "b"], "correctAnswerIndex": 7}
	]`)

	subjects, err := NewLoader(server.URL+"/", ShapeQuestions, nil).LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)

	subj := subjects[0]
	assert.Equal(t, DefaultSubjectID, subj.ID)
	require.Len(t, subj.Questions, 2)
	assert.Equal(t, []domain.Option{
		{ID: "o1", Text: "3"},
		{ID: "o2", Text: "4", Correct: true},
	}, subj.Questions[0].Options)
	for _, opt := range subj.Questions[1].Options {
		assert.False(t, opt.Correct)
	}
}

func TestRejectsPayloadFailingSchema(t *testing.T) {
	server := serve(t, "/subjects", `[{"id": "geo", "name": "Geo", "questions": [
		{"prompt": "Only one option", "options": [{"text": "a", "correct": true}]}
	]}]`)

	_, err := NewLoader(server.URL, ShapeSubjects, nil).LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewLoader(server.URL, ShapeSubjects, nil).LoadCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestEmptyCatalog(t *testing.T) {
	server := serve(t, "/subjects", `[]`)

	_, err := NewLoader(server.URL, ShapeSubjects, nil).LoadCatalog(context.Background())
	assert.True(t, errors.Is(err, domain.ErrCatalogNotFound))
}
