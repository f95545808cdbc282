// Package remote fetches the subject catalog from an HTTP data provider.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"quiz-session-service/internal/domain"
)

// DefaultBaseURL is where the bundled question server listens.
const DefaultBaseURL = "http://localhost:4000"

const maxPayload = 4 << 20

// Flat catalogs become a single subject with these identifiers.
const (
	DefaultSubjectID   = "quiz"
	DefaultSubjectName = "Quiz"
)

// Loader reads the catalog with one GET request.
type Loader struct {
	baseURL string
	shape   Shape
	client  *http.Client
}

func NewLoader(baseURL string, shape Shape, client *http.Client) *Loader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if shape == "" {
		shape = ShapeSubjects
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Loader{baseURL: strings.TrimRight(baseURL, "/"), shape: shape, client: client}
}

func (l *Loader) LoadCatalog(ctx context.Context) ([]domain.Subject, error) {
	url := l.baseURL + "/" + string(l.shape)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if err := validate(l.shape, raw); err != nil {
		return nil, fmt.Errorf("%s payload: %w", l.shape, err)
	}

	var subjects []domain.Subject
	switch l.shape {
	case ShapeQuestions:
		subjects, err = decodeFlat(raw)
	default:
		err = json.Unmarshal(raw, &subjects)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", l.shape, err)
	}
	if len(subjects) == 0 {
		return nil, domain.ErrCatalogNotFound
	}
	return subjects, nil
}

type flatQuestion struct {
	Question           string   `json:"question"`
	Answers            []string `json:"answers"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// decodeFlat turns a bare question list into a one-subject catalog. An
// out-of-range correct index leaves the question without a correct option.
func decodeFlat(raw []byte) ([]domain.Subject, error) {
	var flat []flatQuestion
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return nil, nil
	}

	subject := domain.Subject{ID: DefaultSubjectID, Name: DefaultSubjectName}
	for i, fq := range flat {
		q := domain.Question{ID: "q" + strconv.Itoa(i+1), Prompt: fq.Question}
		for j, text := range fq.Answers {
			q.Options = append(q.Options, domain.Option{
				ID:      "o" + strconv.Itoa(j+1),
				Text:    text,
				Correct: j == fq.CorrectAnswerIndex,
			})
		}
		subject.Questions = append(subject.Questions, q)
	}
	return []domain.Subject{subject}, nil
}
