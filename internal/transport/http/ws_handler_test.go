package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"
	"quiz-session-service/internal/infra/memory"

	"github.com/gorilla/websocket"
)

func TestWebSocketQuizFlow(t *testing.T) {
	server := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Expect the catalog first, then the fresh session.
	readNext(conn, t, "subjects")
	snap := readSession(conn, t)
	if snap.Phase != domain.PhaseNotStarted {
		t.Fatalf("expected notStarted, got %s", snap.Phase)
	}

	send(conn, t, "selectSubject", map[string]any{"subjectId": "math"})
	snap = readSession(conn, t)
	if snap.Phase != domain.PhaseInProgress || snap.Question == nil {
		t.Fatalf("expected first question, got %+v", snap)
	}

	send(conn, t, "selectAnswer", map[string]any{"answer": "3"})
	readSession(conn, t)
	send(conn, t, "confirm", nil)
	snap = readSession(conn, t)
	if snap.Feedback != domain.FeedbackIncorrect || snap.CorrectAnswer != "4" {
		t.Fatalf("expected incorrect feedback revealing 4, got %+v", snap)
	}

	send(conn, t, "confirm", nil)
	snap = readSession(conn, t)
	if snap.Phase != domain.PhaseCompleted || snap.Result == nil || snap.Result.Passed {
		t.Fatalf("expected failed completion, got %+v", snap)
	}

	send(conn, t, "review", nil)
	snap = readSession(conn, t)
	if snap.Phase != domain.PhaseReviewing || len(snap.Incorrect) != 1 {
		t.Fatalf("expected review with one miss, got %+v", snap)
	}

	send(conn, t, "exit", nil)
	_, payload := readNext(conn, t, "exited")
	if payload["message"] != app.ExitMessage {
		t.Fatalf("unexpected exit acknowledgment %v", payload)
	}
	snap = readSession(conn, t)
	if snap.Phase != domain.PhaseNotStarted {
		t.Fatalf("expected a fresh session after exit, got %s", snap.Phase)
	}
}

func TestWebSocketRejectsInvalidIntent(t *testing.T) {
	server := newTestServer(t)

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readNext(conn, t, "subjects")
	readNext(conn, t, "session")

	send(conn, t, "confirm", nil)
	readNext(conn, t, "error")

	send(conn, t, "dance", nil)
	_, payload := readNext(conn, t, "error")
	if payload["message"] != errUnsupportedType.Error() {
		t.Fatalf("unexpected error payload %v", payload)
	}
}

func TestSubjectsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/subjects")
	if err != nil {
		t.Fatalf("get subjects: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	var subjects []domain.SubjectSummary
	if err := json.Unmarshal(body, &subjects); err != nil {
		t.Fatalf("decode subjects: %v (%s)", err, body)
	}
	if len(subjects) != 1 || subjects[0].ID != "math" || subjects[0].QuestionCount != 1 {
		t.Fatalf("unexpected subjects %+v", subjects)
	}
}

func TestCORSPreflight(t *testing.T) {
	service := app.NewQuizService(memory.NewSessionStore(), memory.NewCatalogRepository(memory.NewStaticCatalogLoader(sampleCatalog()), time.Minute))
	server := httptest.NewServer(NewRouter(service, []string{"http://localhost:3000"}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/subjects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewSessionStore()
	catalogRepo := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(sampleCatalog()), time.Minute)
	service := app.NewQuizService(store, catalogRepo)
	if err := service.LoadCatalog(t.Context()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	server := httptest.NewServer(NewRouter(service, nil))
	t.Cleanup(server.Close)
	return server
}

func send(conn *websocket.Conn, t *testing.T, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readSession(conn *websocket.Conn, t *testing.T) domain.SessionSnapshot {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != "session" {
		t.Fatalf("expected session, got %s: %s", msg.Type, msg.Payload)
	}
	var snap domain.SessionSnapshot
	if err := json.Unmarshal(msg.Payload, &snap); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return snap
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	// array payloads (subjects) leave the map empty
	payload := map[string]any{}
	_ = json.Unmarshal(msg.Payload, &payload)
	return msg.Type, payload
}

func sampleCatalog() []domain.Subject {
	return []domain.Subject{{
		ID:   "math",
		Name: "Math",
		Questions: []domain.Question{
			{
				ID:     "q1",
				Prompt: "What is 2 + 2?",
				Options: []domain.Option{
					{ID: "o1", Text: "3", Correct: false},
					{ID: "o2", Text: "4", Correct: true},
					{ID: "o3", Text: "5", Correct: false},
				},
			},
		},
	}}
}
