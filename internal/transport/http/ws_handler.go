package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"quiz-session-service/internal/app"
	"quiz-session-service/internal/domain"

	"github.com/gorilla/websocket"
)

type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Inbound intent types.
const (
	intentSelectSubject = "selectSubject"
	intentSelectAnswer  = "selectAnswer"
	intentConfirm       = "confirm"
	intentReview        = "review"
	intentExitReview    = "exitReview"
	intentReplay        = "replay"
	intentExit          = "exit"
)

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type subjectPayload struct {
	SubjectID string `json:"subjectId"`
}

type answerPayload struct {
	Answer string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type exitedPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets. Each connection owns one quiz
// session; intents are handled one at a time in read order.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	snap := h.service.NewSession(ctx)
	sessionID := snap.SessionID
	defer func() {
		_, _ = h.service.Exit(context.Background(), sessionID)
	}()

	if err := conn.WriteJSON(outboundMessage[[]domain.SubjectSummary]{Type: "subjects", Payload: h.service.Subjects()}); err != nil {
		log.Printf("ws write error: %v", err)
		return
	}
	if err := conn.WriteJSON(outboundMessage[domain.SessionSnapshot]{Type: "session", Payload: snap}); err != nil {
		log.Printf("ws write error: %v", err)
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		var replies []any
		if inbound.Type == intentExit {
			msg, err := h.service.Exit(ctx, sessionID)
			if err != nil {
				replies = append(replies, errorMessage(err))
			} else {
				replies = append(replies, outboundMessage[exitedPayload]{Type: "exited", Payload: exitedPayload{Message: msg}})
			}
			// a new session begins with the next subject selection
			next := h.service.NewSession(ctx)
			sessionID = next.SessionID
			replies = append(replies, outboundMessage[domain.SessionSnapshot]{Type: "session", Payload: next})
		} else {
			snap, err := h.dispatch(ctx, sessionID, inbound)
			if err != nil {
				replies = append(replies, errorMessage(err))
			} else {
				replies = append(replies, outboundMessage[domain.SessionSnapshot]{Type: "session", Payload: snap})
			}
		}

		for _, reply := range replies {
			if err := conn.WriteJSON(reply); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}
}

func (h *WSHandler) dispatch(ctx context.Context, sessionID string, inbound inboundMessage) (domain.SessionSnapshot, error) {
	switch inbound.Type {
	case intentSelectSubject:
		var payload subjectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return domain.SessionSnapshot{}, errInvalidPayload
		}
		return h.service.SelectSubject(ctx, sessionID, payload.SubjectID)
	case intentSelectAnswer:
		var payload answerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return domain.SessionSnapshot{}, errInvalidPayload
		}
		return h.service.SelectAnswer(ctx, sessionID, payload.Answer)
	case intentConfirm:
		return h.service.Confirm(ctx, sessionID)
	case intentReview:
		return h.service.Review(ctx, sessionID)
	case intentExitReview:
		return h.service.ExitReview(ctx, sessionID)
	case intentReplay:
		return h.service.Replay(ctx, sessionID)
	default:
		return domain.SessionSnapshot{}, errUnsupportedType
	}
}

func errorMessage(err error) outboundMessage[errorPayload] {
	return outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}}
}
