package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quiz-session-service/internal/app"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter wires the REST and WebSocket endpoints behind CORS.
func NewRouter(service *app.QuizService, allowedOrigins []string) http.Handler {
	wsHandler := NewWSHandler(service)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/api/subjects", subjectsHandler(service)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/ws", wsHandler.ServeWS)

	if len(allowedOrigins) == 0 {
		return router
	}
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler(router)
}

func subjectsHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.Subjects()); err != nil {
			log.Printf("encode subjects: %v", err)
		}
	}
}
