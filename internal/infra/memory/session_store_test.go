package memory

import (
	"testing"

	"quiz-session-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()

	store.Save(app.NewSession("s1", app.DefaultPassThreshold))
	session, ok := store.Get("s1")
	if !ok || session.ID() != "s1" {
		t.Fatalf("expected session present")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
