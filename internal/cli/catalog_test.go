package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quiz-session-service/internal/config"
	redisinfra "quiz-session-service/internal/infra/redis"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestSampleCatalogIsWellFormed(t *testing.T) {
	for _, subj := range sampleCatalog() {
		for _, q := range subj.Questions {
			correct := 0
			for _, opt := range q.Options {
				if opt.Correct {
					correct++
				}
			}
			if correct != 1 || len(q.Options) < 2 {
				t.Fatalf("%s/%s: %d correct of %d options", subj.ID, q.ID, correct, len(q.Options))
			}
		}
	}
}

func TestOpenBackendsUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = "carrier-pigeon"
	if _, err := openBackends(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestOpenBackendsUsesRedisWhenConfigured(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	b, err := openBackends(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open backends: %v", err)
	}
	defer b.Close()

	if _, ok := b.catalog.(*redisinfra.CatalogRepository); !ok {
		t.Fatalf("expected redis catalog repository, got %T", b.catalog)
	}
	if _, err := b.catalog.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if !mr.Exists(redisinfra.CatalogKey) {
		t.Fatalf("expected catalog cached in redis")
	}
}

func TestSubjectsCommandPrintsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("provider:\n  kind: static\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"subjects", "--config", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "geography") || !strings.Contains(out.String(), "Geography") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
