package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrateRequiresPostgresURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("provider:\n  kind: static\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	for _, args := range [][]string{
		{"migrate"},
		{"migrate", "--status"},
		{"migrate", "--rollback"},
	} {
		cmd := newRootCmd()
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		cmd.SetArgs(append(args, "--config", path))
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "postgres url not configured") {
			t.Fatalf("%v: expected missing url error, got %v", args, err)
		}
	}
}
