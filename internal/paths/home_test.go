package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomeEnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	t.Setenv(envHome, dir)

	if got := Home(); got != dir {
		t.Fatalf("Home() = %q, want %q", got, dir)
	}
	h, err := EnsureHome()
	if err != nil {
		t.Fatalf("EnsureHome: %v", err)
	}
	if fi, err := os.Stat(h); err != nil || !fi.IsDir() {
		t.Errorf("home dir not created: %v", err)
	}
}
