package paths

import (
	"os"
	"path/filepath"
)

const envHome = "BBOARD_HOME_DIR"

// Home returns the base directory for bboard configuration and state.
// Defaults to ~/.bboard, can be overridden via BBOARD_HOME_DIR.
func Home() string {
	if v := os.Getenv(envHome); v != "" {
		return v
	}
	hd, err := os.UserHomeDir()
	if err != nil || hd == "" {
		return ".bboard"
	}
	return filepath.Join(hd, ".bboard")
}

func EnsureHome() (string, error) {
	h := Home()
	if err := os.MkdirAll(h, 0o755); err != nil {
		return "", err
	}
	return h, nil
}
