package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BBOARD_HOME_DIR", home)

	cfg, err := Load(filepath.Join(home, "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != StoreDriverFile {
		t.Errorf("driver = %q, want %q", cfg.Store.Driver, StoreDriverFile)
	}
	if cfg.Store.Path != filepath.Join(home, "state") {
		t.Errorf("path = %q", cfg.Store.Path)
	}
	if cfg.Server.Addr != DefaultServerAddr || cfg.DefaultBoard.Name != DefaultBoardName {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Sync.BaseURL != "" || cfg.Sync.Timeout != 0 {
		t.Errorf("sync should be disabled by default: %+v", cfg.Sync)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BBOARD_HOME_DIR", home)
	p := filepath.Join(home, "config.yaml")
	data := `
store:
  driver: SQLite
s3:
  ignored: true
server:
  addr: "127.0.0.1:9090"
remote:
  source: data/received_boards.json
  timeout: 3s
sync:
  base_url: http://localhost:5000/
  timeout: 2s
default_board:
  name: Sommer
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BBOARD_CONFIG", p)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != StoreDriverSQLite {
		t.Errorf("driver = %q", cfg.Store.Driver)
	}
	if !strings.HasSuffix(cfg.Store.Path, "state.db") {
		t.Errorf("sqlite path = %q", cfg.Store.Path)
	}
	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Remote.Source != "data/received_boards.json" || cfg.Remote.Timeout != 3*time.Second {
		t.Errorf("remote = %+v", cfg.Remote)
	}
	if cfg.Sync.BaseURL != "http://localhost:5000" || cfg.Sync.Timeout != 2*time.Second {
		t.Errorf("sync = %+v", cfg.Sync)
	}
	if cfg.DefaultBoard.Name != "Sommer" {
		t.Errorf("default board = %q", cfg.DefaultBoard.Name)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	cfg.Store.Driver = StoreDriverS3
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for s3 driver without endpoint")
	}
	cfg.Store.S3.Endpoint = "http://minio:9000"
	cfg.Store.S3.Bucket = "boards"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	cfg.Store.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown driver")
	}
}
