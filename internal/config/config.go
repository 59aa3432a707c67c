package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gmllt/bboard/internal/paths"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr       = ":8080"
	DefaultBoardName        = "Summer"
	DefaultS3Region         = "us-east-1"
	DefaultRemoteTimeout    = 10 * time.Second
	StoreDriverFile         = "file"
	StoreDriverSQLite       = "sqlite"
	StoreDriverS3           = "s3"
	StoreDriverMemory       = "memory"
	envConfigPath           = "BBOARD_CONFIG"
	defaultConfigFileName   = "config.yaml"
	defaultStateDirName     = "state"
	defaultSQLiteFileSuffix = ".db"
)

type S3Config struct {
	Endpoint        string `yaml:"endpoint"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	Prefix          string `yaml:"prefix"`
	UsePathStyle    bool   `yaml:"use_path_style"`
	DisableChecksum bool   `yaml:"disable_checksum"`
}

type StoreConfig struct {
	Driver   string   `yaml:"driver"` // file, sqlite, s3 or memory
	Path     string   `yaml:"path"`
	Compress bool     `yaml:"compress"`
	S3       S3Config `yaml:"s3"`
}

type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

type RemoteConfig struct {
	// Source is a JSON file path or an http(s) URL. Empty disables remote boards.
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
}

type SyncConfig struct {
	// BaseURL of the sync service. Empty disables notifications.
	BaseURL string `yaml:"base_url"`
	// Timeout of 0 means outbound notifications never time out.
	Timeout time.Duration `yaml:"timeout"`
}

type DefaultBoardConfig struct {
	Name string `yaml:"name"`
	// Bundle is a JSONC card file; empty uses the built-in bundle.
	Bundle string `yaml:"bundle"`
}

type Config struct {
	Store        StoreConfig        `yaml:"store"`
	Server       ServerConfig       `yaml:"server"`
	Remote       RemoteConfig       `yaml:"remote"`
	Sync         SyncConfig         `yaml:"sync"`
	DefaultBoard DefaultBoardConfig `yaml:"default_board"`
}

func defaults() Config {
	return Config{
		Store: StoreConfig{
			Driver: StoreDriverFile,
			S3:     S3Config{Region: DefaultS3Region},
		},
		Server:       ServerConfig{Addr: DefaultServerAddr},
		Remote:       RemoteConfig{Timeout: DefaultRemoteTimeout},
		DefaultBoard: DefaultBoardConfig{Name: DefaultBoardName},
	}
}

// Path returns the config file location: BBOARD_CONFIG if set, otherwise
// config.yaml under the home directory.
func Path() string {
	if v := os.Getenv(envConfigPath); v != "" {
		return v
	}
	return filepath.Join(paths.Home(), defaultConfigFileName)
}

// Load reads configuration from path, or from Path() when path is empty.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path == "" {
		path = Path()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.normalize()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverFile
	}
	if c.Store.Path == "" {
		c.Store.Path = filepath.Join(paths.Home(), defaultStateDirName)
		if c.Store.Driver == StoreDriverSQLite {
			c.Store.Path += defaultSQLiteFileSuffix
		}
	}
	if c.Store.S3.Region == "" {
		c.Store.S3.Region = DefaultS3Region
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if strings.TrimSpace(c.DefaultBoard.Name) == "" {
		c.DefaultBoard.Name = DefaultBoardName
	}
	c.Sync.BaseURL = strings.TrimRight(strings.TrimSpace(c.Sync.BaseURL), "/")
	c.Remote.Source = strings.TrimSpace(c.Remote.Source)
}

// Validate checks settings that would otherwise fail late, when the store is opened.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverFile, StoreDriverSQLite, StoreDriverMemory:
	case StoreDriverS3:
		if c.Store.S3.Endpoint == "" || c.Store.S3.Bucket == "" {
			return errors.New("config: store.s3.endpoint and store.s3.bucket are required for the s3 driver")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Sync.Timeout < 0 || c.Remote.Timeout < 0 {
		return errors.New("config: timeouts must not be negative")
	}
	return nil
}
