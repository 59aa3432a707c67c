// Package app assembles a board manager from configuration.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/bundle"
	"github.com/gmllt/bboard/internal/config"
	"github.com/gmllt/bboard/internal/paths"
	"github.com/gmllt/bboard/internal/remote"
	"github.com/gmllt/bboard/internal/store"
	"github.com/gmllt/bboard/internal/syncgw"
)

// KeyPeerID holds the identity this node announces to the sync service.
const KeyPeerID = "peer_id"

type App struct {
	Config  config.Config
	Store   store.Store
	Manager *board.Manager
	PeerID  string

	dispatcher *syncgw.Dispatcher
}

type Option func(*options)

type options struct {
	logger  *log.Logger
	confirm board.ConfirmFunc
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithConfirm installs the prompt shown before a board is deleted.
func WithConfirm(f board.ConfirmFunc) Option {
	return func(o *options) { o.confirm = f }
}

func Open(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := prepareStorePath(cfg.Store); err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &App{Config: cfg, Store: st}

	a.PeerID, err = peerID(ctx, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	src, err := remote.NewSource(cfg.Remote.Source, cfg.Remote.Timeout)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	mopts := []board.Option{
		board.WithLogger(o.logger),
		board.WithBundle(bundle.New(cfg.DefaultBoard.Bundle)),
		board.WithDefaultBoardName(cfg.DefaultBoard.Name),
		board.WithConfirm(o.confirm),
	}
	if src != nil {
		mopts = append(mopts, board.WithRemoteSource(src))
	}
	if cfg.Sync.BaseURL != "" {
		client := syncgw.NewClient(cfg.Sync.BaseURL, a.PeerID, cfg.Sync.Timeout)
		a.dispatcher = syncgw.NewDispatcher(client, o.logger)
		mopts = append(mopts, board.WithNotifier(a.dispatcher))
	}

	a.Manager, err = board.Open(ctx, st, mopts...)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

// Close stops sync notifications, waits for those pending and releases the store.
func (a *App) Close() error {
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}
	return a.Store.Close()
}

func prepareStorePath(cfg config.StoreConfig) error {
	var dir string
	switch cfg.Driver {
	case config.StoreDriverFile:
		dir = cfg.Path
	case config.StoreDriverSQLite:
		dir = filepath.Dir(cfg.Path)
	default:
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	return nil
}

func peerID(ctx context.Context, st store.Store) (string, error) {
	raw, ok, err := st.Get(ctx, KeyPeerID)
	if err != nil {
		return "", fmt.Errorf("load peer id: %w", err)
	}
	if id := strings.TrimSpace(string(raw)); ok && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := st.Put(ctx, KeyPeerID, []byte(id)); err != nil {
		return "", fmt.Errorf("save peer id: %w", err)
	}
	return id, nil
}

// Load reads the configuration file (see config.Path) and opens the app.
// The home directory is created on first use.
func Load(ctx context.Context, opts ...Option) (*App, error) {
	if _, err := paths.EnsureHome(); err != nil {
		return nil, fmt.Errorf("create home directory: %w", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg, opts...)
}
