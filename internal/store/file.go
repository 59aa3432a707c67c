package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/klauspost/compress/zstd"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// File stores each key as its own file under a directory. With compression
// enabled entries are written as zstd frames with a .zst suffix.
type File struct {
	dir      string
	compress bool
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

func NewFile(dir string, compress bool) (*File, error) {
	if dir == "" {
		return nil, errors.New("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	f := &File{dir: dir, compress: compress}
	if compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("init zstd encoder: %w", err)
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			_ = enc.Close()
			return nil, fmt.Errorf("init zstd decoder: %w", err)
		}
		f.enc, f.dec = enc, dec
	}
	return f, nil
}

func (f *File) path(key string) string {
	name := key + ".json"
	if f.compress {
		name += ".zst"
	}
	return filepath.Join(f.dir, name)
}

func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	if !validKey.MatchString(key) {
		return nil, false, fmt.Errorf("invalid key %q", key)
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error reading %s: %w", key, err)
	}
	if f.compress {
		data, err = f.dec.DecodeAll(data, nil)
		if err != nil {
			return nil, false, fmt.Errorf("error decompressing %s: %w", key, err)
		}
	}
	return data, true, nil
}

// Put replaces the entry atomically through a temp file and rename.
func (f *File) Put(_ context.Context, key string, value []byte) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	if f.compress {
		value = f.enc.EncodeAll(value, nil)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("error saving %s: %w", key, err)
	}
	return nil
}

func (f *File) Close() error {
	if f.dec != nil {
		f.dec.Close()
	}
	if f.enc != nil {
		return f.enc.Close()
	}
	return nil
}
