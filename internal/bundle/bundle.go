// Package bundle loads the static card list the default board is seeded
// from. Card files are JSON with comments and trailing commas allowed.
package bundle

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/gmllt/bboard/internal/board"
)

//go:embed cards.jsonc
var defaultCards []byte

// Parse decodes a JSONC array of cards.
func Parse(data []byte) ([]board.Card, error) {
	var cards []board.Card
	if err := json.Unmarshal(jsonc.ToJSON(data), &cards); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return cards, nil
}

// Embedded serves the cards compiled into the binary.
type Embedded struct{}

func (Embedded) Cards(context.Context) ([]board.Card, error) {
	return Parse(defaultCards)
}

// File reads cards from a JSONC file on every call.
type File struct {
	Path string
}

func (f File) Cards(context.Context) ([]board.Card, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return Parse(data)
}

// New returns the file bundle at path, or the embedded one when path is empty.
func New(path string) board.Bundle {
	if path == "" {
		return Embedded{}
	}
	return File{Path: path}
}
