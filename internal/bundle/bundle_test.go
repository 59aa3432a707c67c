package bundle_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/bundle"
	"github.com/gmllt/bboard/internal/store"
)

func TestEmbedded(t *testing.T) {
	cards, err := bundle.Embedded{}.Cards(context.Background())
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if len(cards) != 3 {
		t.Fatalf("got %d cards", len(cards))
	}
	for _, c := range cards {
		if c.ID != "" || c.Title == "" {
			t.Errorf("unexpected card %+v", c)
		}
	}
}

func TestFileWithComments(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cards.jsonc")
	data := `[
  // first
  {"id": "keep-me", "title": "A", "author": "x", "content": "y", "votes": 4},
  {"title": "B", "author": "x", "content": "y", "comments": {"u1": {"text": "nice"}}},
]`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cards, err := bundle.New(p).Cards(context.Background())
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if len(cards) != 2 || cards[0].ID != "keep-me" || cards[0].Votes != 4 {
		t.Fatalf("cards = %+v", cards)
	}
	if _, ok := cards[1].Comments["u1"]; !ok {
		t.Errorf("comments lost: %+v", cards[1])
	}
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := (bundle.File{Path: filepath.Join(dir, "none")}).Cards(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
	p := filepath.Join(dir, "bad.jsonc")
	_ = os.WriteFile(p, []byte(`{"title":"not an array"}`), 0o644)
	if _, err := (bundle.File{Path: p}).Cards(context.Background()); err == nil {
		t.Error("expected error for non-array bundle")
	}
}

func TestSeedsDefaultBoard(t *testing.T) {
	ctx := context.Background()
	m, err := board.Open(ctx, store.NewMemory(), board.WithBundle(bundle.New("")))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.EnsureDefaultBoardSeeded(ctx); err != nil {
		t.Fatal(err)
	}
	cards := m.CurrentCards()
	if len(cards) != 3 {
		t.Fatalf("got %d cards", len(cards))
	}
	for i, want := range []string{"json-card-0", "json-card-1", "json-card-2"} {
		if cards[i].ID != want {
			t.Errorf("card %d id = %q, want %q", i, cards[i].ID, want)
		}
	}
}
