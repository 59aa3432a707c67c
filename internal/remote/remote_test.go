package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/remote"
	"github.com/gmllt/bboard/internal/store"
)

func TestParseBoardsShortForm(t *testing.T) {
	boards, err := remote.ParseBoards([]byte(`[{"remote_id":"x42","title":"Neighbors","host":"10.0.0.2","port":9000}]`))
	if err != nil {
		t.Fatalf("ParseBoards: %v", err)
	}
	if len(boards) != 1 {
		t.Fatalf("got %d boards", len(boards))
	}
	b := boards[0]
	if b.ID != "remote-x42" || b.Name != "Neighbors" || !b.IsRemote() {
		t.Errorf("board = %+v", b)
	}
	if b.Host != "10.0.0.2" || b.Port != 9000 || len(b.Cards) != 0 {
		t.Errorf("locator/cards = %+v", b)
	}
}

func TestParseBoardsRegistryForm(t *testing.T) {
	data := `[{"board_id":"b7","board_title":"yolo","peer_host":"127.0.0.1","peer_port":8003,"keywords":["fun","chat"]}]`
	boards, err := remote.ParseBoards([]byte(data))
	if err != nil {
		t.Fatalf("ParseBoards: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != "remote-b7" || boards[0].Name != "yolo" || boards[0].Port != 8003 {
		t.Fatalf("boards = %+v", boards)
	}
	if len(boards[0].Keywords) != 2 {
		t.Errorf("keywords = %v", boards[0].Keywords)
	}
}

func TestParseBoardsMixedFormUsesCompleteLocator(t *testing.T) {
	data := `[{"remote_id":"stray","board_id":"b7","board_title":"yolo","peer_host":"127.0.0.1","peer_port":8003}]`
	boards, err := remote.ParseBoards([]byte(data))
	if err != nil {
		t.Fatalf("ParseBoards: %v", err)
	}
	b := boards[0]
	if b.ID != "remote-b7" || b.Name != "yolo" || b.Host != "127.0.0.1" || b.Port != 8003 {
		t.Errorf("board = %+v", b)
	}
}

func TestParseBoardsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"object", `{"remote_id":"x","title":"t","host":"h","port":1}`},
		{"missing host", `[{"remote_id":"x","title":"t","port":1}]`},
		{"port as string", `[{"remote_id":"x","title":"t","host":"h","port":"80"}]`},
		{"one bad entry", `[{"remote_id":"x","title":"t","host":"h","port":1},{"title":"y"}]`},
	}
	for _, tt := range tests {
		if _, err := remote.ParseBoards([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseBoardsKeepsDuplicates(t *testing.T) {
	data := `[{"remote_id":"x","title":"a","host":"h","port":1},{"remote_id":"x","title":"b","host":"h","port":2}]`
	boards, err := remote.ParseBoards([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(boards) != 2 {
		t.Errorf("got %d boards, want 2", len(boards))
	}
}

func TestFileSource(t *testing.T) {
	p := filepath.Join(t.TempDir(), "received_boards.json")
	if err := os.WriteFile(p, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	boards, err := remote.FileSource{Path: p}.Boards(context.Background())
	if err != nil || len(boards) != 0 {
		t.Errorf("Boards = %v, %v", boards, err)
	}
	if _, err := (remote.FileSource{Path: p + ".missing"}).Boards(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/boards":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"remote_id":"x42","title":"Neighbors","host":"10.0.0.2","port":9000}]`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	src := remote.NewHTTPSource(srv.URL+"/boards", time.Second)
	boards, err := src.Boards(context.Background())
	if err != nil || len(boards) != 1 || boards[0].Name != "Neighbors" {
		t.Fatalf("Boards = %v, %v", boards, err)
	}

	bad := remote.NewHTTPSource(srv.URL+"/broken", time.Second)
	if _, err := bad.Boards(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestNewSource(t *testing.T) {
	if s, err := remote.NewSource("", time.Second); err != nil || s != nil {
		t.Errorf("empty location = %v, %v", s, err)
	}
	if s, _ := remote.NewSource("https://peer.example/boards", time.Second); s == nil {
		t.Error("expected HTTP source")
	} else if _, ok := s.(*remote.HTTPSource); !ok {
		t.Errorf("source type = %T", s)
	}
	if s, _ := remote.NewSource("data/received_boards.json", 0); s == nil {
		t.Error("expected file source")
	} else if _, ok := s.(remote.FileSource); !ok {
		t.Errorf("source type = %T", s)
	}
	if _, err := remote.NewSource("ftp://x", 0); err == nil {
		t.Error("expected error for ftp")
	}
}

func TestRefreshThroughManager(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"remote_id":"x42","title":"Neighbors","host":"10.0.0.2","port":9000}]`))
	}))
	defer srv.Close()

	m, err := board.Open(context.Background(), store.NewMemory(), board.WithRemoteSource(remote.NewHTTPSource(srv.URL, time.Second)))
	if err != nil {
		t.Fatal(err)
	}
	if n := m.RefreshRemoteBoards(context.Background()); n != 1 {
		t.Fatalf("refresh = %d", n)
	}
	all := m.Boards()
	if last := all[len(all)-1]; last.ID != "remote-x42" {
		t.Errorf("last board = %+v", last)
	}
}
