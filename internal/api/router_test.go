package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gmllt/bboard/internal/api"
	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/bundle"
	"github.com/gmllt/bboard/internal/remote"
	"github.com/gmllt/bboard/internal/store"
)

type staticSource []board.Board

func (s staticSource) Boards(context.Context) ([]board.Board, error) { return s, nil }

func newServer(t *testing.T, opts ...board.Option) (*board.Manager, *httptest.Server) {
	t.Helper()
	opts = append(opts, board.WithLogger(log.New(io.Discard, "", 0)))
	m, err := board.Open(context.Background(), store.NewMemory(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api.NewRouter(m, "", log.New(io.Discard, "", 0)))
	t.Cleanup(srv.Close)
	return m, srv
}

func do(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestBoardLifecycle(t *testing.T) {
	m, srv := newServer(t)

	var created board.Board
	if code := do(t, "POST", srv.URL+"/api/boards", `{"name":"Chess"}`, &created); code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}
	if created.Name != "Chess" || m.CurrentBoardID() != created.ID {
		t.Errorf("created = %+v, current = %s", created, m.CurrentBoardID())
	}
	if code := do(t, "POST", srv.URL+"/api/boards", `{"name":"  "}`, nil); code != http.StatusBadRequest {
		t.Errorf("empty name = %d", code)
	}

	var boards []board.Board
	do(t, "GET", srv.URL+"/api/boards?q=ch", "", &boards)
	if len(boards) != 1 || boards[0].ID != created.ID {
		t.Errorf("search = %+v", boards)
	}

	if code := do(t, "PUT", srv.URL+"/api/boards/current", `{"id":"board-default"}`, nil); code != http.StatusNoContent {
		t.Errorf("switch = %d", code)
	}
	if code := do(t, "PUT", srv.URL+"/api/boards/current", `{"id":"board-nope"}`, nil); code != http.StatusNotFound {
		t.Errorf("switch unknown = %d", code)
	}

	if code := do(t, "DELETE", srv.URL+"/api/boards/"+created.ID, "", nil); code != http.StatusConflict {
		t.Errorf("unconfirmed delete = %d", code)
	}
	if code := do(t, "DELETE", srv.URL+"/api/boards/"+created.ID+"?confirm=true", "", nil); code != http.StatusNoContent {
		t.Errorf("delete = %d", code)
	}
	if code := do(t, "DELETE", srv.URL+"/api/boards/board-default?confirm=true", "", nil); code != http.StatusForbidden {
		t.Errorf("delete last board = %d", code)
	}
	if code := do(t, "DELETE", srv.URL+"/api/boards/board-gone", "", nil); code != http.StatusNoContent {
		t.Errorf("delete unknown = %d", code)
	}
}

func TestDeleteLastBoardIsForbiddenWithoutConfirm(t *testing.T) {
	_, srv := newServer(t)
	if code := do(t, "DELETE", srv.URL+"/api/boards/board-default", "", nil); code != http.StatusForbidden {
		t.Errorf("delete last board without confirm = %d, want 403", code)
	}
}

func TestCardLifecycle(t *testing.T) {
	m, srv := newServer(t)
	b, _ := m.CreateBoard(context.Background(), "Garden")
	base := srv.URL + "/api/boards/" + b.ID + "/cards"

	if code := do(t, "POST", base, `{"title":"Hi","author":"Ana","content":""}`, nil); code != http.StatusBadRequest {
		t.Errorf("invalid card = %d", code)
	}
	var c board.Card
	if code := do(t, "POST", base, `{"title":" Tomatoes ","author":"Ana","content":"Plant in May"}`, &c); code != http.StatusCreated {
		t.Fatalf("add = %d", code)
	}
	if c.ID == "" || c.Title != "Tomatoes" || c.Votes != 0 {
		t.Errorf("card = %+v", c)
	}

	var edited board.Card
	if code := do(t, "PUT", base+"/"+c.ID, `{"title":"Tomatoes","author":"Ana","content":"Plant in June"}`, &edited); code != http.StatusOK {
		t.Fatalf("edit = %d", code)
	}
	if edited.ID != c.ID || edited.Content != "Plant in June" {
		t.Errorf("edited = %+v", edited)
	}
	if code := do(t, "PUT", base+"/missing", `{"title":"a","author":"b","content":"c"}`, nil); code != http.StatusNotFound {
		t.Errorf("edit missing = %d", code)
	}

	var cards []board.Card
	do(t, "GET", base+"?q=june", "", &cards)
	if len(cards) != 1 {
		t.Errorf("filtered cards = %+v", cards)
	}

	for i := 0; i < 2; i++ {
		if code := do(t, "DELETE", base+"/"+c.ID, "", nil); code != http.StatusNoContent {
			t.Errorf("delete #%d = %d", i, code)
		}
	}
	do(t, "GET", base, "", &cards)
	if len(cards) != 0 {
		t.Errorf("cards after delete = %+v", cards)
	}
}

func TestCurrentBoardSeedsDefault(t *testing.T) {
	_, srv := newServer(t, board.WithBundle(bundle.Embedded{}))

	var cur board.Board
	if code := do(t, "GET", srv.URL+"/api/boards/current", "", &cur); code != http.StatusOK {
		t.Fatalf("current = %d", code)
	}
	if cur.ID != board.DefaultBoardID || len(cur.Cards) != 3 || cur.Cards[0].ID != "json-card-0" {
		t.Errorf("current = %+v", cur)
	}

	var cards []board.Card
	do(t, "PUT", srv.URL+"/api/boards/current/query", `{"query":"search"}`, &cards)
	if len(cards) != 1 || cards[0].Title != "Search" {
		t.Errorf("queried cards = %+v", cards)
	}
	do(t, "GET", srv.URL+"/api/boards/current/cards", "", &cards)
	if len(cards) != 1 {
		t.Errorf("current cards = %+v", cards)
	}
}

func TestRemoteBoardsAreReadOnly(t *testing.T) {
	src := staticSource{board.NewRemoteBoard("x42", "Neighbors", "10.0.0.2", 9000, nil)}
	_, srv := newServer(t, board.WithRemoteSource(src))

	var res struct {
		RemoteBoards int `json:"remote_boards"`
	}
	if code := do(t, "POST", srv.URL+"/api/remote/refresh", "", &res); code != http.StatusOK || res.RemoteBoards != 1 {
		t.Fatalf("refresh = %d %+v", code, res)
	}
	if code := do(t, "POST", srv.URL+"/api/boards/remote-x42/cards", `{"title":"a","author":"b","content":"c"}`, nil); code != http.StatusForbidden {
		t.Errorf("add to remote = %d", code)
	}
	if code := do(t, "DELETE", srv.URL+"/api/boards/remote-x42?confirm=true", "", nil); code != http.StatusForbidden {
		t.Errorf("delete remote = %d", code)
	}
	var boards []board.Board
	do(t, "GET", srv.URL+"/api/boards", "", &boards)
	if len(boards) != 2 || boards[1].ID != "remote-x42" {
		t.Errorf("boards = %+v", boards)
	}
}

func TestRemoteRefreshFromFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "received_boards.json")
	if err := os.WriteFile(p, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, srv := newServer(t, board.WithRemoteSource(remote.FileSource{Path: p}))

	var res map[string]int
	if code := do(t, "POST", srv.URL+"/api/remote/refresh", "", &res); code != http.StatusOK || res["remote_boards"] != 0 {
		t.Errorf("refresh = %d %v", code, res)
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>board</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := board.Open(context.Background(), store.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(api.NewRouter(m, dir, log.New(io.Discard, "", 0)))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/index.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "board") {
		t.Errorf("static = %d %s", resp.StatusCode, body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{board.ErrValidation, http.StatusBadRequest},
		{board.ErrForbidden, http.StatusForbidden},
		{board.ErrNotFound, http.StatusNotFound},
		{board.ErrCanceled, http.StatusConflict},
		{board.ErrStorage, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := api.StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
