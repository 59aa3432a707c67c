package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gmllt/bboard/internal/board"
)

const maxPayload = 4 << 20

// FileSource reads descriptors from a JSON file, typically the
// received_boards.json a peer node writes after a bootstrap exchange.
type FileSource struct {
	Path string
}

func (s FileSource) Boards(_ context.Context) ([]board.Board, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ParseBoards(data)
}

// HTTPSource fetches descriptors with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Boards(ctx context.Context) ([]board.Board, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.URL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.URL, err)
	}
	return ParseBoards(data)
}

// NewSource picks an HTTP or file source from location. An empty location
// yields a nil source, which disables remote boards.
func NewSource(location string, timeout time.Duration) (board.RemoteSource, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, timeout), nil
	case strings.Contains(location, "://"):
		return nil, errors.New("remote: unsupported source scheme in " + location)
	default:
		return FileSource{Path: location}, nil
	}
}
