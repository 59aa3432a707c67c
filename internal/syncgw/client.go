// Package syncgw notifies the peer sync service about local board and card
// changes. Delivery is fire and forget.
package syncgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gmllt/bboard/internal/board"
)

// Endpoint paths on the sync service.
const (
	PathRegisterBoard   = "/set_super_peer"
	PathUnregisterBoard = "/unregister_board"
	PathSaveCard        = "/save_card"
	PathUpdateCard      = "/update_card"
	PathDeleteCard      = "/delete_card"
)

type RegisterRequest struct {
	BoardID  string   `json:"board_id"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords"`
	PeerID   string   `json:"peer_id,omitempty"`
}

type UnregisterRequest struct {
	BoardID string `json:"board_id"`
	Title   string `json:"title"`
	PeerID  string `json:"peer_id,omitempty"`
}

type CardRequest struct {
	board.Card
	BoardID string `json:"board_id"`
}

type DeleteCardRequest struct {
	ID      string `json:"id"`
	BoardID string `json:"board_id"`
}

// Client posts JSON payloads to the sync service.
type Client struct {
	baseURL string
	peerID  string
	http    *http.Client
}

// NewClient returns a client for baseURL. A zero timeout means requests
// are never cut short.
func NewClient(baseURL, peerID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		peerID:  peerID,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) RegisterBoard(ctx context.Context, b board.Board) error {
	keywords := b.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return c.post(ctx, PathRegisterBoard, RegisterRequest{
		BoardID:  b.ID,
		Title:    b.Name,
		Keywords: keywords,
		PeerID:   c.peerID,
	})
}

func (c *Client) UnregisterBoard(ctx context.Context, b board.Board) error {
	return c.post(ctx, PathUnregisterBoard, UnregisterRequest{BoardID: b.ID, Title: b.Name, PeerID: c.peerID})
}

func (c *Client) SaveCard(ctx context.Context, boardID string, card board.Card) error {
	return c.post(ctx, PathSaveCard, CardRequest{Card: card, BoardID: boardID})
}

func (c *Client) UpdateCard(ctx context.Context, boardID string, card board.Card) error {
	return c.post(ctx, PathUpdateCard, CardRequest{Card: card, BoardID: boardID})
}

func (c *Client) DeleteCard(ctx context.Context, boardID, cardID string) error {
	return c.post(ctx, PathDeleteCard, DeleteCardRequest{ID: cardID, BoardID: boardID})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
	return nil
}
