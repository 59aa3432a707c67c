package board

import (
	"encoding/json"
	"strings"
	"time"
)

type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

const (
	// DefaultBoardID identifies the board seeded from the bundled card list.
	DefaultBoardID = "board-default"

	localPrefix  = "board-"
	remotePrefix = "remote-"
)

type Card struct {
	ID        string                     `json:"id"`
	Title     string                     `json:"title"`
	Author    string                     `json:"author"`
	Content   string                     `json:"content"`
	Timestamp time.Time                  `json:"timestamp"`
	Votes     int                        `json:"votes"`
	Comments  map[string]json.RawMessage `json:"comments,omitempty"`
	Host      string                     `json:"host,omitempty"`
	Port      int                        `json:"port,omitempty"`
}

type Board struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Cards          []Card   `json:"cards"`
	Origin         Origin   `json:"origin"`
	SeedFromBundle bool     `json:"seed_from_bundle,omitempty"`
	Seeded         bool     `json:"seeded,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Host           string   `json:"host,omitempty"`
	Port           int      `json:"port,omitempty"`
}

// CardInput carries the user-editable fields of a card.
type CardInput struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

func (b Board) IsRemote() bool {
	return b.Origin == OriginRemote
}

// NewRemoteBoard builds a read-only stub for a board advertised by a peer.
// The id is namespaced so it can never collide with a local board id.
func NewRemoteBoard(remoteID, name, host string, port int, keywords []string) Board {
	return Board{
		ID:       remotePrefix + remoteID,
		Name:     name,
		Cards:    []Card{},
		Origin:   OriginRemote,
		Keywords: keywords,
		Host:     host,
		Port:     port,
	}
}

func (c Card) clone() Card {
	if c.Comments != nil {
		comments := make(map[string]json.RawMessage, len(c.Comments))
		for k, v := range c.Comments {
			comments[k] = v
		}
		c.Comments = comments
	}
	return c
}

func (b Board) clone() Board {
	cards := make([]Card, len(b.Cards))
	for i, c := range b.Cards {
		cards[i] = c.clone()
	}
	b.Cards = cards
	if b.Keywords != nil {
		b.Keywords = append([]string(nil), b.Keywords...)
	}
	return b
}

func (in CardInput) trimmed() CardInput {
	return CardInput{
		Title:   strings.TrimSpace(in.Title),
		Author:  strings.TrimSpace(in.Author),
		Content: strings.TrimSpace(in.Content),
	}
}

// KeywordsFromName derives registration tags from a board name: the distinct
// lower-cased words, in order of first appearance.
func KeywordsFromName(name string) []string {
	var out []string
	seen := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
