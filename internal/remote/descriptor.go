// Package remote reads the list of boards advertised by other peers.
package remote

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/gmllt/bboard/internal/board"
)

//go:embed descriptors.schema.json
var descriptorSchemaText string

var descriptorSchema = jsonschema.MustCompileString("descriptors.schema.json", descriptorSchemaText)

// Descriptor is one advertised board. Peers publish either the short form
// (remote_id, title, host, port) or the registry form written by the
// bootstrap node (board_id, board_title, peer_host, peer_port).
type Descriptor struct {
	RemoteID   string   `json:"remote_id,omitempty"`
	Title      string   `json:"title,omitempty"`
	Host       string   `json:"host,omitempty"`
	Port       int      `json:"port,omitempty"`
	BoardID    string   `json:"board_id,omitempty"`
	BoardTitle string   `json:"board_title,omitempty"`
	PeerHost   string   `json:"peer_host,omitempty"`
	PeerPort   int      `json:"peer_port,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// shortForm reports whether the short-form locator is complete. A
// descriptor carrying a stray remote_id next to registry fields is read in
// registry form.
func (d Descriptor) shortForm() bool {
	return d.RemoteID != "" && d.Host != "" && d.Port > 0
}

// Board converts the descriptor into a read-only board stub.
func (d Descriptor) Board() board.Board {
	if d.shortForm() {
		return board.NewRemoteBoard(d.RemoteID, d.Title, d.Host, d.Port, d.Keywords)
	}
	return board.NewRemoteBoard(d.BoardID, d.BoardTitle, d.PeerHost, d.PeerPort, d.Keywords)
}

// ParseDescriptors validates data against the descriptor schema. Anything
// other than an array of complete descriptors is rejected as a whole.
func ParseDescriptors(data []byte) ([]Descriptor, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode descriptors: %w", err)
	}
	if err := descriptorSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid descriptors: %w", err)
	}
	var out []Descriptor
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode descriptors: %w", err)
	}
	return out, nil
}

// ParseBoards is ParseDescriptors followed by conversion to board stubs.
func ParseBoards(data []byte) ([]board.Board, error) {
	ds, err := ParseDescriptors(data)
	if err != nil {
		return nil, err
	}
	boards := make([]board.Board, 0, len(ds))
	for _, d := range ds {
		boards = append(boards, d.Board())
	}
	return boards, nil
}
