// Package cliout renders boards and cards for the command line.
package cliout

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/gmllt/bboard/internal/board"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Format normalizes an --output flag value.
func Format(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table or json)", s)
	}
}

func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Boards writes one row per board; the current board is marked with "*".
func Boards(w io.Writer, boards []board.Board, currentID string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"", "ID", "NAME", "ORIGIN", "CARDS", "PEER"})
	for _, b := range boards {
		mark := ""
		if b.ID == currentID {
			mark = "*"
		}
		peer := ""
		if b.Host != "" {
			peer = b.Host + ":" + strconv.Itoa(b.Port)
		}
		table.Append([]string{mark, b.ID, b.Name, string(b.Origin), strconv.Itoa(len(b.Cards)), peer})
	}
	table.Render()
}

func Cards(w io.Writer, cards []board.Card) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "TITLE", "AUTHOR", "CONTENT", "UPDATED", "VOTES"})
	for _, c := range cards {
		updated := ""
		if !c.Timestamp.IsZero() {
			updated = c.Timestamp.Format(time.RFC3339)
		}
		table.Append([]string{c.ID, c.Title, c.Author, c.Content, updated, strconv.Itoa(c.Votes)})
	}
	table.Render()
}
