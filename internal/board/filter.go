package board

import "strings"

// FilterBoards keeps the boards whose name contains query, ignoring case.
// A blank query keeps every board. Relative order is preserved.
func FilterBoards(boards []Board, query string) []Board {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Board, 0, len(boards))
	for _, b := range boards {
		if q == "" || strings.Contains(strings.ToLower(b.Name), q) {
			out = append(out, b)
		}
	}
	return out
}

// FilterCards keeps the cards whose title, author or content contains query,
// ignoring case.
func FilterCards(cards []Card, query string) []Card {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if q == "" || cardMatches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func cardMatches(c Card, q string) bool {
	return strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Author), q) ||
		strings.Contains(strings.ToLower(c.Content), q)
}
