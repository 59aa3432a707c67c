package card

import (
	"context"
	"strings"

	"github.com/gmllt/bboard/internal/app"
	"github.com/spf13/cobra"
)

var CardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, edit, delete and search cards",
}

var flagBoard string

func init() {
	CardCmd.PersistentFlags().StringVar(&flagBoard, "board", "", "Board id (default: current board)")
	CardCmd.AddCommand(addCmd)
	CardCmd.AddCommand(editCmd)
	CardCmd.AddCommand(deleteCmd)
	CardCmd.AddCommand(listCmd)
}

// targetBoard resolves --board, falling back to the current board. Remote
// boards are fetched first so that they resolve and are rejected as targets.
func targetBoard(ctx context.Context, a *app.App) string {
	a.Manager.RefreshRemoteBoards(ctx)
	if id := strings.TrimSpace(flagBoard); id != "" {
		return id
	}
	return a.Manager.CurrentBoardID()
}
