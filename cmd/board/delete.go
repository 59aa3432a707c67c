package board

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gmllt/bboard/internal/app"
	model "github.com/gmllt/bboard/internal/board"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagDelForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a local board (asks for confirmation unless --force)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := strings.TrimSpace(args[0])
		opts := []app.Option{}
		if !flagDelForce {
			opts = append(opts, app.WithConfirm(confirmOnTerminal))
		}
		ctx := context.Background()
		a, err := app.Load(ctx, opts...)
		if err != nil {
			return err
		}
		defer a.Close()
		a.Manager.RefreshRemoteBoards(ctx)
		if _, ok := a.Manager.Board(id); !ok {
			fmt.Fprintf(os.Stderr, "board %q not found; nothing to delete\n", id)
			return nil
		}
		if err := a.Manager.DeleteBoard(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "board deleted id=%q current=%q\n", id, a.Manager.CurrentBoardID())
		return nil
	},
}

// confirmOnTerminal asks the user to type the board name. Without a
// terminal on stdin there is nobody to ask, so deletion is declined.
func confirmOnTerminal(b model.Board) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal; use --force to delete without confirmation")
		return false
	}
	fmt.Fprintf(os.Stderr, "About to delete board %q with %d cards.\n", b.Name, len(b.Cards))
	fmt.Fprint(os.Stderr, "Type the board name to confirm: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line) == b.Name
}

func init() {
	deleteCmd.Flags().BoolVar(&flagDelForce, "force", false, "Do not prompt for confirmation")
}
