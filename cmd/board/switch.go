package board

import (
	"context"
	"fmt"
	"os"

	"github.com/gmllt/bboard/internal/app"
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <id>",
	Short: "Make a board the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		// Remote boards are only known after a refresh.
		a.Manager.RefreshRemoteBoards(ctx)
		if err := a.Manager.SwitchCurrentBoard(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "current board id=%q\n", args[0])
		return nil
	},
}
