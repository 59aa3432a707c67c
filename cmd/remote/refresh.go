package remote

import (
	"context"
	"fmt"
	"os"

	"github.com/gmllt/bboard/internal/app"
	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/cliout"
	"github.com/spf13/cobra"
)

var flagRefreshOutput string

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Fetch the remote board list and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cliout.Format(flagRefreshOutput)
		if err != nil {
			return err
		}
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		if a.Config.Remote.Source == "" {
			fmt.Fprintln(os.Stderr, "remote.source is not configured; no remote boards")
		}
		n := a.Manager.RefreshRemoteBoards(ctx)
		fmt.Fprintf(os.Stderr, "remote boards: %d\n", n)
		var remote []board.Board
		for _, b := range a.Manager.Boards() {
			if b.IsRemote() {
				remote = append(remote, b)
			}
		}
		if format == cliout.FormatJSON {
			if remote == nil {
				remote = []board.Board{}
			}
			return cliout.JSON(os.Stdout, remote)
		}
		cliout.Boards(os.Stdout, remote, a.Manager.CurrentBoardID())
		return nil
	},
}

func init() {
	refreshCmd.Flags().StringVar(&flagRefreshOutput, "output", "table", "Output format: table or json")
}
