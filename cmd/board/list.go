package board

import (
	"context"
	"fmt"
	"os"

	"github.com/gmllt/bboard/internal/app"
	"github.com/gmllt/bboard/internal/cliout"
	"github.com/spf13/cobra"
)

var (
	flagListQuery   string
	flagListOutput  string
	flagListRefresh bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List local boards followed by remote boards",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cliout.Format(flagListOutput)
		if err != nil {
			return err
		}
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		if flagListRefresh {
			a.Manager.RefreshRemoteBoards(ctx)
		}
		boards := a.Manager.SearchBoards(flagListQuery)
		fmt.Fprintf(os.Stderr, "boards: %d\n", len(boards))
		if format == cliout.FormatJSON {
			return cliout.JSON(os.Stdout, boards)
		}
		cliout.Boards(os.Stdout, boards, a.Manager.CurrentBoardID())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagListQuery, "query", "q", "", "Only boards whose name contains this text")
	listCmd.Flags().StringVar(&flagListOutput, "output", "table", "Output format: table or json")
	listCmd.Flags().BoolVar(&flagListRefresh, "refresh", true, "Fetch remote boards before listing")
}
