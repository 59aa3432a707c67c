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
	flagShowQuery  string
	flagShowOutput string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current board and its cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cliout.Format(flagShowOutput)
		if err != nil {
			return err
		}
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		a.Manager.RefreshRemoteBoards(ctx)
		if err := a.Manager.EnsureDefaultBoardSeeded(ctx); err != nil {
			return err
		}
		b, ok := a.Manager.CurrentBoard()
		if !ok {
			return fmt.Errorf("no current board")
		}
		a.Manager.SetCardQuery(flagShowQuery)
		cards := a.Manager.CurrentCards()
		if format == cliout.FormatJSON {
			b.Cards = cards
			return cliout.JSON(os.Stdout, b)
		}
		fmt.Fprintf(os.Stdout, "%s (%s, %s)\n", b.Name, b.ID, b.Origin)
		if b.IsRemote() {
			fmt.Fprintf(os.Stdout, "hosted by %s:%d\n", b.Host, b.Port)
		}
		cliout.Cards(os.Stdout, cards)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&flagShowQuery, "query", "q", "", "Only cards matching this text")
	showCmd.Flags().StringVar(&flagShowOutput, "output", "table", "Output format: table or json")
}
