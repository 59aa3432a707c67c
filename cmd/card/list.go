package card

import (
	"context"
	"fmt"
	"os"

	"github.com/gmllt/bboard/internal/app"
	"github.com/gmllt/bboard/internal/board"
	"github.com/gmllt/bboard/internal/cliout"
	"github.com/spf13/cobra"
)

var (
	flagListQuery  string
	flagListOutput string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cards of a board, optionally filtered",
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
		boardID := targetBoard(ctx, a)
		if err := a.Manager.EnsureDefaultBoardSeeded(ctx); err != nil {
			return err
		}
		b, ok := a.Manager.Board(boardID)
		if !ok {
			return fmt.Errorf("%w: board %q", board.ErrNotFound, boardID)
		}
		cards := board.FilterCards(b.Cards, flagListQuery)
		fmt.Fprintf(os.Stderr, "cards: %d\n", len(cards))
		if format == cliout.FormatJSON {
			return cliout.JSON(os.Stdout, cards)
		}
		cliout.Cards(os.Stdout, cards)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&flagListQuery, "query", "q", "", "Only cards whose title, author or content contains this text")
	listCmd.Flags().StringVar(&flagListOutput, "output", "table", "Output format: table or json")
}
