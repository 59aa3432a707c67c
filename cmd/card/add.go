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
	flagAddTitle   string
	flagAddAuthor  string
	flagAddContent string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to a board",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		c, err := a.Manager.AddCard(ctx, boardID, board.CardInput{
			Title:   flagAddTitle,
			Author:  flagAddAuthor,
			Content: flagAddContent,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "card added id=%q board=%q\n", c.ID, boardID)
		return cliout.JSON(os.Stdout, c)
	},
}

func init() {
	addCmd.Flags().StringVar(&flagAddTitle, "title", "", "Card title (required)")
	addCmd.Flags().StringVar(&flagAddAuthor, "author", "", "Card author (required)")
	addCmd.Flags().StringVar(&flagAddContent, "content", "", "Card content (required)")
}
