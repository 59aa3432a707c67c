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
	flagEditTitle   string
	flagEditAuthor  string
	flagEditContent string
)

var editCmd = &cobra.Command{
	Use:   "edit <card-id>",
	Short: "Edit a card; omitted fields keep their value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		boardID := targetBoard(ctx, a)
		b, ok := a.Manager.Board(boardID)
		if !ok {
			return fmt.Errorf("%w: board %q", board.ErrNotFound, boardID)
		}
		in := board.CardInput{}
		for _, c := range b.Cards {
			if c.ID == args[0] {
				in = board.CardInput{Title: c.Title, Author: c.Author, Content: c.Content}
			}
		}
		if cmd.Flags().Changed("title") {
			in.Title = flagEditTitle
		}
		if cmd.Flags().Changed("author") {
			in.Author = flagEditAuthor
		}
		if cmd.Flags().Changed("content") {
			in.Content = flagEditContent
		}
		c, err := a.Manager.EditCard(ctx, boardID, args[0], in)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "card updated id=%q\n", c.ID)
		return cliout.JSON(os.Stdout, c)
	},
}

func init() {
	editCmd.Flags().StringVar(&flagEditTitle, "title", "", "New title")
	editCmd.Flags().StringVar(&flagEditAuthor, "author", "", "New author")
	editCmd.Flags().StringVar(&flagEditContent, "content", "", "New content")
}
