package card

import (
	"context"
	"fmt"
	"os"

	"github.com/gmllt/bboard/internal/app"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a card; deleting a missing card is not an error",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		boardID := targetBoard(ctx, a)
		if err := a.Manager.DeleteCard(ctx, boardID, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "card deleted id=%q board=%q\n", args[0], boardID)
		return nil
	},
}
