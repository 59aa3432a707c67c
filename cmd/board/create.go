package board

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gmllt/bboard/internal/app"
	"github.com/gmllt/bboard/internal/cliout"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a local board and make it current",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := app.Load(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		b, err := a.Manager.CreateBoard(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "board created id=%q\n", b.ID)
		return cliout.JSON(os.Stdout, b)
	},
}
