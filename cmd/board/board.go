package board

import (
	"github.com/spf13/cobra"
)

var BoardCmd = &cobra.Command{
	Use:   "board",
	Short: "Manage local boards and browse remote ones",
}

func init() {
	BoardCmd.AddCommand(createCmd)
	BoardCmd.AddCommand(listCmd)
	BoardCmd.AddCommand(deleteCmd)
	BoardCmd.AddCommand(switchCmd)
	BoardCmd.AddCommand(showCmd)
}
