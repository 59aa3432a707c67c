package remote

import (
	"github.com/spf13/cobra"
)

var RemoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Inspect boards advertised by peers",
}

func init() {
	RemoteCmd.AddCommand(refreshCmd)
}
