package server

import (
	"github.com/spf13/cobra"
)

var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the HTTP API",
}

func init() {
	ServerCmd.AddCommand(serveCmd)
}
