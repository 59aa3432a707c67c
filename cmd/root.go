package cmd

import (
	"os"

	boardcmd "github.com/gmllt/bboard/cmd/board"
	cardcmd "github.com/gmllt/bboard/cmd/card"
	remotecmd "github.com/gmllt/bboard/cmd/remote"
	srvcmd "github.com/gmllt/bboard/cmd/server"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "bboard",
	Short: "Peer-to-peer bulletin board",
	Long:  "bboard keeps local bulletin boards and cards, lists boards advertised by peers and serves a JSON API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagConfig != "" {
			return os.Setenv("BBOARD_CONFIG", flagConfig)
		}
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.bboard/config.yaml)")
	rootCmd.AddCommand(boardcmd.BoardCmd)
	rootCmd.AddCommand(cardcmd.CardCmd)
	rootCmd.AddCommand(remotecmd.RemoteCmd)
	rootCmd.AddCommand(srvcmd.ServerCmd)
}
