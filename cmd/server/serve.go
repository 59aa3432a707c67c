package server

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gmllt/bboard/internal/api"
	"github.com/gmllt/bboard/internal/app"
	"github.com/gmllt/bboard/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagServeAddr   string
	flagServeStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board API (and optional static files) until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		if flagServeAddr != "" {
			cfg.Server.Addr = flagServeAddr
		}
		if flagServeStatic != "" {
			cfg.Server.StaticDir = flagServeStatic
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// The HTTP API confirms deletions with ?confirm=true, so no prompt.
		a, err := app.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if n := a.Manager.RefreshRemoteBoards(ctx); n > 0 {
			log.Printf("Loaded %d remote boards", n)
		}
		router := api.NewRouter(a.Manager, cfg.Server.StaticDir, log.Default())
		return api.ListenAndServe(ctx, cfg.Server.Addr, router, log.Default())
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&flagServeStatic, "static", "", "Directory of static files served outside /api")
}
