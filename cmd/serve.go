package cmd

import (
	"github.com/spf13/cobra"

	"shopee-scraper/config"
	"shopee-scraper/server"
	"shopee-scraper/utils"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := utils.NewLogger()
		cfg := config.Load()
		if servePort > 0 {
			cfg.ServerPort = servePort
		}
		return server.New(cfg, logger).Run()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides SERVER_PORT)")
}
