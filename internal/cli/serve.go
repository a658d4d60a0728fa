package cli

import (
	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/config"
	"github.com/contextmem/contextmem/internal/logger"
	"github.com/contextmem/contextmem/internal/server"
	"github.com/contextmem/contextmem/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the memory tools over MCP stdio",
		Long:  "Serve the memory tools over MCP: one JSON-RPC object per line on stdin/stdout. Logs go to stderr.",
		Run:   runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.New()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	log := logger.New(cfg.ServerName, cfg.LogLevel)

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		exitErr("open store", err)
	}
	defer st.Close()

	srv := server.New(st, cfg, log)
	if err := srv.Serve(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		exitErr("serve", err)
	}
}
