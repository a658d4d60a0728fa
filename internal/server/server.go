// Package server exposes the memory store over MCP: newline-delimited
// JSON-RPC on stdin/stdout.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/contextmem/contextmem/internal/config"
	"github.com/contextmem/contextmem/internal/prompt"
	"github.com/contextmem/contextmem/internal/store"
	"github.com/contextmem/contextmem/internal/summary"
)

// Server wires the core components behind the MCP tool surface.
type Server struct {
	store      store.Store
	summarizer *summary.Summarizer
	crafter    *prompt.Crafter
	cfg        *config.Config
	log        zerolog.Logger
}

// New builds a Server around an open store. The store's lifetime is
// owned by the caller.
func New(st store.Store, cfg *config.Config, log zerolog.Logger) *Server {
	sum := summary.New(st)
	return &Server{
		store:      st,
		summarizer: sum,
		crafter:    prompt.New(sum, cfg.PromptMaxMemories),
		cfg:        cfg,
		log:        log,
	}
}

// Serve registers the tools and serves the stdio transport until the
// client closes the stream.
func (s *Server) Serve() error {
	mcpServer := server.NewMCPServer(
		s.cfg.ServerName,
		s.cfg.ServerVersion,
		server.WithToolCapabilities(true),
	)
	s.RegisterTools(mcpServer)

	s.log.Info().
		Str("name", s.cfg.ServerName).
		Str("version", s.cfg.ServerVersion).
		Msg("starting memory server (stdio transport)")

	return server.ServeStdio(mcpServer)
}
