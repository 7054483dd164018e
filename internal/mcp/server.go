package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/typejuice/internal/config"
	"github.com/mvp-joe/typejuice/internal/include"
	"github.com/mvp-joe/typejuice/internal/parsers"
)

const serverName = "typejuice-mcp"

// Server manages the MCP server lifecycle.
type Server struct {
	typeRoot string
	cache    *include.RenderCache
	mcp      *server.MCPServer
}

// NewServer creates an MCP server exposing the render and extract tools over
// the configured type root.
func NewServer(cfg *config.Config, version string) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	parser := parsers.NewTypeScriptParser()
	cache, err := include.NewRenderCache(cfg.Cache.Capacity, parser)
	if err != nil {
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)

	AddRenderTool(mcpServer, cache, cfg.Paths.TypeRoot)
	AddExtractTool(mcpServer, parser, cfg.Paths.TypeRoot)

	return &Server{
		typeRoot: cfg.Paths.TypeRoot,
		cache:    cache,
		mcp:      mcpServer,
	}, nil
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio (type root %s)...", s.typeRoot)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	return nil
}
