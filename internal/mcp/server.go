package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/app"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/config"
	"github.com/HikmetCTK/Star-Seeker-mcp/pkg/version"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "StarSeeker"

// Server exposes Star-Seeker over the Model Context Protocol.
type Server struct {
	app    *app.App
	cfg    *config.Config
	logger *slog.Logger
	mcp    *mcp.Server
}

// NewServer creates the MCP server and registers its tools.
func NewServer(a *app.App, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		app:    a,
		cfg:    cfg,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		&mcp.ServerOptions{
			Instructions: cfg.Agent.SystemPrompt,
		},
	)
	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools registers the fetch and search tools.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "fetch_stars_for_user",
		Description: "Fetch or update the local database of starred repositories for a GitHub username. Run this before searching a user for the first time or to pick up newly starred repos.",
	}, s.fetchStarsHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_stars",
		Description: "Search a user's starred repositories by keyword or project idea. Uses hybrid semantic + keyword ranking when embeddings are available, keyword ranking otherwise.",
	}, s.searchStarsHandler)

	s.logger.Info("MCP tools registered", slog.Int("count", 2))
}

// Serve runs the server over stdio until the context is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server",
		slog.String("name", ServerName),
		slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped with error",
			slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped")
	return nil
}
