package mcp

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FetchStarsInput is the input schema for the fetch_stars_for_user tool.
type FetchStarsInput struct {
	Username string `json:"username" jsonschema:"the exact GitHub username to fetch starred repositories for"`
	Token    string `json:"token,omitempty" jsonschema:"optional GitHub personal access token to raise the rate limit"`
}

// FetchStarsOutput reports the outcome of a fetch.
type FetchStarsOutput struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
	Source  string `json:"source"`
}

// SearchStarsInput is the input schema for the search_stars tool.
type SearchStarsInput struct {
	Username string `json:"username" jsonschema:"the exact GitHub username whose stars to search"`
	Query    string `json:"query" jsonschema:"search terms or a project idea to find relevant repositories for"`
	Limit    int    `json:"limit,omitempty" jsonschema:"maximum results per query, default 5"`
}

// SearchStarsOutput carries the formatted ranking.
type SearchStarsOutput struct {
	Results string `json:"results"`
	Source  string `json:"source"`
}

func (s *Server) fetchStarsHandler(ctx context.Context, _ *mcp.CallToolRequest, input FetchStarsInput) (
	*mcp.CallToolResult,
	FetchStarsOutput,
	error,
) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, FetchStarsOutput{}, NewInvalidParamsError("username parameter is required")
	}

	start := time.Now()
	res, err := s.app.FetchStars(ctx, username, input.Token)
	if err != nil {
		return nil, FetchStarsOutput{}, MapError(err)
	}

	s.logger.Info("fetch_stars_for_user completed",
		slog.String("username", username),
		slog.Int("count", res.Count),
		slog.Duration("duration", time.Since(start)))

	return nil, FetchStarsOutput{
		Message: FormatFetchResult(username, res.Count, res.Source),
		Count:   res.Count,
		Source:  res.Source,
	}, nil
}

func (s *Server) searchStarsHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchStarsInput) (
	*mcp.CallToolResult,
	SearchStarsOutput,
	error,
) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, SearchStarsOutput{}, NewInvalidParamsError("username parameter is required")
	}
	if strings.TrimSpace(input.Query) == "" {
		return nil, SearchStarsOutput{}, NewInvalidParamsError("query parameter is required")
	}

	start := time.Now()
	intents, source, err := s.app.Search(ctx, username, input.Query, input.Limit)
	if err != nil {
		return nil, SearchStarsOutput{}, MapError(err)
	}

	s.logger.Info("search_stars completed",
		slog.String("username", username),
		slog.String("query", input.Query),
		slog.String("source", source),
		slog.Duration("duration", time.Since(start)))

	return nil, SearchStarsOutput{
		Results: FormatSearchResults(intents, source),
		Source:  source,
	}, nil
}
