// Package mcp implements the Model Context Protocol server for
// Star-Seeker: tools for fetching and searching starred repositories.
package mcp

import (
	"context"
	"errors"
	"fmt"

	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
)

// Custom MCP error codes for Star-Seeker.
const (
	// ErrCodeStarsNotFound indicates no star data exists for the user.
	ErrCodeStarsNotFound = -32001

	// ErrCodeUpstream indicates the GitHub API rejected the request.
	ErrCodeUpstream = -32002

	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeInvalidParams = -32602
	ErrCodeInternalError = -32603
)

// MCPError is an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP protocol errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var se *seekererrors.SeekerError
	if errors.As(err, &se) {
		switch se.Code {
		case seekererrors.ErrCodeStarsNotFound:
			return &MCPError{
				Code:    ErrCodeStarsNotFound,
				Message: fmt.Sprintf("%s. Run fetch_stars_for_user first.", se.Message),
			}
		case seekererrors.ErrCodeInvalidUsername, seekererrors.ErrCodeInvalidInput, seekererrors.ErrCodeQueryEmpty:
			return &MCPError{Code: ErrCodeInvalidParams, Message: se.Message}
		case seekererrors.ErrCodeGitHubAPI, seekererrors.ErrCodeRateLimited, seekererrors.ErrCodeNetworkTimeout:
			return &MCPError{Code: ErrCodeUpstream, Message: se.Message}
		}
		return &MCPError{Code: ErrCodeInternalError, Message: se.Message}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	}
	return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
}

// NewInvalidParamsError creates an invalid-parameters error with a
// custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}
