package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/search"
	"github.com/HikmetCTK/Star-Seeker-mcp/pkg/version"
)

type fetchRequest struct {
	Token string `json:"token"`
}

type searchResponse struct {
	Username string                `json:"username"`
	Source   string                `json:"source"`
	Results  []search.IntentResult `json:"results"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var body fetchRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.writeError(w, seekererrors.New(seekererrors.ErrCodeInvalidInput,
				"invalid request body", err))
			return
		}
	}

	res, err := s.app.FetchStars(r.Context(), username, body.Token)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, seekererrors.New(seekererrors.ErrCodeQueryEmpty,
			"query parameter q is required", nil))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, seekererrors.New(seekererrors.ErrCodeInvalidInput,
				"limit must be a non-negative integer", err))
			return
		}
		limit = n
	}

	intents, source, err := s.app.Search(r.Context(), username, query, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Username: username,
		Source:   source,
		Results:  intents,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Metrics())
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := s.app.Sessions()
	if sessions == nil {
		sessions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": sessions})
}

// writeError maps structured errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{
		Code:    seekererrors.ErrCodeInternal,
		Message: "internal server error",
	}

	var se *seekererrors.SeekerError
	if errors.As(err, &se) {
		body.Code = se.Code
		body.Message = se.Message
		body.Suggestion = se.Suggestion

		switch se.Code {
		case seekererrors.ErrCodeInvalidInput, seekererrors.ErrCodeInvalidUsername, seekererrors.ErrCodeQueryEmpty:
			status = http.StatusBadRequest
		case seekererrors.ErrCodeStarsNotFound:
			status = http.StatusNotFound
		case seekererrors.ErrCodeRateLimited:
			status = http.StatusTooManyRequests
		case seekererrors.ErrCodeGitHubAPI, seekererrors.ErrCodeProviderFailure:
			status = http.StatusBadGateway
		case seekererrors.ErrCodeNetworkTimeout:
			status = http.StatusGatewayTimeout
		}
	}

	s.logger.Warn("request failed",
		slog.String("code", body.Code),
		slog.Int("status", status),
		slog.String("error", err.Error()))

	writeJSON(w, status, errorResponse{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
