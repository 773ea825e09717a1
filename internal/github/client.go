// Package github fetches a user's starred repositories from the GitHub
// REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"

	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
)

const (
	// DefaultAPIBase is the public GitHub API endpoint.
	DefaultAPIBase = "https://api.github.com"

	// DefaultStarThreshold drops repositories below this stargazer
	// count to keep the search corpus free of throwaway repos.
	DefaultStarThreshold = 10

	// DefaultMaxPages caps pagination at 5000 stars so a huge account
	// cannot exhaust the rate limit in one fetch.
	DefaultMaxPages = 50

	// perPage is the GitHub API maximum.
	perPage = 100

	defaultTimeout = 30 * time.Second
)

// usernamePattern is GitHub's login rule: alphanumeric with single
// interior hyphens, no leading or trailing hyphen.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:-?[a-zA-Z0-9]){0,38}$`)

// starredRepo is the subset of the GitHub starred-repository payload
// that survives into the local store.
type starredRepo struct {
	FullName        string   `json:"full_name"`
	Language        string   `json:"language"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	StargazersCount int      `json:"stargazers_count"`
	Topics          []string `json:"topics"`
}

// Client fetches starred repositories with paging and star filtering.
type Client struct {
	apiBase       string
	token         string
	starThreshold int
	maxPages      int
	httpClient    *http.Client
	logger        *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the personal access token used for authenticated
// requests. Unauthenticated fetches work but rate-limit quickly.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithAPIBase overrides the API endpoint, mainly for GitHub Enterprise
// and tests.
func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		if base != "" {
			c.apiBase = base
		}
	}
}

// WithStarThreshold sets the minimum stargazer count for inclusion.
func WithStarThreshold(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.starThreshold = n
		}
	}
}

// WithMaxPages caps how many pages one fetch may request.
func WithMaxPages(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithClientLogger sets the client logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a GitHub client with default paging and filtering.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		apiBase:       DefaultAPIBase,
		starThreshold: DefaultStarThreshold,
		maxPages:      DefaultMaxPages,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValidateUsername reports whether the string is a well-formed GitHub
// login.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return seekererrors.New(seekererrors.ErrCodeInvalidUsername,
			fmt.Sprintf("invalid GitHub username %q", username), nil).
			WithSuggestion("GitHub usernames are alphanumeric with single hyphens, up to 39 characters")
	}
	return nil
}

// FetchStars fetches all starred repositories for a username, filtered
// by the star threshold. A failure on the first page is an error; a
// failure after at least one successful page logs a warning and returns
// the partial result, matching the fetch-what-you-can contract of an
// interactive tool.
func (c *Client) FetchStars(ctx context.Context, username string) ([]store.Repo, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}

	repos := make([]store.Repo, 0, perPage)
	for page := 1; page <= c.maxPages; page++ {
		c.logger.Info("fetching starred repositories",
			slog.String("username", username),
			slog.Int("page", page))

		pageRepos, count, err := c.fetchPage(ctx, username, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			c.logger.Warn("pagination aborted, returning partial results",
				slog.String("username", username),
				slog.Int("page", page),
				slog.String("error", err.Error()))
			break
		}

		repos = append(repos, pageRepos...)
		if count < perPage {
			break
		}
	}
	return repos, nil
}

// fetchPage requests one page and returns the filtered repos plus the
// raw item count, which drives last-page detection.
func (c *Client) fetchPage(ctx context.Context, username string, page int) ([]store.Repo, int, error) {
	u := fmt.Sprintf("%s/users/%s/starred?page=%d&per_page=%d",
		c.apiBase, url.PathEscape(username), page, perPage)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, seekererrors.New(seekererrors.ErrCodeInternal,
			"failed to build GitHub request", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, seekererrors.New(seekererrors.ErrCodeNetworkTimeout,
			fmt.Sprintf("GitHub request failed for %s", username), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		code := seekererrors.ErrCodeGitHubAPI
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
			code = seekererrors.ErrCodeRateLimited
		}
		return nil, 0, seekererrors.New(code,
			fmt.Sprintf("GitHub API returned %d for %s", resp.StatusCode, username), nil).
			WithDetail("body", string(body)).
			WithSuggestion("set GITHUB_TOKEN to raise the API rate limit")
	}

	var items []starredRepo
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, 0, seekererrors.New(seekererrors.ErrCodeGitHubAPI,
			"failed to decode GitHub response", err)
	}

	repos := make([]store.Repo, 0, len(items))
	for _, item := range items {
		if item.StargazersCount < c.starThreshold {
			continue
		}
		repos = append(repos, store.Repo{
			FullName:    item.FullName,
			Language:    item.Language,
			Description: item.Description,
			URL:         item.HTMLURL,
			Stars:       item.StargazersCount,
			Topics:      item.Topics,
		})
	}
	return repos, len(items), nil
}
