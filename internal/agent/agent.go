// Package agent wraps a chat model around the star tools so users can
// converse with their starred repositories.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/app"
	seekererrors "github.com/HikmetCTK/Star-Seeker-mcp/internal/errors"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/mcp"
)

// DefaultMaxToolRounds bounds the tool-calling loop per user message so
// a confused model cannot spin forever.
const DefaultMaxToolRounds = 5

// Agent is a stateful chat session with access to the fetch and search
// tools. Not safe for concurrent use; one Agent per conversation.
type Agent struct {
	client    *openai.Client
	app       *app.App
	model     string
	system    string
	baseURL   string
	maxRounds int
	logger    *slog.Logger
	messages  []openai.ChatCompletionMessage
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithChatModel sets the chat completion model.
func WithChatModel(model string) AgentOption {
	return func(a *Agent) {
		if model != "" {
			a.model = model
		}
	}
}

// WithSystemPrompt overrides the system instructions.
func WithSystemPrompt(prompt string) AgentOption {
	return func(a *Agent) {
		if prompt != "" {
			a.system = prompt
		}
	}
}

// WithMaxToolRounds bounds tool-calling rounds per user message.
func WithMaxToolRounds(n int) AgentOption {
	return func(a *Agent) {
		if n > 0 {
			a.maxRounds = n
		}
	}
}

// WithBaseURL points the agent at an OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) AgentOption {
	return func(a *Agent) { a.baseURL = baseURL }
}

// WithAgentLogger sets the agent logger.
func WithAgentLogger(l *slog.Logger) AgentOption {
	return func(a *Agent) { a.logger = l }
}

// New creates a chat agent backed by the given application service.
func New(service *app.App, apiKey string, opts ...AgentOption) *Agent {
	a := &Agent{
		app:       service,
		model:     "gpt-4o-mini",
		maxRounds: DefaultMaxToolRounds,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	cfg := openai.DefaultConfig(apiKey)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	a.client = openai.NewClientWithConfig(cfg)
	a.Reset()
	return a
}

// Reset clears the conversation, keeping only the system prompt.
func (a *Agent) Reset() {
	a.messages = a.messages[:0]
	if a.system != "" {
		a.messages = append(a.messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: a.system,
		})
	}
}

// Send submits one user message and runs the tool loop until the model
// answers in plain text or the round budget is exhausted.
func (a *Agent) Send(ctx context.Context, message string) (string, error) {
	a.messages = append(a.messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	for round := 0; round < a.maxRounds; round++ {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: a.messages,
			Tools:    toolDefinitions,
		})
		if err != nil {
			return "", seekererrors.New(seekererrors.ErrCodeProviderFailure,
				"chat completion failed", err)
		}
		if len(resp.Choices) == 0 {
			return "", seekererrors.New(seekererrors.ErrCodeProviderFailure,
				"chat completion returned no choices", nil)
		}

		choice := resp.Choices[0].Message
		a.messages = append(a.messages, choice)

		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		for _, call := range choice.ToolCalls {
			result := a.execTool(ctx, call)
			a.messages = append(a.messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	return "", seekererrors.New(seekererrors.ErrCodeInternal,
		fmt.Sprintf("tool loop exceeded %d rounds without an answer", a.maxRounds), nil)
}

// execTool dispatches one tool call. Failures become tool-result text so
// the model can recover (e.g. by asking the user to fetch first).
func (a *Agent) execTool(ctx context.Context, call openai.ToolCall) string {
	a.logger.Info("agent tool call",
		slog.String("tool", call.Function.Name),
		slog.String("arguments", call.Function.Arguments))

	switch call.Function.Name {
	case "fetch_stars_for_user":
		var args struct {
			Username string `json:"username"`
			Token    string `json:"token"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid tool arguments: %v", err)
		}
		res, err := a.app.FetchStars(ctx, args.Username, args.Token)
		if err != nil {
			return fmt.Sprintf("Error in fetch_stars_for_user: %v", err)
		}
		return mcp.FormatFetchResult(res.Username, res.Count, res.Source)

	case "search_stars":
		var args struct {
			Username string `json:"username"`
			Query    string `json:"query"`
		}
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return fmt.Sprintf("Error: invalid tool arguments: %v", err)
		}
		intents, source, err := a.app.Search(ctx, args.Username, args.Query, 0)
		if err != nil {
			return fmt.Sprintf("Error in search_stars: %v", err)
		}
		return mcp.FormatSearchResults(intents, source)
	}

	return fmt.Sprintf("Error: unknown tool %q", call.Function.Name)
}
