package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/agent"
	"github.com/HikmetCTK/Star-Seeker-mcp/internal/output"
)

func newChatCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the stars agent",
		Long: `Start an interactive chat session with the stars agent.

The agent can fetch starred repositories and search them on your
behalf by calling tools. Requires OPENAI_API_KEY.

Type 'exit' or 'quit' to leave, 'reset' to clear the conversation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, model)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Chat model (default from config)")

	return cmd
}

func runChat(cmd *cobra.Command, model string) error {
	out := output.New(cmd.OutOrStdout())
	styles := out.Styles()

	service, cfg, err := newApp(cmd)
	if err != nil {
		return err
	}
	if cfg.Embeddings.APIKey == "" {
		return fmt.Errorf("chat requires OPENAI_API_KEY to be set")
	}
	if model == "" {
		model = cfg.Agent.Model
	}

	a := agent.New(service, cfg.Embeddings.APIKey,
		agent.WithChatModel(model),
		agent.WithSystemPrompt(cfg.Agent.SystemPrompt),
		agent.WithMaxToolRounds(cfg.Agent.MaxToolRounds),
		agent.WithAgentLogger(slog.Default()),
	)

	out.Header("Star-Seeker chat")
	out.Statusf("Model: %s. Type 'exit' to quit, 'reset' to start over.", model)
	out.Newline()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(cmd.OutOrStdout(), styles.Prompt.Render("you> "))
		if !scanner.Scan() {
			out.Newline()
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "reset":
			a.Reset()
			out.Status("Conversation cleared.")
			continue
		}

		reply, err := a.Send(cmd.Context(), line)
		if err != nil {
			out.Error(err.Error())
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n", styles.Source.Render("agent>"), reply)
	}
}
