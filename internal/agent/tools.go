package agent

import (
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"
)

// toolDefinitions declares the function tools offered to the chat model.
// They mirror the MCP tool surface.
var toolDefinitions = []openai.Tool{
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "fetch_stars_for_user",
			Description: "Fetch or update the local database of starred repositories for a GitHub username. Run before searching a user for the first time.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"username": {
						"type": "string",
						"description": "The exact GitHub username to fetch stars for."
					},
					"token": {
						"type": "string",
						"description": "Optional GitHub personal access token to raise the rate limit."
					}
				},
				"required": ["username"]
			}`),
		},
	},
	{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        "search_stars",
			Description: "Search a user's starred repositories by keyword or project idea.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"username": {
						"type": "string",
						"description": "The exact GitHub username whose stars to search."
					},
					"query": {
						"type": "string",
						"description": "Search terms or a project idea."
					}
				},
				"required": ["username", "query"]
			}`),
		},
	},
}
