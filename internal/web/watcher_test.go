package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsernameFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		username string
		ok       bool
	}{
		{"plain stars file", "octocat_stars.json", "octocat", true},
		{"absolute path", "/home/u/.star-seeker/torvalds_stars.json", "torvalds", true},
		{"hyphenated username", "star-gazer_stars.json", "star-gazer", true},
		{"atomic write temp file", "octocat_stars.json.tmp-83741", "", false},
		{"embedding cache", "octocat_stars_embeddings.json", "", false},
		{"no username", "_stars.json", "", false},
		{"unrelated file", "config.yaml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, ok := usernameFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.username, username)
			}
		})
	}
}
