package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HikmetCTK/Star-Seeker-mcp/internal/store"
)

func TestStatusAndSuccess(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Status("working")
	w.Successf("fetched %d repos", 3)
	w.Warning("partial results")
	w.Errorf("boom: %s", "oops")

	out := buf.String()
	assert.Contains(t, out, "   working\n")
	assert.Contains(t, out, "✓ fetched 3 repos\n")
	assert.Contains(t, out, "! partial results\n")
	assert.Contains(t, out, "✗ boom: oops\n")
}

func TestRepoRendering(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Repo(1, store.Repo{
		FullName:    "owner/repo",
		Stars:       1500,
		Description: "A useful tool",
		URL:         "https://github.com/owner/repo",
	})

	out := buf.String()
	assert.Contains(t, out, "1. owner/repo ★ 1500")
	assert.Contains(t, out, "A useful tool")
	assert.Contains(t, out, "https://github.com/owner/repo")
}

func TestRepoTruncatesLongDescription(t *testing.T) {
	var buf bytes.Buffer
	w := NewPlain(&buf)

	w.Repo(1, store.Repo{
		FullName:    "owner/repo",
		Description: strings.Repeat("x", 200),
		URL:         "https://example.com",
	})

	assert.Contains(t, buf.String(), strings.Repeat("x", 150)+"...")
	assert.NotContains(t, buf.String(), strings.Repeat("x", 151))
}

func TestNewUsesPlainStylesForBuffer(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Header("Results")
	assert.Equal(t, "Results\n", buf.String())
}
