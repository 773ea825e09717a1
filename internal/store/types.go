// Package store persists starred-repository data and embedding caches
// under the Star-Seeker data directory.
//
// Layout, one pair of files per GitHub username:
//
//	{username}_stars.json            repository metadata
//	{username}_stars_embeddings.json cached embedding vectors
package store

import "strings"

// Repo is one starred repository. Immutable once loaded for a session.
type Repo struct {
	FullName    string   `json:"full_name"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url"`
	Stars       int      `json:"stars"`
	Topics      []string `json:"topics,omitempty"`
}

// SearchText returns the derived text used by every search index:
// full name + description + topics, lower-cased.
func (r Repo) SearchText() string {
	var b strings.Builder
	b.WriteString(r.FullName)
	if r.Description != "" {
		b.WriteByte(' ')
		b.WriteString(r.Description)
	}
	for _, t := range r.Topics {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	return strings.ToLower(b.String())
}

// SearchTexts derives search text for every repo, preserving corpus order.
// Position in the returned slice is the shared key across all indices.
func SearchTexts(repos []Repo) []string {
	texts := make([]string, len(repos))
	for i, r := range repos {
		texts[i] = r.SearchText()
	}
	return texts
}
