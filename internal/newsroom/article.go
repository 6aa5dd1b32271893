// Package newsroom implements the AI content pipeline behind the admin
// console: it aggregates candidate articles from external sources, rewrites
// a selected article through a locally hosted Ollama model, and lists the
// models available on that host.
//
// All components are stateless between calls. Host candidates are recomputed
// on every invocation so configuration changes take effect immediately, and
// the only cross-call variation is the time-bucketed rotation window in the
// Aggregator.
package newsroom

import "time"

// Article is a normalized external content record surfaced to the admin
// console. Every Article returned by the pipeline has a non-empty Title and
// a Content body meeting the minimum word floor.
type Article struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Snippet     string     `json:"snippet"`
	Content     string     `json:"content"`
}

// RewriteResult is the output of the rewrite pipeline. Markdown is always
// non-empty; Title falls back to the source title and Summary may be empty
// when the model output could not be parsed as structured JSON.
type RewriteResult struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Markdown string `json:"markdown"`
}

// Model describes a generation model available on the Ollama host.
type Model struct {
	Name       string `json:"name"`
	Size       int64  `json:"size,omitempty"`
	Digest     string `json:"digest,omitempty"`
	ModifiedAt string `json:"modifiedAt,omitempty"`
}
