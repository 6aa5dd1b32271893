package newsroom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	// generateTimeout is deliberately generous; local model inference is
	// slow compared to ordinary HTTP calls.
	generateTimeout = 120 * time.Second

	maxPromptChars  = 9000
	defaultTone     = "data scientist"
	defaultMaxWords = 700
	minMaxWords     = 200
	maxMaxWords     = 2000
)

// ErrUnparseableResponse is returned when the model output yields neither
// structured JSON nor any usable fallback text.
var ErrUnparseableResponse = errors.New("the model response could not be parsed into Markdown content")

// ErrMissingInput is returned before any network call when the rewrite
// request lacks a title or content.
var ErrMissingInput = errors.New("both title and content are required to rewrite the article")

// RewriteRequest describes one rewrite invocation. Title and Content are
// required; the rest fall back to configured defaults.
type RewriteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Model    string `json:"model,omitempty"`
	Tone     string `json:"tone,omitempty"`
	MaxWords int    `json:"maxWords,omitempty"`
}

// Rewriter transforms a source article into a RewriteResult via the Ollama
// generate endpoint, with host fallback and resilient output parsing.
type Rewriter struct {
	resolver     *Resolver
	client       *http.Client
	defaultModel string
}

// NewRewriter creates a Rewriter using the given resolver and default model
// name. An empty model means DefaultModel.
func NewRewriter(resolver *Resolver, model string) *Rewriter {
	if model == "" {
		model = DefaultModel
	}
	return &Rewriter{
		resolver:     resolver,
		client:       &http.Client{Timeout: generateTimeout},
		defaultModel: model,
	}
}

type generateRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	Stream    bool   `json:"stream"`
	KeepAlive int    `json:"keep_alive"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Rewrite validates the request, submits the persona prompt to the first
// reachable host, and parses the model output. Parsing is two-tier: strict
// JSON first, then the trimmed raw text as the Markdown body; only an empty
// raw response is a hard failure.
func (rw *Rewriter) Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResult, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, ErrMissingInput
	}

	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = rw.defaultModel
	}

	prompt := buildRewritePrompt(title, content, req.Tone, clampMaxWords(req.MaxWords))

	var payload generateResponse
	err := rw.resolver.Do(ctx, "generate", func(ctx context.Context, host string) error {
		body, err := json.Marshal(generateRequest{
			Model:     model,
			Prompt:    prompt,
			Stream:    false,
			KeepAlive: 0,
		})
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, host+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := rw.client.Do(httpReq)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
		}

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return parseRewriteOutput(payload.Response, title)
}

// clampMaxWords bounds the requested word target to a sane range, defaulting
// when unset.
func clampMaxWords(n int) int {
	switch {
	case n <= 0:
		return defaultMaxWords
	case n < minMaxWords:
		return minMaxWords
	case n > maxMaxWords:
		return maxMaxWords
	default:
		return n
	}
}

// buildRewritePrompt embeds the persona, word cap, and a strict JSON-only
// output instruction. Source content is truncated to bound request size.
func buildRewritePrompt(title, content, tone string, maxWords int) string {
	persona := strings.TrimSpace(tone)
	if persona == "" {
		persona = defaultTone
	}

	if runes := []rune(content); len(runes) > maxPromptChars {
		content = string(runes[:maxPromptChars]) + "…"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are writing as a %s, crafting thought-leadership content for an AI consultancy blog.\n", persona)
	fmt.Fprintf(&b, "Rewrite and summarize the following article in a confident, data-first tone that matches the %s persona.\n", persona)
	b.WriteString("Return ONLY valid JSON with the schema:\n")
	b.WriteString("{\n")
	b.WriteString("  \"title\": \"Compelling headline no longer than 16 words\",\n")
	b.WriteString("  \"summary\": \"2-3 sentence abstract in plain text\",\n")
	b.WriteString("  \"markdown\": \"Long-form article in Markdown (use headings, bullet lists, code fences if needed)\"\n")
	b.WriteString("}\n\n")
	b.WriteString("Guidelines:\n")
	b.WriteString("- Highlight concrete metrics, research directions, or technical implications.\n")
	fmt.Fprintf(&b, "- Keep Markdown under %d words.\n", maxWords)
	b.WriteString("- Use descriptive sub-headings (##) and include at least one bulleted list.\n")
	b.WriteString("- End with a short call-to-action paragraph.\n\n")
	fmt.Fprintf(&b, "Original title: %s\n", title)
	b.WriteString("Source content:\n\"\"\"\n")
	b.WriteString(content)
	b.WriteString("\n\"\"\"")
	return b.String()
}

var codeFencePattern = regexp.MustCompile("(?i)```json|```")

// rewritePayload is the structured shape the prompt asks the model for.
type rewritePayload struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Markdown string `json:"markdown"`
}

// tryParseModelJSON extracts the first {...} block from raw model output and
// parses it. Models frequently wrap JSON in code fences or prepend
// commentary, so fences are stripped and everything outside the outermost
// braces is ignored. Returns nil when no valid JSON object is found.
func tryParseModelJSON(raw string) *rewritePayload {
	sanitized := strings.TrimSpace(codeFencePattern.ReplaceAllString(raw, ""))
	start := strings.Index(sanitized, "{")
	end := strings.LastIndex(sanitized, "}")
	if start == -1 || end <= start {
		return nil
	}

	var parsed rewritePayload
	if err := json.Unmarshal([]byte(sanitized[start:end+1]), &parsed); err != nil {
		return nil
	}
	return &parsed
}

// parseRewriteOutput applies the two-tier parse: structured JSON with a
// markdown field wins; otherwise the whole trimmed response becomes the
// Markdown body with the original title. An empty response is a hard error
// so the caller never receives a blank article.
func parseRewriteOutput(raw, originalTitle string) (*RewriteResult, error) {
	parsed := tryParseModelJSON(raw)

	if parsed == nil || strings.TrimSpace(parsed.Markdown) == "" {
		fallback := strings.TrimSpace(raw)
		if fallback == "" {
			return nil, ErrUnparseableResponse
		}
		result := &RewriteResult{Title: originalTitle, Markdown: fallback}
		if parsed != nil {
			if t := strings.TrimSpace(parsed.Title); t != "" {
				result.Title = t
			}
			result.Summary = strings.TrimSpace(parsed.Summary)
		}
		return result, nil
	}

	result := &RewriteResult{
		Title:    strings.TrimSpace(parsed.Title),
		Summary:  strings.TrimSpace(parsed.Summary),
		Markdown: strings.TrimSpace(parsed.Markdown),
	}
	if result.Title == "" {
		result.Title = originalTitle
	}
	return result, nil
}
