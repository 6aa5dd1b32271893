package newsroom

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractTimeout  = 30 * time.Second
	extractMaxWords = 5000
)

var extractClient = &http.Client{Timeout: extractTimeout}

// browserHeaders sets browser-like request headers so sites that check
// Accept or User-Agent don't reject the request.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; sitekit/1.0; +https://github.com/quantumleap-ai/sitekit)")
}

// ExtractedArticle is the readable content pulled from an arbitrary URL,
// ready to be fed into the rewrite form.
type ExtractedArticle struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExtractArticle fetches the page at the given URL and returns its title and
// main readable text via go-readability. The fetch is bound to ctx so a
// cancelled caller aborts the download. The text is truncated to a bounded
// word count to keep downstream prompts manageable.
func ExtractArticle(ctx context.Context, pageURL string) (*ExtractedArticle, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing article URL %q: %w", pageURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %q: %w", pageURL, err)
	}
	browserHeaders(req)

	resp, err := extractClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching article from %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching article from %q: unexpected status %d", pageURL, resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return nil, fmt.Errorf("extracting article from %q: %w", pageURL, err)
	}

	content := truncateWords(strings.TrimSpace(article.TextContent), extractMaxWords)
	if content == "" {
		return nil, fmt.Errorf("no readable content found at %q", pageURL)
	}

	return &ExtractedArticle{
		Title:   strings.TrimSpace(article.Title),
		Content: content,
	}, nil
}

// truncateWords returns the first maxWords whitespace-delimited words of s.
func truncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ")
}
