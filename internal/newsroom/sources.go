package newsroom

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultMinWords is the quality floor for article bodies. Upstream
	// "content" fields are frequently stub excerpts, and rewriting a stub
	// produces low-quality output, so shorter items are discarded outright.
	DefaultMinWords = 100

	sourceTimeout  = 8 * time.Second
	snippetLength  = 220
	maxItemsPerSrc = 8

	defaultKeyword = "artificial intelligence"
)

// Source adapts one upstream content provider's listing API into the common
// Article shape. Implementations return an error when the provider is
// unreachable or malformed; the Aggregator absorbs those errors so a dead
// source degrades coverage, not availability.
type Source interface {
	Name() string
	Fetch(ctx context.Context, keywords []string) ([]Article, error)
}

var htmlTagPattern = regexp.MustCompile("<[^>]*>")

// stripHTML removes markup from s, unescapes HTML entities, and collapses
// runs of whitespace.
func stripHTML(s string) string {
	clean := htmlTagPattern.ReplaceAllString(s, " ")
	clean = html.UnescapeString(clean)
	return strings.Join(strings.Fields(clean), " ")
}

// countWords counts whitespace-delimited words.
func countWords(s string) int {
	return len(strings.Fields(s))
}

// makeSnippet truncates s to the standard teaser length, appending an
// ellipsis when text was cut. Truncation counts runes so a multibyte
// character at the boundary is never split.
func makeSnippet(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= snippetLength {
		return s
	}
	return strings.TrimSpace(string(runes[:snippetLength-1])) + "…"
}

// articleID derives a stable identifier from the source key and the item's
// URL and title, so re-fetching the same item across calls is idempotent in
// identity.
func articleID(sourceKey, itemURL, title string) string {
	h := sha256.Sum256([]byte(itemURL + "\x00" + title))
	return fmt.Sprintf("%s-%x", sourceKey, h[:8])
}

// sanitizeKeywords trims and drops empty entries. An empty result is replaced
// with the default topic so every fetcher has a deterministic query.
func sanitizeKeywords(keywords []string) []string {
	var normalized []string
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			normalized = append(normalized, kw)
		}
	}
	if len(normalized) == 0 {
		return []string{defaultKeyword}
	}
	return normalized
}

// getJSON issues a GET against rawURL and decodes the JSON response into out.
// Non-2xx responses are returned as errors carrying the response body.
func getJSON(ctx context.Context, client *http.Client, rawURL string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// HackerNewsSource fetches recent stories from the Algolia Hacker News
// search API.
type HackerNewsSource struct {
	client   *http.Client
	endpoint string
	minWords int
}

// NewHackerNewsSource creates a Hacker News source with the given word floor.
// A minWords of zero or less means DefaultMinWords.
func NewHackerNewsSource(minWords int) *HackerNewsSource {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return &HackerNewsSource{
		client:   &http.Client{Timeout: sourceTimeout},
		endpoint: "https://hn.algolia.com/api/v1/search_by_date",
		minWords: minWords,
	}
}

// Name implements Source.
func (s *HackerNewsSource) Name() string { return "Hacker News" }

type hnHit struct {
	ObjectID   string `json:"objectID"`
	Title      string `json:"title"`
	StoryTitle string `json:"story_title"`
	URL        string `json:"url"`
	StoryURL   string `json:"story_url"`
	StoryText  string `json:"story_text"`
	CreatedAt  string `json:"created_at"`
}

type hnResponse struct {
	Hits []hnHit `json:"hits"`
}

// Fetch implements Source.
func (s *HackerNewsSource) Fetch(ctx context.Context, keywords []string) ([]Article, error) {
	query := url.Values{}
	query.Set("query", strings.Join(sanitizeKeywords(keywords), " "))
	query.Set("tags", "story")

	var payload hnResponse
	if err := getJSON(ctx, s.client, s.endpoint+"?"+query.Encode(), nil, &payload); err != nil {
		return nil, fmt.Errorf("hacker news search: %w", err)
	}

	var articles []Article
	for _, hit := range payload.Hits {
		if len(articles) >= maxItemsPerSrc {
			break
		}

		title := stripHTML(hit.Title)
		if title == "" {
			title = stripHTML(hit.StoryTitle)
		}
		if title == "" {
			continue
		}

		body := stripHTML(hit.StoryText)
		if countWords(body) < s.minWords {
			continue
		}

		link := hit.URL
		if link == "" {
			link = hit.StoryURL
		}
		if link == "" {
			link = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}

		articles = append(articles, Article{
			ID:          articleID("hn", link, title),
			Source:      s.Name(),
			Title:       title,
			URL:         link,
			PublishedAt: parseTimestamp(hit.CreatedAt),
			Snippet:     makeSnippet(body),
			Content:     body,
		})
	}

	return articles, nil
}

// RedditSource fetches recent posts from a subreddit search endpoint.
type RedditSource struct {
	client    *http.Client
	baseURL   string
	subreddit string
	minWords  int
}

// NewRedditSource creates a source over the given subreddit with the given
// word floor. A minWords of zero or less means DefaultMinWords.
func NewRedditSource(subreddit string, minWords int) *RedditSource {
	if subreddit == "" {
		subreddit = "artificial"
	}
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return &RedditSource{
		client:    &http.Client{Timeout: sourceTimeout},
		baseURL:   "https://www.reddit.com",
		subreddit: subreddit,
		minWords:  minWords,
	}
}

// Name implements Source.
func (s *RedditSource) Name() string { return "r/" + s.subreddit }

type redditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetch implements Source.
func (s *RedditSource) Fetch(ctx context.Context, keywords []string) ([]Article, error) {
	query := url.Values{}
	query.Set("q", strings.Join(sanitizeKeywords(keywords), " OR "))
	query.Set("restrict_sr", "1")
	query.Set("sort", "new")
	query.Set("limit", "15")
	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", s.baseURL, s.subreddit, query.Encode())

	header := http.Header{}
	header.Set("User-Agent", "sitekit-newsroom/1.0 (+https://github.com/quantumleap-ai/sitekit)")

	var payload redditListing
	if err := getJSON(ctx, s.client, endpoint, header, &payload); err != nil {
		return nil, fmt.Errorf("reddit search: %w", err)
	}

	var articles []Article
	for _, child := range payload.Data.Children {
		if len(articles) >= maxItemsPerSrc {
			break
		}

		post := child.Data
		title := stripHTML(post.Title)
		if title == "" {
			continue
		}

		body := stripHTML(post.Selftext)
		if countWords(body) < s.minWords {
			continue
		}

		link := post.URL
		if link == "" {
			link = s.baseURL + post.Permalink
		}

		var publishedAt *time.Time
		if post.CreatedUTC > 0 {
			t := time.Unix(int64(post.CreatedUTC), 0).UTC()
			publishedAt = &t
		}

		articles = append(articles, Article{
			ID:          articleID("reddit", link, title),
			Source:      s.Name(),
			Title:       title,
			URL:         link,
			PublishedAt: publishedAt,
			Snippet:     makeSnippet(body),
			Content:     body,
		})
	}

	return articles, nil
}

// parseTimestamp parses an ISO-8601 timestamp, returning nil for missing or
// unparseable values. Absent dates stay absent rather than defaulting to now.
func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
