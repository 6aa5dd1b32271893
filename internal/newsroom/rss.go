package newsroom

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSSource fetches items from a set of configured RSS/Atom feeds. Feeds have
// no server-side search, so keyword relevance is left to the Aggregator's
// advisory filter.
type RSSSource struct {
	client   *http.Client
	feeds    []string
	minWords int
}

// NewRSSSource creates an RSS source over the given feed URLs. A minWords of
// zero or less means DefaultMinWords.
func NewRSSSource(feeds []string, minWords int) *RSSSource {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	return &RSSSource{
		client:   &http.Client{Timeout: sourceTimeout},
		feeds:    feeds,
		minWords: minWords,
	}
}

// Name implements Source.
func (s *RSSSource) Name() string { return "RSS" }

// Fetch implements Source. Each configured feed is fetched in turn; a feed
// that fails to parse fails the whole source, which the Aggregator absorbs.
func (s *RSSSource) Fetch(ctx context.Context, _ []string) ([]Article, error) {
	parser := gofeed.NewParser()
	parser.Client = s.client

	var articles []Article
	for _, feedURL := range s.feeds {
		feed, err := parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			return nil, fmt.Errorf("parsing feed %q: %w", feedURL, err)
		}

		sourceName := feed.Title
		if sourceName == "" {
			sourceName = s.Name()
		}

		count := 0
		for _, item := range feed.Items {
			if count >= maxItemsPerSrc {
				break
			}

			title := stripHTML(item.Title)
			if title == "" {
				continue
			}

			body := stripHTML(item.Content)
			if body == "" {
				body = stripHTML(item.Description)
			}
			if countWords(body) < s.minWords {
				continue
			}

			var publishedAt *time.Time
			if item.PublishedParsed != nil {
				t := item.PublishedParsed.UTC()
				publishedAt = &t
			}

			articles = append(articles, Article{
				ID:          articleID("rss", item.Link, title),
				Source:      sourceName,
				Title:       title,
				URL:         item.Link,
				PublishedAt: publishedAt,
				Snippet:     makeSnippet(body),
				Content:     body,
			})
			count++
		}
	}

	return articles, nil
}
