package newsroom

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultHeadlineLimit caps the number of articles returned per aggregation
// call. The value mirrors what the admin console can comfortably show.
const DefaultHeadlineLimit = 12

// ErrNoSources is returned when every registered source came back empty.
// Zero articles means no upstream was reachable, which is a total failure
// rather than a degraded result.
var ErrNoSources = errors.New("no news sources are reachable at the moment")

// Aggregator fans out to all registered sources concurrently and merges,
// filters, de-duplicates, sorts, and rotates their results.
type Aggregator struct {
	sources []Source
	limit   int

	// now is swappable in tests; the rotation offset is a pure function
	// of the current wall-clock minute.
	now func() time.Time
}

// NewAggregator creates an Aggregator over the given sources. A limit of
// zero or less means DefaultHeadlineLimit.
func NewAggregator(sources []Source, limit int) *Aggregator {
	if limit <= 0 {
		limit = DefaultHeadlineLimit
	}
	return &Aggregator{sources: sources, limit: limit, now: time.Now}
}

// Headlines returns at most the configured limit of deduplicated articles
// matching the given keywords, newest first. Individual source failures are
// logged and absorbed; only a fully empty result is an error.
func (a *Aggregator) Headlines(ctx context.Context, keywords []string) ([]Article, error) {
	normalized := sanitizeKeywords(keywords)

	// Fan out to every source. Results are collected per slot so the merge
	// order matches source registration order, which keeps the first-seen
	// dedup tie-break deterministic.
	results := make([][]Article, len(a.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range a.sources {
		i, src := i, src
		g.Go(func() error {
			articles, err := src.Fetch(gctx, normalized)
			if err != nil {
				slog.Warn("news source failed", "source", src.Name(), "error", err)
				return nil // degrade coverage, not availability
			}
			results[i] = articles
			slog.Info("fetched news source", "source", src.Name(), "items", len(articles))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []Article
	for _, articles := range results {
		combined = append(combined, articles...)
	}
	if len(combined) == 0 {
		return nil, ErrNoSources
	}

	// Keyword filtering is advisory: if it would empty the result, fall back
	// to the unfiltered set. The zero-total check above is the only hard gate.
	filtered := filterByKeywords(combined, normalized)
	if len(filtered) == 0 {
		filtered = combined
	}

	deduped := dedupeByTitle(filtered)

	sort.SliceStable(deduped, func(i, j int) bool {
		return articleTime(deduped[i]).After(articleTime(deduped[j]))
	})

	return a.rotate(deduped), nil
}

// filterByKeywords keeps articles where any keyword is a case-insensitive
// substring of the title, snippet, or source name.
func filterByKeywords(articles []Article, keywords []string) []Article {
	var matched []Article
	for _, article := range articles {
		haystack := strings.ToLower(article.Title + " " + article.Snippet + " " + article.Source)
		for _, kw := range keywords {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				matched = append(matched, article)
				break
			}
		}
	}
	return matched
}

// dedupeByTitle collapses articles with the same case-insensitive title,
// keeping the first occurrence.
func dedupeByTitle(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	var deduped []Article
	for _, article := range articles {
		key := strings.ToLower(article.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, article)
	}
	return deduped
}

// articleTime returns the publication time, treating absent timestamps as
// the epoch so undated articles sort last.
func articleTime(a Article) time.Time {
	if a.PublishedAt == nil {
		return time.Unix(0, 0)
	}
	return *a.PublishedAt
}

// rotate selects a contiguous window of the sorted list when it exceeds the
// limit. The starting offset advances with the wall-clock minute, so repeated
// polling surfaces different subsets without any stored state. This trades
// fairness for statelessness on purpose.
func (a *Aggregator) rotate(articles []Article) []Article {
	if len(articles) <= a.limit {
		return articles
	}

	offset := int(a.now().Unix()/60) % len(articles)
	window := make([]Article, 0, a.limit)
	for i := 0; i < a.limit; i++ {
		window = append(window, articles[(offset+i)%len(articles)])
	}
	return window
}
