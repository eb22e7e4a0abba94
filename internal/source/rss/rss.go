// Package rss fetches and flattens Google News RSS feeds into raw
// candidate items.
package rss

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/elp-logistics/market-radar/internal/source"
)

const defaultTimeout = 15 * time.Second

// Fetcher downloads and parses one feed per call.
type Fetcher struct {
	parser *gofeed.Parser
}

func New(userAgent string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &Fetcher{parser: parser}
}

// Fetch returns the feed's entries as items. Entries without a link are
// dropped silently; an empty feed is success (the orchestrator flags it
// for diagnostics). The feed title becomes the item source tag.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]source.Item, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, source.StatusError("fetch feed", httpErr.Status)
		}
		if strings.Contains(err.Error(), "Failed to detect feed type") {
			return nil, source.ParseError("fetch feed", err)
		}
		return nil, source.Classify("fetch feed", err)
	}

	items := make([]source.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry.Link == "" {
			continue
		}
		published := entry.Published
		if published == "" {
			published = entry.Updated
		}
		items = append(items, source.Item{
			Title:     entry.Title,
			URL:       entry.Link,
			Published: published,
			Source:    feed.Title,
			Summary:   StripHTML(entry.Description),
		})
	}
	return items, nil
}

// StripHTML flattens an HTML fragment to its visible text with single
// spaces between block fragments.
func StripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
