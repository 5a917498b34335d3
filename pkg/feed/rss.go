package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// Source describes a configured RSS/Atom feed.
type Source struct {
	Name     string
	URL      string
	Category string
}

// RSSFetcher fetches RSS/Atom feeds and maps their items to articles.
type RSSFetcher struct {
	client    *http.Client
	userAgent string
}

// NewRSSFetcher creates a new feed fetcher.
func NewRSSFetcher(timeout time.Duration, userAgent string) *RSSFetcher {
	return &RSSFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Fetch retrieves and parses the source feed. Items become articles carrying
// the source's configured name and category.
func (f *RSSFetcher) Fetch(ctx context.Context, src Source) ([]domain.Article, error) {
	body, err := f.fetch(ctx, src.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", src.Name, err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", src.Name, err)
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		a := domain.Article{
			Title:    plainText(item.Title),
			URL:      item.Link,
			Source:   src.Name,
			Category: src.Category,
			Content:  plainText(item.Content),
		}

		if item.PublishedParsed != nil {
			a.Published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			a.Published = *item.UpdatedParsed
		}

		if item.Image != nil {
			a.Image = item.Image.URL
		}

		a.Normalize()
		articles = append(articles, a)
	}

	return articles, nil
}

// fetch retrieves content from a URL
func (f *RSSFetcher) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	addBrowserHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}
