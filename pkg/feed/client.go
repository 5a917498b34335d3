// Package feed ingests articles, trends and insights. The upstream JSON API
// is the primary source, RSS/Atom feeds supplement it.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// strictPolicy strips all markup, leaving plain text. Safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

// plainText strips HTML markup and entities from ingested text fields.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Client fetches aggregated data from the upstream API.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

// NewClient creates an upstream API client.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

// articleWire is the upstream article shape. Published is a string because the
// upstream does not guarantee a parseable timestamp.
type articleWire struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	Published string `json:"published"`
	Image     string `json:"image"`
	Sentiment string `json:"sentiment"`
	Content   string `json:"content"`
}

type trendWire struct {
	Topic     string   `json:"topic"`
	Mentions  int      `json:"mentions"`
	Sentiment string   `json:"sentiment"`
	Keywords  []string `json:"keywords"`
	Articles  []string `json:"articles"`
}

type insightWire struct {
	Topic          string   `json:"topic"`
	Summary        string   `json:"summary"`
	Sentiment      string   `json:"sentiment"`
	ArticleCount   int      `json:"articleCount"`
	ImpactScore    float64  `json:"impactScore"`
	TrendDirection string   `json:"trendDirection"`
	Keywords       []string `json:"keywords"`
}

// Articles fetches the current article set from the upstream API.
func (c *Client) Articles(ctx context.Context) ([]domain.Article, error) {
	var resp struct {
		Articles []articleWire `json:"articles"`
	}
	if err := c.getJSON(ctx, "/api/articles", &resp); err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, w := range resp.Articles {
		a := domain.Article{
			Title:     plainText(w.Title),
			URL:       w.URL,
			Source:    w.Source,
			Category:  w.Category,
			Published: parsePublished(w.Published),
			Image:     w.Image,
			Sentiment: domain.Sentiment(w.Sentiment),
			Content:   plainText(w.Content),
		}
		a.Normalize()
		articles = append(articles, a)
	}
	return articles, nil
}

// Trends fetches precomputed trends from the upstream API.
func (c *Client) Trends(ctx context.Context) ([]domain.Trend, error) {
	var resp struct {
		Trends []trendWire `json:"trends"`
	}
	if err := c.getJSON(ctx, "/api/trends", &resp); err != nil {
		return nil, fmt.Errorf("fetch trends: %w", err)
	}

	trends := make([]domain.Trend, 0, len(resp.Trends))
	for _, w := range resp.Trends {
		trends = append(trends, domain.Trend{
			Topic:     w.Topic,
			Mentions:  w.Mentions,
			Sentiment: domain.Sentiment(w.Sentiment),
			Keywords:  w.Keywords,
			Articles:  w.Articles,
		})
	}
	return trends, nil
}

// Insights fetches precomputed insights from the upstream API.
func (c *Client) Insights(ctx context.Context) ([]domain.Insight, error) {
	var resp struct {
		Insights []insightWire `json:"insights"`
	}
	if err := c.getJSON(ctx, "/api/insights", &resp); err != nil {
		return nil, fmt.Errorf("fetch insights: %w", err)
	}

	insights := make([]domain.Insight, 0, len(resp.Insights))
	for _, w := range resp.Insights {
		insights = append(insights, domain.Insight{
			Topic:          w.Topic,
			Summary:        w.Summary,
			Sentiment:      domain.Sentiment(w.Sentiment),
			ArticleCount:   w.ArticleCount,
			ImpactScore:    w.ImpactScore,
			TrendDirection: domain.TrendDirection(w.TrendDirection),
			Keywords:       w.Keywords,
		})
	}
	return insights, nil
}

// getJSON performs a GET with retries and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))

	return retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")
		addBrowserHeaders(req)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request %s: %w", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// publishedFormats covers the timestamp shapes seen upstream. Anything else
// degrades to the zero time and the article is treated as undated.
var publishedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parsePublished(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, format := range publishedFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
