package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

func TestRSSFetcher_Fetch(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<item>
		<title>AI model &lt;b&gt;breakthrough&lt;/b&gt;</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
	</item>
	<item>
		<title>Undated article</title>
		<link>http://example.com/article2</link>
	</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TrendRadar/1.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssContent))
	}))
	defer server.Close()

	fetcher := NewRSSFetcher(5*time.Second, "TrendRadar/1.0")
	articles, err := fetcher.Fetch(context.Background(), Source{
		Name:     "Hacker News",
		URL:      server.URL,
		Category: "Tech",
	})
	require.NoError(t, err)
	require.Len(t, articles, 2)

	assert.Equal(t, "AI model breakthrough", articles[0].Title)
	assert.Equal(t, "http://example.com/article1", articles[0].URL)
	assert.Equal(t, "Hacker News", articles[0].Source)
	assert.Equal(t, "Tech", articles[0].Category)
	assert.Equal(t, "Full content of article 1", articles[0].Content)
	assert.True(t, articles[0].HasPublished())
	assert.Equal(t, domain.SentimentNeutral, articles[0].Sentiment)

	assert.Equal(t, "Undated article", articles[1].Title)
	assert.False(t, articles[1].HasPublished())
}

func TestRSSFetcher_Fetch_Atom(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2026-08-30T15:04:05Z</updated>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(atomContent))
	}))
	defer server.Close()

	fetcher := NewRSSFetcher(5*time.Second, "TrendRadar/1.0")
	articles, err := fetcher.Fetch(context.Background(), Source{Name: "Dev.to", URL: server.URL})
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "Atom Entry 1", articles[0].Title)
	assert.Equal(t, "http://example.com/entry1", articles[0].URL)
	assert.Equal(t, "Dev.to", articles[0].Source)
	assert.Empty(t, articles[0].Category)
	// updated time used when published is absent
	assert.Equal(t, time.Date(2026, 8, 30, 15, 4, 5, 0, time.UTC), articles[0].Published.UTC())
}

func TestRSSFetcher_Fetch_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		fetcher := NewRSSFetcher(5*time.Second, "TrendRadar/1.0")
		_, err := fetcher.Fetch(context.Background(), Source{Name: "Broken", URL: server.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
	})

	t.Run("invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not xml"))
		}))
		defer server.Close()

		fetcher := NewRSSFetcher(5*time.Second, "TrendRadar/1.0")
		_, err := fetcher.Fetch(context.Background(), Source{Name: "Broken", URL: server.URL})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("too late"))
		}))
		defer server.Close()

		fetcher := NewRSSFetcher(100*time.Millisecond, "TrendRadar/1.0")
		_, err := fetcher.Fetch(context.Background(), Source{Name: "Slow", URL: server.URL})
		require.Error(t, err)
	})
}
