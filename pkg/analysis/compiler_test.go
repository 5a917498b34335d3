package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

func compileNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestCompile_EmptyInputs(t *testing.T) {
	report := Compile(nil, nil, nil, compileNow())

	assert.Equal(t, 0, report.TotalArticles)
	assert.Equal(t, 0, report.TotalSources)
	assert.Empty(t, report.Categories)
	assert.Empty(t, report.Keywords)
	assert.Empty(t, report.CategorySentiment)
	assert.Empty(t, report.Sources)
	assert.Empty(t, report.Trends)
	assert.Empty(t, report.Insights)
	assert.Equal(t, FreshnessTiers{}, report.Freshness)
	assert.Equal(t, MomentumCounts{}, report.Momentum)
	assert.Equal(t, SentimentDistribution{}, report.Sentiments)
	for _, n := range report.Hourly {
		assert.Zero(t, n)
	}
}

func TestCompile_CategoryDistribution(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "one", Category: "AI", Source: "s", Published: now},
		{Title: "two", Category: "AI", Source: "s", Published: now},
		{Title: "three", Category: "Security", Source: "s", Published: now},
	}

	report := Compile(articles, nil, nil, now)
	require.NotEmpty(t, report.Categories)
	assert.Equal(t, "AI", report.Categories[0].Category)
	assert.Equal(t, 2, report.Categories[0].Count)
	assert.Equal(t, 67, report.Categories[0].Percentage)

	// every article resolves a category label, so counts sum to the total
	sum := 0
	for _, c := range report.Categories {
		sum += c.Count
	}
	assert.Equal(t, len(articles), sum)
}

func TestCompile_CategoryFallsBackToSource(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "untagged", Source: "Hacker News", Published: now},
		{Title: "orphan", Published: now},
	}

	report := Compile(articles, nil, nil, now)
	labels := map[string]int{}
	for _, c := range report.Categories {
		labels[c.Category] = c.Count
	}
	assert.Equal(t, 1, labels["Hacker News"])
	assert.Equal(t, 1, labels["Other"])
}

func TestCompile_SentimentDistributionOverTrends(t *testing.T) {
	trends := []domain.Trend{
		{Topic: "a", Mentions: 1, Sentiment: domain.SentimentPositive},
		{Topic: "b", Mentions: 1, Sentiment: domain.SentimentPositive},
		{Topic: "c", Mentions: 1, Sentiment: domain.SentimentNegative},
		{Topic: "d", Mentions: 1, Sentiment: domain.SentimentNeutral},
	}

	report := Compile(nil, trends, nil, compileNow())
	assert.Equal(t, SentimentSlice{Count: 2, Percentage: 50}, report.Sentiments.Positive)
	assert.Equal(t, SentimentSlice{Count: 1, Percentage: 25}, report.Sentiments.Negative)
	assert.Equal(t, SentimentSlice{Count: 1, Percentage: 25}, report.Sentiments.Neutral)
}

func TestCompile_Histograms(t *testing.T) {
	now := compileNow()
	published := time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	articles := []domain.Article{
		{Title: "a", Source: "s", Published: published},
		{Title: "b", Source: "s", Published: published},
		{Title: "c", Source: "s", Published: published},
	}

	report := Compile(articles, nil, nil, now)

	// identical timestamps land in exactly one hourly bucket
	nonZero := 0
	for hour, count := range report.Hourly {
		if count > 0 {
			nonZero++
			assert.Equal(t, 9, hour)
			assert.Equal(t, len(articles), count)
		}
	}
	assert.Equal(t, 1, nonZero)

	assert.Equal(t, len(articles), report.Daily[0])
}

func TestCompile_FreshnessPartition(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "a", Source: "s", Published: now.Add(-time.Hour)},
		{Title: "b", Source: "s", Published: now.Add(-10 * time.Hour)},
		{Title: "c", Source: "s", Published: now.Add(-30 * time.Hour)},
		{Title: "d", Source: "s"}, // unparseable published
	}

	report := Compile(articles, nil, nil, now)
	assert.Equal(t, FreshnessTiers{Recent: 1, Today: 1, Yesterday: 1, Older: 0}, report.Freshness)

	parseable := 0
	for _, a := range articles {
		if a.HasPublished() {
			parseable++
		}
	}
	total := report.Freshness.Recent + report.Freshness.Today + report.Freshness.Yesterday + report.Freshness.Older
	assert.Equal(t, parseable, total, "tiers partition the parseable articles")
}

func TestCompile_MomentumAndImpact(t *testing.T) {
	insights := []domain.Insight{
		{Topic: "a", ImpactScore: 9, TrendDirection: domain.DirectionRising},
		{Topic: "b", ImpactScore: 5, TrendDirection: domain.DirectionStable},
		{Topic: "c", ImpactScore: 2, TrendDirection: domain.DirectionFalling},
		{Topic: "d", ImpactScore: 7}, // no direction, not counted in momentum
	}

	report := Compile(nil, nil, insights, compileNow())
	assert.Equal(t, MomentumCounts{Rising: 1, Falling: 1, Stable: 1}, report.Momentum)
	assert.Equal(t, ImpactTiers{High: 2, Medium: 1, Low: 1}, report.Impact)
}

func TestCompile_KeywordCloud(t *testing.T) {
	insights := []domain.Insight{
		{Topic: "a", Keywords: []string{"AI", "LLM"}},
		{Topic: "b", Keywords: []string{"AI", "Cloud"}},
	}

	report := Compile(nil, nil, insights, compileNow())
	require.NotEmpty(t, report.Keywords)
	assert.Equal(t, KeywordCount{Keyword: "AI", Count: 2}, report.Keywords[0])
	assert.Len(t, report.Keywords, 3)
}

func TestCompile_CategorySentimentMatrix(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "a", Category: "AI", Source: "s", Sentiment: domain.SentimentPositive, Published: now},
		{Title: "b", Category: "AI", Source: "s", Sentiment: domain.SentimentNegative, Published: now},
		{Title: "c", Category: "AI", Source: "s", Published: now}, // defaults to neutral
		{Title: "d", Category: "Security", Source: "s", Sentiment: domain.SentimentNegative, Published: now},
	}

	report := Compile(articles, nil, nil, now)
	require.Len(t, report.CategorySentiment, 2)

	ai := report.CategorySentiment[0]
	assert.Equal(t, "AI", ai.Category, "matrix rows ordered by total volume")
	assert.Equal(t, 1, ai.Positive)
	assert.Equal(t, 1, ai.Neutral)
	assert.Equal(t, 1, ai.Negative)

	sec := report.CategorySentiment[1]
	assert.Equal(t, "Security", sec.Category)
	assert.Equal(t, 1, sec.Negative)
}

func TestCompile_SourcePerformance(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "a", Source: "TechCrunch", Image: "https://img/1", Category: "AI", Published: now},
		{Title: "b", Source: "TechCrunch", Category: "Security", Published: now},
		{Title: "c", Source: "TechCrunch", Category: "Cloud", Published: now},
		{Title: "d", Source: "TechCrunch", Category: "Chips", Published: now},
		{Title: "e", Source: "Dev.to", Published: now},
	}

	report := Compile(articles, nil, nil, now)
	require.Len(t, report.Sources, 2)
	assert.Equal(t, 2, report.TotalSources)

	tc := report.Sources[0]
	assert.Equal(t, "TechCrunch", tc.Source)
	assert.Equal(t, 4, tc.Count)
	assert.Equal(t, 1, tc.WithImages)
	assert.Equal(t, []string{"AI", "Security", "Cloud"}, tc.Categories, "distinct categories capped at 3")

	dev := report.Sources[1]
	assert.Equal(t, "Dev.to", dev.Source)
	assert.Empty(t, dev.Categories)
}

func TestCompile_SynthesizesWhenEmpty(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "AI breakthrough in healthcare", Source: "s", Published: now.Add(-time.Hour)},
		{Title: "New AI assistant launched", Source: "s", Published: now.Add(-10 * time.Hour)},
		{Title: "Major security hack disclosed", Source: "s", Published: now.Add(-30 * time.Hour)},
	}

	report := Compile(articles, nil, nil, now)

	require.NotEmpty(t, report.Trends)
	assert.Equal(t, "AI", report.Trends[0].Topic)
	assert.Equal(t, 2, report.Trends[0].Mentions)

	require.Len(t, report.Insights, 2)
	assert.Equal(t, "Artificial Intelligence", report.Insights[0].Topic)
	assert.Equal(t, "Cybersecurity", report.Insights[1].Topic)
}

func TestCompile_PrecomputedPassThrough(t *testing.T) {
	now := compileNow()
	trends := []domain.Trend{{Topic: "Quantum", Mentions: 3, Sentiment: domain.SentimentNeutral}}
	insights := []domain.Insight{{Topic: "Quantum", ImpactScore: 8, Sentiment: domain.SentimentPositive}}
	articles := []domain.Article{{Title: "chatgpt news", Source: "s", Published: now}}

	report := Compile(articles, trends, insights, now)
	assert.Equal(t, trends, report.Trends, "precomputed trends suppress synthesis")
	assert.Equal(t, insights, report.Insights)
}

func TestCompile_Idempotent(t *testing.T) {
	now := compileNow()
	articles := []domain.Article{
		{Title: "OpenAI releases new model", Source: "TechCrunch", Category: "AI", URL: "https://e/1", Published: now.Add(-2 * time.Hour)},
		{Title: "Google cloud outage", Source: "The Verge", URL: "https://e/2", Published: now.Add(-20 * time.Hour)},
		{Title: "bitcoin dips again", Source: "CoinDesk", Sentiment: domain.SentimentNegative, Published: now.Add(-50 * time.Hour)},
	}

	first := Compile(articles, nil, nil, now)
	second := Compile(articles, nil, nil, now)
	assert.Equal(t, first, second, "same immutable input must produce identical reports")
}
