package analysis

import (
	"slices"
	"time"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// CategoryCount is one row of the category distribution.
type CategoryCount struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// KeywordCount is one entry of the keyword cloud.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// SentimentSlice is one sentiment bucket with its share of the total.
type SentimentSlice struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// SentimentDistribution covers the three fixed sentiment buckets over trends.
type SentimentDistribution struct {
	Positive SentimentSlice `json:"positive"`
	Negative SentimentSlice `json:"negative"`
	Neutral  SentimentSlice `json:"neutral"`
}

// MomentumCounts tallies insights by reported trend direction. Insights
// without a direction are not counted.
type MomentumCounts struct {
	Rising  int `json:"rising"`
	Falling int `json:"falling"`
	Stable  int `json:"stable"`
}

// ImpactTiers tallies insights by impact score tier.
type ImpactTiers struct {
	High   int `json:"high"`   // score >= 7
	Medium int `json:"medium"` // score >= 4
	Low    int `json:"low"`
}

// FreshnessTiers tallies articles by recency tier; every article with a
// parseable published time lands in exactly one tier.
type FreshnessTiers struct {
	Recent    int `json:"recent"`
	Today     int `json:"today"`
	Yesterday int `json:"yesterday"`
	Older     int `json:"older"`
}

// CategorySentimentRow is one row of the category-by-sentiment matrix.
type CategorySentimentRow struct {
	Category string `json:"category"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
}

// SourceStats summarizes one source's output.
type SourceStats struct {
	Source     string   `json:"source"`
	Count      int      `json:"count"`
	WithImages int      `json:"withImages"`
	Categories []string `json:"categories,omitempty"` // distinct, capped at 3
}

// Report is the complete set of derived structures the analysis view renders.
// It holds no references to the inputs and is safe to recompute on every call.
type Report struct {
	GeneratedAt   time.Time `json:"generatedAt"`
	TotalArticles int       `json:"totalArticles"`
	TotalSources  int       `json:"totalSources"`

	Categories        []CategoryCount        `json:"categories"`
	Sentiments        SentimentDistribution  `json:"sentiments"`
	Hourly            [24]int                `json:"hourly"`
	Daily             [8]int                 `json:"daily"` // index = whole days ago
	Momentum          MomentumCounts         `json:"momentum"`
	Impact            ImpactTiers            `json:"impact"`
	Keywords          []KeywordCount         `json:"keywords"`
	CategorySentiment []CategorySentimentRow `json:"categorySentiment"`
	Freshness         FreshnessTiers         `json:"freshness"`
	FreshnessPercent  FreshnessTiers         `json:"freshnessPercent"`
	Sources           []SourceStats          `json:"sources"`

	Trends   []domain.Trend   `json:"trends"`   // resolved, top 10
	Insights []domain.Insight `json:"insights"` // resolved
}

// caps applied to the displayed distributions
const (
	topCategories       = 10
	topKeywords         = 15
	topMatrixCategories = 8
	topTrends           = 10
	maxSourceCategories = 3
)

// Compile builds the full dashboard report from articles and possibly empty
// precomputed trends/insights, synthesizing the latter when absent. The
// computation is a pure function of its arguments: calling it twice with the
// same inputs yields identical reports.
func Compile(articles []domain.Article, trends []domain.Trend, insights []domain.Insight, now time.Time) *Report {
	trends = ResolveTrends(trends, articles)
	insights = ResolveInsights(insights, articles, now)

	report := &Report{
		GeneratedAt:   now,
		TotalArticles: len(articles),
		Insights:      insights,
	}

	report.Trends = trends
	if len(report.Trends) > topTrends {
		report.Trends = report.Trends[:topTrends]
	}

	report.compileCategories(articles)
	report.compileSentiments(trends)
	report.compileHistograms(articles, now)
	report.compileMomentum(insights)
	report.compileImpact(insights)
	report.compileKeywords(insights)
	report.compileMatrix(articles)
	report.compileFreshness(articles, now)
	report.compileSources(articles)

	return report
}

func (r *Report) compileCategories(articles []domain.Article) {
	counter := CountBy(articles, func(a domain.Article) string { return a.CategoryLabel() })
	r.Categories = make([]CategoryCount, 0, topCategories)
	for _, e := range counter.Top(topCategories) {
		r.Categories = append(r.Categories, CategoryCount{
			Category:   e.Key,
			Count:      e.Count,
			Percentage: Percentage(e.Count, len(articles)),
		})
	}
}

func (r *Report) compileSentiments(trends []domain.Trend) {
	counter := CountBy(trends, func(t domain.Trend) domain.Sentiment { return t.Sentiment })
	total := len(trends)
	slice := func(s domain.Sentiment) SentimentSlice {
		return SentimentSlice{Count: counter.Get(s), Percentage: Percentage(counter.Get(s), total)}
	}
	r.Sentiments = SentimentDistribution{
		Positive: slice(domain.SentimentPositive),
		Negative: slice(domain.SentimentNegative),
		Neutral:  slice(domain.SentimentNeutral),
	}
}

func (r *Report) compileHistograms(articles []domain.Article, now time.Time) {
	for _, a := range articles {
		if hour, ok := HourBucket(a.Published); ok {
			r.Hourly[hour]++
		}
		if day, ok := DailyBucket(a.Published, now); ok {
			r.Daily[day]++
		}
	}
}

func (r *Report) compileMomentum(insights []domain.Insight) {
	for _, in := range insights {
		switch in.TrendDirection {
		case domain.DirectionRising:
			r.Momentum.Rising++
		case domain.DirectionFalling:
			r.Momentum.Falling++
		case domain.DirectionStable:
			r.Momentum.Stable++
		}
	}
}

func (r *Report) compileImpact(insights []domain.Insight) {
	for _, in := range insights {
		switch {
		case in.ImpactScore >= 7:
			r.Impact.High++
		case in.ImpactScore >= 4:
			r.Impact.Medium++
		default:
			r.Impact.Low++
		}
	}
}

func (r *Report) compileKeywords(insights []domain.Insight) {
	counter := NewCounter[string]()
	for _, in := range insights {
		for _, kw := range in.Keywords {
			counter.Add(kw)
		}
	}
	r.Keywords = make([]KeywordCount, 0, topKeywords)
	for _, e := range counter.Top(topKeywords) {
		r.Keywords = append(r.Keywords, KeywordCount{Keyword: e.Key, Count: e.Count})
	}
}

func (r *Report) compileMatrix(articles []domain.Article) {
	rows := map[string]*CategorySentimentRow{}
	totals := NewCounter[string]()
	for _, a := range articles {
		label := a.CategoryLabel()
		row, ok := rows[label]
		if !ok {
			row = &CategorySentimentRow{Category: label}
			rows[label] = row
		}
		sentiment := a.Sentiment
		if !sentiment.Valid() {
			sentiment = domain.SentimentNeutral
		}
		switch sentiment {
		case domain.SentimentPositive:
			row.Positive++
		case domain.SentimentNegative:
			row.Negative++
		case domain.SentimentNeutral:
			row.Neutral++
		}
		totals.Add(label)
	}

	r.CategorySentiment = make([]CategorySentimentRow, 0, topMatrixCategories)
	for _, e := range totals.Top(topMatrixCategories) {
		r.CategorySentiment = append(r.CategorySentiment, *rows[e.Key])
	}
}

func (r *Report) compileFreshness(articles []domain.Article, now time.Time) {
	for _, a := range articles {
		tier, ok := FreshnessOf(a.Published, now)
		if !ok {
			continue
		}
		switch tier {
		case FreshnessRecent:
			r.Freshness.Recent++
		case FreshnessToday:
			r.Freshness.Today++
		case FreshnessYesterday:
			r.Freshness.Yesterday++
		case FreshnessOlder:
			r.Freshness.Older++
		}
	}
	total := len(articles)
	r.FreshnessPercent = FreshnessTiers{
		Recent:    Percentage(r.Freshness.Recent, total),
		Today:     Percentage(r.Freshness.Today, total),
		Yesterday: Percentage(r.Freshness.Yesterday, total),
		Older:     Percentage(r.Freshness.Older, total),
	}
}

func (r *Report) compileSources(articles []domain.Article) {
	stats := map[string]*SourceStats{}
	counter := NewCounter[string]()
	for _, a := range articles {
		st, ok := stats[a.Source]
		if !ok {
			st = &SourceStats{Source: a.Source}
			stats[a.Source] = st
		}
		st.Count++
		if a.Image != "" {
			st.WithImages++
		}
		if a.Category != "" && !slices.Contains(st.Categories, a.Category) {
			st.Categories = append(st.Categories, a.Category)
		}
		counter.Add(a.Source)
	}

	r.Sources = make([]SourceStats, 0, counter.Len())
	for _, e := range counter.Top(0) {
		st := *stats[e.Key]
		if len(st.Categories) > maxSourceCategories {
			st.Categories = st.Categories[:maxSourceCategories]
		}
		r.Sources = append(r.Sources, st)
	}
	r.TotalSources = counter.Len()
}
