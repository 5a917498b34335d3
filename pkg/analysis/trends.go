package analysis

import (
	"sort"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// ResolveTrends returns the precomputed trends when any exist, otherwise
// synthesizes trends from the raw articles. This is the single decision point
// for the fallback - callers never branch on emptiness themselves.
func ResolveTrends(trends []domain.Trend, articles []domain.Article) []domain.Trend {
	if len(trends) > 0 {
		return trends
	}
	return SynthesizeTrends(articles)
}

// SynthesizeTrends derives ranked trend topics from raw articles. Each article
// contributes a mention to its category (when distinct from its source) and to
// every topic rule its title matches. Topics are ranked by mentions descending
// with first-seen order breaking ties, capped at ten, and marked positive once
// mentions exceed the configured threshold.
func SynthesizeTrends(articles []domain.Article) []domain.Trend {
	if len(articles) == 0 {
		return []domain.Trend{}
	}

	byTopic := map[string]*domain.Trend{}
	var order []string

	add := func(topic string, article domain.Article) {
		t, ok := byTopic[topic]
		if !ok {
			t = &domain.Trend{
				Topic:     topic,
				Sentiment: domain.SentimentNeutral,
				Keywords:  []string{topic},
			}
			byTopic[topic] = t
			order = append(order, topic)
		}
		t.Mentions++
		if article.URL != "" {
			t.Articles = append(t.Articles, article.URL)
		}
	}

	for _, article := range articles {
		if article.Category != "" && article.Category != article.Source {
			add(article.Category, article)
		}
		for _, rule := range trendTopicRules {
			if Matches(article.Title, rule.Keywords) {
				add(rule.Topic, article)
			}
		}
	}

	result := make([]domain.Trend, 0, len(order))
	for _, topic := range order {
		result = append(result, *byTopic[topic])
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Mentions > result[j].Mentions })
	if len(result) > maxSynthesizedTrends {
		result = result[:maxSynthesizedTrends]
	}

	for i := range result {
		if result[i].Mentions > positiveTrendMentions {
			result[i].Sentiment = domain.SentimentPositive
		}
	}
	return result
}
