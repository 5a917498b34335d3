package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// risingWindowHours is the lookback used to decide whether a momentum-tracking
// domain is rising: its articles from this window are compared against a third
// of the domain's total.
const risingWindowHours = 6

// ResolveInsights returns the precomputed insights when any exist, otherwise
// synthesizes insights from the raw articles relative to now.
func ResolveInsights(insights []domain.Insight, articles []domain.Article, now time.Time) []domain.Insight {
	if len(insights) > 0 {
		return insights
	}
	return SynthesizeInsights(articles, now)
}

// SynthesizeInsights evaluates the fixed topical domains against the article
// set and produces an insight per domain with at least one match, in domain
// order. Impact score is the domain's share of total volume scaled to 0-10.
func SynthesizeInsights(articles []domain.Article, now time.Time) []domain.Insight {
	if len(articles) == 0 {
		return []domain.Insight{}
	}

	insights := make([]domain.Insight, 0, len(insightDomains))
	for _, dom := range insightDomains {
		matched := domainArticles(dom, articles)
		if len(matched) == 0 {
			continue
		}

		direction := domain.DirectionStable
		if dom.momentum {
			recent := 0
			for _, a := range matched {
				if withinHours(a.Published, now, risingWindowHours) {
					recent++
				}
			}
			if float64(recent) > float64(len(matched))/3 {
				direction = domain.DirectionRising
			}
		}

		insights = append(insights, domain.Insight{
			Topic:          dom.topic,
			Summary:        fmt.Sprintf(dom.summary, len(matched)),
			Sentiment:      dom.sentiment(len(matched)),
			ArticleCount:   len(matched),
			ImpactScore:    impactScore(len(matched), len(articles)),
			TrendDirection: direction,
			Keywords:       dom.display,
		})
	}

	if len(insights) > maxSynthesizedInsights {
		insights = insights[:maxSynthesizedInsights]
	}
	return insights
}

// domainArticles selects the articles matching the domain's title keywords or
// exact category.
func domainArticles(dom insightDomain, articles []domain.Article) []domain.Article {
	var matched []domain.Article
	for _, a := range articles {
		if Matches(a.Title, dom.keywords) || (dom.category != "" && a.Category == dom.category) {
			matched = append(matched, a)
		}
	}
	return matched
}

// impactScore scales the domain's share of total volume to 0-10, capped at 10.
func impactScore(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	score := math.Round(float64(count) / float64(total) * 10)
	return math.Min(10, score)
}
