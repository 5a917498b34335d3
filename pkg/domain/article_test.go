package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestArticle_Normalize(t *testing.T) {
	a := Article{Title: "t", Source: "s"}
	a.Normalize()
	assert.Equal(t, SentimentNeutral, a.Sentiment)

	a = Article{Title: "t", Source: "s", Sentiment: "excited"}
	a.Normalize()
	assert.Equal(t, SentimentNeutral, a.Sentiment, "unknown sentiment defaults to neutral")

	a = Article{Title: "t", Source: "s", Sentiment: SentimentNegative}
	a.Normalize()
	assert.Equal(t, SentimentNegative, a.Sentiment)
}

func TestArticle_CategoryLabel(t *testing.T) {
	tests := []struct {
		name     string
		article  Article
		expected string
	}{
		{"category wins", Article{Category: "AI", Source: "TechCrunch"}, "AI"},
		{"source fallback", Article{Source: "TechCrunch"}, "TechCrunch"},
		{"other fallback", Article{}, "Other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.article.CategoryLabel())
		})
	}
}

func TestArticle_HasPublished(t *testing.T) {
	assert.False(t, (&Article{}).HasPublished())
	assert.True(t, (&Article{Published: time.Now()}).HasPublished())
}

func TestSentiment_Valid(t *testing.T) {
	assert.True(t, SentimentPositive.Valid())
	assert.True(t, SentimentNegative.Valid())
	assert.True(t, SentimentNeutral.Valid())
	assert.False(t, Sentiment("").Valid())
	assert.False(t, Sentiment("angry").Valid())
}

func TestTrendDirection_Valid(t *testing.T) {
	assert.True(t, DirectionRising.Valid())
	assert.True(t, DirectionFalling.Valid())
	assert.True(t, DirectionStable.Valid())
	assert.False(t, TrendDirection("").Valid())
}
