package domain

import "time"

// Sentiment is a coarse tone classification attached to articles, trends and insights.
type Sentiment string

// known sentiment values
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Valid reports whether the sentiment is one of the known values.
func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// Article represents a single aggregated news article. Published is the
// invalid-date sentinel when zero; such articles are excluded from all
// time-based buckets but still counted everywhere else.
type Article struct {
	Title     string    `json:"title" db:"title"`
	URL       string    `json:"url,omitempty" db:"url"`
	Source    string    `json:"source" db:"source"`
	Category  string    `json:"category,omitempty" db:"category"`
	Published time.Time `json:"published" db:"published"`
	Image     string    `json:"image,omitempty" db:"image"`
	Sentiment Sentiment `json:"sentiment,omitempty" db:"sentiment"`
	Content   string    `json:"content,omitempty" db:"content"`
}

// Normalize applies the defined defaults for optional fields. It is called at
// the ingestion boundary so aggregation code never deals with ambiguous shapes.
func (a *Article) Normalize() {
	if !a.Sentiment.Valid() {
		a.Sentiment = SentimentNeutral
	}
}

// CategoryLabel resolves the grouping label for the article: its category when
// set, falling back to the source name and then to "Other".
func (a *Article) CategoryLabel() string {
	if a.Category != "" {
		return a.Category
	}
	if a.Source != "" {
		return a.Source
	}
	return "Other"
}

// HasPublished reports whether the article carries a parseable published time.
func (a *Article) HasPublished() bool {
	return !a.Published.IsZero()
}
