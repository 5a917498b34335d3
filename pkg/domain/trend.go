package domain

// Trend represents a topic ranked for display, either precomputed upstream or
// synthesized from raw articles. Mentions equals the number of contributing
// articles within the set it was built from.
type Trend struct {
	Topic     string    `json:"topic"`
	Mentions  int       `json:"mentions"`
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords,omitempty"`
	Articles  []string  `json:"articles,omitempty"` // contributing article urls
}
