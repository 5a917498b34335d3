package domain

// TrendDirection is the qualitative momentum of an insight's topic.
type TrendDirection string

// known trend directions, empty means not reported
const (
	DirectionRising  TrendDirection = "rising"
	DirectionFalling TrendDirection = "falling"
	DirectionStable  TrendDirection = "stable"
)

// Valid reports whether the direction is one of the known values.
func (d TrendDirection) Valid() bool {
	return d == DirectionRising || d == DirectionFalling || d == DirectionStable
}

// Insight represents a narrative summary of article volume, sentiment and
// momentum for a topical domain. ImpactScore is a 0-10 scalar proportional to
// the topic's share of total article volume.
type Insight struct {
	Topic          string         `json:"topic"`
	Summary        string         `json:"summary"`
	Sentiment      Sentiment      `json:"sentiment"`
	ArticleCount   int            `json:"articleCount"`
	ImpactScore    float64        `json:"impactScore"`
	TrendDirection TrendDirection `json:"trendDirection,omitempty"`
	Keywords       []string       `json:"keywords,omitempty"`
}
