package analysis

import "time"

// Freshness is a coarse recency tier of an article relative to "now".
type Freshness string

// freshness tiers, mutually exclusive and exhaustive, evaluated in order
const (
	FreshnessRecent    Freshness = "recent"    // published less than 6h ago
	FreshnessToday     Freshness = "today"     // less than 24h
	FreshnessYesterday Freshness = "yesterday" // less than 48h
	FreshnessOlder     Freshness = "older"
)

// dailyBucketMax is the highest day offset included in the daily histogram.
const dailyBucketMax = 7

// FreshnessOf classifies published against now. Tiers use clock-time
// difference, not calendar days: "yesterday" is 24-48h ago regardless of
// date boundaries. The second return is false when published is the zero
// sentinel, meaning the article contributes to no tier.
func FreshnessOf(published, now time.Time) (Freshness, bool) {
	if published.IsZero() {
		return "", false
	}
	hoursAgo := now.Sub(published).Hours()
	switch {
	case hoursAgo < 6:
		return FreshnessRecent, true
	case hoursAgo < 24:
		return FreshnessToday, true
	case hoursAgo < 48:
		return FreshnessYesterday, true
	default:
		return FreshnessOlder, true
	}
}

// DailyBucket returns the whole number of 24h periods between published and
// now, valid only for offsets 0 through 7. Future-dated or unparseable
// published times fall outside every bucket.
func DailyBucket(published, now time.Time) (int, bool) {
	if published.IsZero() {
		return 0, false
	}
	daysAgo := int(now.Sub(published).Hours() / 24)
	if now.Sub(published) < 0 || daysAgo > dailyBucketMax {
		return 0, false
	}
	return daysAgo, true
}

// HourBucket returns the UTC hour-of-day (0-23) the article was published,
// independent of how many days ago that was.
func HourBucket(published time.Time) (int, bool) {
	if published.IsZero() {
		return 0, false
	}
	return published.UTC().Hour(), true
}

// withinHours reports whether published falls inside the last n hours
// before now. Zero published times never match.
func withinHours(published, now time.Time, n float64) bool {
	if published.IsZero() {
		return false
	}
	return now.Sub(published).Hours() < n
}
