package analysis

import (
	"math"
	"sort"
)

// Entry is a key with its occurrence count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter counts occurrences by key while remembering the order keys were
// first seen, so equal counts rank in encounter order.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// NewCounter creates an empty counter.
func NewCounter[K comparable]() *Counter[K] {
	return &Counter[K]{counts: map[K]int{}}
}

// Add increments the count for key.
func (c *Counter[K]) Add(key K) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Get returns the count for key, zero when never added.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Top returns up to n entries sorted by count descending. Ties keep the order
// keys were first encountered. n <= 0 returns all entries.
func (c *Counter[K]) Top(n int) []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry[K]{Key: key, Count: c.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// CountBy counts items by the key derived from each.
func CountBy[T any, K comparable](items []T, key func(T) K) *Counter[K] {
	c := NewCounter[K]()
	for _, item := range items {
		c.Add(key(item))
	}
	return c
}

// Percentage computes round(count/total*100), defined as 0 when total is zero.
func Percentage(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}
