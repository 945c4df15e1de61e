package aggregator

import "github.com/xa0c/tally/internal/model"

// Counts holds per-level record totals over one analysis run.
//
// Enumeration order is part of the contract: Levels returns levels in the
// order they were first seen in the input, which downstream reporting uses as
// the tie-break key for equal counts. The order is kept in an explicit slice
// next to the map; map iteration order is never relied on.
type Counts struct {
	counts map[model.Level]int
	order  []model.Level
}

// Count reduces an ordered record sequence into per-level totals.
// A level that never occurs is absent from the result, not present with
// value zero.
func Count(records []model.Record) *Counts {
	c := &Counts{counts: make(map[model.Level]int)}
	for _, r := range records {
		c.Add(r.Level)
	}
	return c
}

// Add increments the count for a level, registering its first occurrence.
func (c *Counts) Add(level model.Level) {
	if _, seen := c.counts[level]; !seen {
		c.order = append(c.order, level)
	}
	c.counts[level]++
}

// Get returns the count for a level, zero when the level never occurred.
func (c *Counts) Get(level model.Level) int {
	return c.counts[level]
}

// Levels returns the levels in first-occurrence order.
// The returned slice is a copy; callers may reorder it freely.
func (c *Counts) Levels() []model.Level {
	out := make([]model.Level, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of distinct levels seen.
func (c *Counts) Len() int {
	return len(c.order)
}

// Total returns the number of records counted across all levels.
func (c *Counts) Total() int {
	var n int
	for _, v := range c.counts {
		n += v
	}
	return n
}
