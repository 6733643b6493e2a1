package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"parcel-kpi-service/internal/domain"
	"slices"
)

// Bucket widths in minutes accepted by the throughput report.
var ThroughputWidths = []int{10, 15, 30, 45, 60}

// Bucket widths in minutes accepted by the sorter rate report.
var RateWidths = []int{1, 10, 20, 30, 60}

// BucketPlan is the fixed grid of time-of-day buckets for one report. Labels run
// from the window start in steps of Width while they are before the window end, so
// the final bucket may be partial.
type BucketPlan struct {
	Width  int
	Window Window
	labels []string
}

func NewBucketPlan(width int, allowed []int, w Window) (BucketPlan, error) {
	if !slices.Contains(allowed, width) {
		return BucketPlan{}, &ValidationError{
			Field: "bin_size",
			Msg:   fmt.Sprintf("must be one of %v", allowed),
		}
	}
	if w.End <= w.Start {
		return BucketPlan{}, &ValidationError{Field: "end_time", Msg: "must be after start_time"}
	}

	labels := make([]string, 0, (w.Minutes()+width-1)/width)
	for t := w.Start; t < w.End; t = t.AddMinutes(width) {
		labels = append(labels, t.Label())
	}

	return BucketPlan{Width: width, Window: w, labels: labels}, nil
}

func (p BucketPlan) Len() int { return len(p.labels) }

func (p BucketPlan) Labels() []string { return slices.Clone(p.labels) }

// LabelFor returns the label of the bucket holding c. Bucket k covers
// [start+k*width, start+(k+1)*width) and the inclusive window end falls into the last
// bucket, so every in-window clock lands on the grid. Whenever the hour-local floor of
// c to a multiple of the width is a grid label, that is the label returned.
func (p BucketPlan) LabelFor(c domain.Clock) string {
	if len(p.labels) == 0 || p.Width <= 0 {
		return c.Label()
	}
	i := (c.MinuteOfDay() - p.Window.Start.MinuteOfDay()) / p.Width
	i = max(0, min(i, len(p.labels)-1))
	return p.labels[i]
}

// NewCounts returns an all-zero histogram over the plan's labels.
func (p BucketPlan) NewCounts() *OrderedCounts {
	return NewOrderedCounts(p.labels)
}

// OrderedCounts is a label->count histogram with a fixed, ordered key set. Labels
// outside the key set are never added.
type OrderedCounts struct {
	labels []string
	index  map[string]int
	counts []int
}

func NewOrderedCounts(labels []string) *OrderedCounts {
	c := &OrderedCounts{
		labels: slices.Clone(labels),
		index:  make(map[string]int, len(labels)),
		counts: make([]int, len(labels)),
	}
	for i, l := range c.labels {
		c.index[l] = i
	}
	return c
}

// Inc increments label and reports whether it belongs to the histogram.
func (c *OrderedCounts) Inc(label string) bool {
	i, ok := c.index[label]
	if !ok {
		return false
	}
	c.counts[i]++
	return true
}

func (c *OrderedCounts) Get(label string) (int, bool) {
	i, ok := c.index[label]
	if !ok {
		return 0, false
	}
	return c.counts[i], true
}

func (c *OrderedCounts) Len() int { return len(c.labels) }

func (c *OrderedCounts) Labels() []string { return slices.Clone(c.labels) }

func (c *OrderedCounts) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// MarshalJSON writes a JSON object whose keys keep the plan order.
func (c *OrderedCounts) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range c.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(l)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		fmt.Fprintf(&buf, ":%d", c.counts[i])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
