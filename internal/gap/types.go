// internal/gap/types.go
// Package gap compares the Normal and Malicious class scores of a fixed set of
// classification metrics and classifies the difference between them.
package gap

import (
	"encoding/json"
	"fmt"
	"math"
)

// MetricName identifies a classification metric such as "F1-Score".
type MetricName string

// ClassScorePair holds the per-class scores of one metric, as percentages.
type ClassScorePair struct {
	Normal    float64 `json:"normal"`
	Malicious float64 `json:"malicious"`
}

// Class identifies which class leads a comparison.
type Class int

const (
	// ClassTied means both classes scored exactly the same.
	ClassTied Class = iota
	// ClassNormal means the Normal class scored higher.
	ClassNormal
	// ClassMalicious means the Malicious class scored higher.
	ClassMalicious
)

// String returns the short name of the class.
func (c Class) String() string {
	switch c {
	case ClassNormal:
		return "Normal"
	case ClassMalicious:
		return "Malicious"
	default:
		return "Tied"
	}
}

// MarshalJSON encodes the class by name.
func (c Class) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Tier is the qualitative bucket a gap falls into.
type Tier int

const (
	// TierBalanced is a gap below the balanced threshold.
	TierBalanced Tier = iota
	// TierMild is a gap between the balanced and mild thresholds.
	TierMild
	// TierSignificant is a gap at or above the mild threshold.
	TierSignificant
)

// String returns the name of the tier.
func (t Tier) String() string {
	switch t {
	case TierMild:
		return "Mild"
	case TierSignificant:
		return "Significant"
	default:
		return "Balanced"
	}
}

// MarshalJSON encodes the tier by name.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Verdict is the result of evaluating a ClassScorePair.
type Verdict struct {
	// Gap is the absolute difference between the two scores.
	Gap float64 `json:"gap"`
	// Leading is the class with the higher score, or ClassTied.
	Leading Class `json:"leadingClass"`
	// Tier is the bucket Gap falls into under the active Policy.
	Tier Tier `json:"tier"`
	// Message is the human-readable verdict shown to users.
	Message string `json:"message"`
}

// Labels are the display names used for each class inside verdict messages.
type Labels struct {
	Normal    string `json:"normal"`
	Malicious string `json:"malicious"`
}

// DefaultLabels returns the class labels used by the dashboards.
func DefaultLabels() Labels {
	return Labels{Normal: "Normal Users", Malicious: "Malicious Users"}
}

// For returns the display label for the given class.
func (l Labels) For(c Class) string {
	switch c {
	case ClassNormal:
		return l.Normal
	case ClassMalicious:
		return l.Malicious
	default:
		return "Neither class"
	}
}

// MetricEntry is a single named row of a MetricTable.
type MetricEntry struct {
	Name   MetricName     `json:"name"`
	Scores ClassScorePair `json:"scores"`
}

// MetricTable is an ordered, read-only mapping of metric names to scores.
type MetricTable struct {
	order  []MetricName
	scores map[MetricName]ClassScorePair
}

// NewMetricTable builds a MetricTable, keeping the order of entries.
func NewMetricTable(entries []MetricEntry) (*MetricTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("metric table must contain at least one metric")
	}
	t := &MetricTable{
		order:  make([]MetricName, 0, len(entries)),
		scores: make(map[MetricName]ClassScorePair, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("metric table entry %d has no name", len(t.order))
		}
		if _, dup := t.scores[e.Name]; dup {
			return nil, fmt.Errorf("duplicate metric %q", e.Name)
		}
		if !validScore(e.Scores.Normal) || !validScore(e.Scores.Malicious) {
			return nil, fmt.Errorf("metric %q: scores must be within [0,100], got (%v, %v)", e.Name, e.Scores.Normal, e.Scores.Malicious)
		}
		t.order = append(t.order, e.Name)
		t.scores[e.Name] = e.Scores
	}
	return t, nil
}

// DefaultMetricTable returns the built-in classifier results.
func DefaultMetricTable() *MetricTable {
	t, err := NewMetricTable(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultEntries returns the built-in classifier results as table entries.
func DefaultEntries() []MetricEntry {
	return []MetricEntry{
		{Name: "F1-Score", Scores: ClassScorePair{Normal: 93.68, Malicious: 92.40}},
		{Name: "Precision", Scores: ClassScorePair{Normal: 91.55, Malicious: 95.06}},
		{Name: "Recall", Scores: ClassScorePair{Normal: 95.91, Malicious: 89.88}},
		{Name: "Accuracy", Scores: ClassScorePair{Normal: 93.10, Malicious: 93.10}},
	}
}

// Names returns the metric names in insertion order.
func (t *MetricTable) Names() []MetricName {
	out := make([]MetricName, len(t.order))
	copy(out, t.order)
	return out
}

// Lookup returns the scores recorded for name.
func (t *MetricTable) Lookup(name MetricName) (ClassScorePair, bool) {
	p, ok := t.scores[name]
	return p, ok
}

// Entries returns the table rows in insertion order.
func (t *MetricTable) Entries() []MetricEntry {
	out := make([]MetricEntry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, MetricEntry{Name: name, Scores: t.scores[name]})
	}
	return out
}

func validScore(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 100
}
