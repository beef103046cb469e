// internal/gap/analyzer.go
package gap

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownMetric is returned when a metric is not in the table.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrOutOfRange is returned when a simulated score is outside the policy range.
	ErrOutOfRange = errors.New("simulated score out of range")
)

// maxSweepPoints bounds the number of points a single sweep may produce.
const maxSweepPoints = 10000

// Analyzer resolves metric scores, applies simulated overrides and turns a
// score pair into a Verdict. It holds no mutable state and may be shared
// between goroutines.
type Analyzer struct {
	table  *MetricTable
	policy Policy
	labels Labels
}

// Result bundles the resolved pair and its verdict for one metric.
type Result struct {
	Metric    MetricName     `json:"metric"`
	Pair      ClassScorePair `json:"pair"`
	Simulated bool           `json:"simulated"`
	Verdict   Verdict        `json:"verdict"`
}

// SweepPoint is the verdict for one simulated malicious score.
type SweepPoint struct {
	Override float64 `json:"override"`
	Verdict  Verdict `json:"verdict"`
}

// New returns an Analyzer over table. Empty labels fall back to DefaultLabels.
func New(table *MetricTable, policy Policy, labels Labels) (*Analyzer, error) {
	if table == nil {
		return nil, errors.New("metric table is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	def := DefaultLabels()
	if labels.Normal == "" {
		labels.Normal = def.Normal
	}
	if labels.Malicious == "" {
		labels.Malicious = def.Malicious
	}
	return &Analyzer{table: table, policy: policy, labels: labels}, nil
}

// Default returns an Analyzer over the built-in table and policy.
func Default() *Analyzer {
	a, err := New(DefaultMetricTable(), DefaultPolicy(), DefaultLabels())
	if err != nil {
		panic(err)
	}
	return a
}

// Policy returns the thresholds and override range in use.
func (a *Analyzer) Policy() Policy { return a.policy }

// Labels returns the class display labels in use.
func (a *Analyzer) Labels() Labels { return a.labels }

// Table returns the underlying metric table.
func (a *Analyzer) Table() *MetricTable { return a.table }

// ListMetrics returns the metric names in display order.
func (a *Analyzer) ListMetrics() []MetricName {
	return a.table.Names()
}

// Scores returns the pair for metric, with the malicious score replaced by
// override when one is given.
func (a *Analyzer) Scores(metric MetricName, override *float64) (ClassScorePair, error) {
	pair, ok := a.table.Lookup(metric)
	if !ok {
		return ClassScorePair{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if override == nil {
		return pair, nil
	}
	if err := a.CheckOverride(*override); err != nil {
		return ClassScorePair{}, err
	}
	pair.Malicious = *override
	return pair, nil
}

// CheckOverride reports whether v is an accepted simulated score.
func (a *Analyzer) CheckOverride(v float64) error {
	if math.IsNaN(v) || v < a.policy.OverrideMin || v > a.policy.OverrideMax {
		return fmt.Errorf("%w: %v not in [%.1f, %.1f]", ErrOutOfRange, v, a.policy.OverrideMin, a.policy.OverrideMax)
	}
	return nil
}

// Evaluate computes the gap between the two scores of pair and classifies it.
func (a *Analyzer) Evaluate(pair ClassScorePair) Verdict {
	gap := math.Abs(pair.Normal - pair.Malicious)

	leading := ClassTied
	switch {
	case pair.Normal > pair.Malicious:
		leading = ClassNormal
	case pair.Normal < pair.Malicious:
		leading = ClassMalicious
	}

	tier := a.policy.tierFor(gap)
	return Verdict{
		Gap:     gap,
		Leading: leading,
		Tier:    tier,
		Message: a.message(tier, leading, gap),
	}
}

func (a *Analyzer) message(tier Tier, leading Class, gap float64) string {
	switch tier {
	case TierMild:
		return fmt.Sprintf("Mild difference — %s leads by %.2f%%.", a.labels.For(leading), gap)
	case TierSignificant:
		return fmt.Sprintf("Significant gap — %s dominates by %.2f%%.", a.labels.For(leading), gap)
	default:
		return "Balanced — minimal performance gap."
	}
}

// Analyze resolves the scores for metric and evaluates them in one call.
func (a *Analyzer) Analyze(metric MetricName, override *float64) (Result, error) {
	pair, err := a.Scores(metric, override)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Metric:    metric,
		Pair:      pair,
		Simulated: override != nil,
		Verdict:   a.Evaluate(pair),
	}, nil
}

// Sweep evaluates metric for every override from the policy minimum to its
// maximum in increments of step. The maximum is always the last point.
func (a *Analyzer) Sweep(metric MetricName, step float64) ([]SweepPoint, error) {
	if _, ok := a.table.Lookup(metric); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, fmt.Errorf("sweep step must be positive and finite, got %v", step)
	}
	lo, hi := a.policy.OverrideMin, a.policy.OverrideMax
	span := math.Floor((hi-lo)/step + 1e-9)
	if span+1 > maxSweepPoints {
		return nil, fmt.Errorf("sweep step %v yields more than %d points", step, maxSweepPoints)
	}
	n := int(span) + 1

	points := make([]SweepPoint, 0, n+1)
	for i := 0; i < n; i++ {
		v := math.Min(roundTo(lo+float64(i)*step, 6), hi)
		p, err := a.Analyze(metric, &v)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{Override: v, Verdict: p.Verdict})
	}
	if last := points[len(points)-1].Override; last < hi {
		p, err := a.Analyze(metric, &hi)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{Override: hi, Verdict: p.Verdict})
	}
	return points, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
