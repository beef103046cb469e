package gap

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestListMetricsStableOrder(t *testing.T) {
	a := Default()
	want := []MetricName{"F1-Score", "Precision", "Recall", "Accuracy"}

	assert.Equal(t, want, a.ListMetrics())
	assert.Equal(t, want, a.ListMetrics())

	names := a.ListMetrics()
	names[0] = "mutated"
	assert.Equal(t, want, a.ListMetrics(), "callers must not be able to reorder the table")
}

func TestScores(t *testing.T) {
	a := Default()

	pair, err := a.Scores("F1-Score", nil)
	require.NoError(t, err)
	assert.Equal(t, ClassScorePair{Normal: 93.68, Malicious: 92.40}, pair)

	pair, err = a.Scores("Precision", ptr(91.55))
	require.NoError(t, err)
	assert.Equal(t, ClassScorePair{Normal: 91.55, Malicious: 91.55}, pair)

	base, _ := a.Table().Lookup("Precision")
	assert.Equal(t, 95.06, base.Malicious, "override must not mutate the table")
}

func TestScoresErrors(t *testing.T) {
	a := Default()

	tests := []struct {
		name     string
		metric   MetricName
		override *float64
		want     error
	}{
		{name: "unknown metric", metric: "Nonexistent", want: ErrUnknownMetric},
		{name: "below range", metric: "F1-Score", override: ptr(84.9), want: ErrOutOfRange},
		{name: "above range", metric: "F1-Score", override: ptr(100.01), want: ErrOutOfRange},
		{name: "nan", metric: "F1-Score", override: ptr(math.NaN()), want: ErrOutOfRange},
		{name: "unknown wins over range", metric: "Nope", override: ptr(10), want: ErrUnknownMetric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Scores(tt.metric, tt.override)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScoresRangeInclusive(t *testing.T) {
	a := Default()
	for _, v := range []float64{85.0, 100.0} {
		pair, err := a.Scores("F1-Score", ptr(v))
		require.NoError(t, err)
		assert.Equal(t, v, pair.Malicious)
	}
}

func TestEvaluateTierBoundaries(t *testing.T) {
	a := Default()

	tests := []struct {
		name string
		pair ClassScorePair
		tier Tier
	}{
		{name: "0.999", pair: ClassScorePair{Normal: 1.999, Malicious: 1}, tier: TierBalanced},
		{name: "1.0", pair: ClassScorePair{Normal: 2, Malicious: 1}, tier: TierMild},
		{name: "1.999", pair: ClassScorePair{Normal: 2.999, Malicious: 1}, tier: TierMild},
		{name: "2.0", pair: ClassScorePair{Normal: 3, Malicious: 1}, tier: TierSignificant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tier, a.Evaluate(tt.pair).Tier)
		})
	}
}

func TestEvaluateLeadingClass(t *testing.T) {
	a := Default()

	v := a.Evaluate(ClassScorePair{Normal: 90, Malicious: 95})
	assert.Equal(t, ClassMalicious, v.Leading)
	assert.Equal(t, TierSignificant, v.Tier)
	assert.Equal(t, "Significant gap — Malicious Users dominates by 5.00%.", v.Message)
	assert.GreaterOrEqual(t, v.Gap, 0.0)

	tie := a.Evaluate(ClassScorePair{Normal: 42.5, Malicious: 42.5})
	assert.Equal(t, ClassTied, tie.Leading)
	assert.Equal(t, TierBalanced, tie.Tier)
	assert.Equal(t, 0.0, tie.Gap)
	assert.Equal(t, "Balanced — minimal performance gap.", tie.Message)
}

func TestAnalyzeF1Example(t *testing.T) {
	a := Default()

	res, err := a.Analyze("F1-Score", nil)
	require.NoError(t, err)
	assert.False(t, res.Simulated)
	assert.InDelta(t, 1.28, res.Verdict.Gap, 1e-9)
	assert.Equal(t, ClassNormal, res.Verdict.Leading)
	assert.Equal(t, TierMild, res.Verdict.Tier)
	assert.Equal(t, "Mild difference — Normal Users leads by 1.28%.", res.Verdict.Message)
}

func TestAnalyzePrecisionOverride(t *testing.T) {
	a := Default()

	res, err := a.Analyze("Precision", ptr(91.55))
	require.NoError(t, err)
	assert.True(t, res.Simulated)
	assert.Equal(t, 0.0, res.Verdict.Gap)
	assert.Equal(t, TierBalanced, res.Verdict.Tier)
	assert.Equal(t, ClassTied, res.Verdict.Leading)
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := Default()
	for _, name := range a.ListMetrics() {
		for _, o := range []*float64{nil, ptr(85), ptr(92.31), ptr(100)} {
			first, err := a.Analyze(name, o)
			require.NoError(t, err)
			second, err := a.Analyze(name, o)
			require.NoError(t, err)
			assert.Equal(t, first, second)
			assert.Equal(t, math.Float64bits(first.Verdict.Gap), math.Float64bits(second.Verdict.Gap))
		}
	}
}

func TestCustomPolicyAndLabels(t *testing.T) {
	p := DefaultPolicy()
	p.BalancedBelow = 0.5
	a, err := New(DefaultMetricTable(), p, Labels{Normal: "Benign"})
	require.NoError(t, err)

	v := a.Evaluate(ClassScorePair{Normal: 90.7, Malicious: 90})
	assert.Equal(t, TierMild, v.Tier)
	assert.Equal(t, "Mild difference — Benign leads by 0.70%.", v.Message)
	assert.Equal(t, "Malicious Users", a.Labels().Malicious)
}

func TestNewRejectsInvalidInput(t *testing.T) {
	_, err := New(nil, DefaultPolicy(), DefaultLabels())
	assert.Error(t, err)

	bad := DefaultPolicy()
	bad.MildBelow = 0.5
	_, err = New(DefaultMetricTable(), bad, DefaultLabels())
	assert.Error(t, err)

	for _, v := range []float64{math.NaN(), math.Inf(-1)} {
		bad = DefaultPolicy()
		bad.BalancedBelow = v
		assert.Error(t, bad.Validate(), "balanced %v", v)

		bad = DefaultPolicy()
		bad.MildBelow = v
		assert.Error(t, bad.Validate(), "mild %v", v)
	}

	bad = DefaultPolicy()
	bad.OverrideMin, bad.OverrideMax = 99, 90
	_, err = New(DefaultMetricTable(), bad, DefaultLabels())
	assert.Error(t, err)
}

func TestNewMetricTableValidation(t *testing.T) {
	_, err := NewMetricTable(nil)
	assert.Error(t, err)

	_, err = NewMetricTable([]MetricEntry{{Name: "A"}, {Name: "A"}})
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewMetricTable([]MetricEntry{{Name: "A", Scores: ClassScorePair{Normal: 101}}})
	assert.Error(t, err)

	_, err = NewMetricTable([]MetricEntry{{Scores: ClassScorePair{Normal: 1}}})
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	a := Default()

	points, err := a.Sweep("F1-Score", 0.5)
	require.NoError(t, err)
	require.Len(t, points, 31)
	assert.Equal(t, 85.0, points[0].Override)
	assert.Equal(t, 100.0, points[len(points)-1].Override)
	assert.Equal(t, TierSignificant, points[0].Verdict.Tier)

	points, err = a.Sweep("F1-Score", 4)
	require.NoError(t, err)
	require.Len(t, points, 5)
	assert.Equal(t, []float64{85, 89, 93, 97, 100}, []float64{
		points[0].Override, points[1].Override, points[2].Override, points[3].Override, points[4].Override,
	})

	_, err = a.Sweep("Nope", 1)
	assert.ErrorIs(t, err, ErrUnknownMetric)
	_, err = a.Sweep("F1-Score", 0)
	assert.Error(t, err)
	_, err = a.Sweep("F1-Score", 0.0001)
	assert.Error(t, err)

	for _, step := range []float64{1e-300, math.SmallestNonzeroFloat64, math.Inf(1), math.NaN(), -1} {
		assert.NotPanics(t, func() {
			_, err = a.Sweep("F1-Score", step)
		}, "step %v", step)
		assert.Error(t, err, "step %v", step)
	}
}

func TestSummarize(t *testing.T) {
	sum, err := Default().Summarize()
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Metrics)
	assert.Equal(t, MetricName("Recall"), sum.WidestGap)
	assert.InDelta(t, 6.03, sum.MaxGap, 1e-9)
	assert.InDelta(t, 2.705, sum.MeanGap, 1e-9)
	assert.InDelta(t, 2.395, sum.MedianGap, 1e-9)
	assert.Equal(t, map[string]int{"Balanced": 1, "Mild": 1, "Significant": 2}, sum.TierCounts)
	assert.Len(t, sum.Results, 4)
}

func TestVerdictJSON(t *testing.T) {
	v := Default().Evaluate(ClassScorePair{Normal: 93.68, Malicious: 92.40})
	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"leadingClass":"Normal"`)
	assert.Contains(t, string(data), `"tier":"Mild"`)
}
