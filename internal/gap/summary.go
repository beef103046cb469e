package gap

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes the unsimulated gaps across every metric in the table.
type Summary struct {
	Metrics    int            `json:"metrics"`
	MeanGap    float64        `json:"meanGap"`
	MedianGap  float64        `json:"medianGap"`
	MaxGap     float64        `json:"maxGap"`
	WidestGap  MetricName     `json:"widestGap"`
	TierCounts map[string]int `json:"tierCounts"`
	Results    []Result       `json:"results"`
}

// Summarize evaluates every metric without overrides and aggregates the gaps.
func (a *Analyzer) Summarize() (Summary, error) {
	names := a.ListMetrics()
	sum := Summary{
		Metrics: len(names),
		TierCounts: map[string]int{
			TierBalanced.String():    0,
			TierMild.String():        0,
			TierSignificant.String(): 0,
		},
		Results: make([]Result, 0, len(names)),
	}

	gaps := make(stats.Float64Data, 0, len(names))
	for _, name := range names {
		res, err := a.Analyze(name, nil)
		if err != nil {
			return Summary{}, err
		}
		sum.Results = append(sum.Results, res)
		sum.TierCounts[res.Verdict.Tier.String()]++
		gaps = append(gaps, res.Verdict.Gap)
		if res.Verdict.Gap > sum.MaxGap || sum.WidestGap == "" {
			sum.MaxGap = res.Verdict.Gap
			sum.WidestGap = name
		}
	}

	var err error
	if sum.MeanGap, err = stats.Mean(gaps); err != nil {
		return Summary{}, fmt.Errorf("mean gap: %w", err)
	}
	if sum.MedianGap, err = stats.Median(gaps); err != nil {
		return Summary{}, fmt.Errorf("median gap: %w", err)
	}
	return sum, nil
}
