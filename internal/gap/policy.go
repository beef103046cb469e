package gap

import "fmt"

const (
	// DefaultBalancedThreshold is the gap below which classes count as balanced.
	DefaultBalancedThreshold = 1.0
	// DefaultMildThreshold is the gap below which a difference counts as mild.
	DefaultMildThreshold = 2.0
	// DefaultOverrideMin is the lowest accepted simulated malicious score.
	DefaultOverrideMin = 85.0
	// DefaultOverrideMax is the highest accepted simulated malicious score.
	DefaultOverrideMax = 100.0
)

// Policy holds the tier thresholds and the accepted override range.
type Policy struct {
	BalancedBelow float64 `json:"balancedBelow"`
	MildBelow     float64 `json:"mildBelow"`
	OverrideMin   float64 `json:"overrideMin"`
	OverrideMax   float64 `json:"overrideMax"`
}

// DefaultPolicy returns the <1.0 / <2.0 thresholds with an [85, 100] override range.
func DefaultPolicy() Policy {
	return Policy{
		BalancedBelow: DefaultBalancedThreshold,
		MildBelow:     DefaultMildThreshold,
		OverrideMin:   DefaultOverrideMin,
		OverrideMax:   DefaultOverrideMax,
	}
}

// Validate reports whether the thresholds and range are usable.
func (p Policy) Validate() error {
	if !(p.BalancedBelow > 0) || !(p.MildBelow >= p.BalancedBelow) {
		return fmt.Errorf("invalid thresholds: need 0 < balanced (%v) <= mild (%v)", p.BalancedBelow, p.MildBelow)
	}
	if !validScore(p.OverrideMin) || !validScore(p.OverrideMax) || p.OverrideMin > p.OverrideMax {
		return fmt.Errorf("invalid override range [%v, %v]", p.OverrideMin, p.OverrideMax)
	}
	return nil
}

// tierFor buckets a non-negative gap.
func (p Policy) tierFor(gap float64) Tier {
	switch {
	case gap < p.BalancedBelow:
		return TierBalanced
	case gap < p.MildBelow:
		return TierMild
	default:
		return TierSignificant
	}
}
