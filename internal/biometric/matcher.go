package biometric

import (
	"fmt"
	"math"
)

// TemplateLength is the expected descriptor length produced by the face model.
const TemplateLength = 128

// DefaultThreshold is the distance cutoff below which two templates are
// considered the same person. Tied to the external model producing the
// descriptors, not derived here.
const DefaultThreshold = 0.6

// TemplateMismatchError reports incompatible template shapes.
type TemplateMismatchError struct {
	LenA int
	LenB int
}

func (e *TemplateMismatchError) Error() string {
	return fmt.Sprintf("biometric template length mismatch: %d vs %d", e.LenA, e.LenB)
}

// Distance computes the Euclidean distance between two templates.
// Defined only when both templates are non-empty and of identical length.
func Distance(a, b []float64) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, &TemplateMismatchError{LenA: len(a), LenB: len(b)}
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// MatchResult carries the computed distance and the threshold decision.
type MatchResult struct {
	Distance float64
	IsMatch  bool
}

// Matcher applies a fixed threshold decision over template distances.
type Matcher struct {
	threshold float64
}

// NewMatcher builds a matcher; non-positive thresholds fall back to the default.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured cutoff.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match compares two templates and applies the threshold decision.
func (m *Matcher) Match(a, b []float64) (MatchResult, error) {
	d, err := Distance(a, b)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{Distance: d, IsMatch: d <= m.threshold}, nil
}
