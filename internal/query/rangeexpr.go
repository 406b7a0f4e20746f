package query

import (
	"strconv"
	"strings"
)

// PyeongToSquareMeter converts the traditional Korean area unit to m².
const PyeongToSquareMeter = 3.305785

const (
	suffixAtLeast = "이상" // lower bound
	suffixAtMost  = "이하" // upper bound
)

// unit suffixes stripped from operands before the scalar parse
var unitSuffixes = []string{"층", "평", "원"}

// Range is a canonical numeric interval. A nil bound is open; both nil means
// "no constraint" and the caller must omit the predicate entirely.
type Range struct {
	Min *float64
	Max *float64
}

// IsZero reports whether the range constrains nothing.
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Exact reports whether the range is a single-value match.
func (r Range) Exact() bool {
	return r.Min != nil && r.Max != nil && *r.Min == *r.Max
}

// ScalarParser turns one operand into a number. ok=false drops that bound
// only, never the whole expression.
type ScalarParser func(string) (float64, bool)

// RangeOptions tune ParseRange per filter domain.
type RangeOptions struct {
	// UnitFactor multiplies every parsed bound (pyeong→m² for area).
	// Zero means identity.
	UnitFactor float64

	// ZeroMinOnUpperBound makes a bare "이하" expression read as [0, max]
	// instead of an open lower bound. Only the area filter sets this; price
	// and floor keep the open interval.
	ZeroMinOnUpperBound bool
}

// ParseRange parses a range expression: "X~Y", "X 이상", "X 이하" or a bare
// value (exact match). Malformed operands degrade to open bounds rather than
// erroring; a fully unparseable expression yields Range{nil, nil}.
func ParseRange(raw string, parse ScalarParser, opts RangeOptions) Range {
	factor := opts.UnitFactor
	if factor == 0 {
		factor = 1
	}

	raw = strings.TrimSpace(raw)

	scalar := func(s string) *float64 {
		s = stripUnitSuffix(strings.TrimSpace(s))
		v, ok := parse(s)
		if !ok {
			return nil
		}
		v *= factor
		return &v
	}

	if strings.Contains(raw, "~") {
		left, right, _ := strings.Cut(raw, "~")
		return Range{Min: scalar(left), Max: scalar(right)}
	}

	if rest, ok := strings.CutSuffix(raw, suffixAtLeast); ok {
		return Range{Min: scalar(rest)}
	}

	if rest, ok := strings.CutSuffix(raw, suffixAtMost); ok {
		r := Range{Max: scalar(rest)}
		if r.Max != nil && opts.ZeroMinOnUpperBound {
			zero := 0.0
			r.Min = &zero
		}
		return r
	}

	v := scalar(raw)
	return Range{Min: v, Max: v}
}

func stripUnitSuffix(s string) string {
	for _, suffix := range unitSuffixes {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}

// FloatScalar parses a plain decimal number.
func FloatScalar(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IntScalar parses a plain integer (floor numbers).
func IntScalar(s string) (float64, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return float64(v), true
}

// KoreanScalar parses a Korean-shorthand currency amount.
func KoreanScalar(s string) (float64, bool) {
	v, ok := ParseKoreanAmount(s)
	if !ok {
		return 0, false
	}
	return float64(v), true
}
