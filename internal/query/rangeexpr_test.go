package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestParseRange_TildeForm(t *testing.T) {
	t.Parallel()

	r := ParseRange("10~20", FloatScalar, RangeOptions{})
	assert.Equal(t, Range{Min: fptr(10), Max: fptr(20)}, r)
	assert.False(t, r.IsZero())
	assert.False(t, r.Exact())
}

func TestParseRange_AtLeast(t *testing.T) {
	t.Parallel()

	r := ParseRange("10이상", FloatScalar, RangeOptions{})
	assert.Equal(t, Range{Min: fptr(10)}, r)
}

func TestParseRange_AtMost_OpenLowerBound(t *testing.T) {
	t.Parallel()

	// price and floor keep the lower bound open
	r := ParseRange("20이하", FloatScalar, RangeOptions{})
	assert.Nil(t, r.Min)
	assert.Equal(t, fptr(20), r.Max)
}

func TestParseRange_AtMost_AreaGetsZeroMin(t *testing.T) {
	t.Parallel()

	r := ParseRange("20평 이하", FloatScalar, RangeOptions{
		UnitFactor:          PyeongToSquareMeter,
		ZeroMinOnUpperBound: true,
	})
	assert.Equal(t, fptr(0), r.Min)
	assert.InDelta(t, 20*PyeongToSquareMeter, *r.Max, 1e-9)
}

func TestParseRange_BareValueIsExact(t *testing.T) {
	t.Parallel()

	r := ParseRange("5층", IntScalar, RangeOptions{})
	assert.True(t, r.Exact())
	assert.Equal(t, fptr(5), r.Min)
	assert.Equal(t, fptr(5), r.Max)
}

func TestParseRange_MalformedOperandDegrades(t *testing.T) {
	t.Parallel()

	// bad left operand drops that bound only
	r := ParseRange("abc~20", FloatScalar, RangeOptions{})
	assert.Nil(t, r.Min)
	assert.Equal(t, fptr(20), r.Max)

	// fully unparseable yields an unconstrained range
	r = ParseRange("abc", FloatScalar, RangeOptions{})
	assert.True(t, r.IsZero())
}

func TestParseRange_UnitFactorAppliesToBothBounds(t *testing.T) {
	t.Parallel()

	r := ParseRange("10~20", FloatScalar, RangeOptions{UnitFactor: PyeongToSquareMeter})
	assert.InDelta(t, 10*PyeongToSquareMeter, *r.Min, 1e-9)
	assert.InDelta(t, 20*PyeongToSquareMeter, *r.Max, 1e-9)
}

func TestParseRange_KoreanScalarBounds(t *testing.T) {
	t.Parallel()

	r := ParseRange("5천만~1억", KoreanScalar, RangeOptions{})
	assert.Equal(t, fptr(50_000_000), r.Min)
	assert.Equal(t, fptr(100_000_000), r.Max)

	r = ParseRange("3억 이상", KoreanScalar, RangeOptions{})
	assert.Equal(t, fptr(300_000_000), r.Min)
	assert.Nil(t, r.Max)
}
