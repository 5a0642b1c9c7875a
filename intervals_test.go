package epdfont

import (
	"math"
	"testing"
	"unicode"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestMergeAdjacentIntervals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	merged := MergeIntervals([]CodePointInterval{
		{First: 0, Last: 10},
		{First: 11, Last: 20},
	})
	assert.Equal(t, []CodePointInterval{{First: 0, Last: 20}}, merged,
		"adjacent intervals should fuse into one")
}

func TestMergeKeepsGap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	in := []CodePointInterval{
		{First: 0, Last: 10},
		{First: 12, Last: 20},
	}
	merged := MergeIntervals(in)
	assert.Equal(t, in, merged, "a one code point gap must keep intervals apart")
}

func TestMergeUnsortedOverlapping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	merged := MergeIntervals([]CodePointInterval{
		{First: 0x100, Last: 0x17F},
		{First: 0x20, Last: 0x7E},
		{First: 0x7F, Last: 0xFF},
		{First: 0x30, Last: 0x39}, // fully contained
	})
	assert.Equal(t, []CodePointInterval{{First: 0x20, Last: 0x17F}}, merged)
}

func TestMergeIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	in := []CodePointInterval{
		{First: 0x0E00, Last: 0x0E7F},
		{First: 0x20, Last: 0x7E},
		{First: 0x60, Last: 0x100},
	}
	once := MergeIntervals(in)
	twice := MergeIntervals(once)
	assert.Equal(t, once, twice, "merging must be idempotent")
}

func TestMergeEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	assert.Empty(t, MergeIntervals(nil))
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	in := []CodePointInterval{
		{First: 0x100, Last: 0x110},
		{First: 0x20, Last: 0x30},
	}
	MergeIntervals(in)
	assert.Equal(t, CodePointInterval{First: 0x100, Last: 0x110}, in[0],
		"input slice must stay untouched")
}

func TestMergeClampsToUnicodeRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	merged := MergeIntervals([]CodePointInterval{
		{First: 0x10FFF0, Last: math.MaxInt32}, // reaches past U+10FFFF
	})
	assert.Equal(t, []CodePointInterval{{First: 0x10FFF0, Last: unicode.MaxRune}}, merged)

	merged = MergeIntervals([]CodePointInterval{
		{First: math.MaxInt32, Last: math.MaxInt32}, // entirely outside
		{First: -5, Last: 0x20},                     // negative start
	})
	assert.Equal(t, []CodePointInterval{{First: 0, Last: 0x20}}, merged)
}

// coverageFunc adapts a plain predicate to GlyphCoverage for tests.
type coverageFunc func(rune) bool

func (f coverageFunc) Covers(cp rune) bool { return f(cp) }

func TestValidateDropsUncoveredGaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// coverage with a hole at 0x25..0x26
	cov := coverageFunc(func(cp rune) bool {
		return cp < 0x25 || cp > 0x26
	})
	valid := ValidateIntervals([]CodePointInterval{{First: 0x20, Last: 0x2A}}, cov)
	assert.Equal(t, []CodePointInterval{
		{First: 0x20, Last: 0x24},
		{First: 0x27, Last: 0x2A},
	}, valid)
}

func TestValidateAllCovered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	cov := coverageFunc(func(rune) bool { return true })
	in := []CodePointInterval{{First: 0x20, Last: 0x7E}, {First: 0xA0, Last: 0xFF}}
	assert.Equal(t, in, ValidateIntervals(in, cov))
}

func TestValidateNothingCovered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	cov := coverageFunc(func(rune) bool { return false })
	valid := ValidateIntervals([]CodePointInterval{{First: 0x20, Last: 0x7E}}, cov)
	assert.Empty(t, valid, "a stack covering nothing validates to an empty list")
}

func TestValidateExtremeBoundsTerminate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// a scan up to MaxInt32 would wrap the rune counter and never end; the
	// clamp must discard the interval before the scan starts
	cov := coverageFunc(func(rune) bool { return false })
	valid := ValidateIntervals([]CodePointInterval{
		{First: math.MaxInt32, Last: math.MaxInt32},
	}, cov)
	assert.Empty(t, valid)

	// the last valid code point itself must still scan and terminate
	cov = coverageFunc(func(rune) bool { return true })
	valid = ValidateIntervals([]CodePointInterval{
		{First: unicode.MaxRune, Last: unicode.MaxRune},
	}, cov)
	assert.Equal(t, []CodePointInterval{{First: unicode.MaxRune, Last: unicode.MaxRune}}, valid)
}

func TestValidateSingleCodePoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "papyrix.epdfont")
	defer teardown()
	//
	// only even code points covered: every survivor is a one-point interval
	cov := coverageFunc(func(cp rune) bool { return cp%2 == 0 })
	valid := ValidateIntervals([]CodePointInterval{{First: 0x40, Last: 0x44}}, cov)
	assert.Equal(t, []CodePointInterval{
		{First: 0x40, Last: 0x40},
		{First: 0x42, Last: 0x42},
		{First: 0x44, Last: 0x44},
	}, valid)
}
