package epdfont

import (
	"sort"
	"unicode"
)

// clampToUnicode restricts an interval to the unicode code space. Intervals
// entirely outside [0, U+10FFFF] vanish; out-of-range rune values would
// otherwise wrap the per-code-point scans below.
func clampToUnicode(iv CodePointInterval) (CodePointInterval, bool) {
	if iv.Last < 0 || iv.First > unicode.MaxRune || iv.Last < iv.First {
		return CodePointInterval{}, false
	}
	if iv.First < 0 {
		iv.First = 0
	}
	if iv.Last > unicode.MaxRune {
		iv.Last = unicode.MaxRune
	}
	return iv, true
}

// MergeIntervals normalizes a list of requested code-point intervals: the
// result is sorted ascending, pairwise non-overlapping and non-adjacent, and
// clamped to the unicode code space. Two intervals are combined when the
// later one starts at or before one past the end of the earlier one. Merging
// is idempotent and an empty input yields an empty result.
func MergeIntervals(intervals []CodePointInterval) []CodePointInterval {
	sorted := make([]CodePointInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv, ok := clampToUnicode(iv); ok {
			sorted = append(sorted, iv)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].First != sorted[j].First {
			return sorted[i].First < sorted[j].First
		}
		return sorted[i].Last < sorted[j].Last
	})
	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.First <= last.Last+1 {
			if iv.Last > last.Last {
				last.Last = iv.Last
			}
		} else {
			merged = append(merged, iv)
		}
	}
	return merged
}

// GlyphCoverage answers whether a font resource (or a fallback stack of
// resources) can produce a glyph for a code point.
type GlyphCoverage interface {
	Covers(cp rune) bool
}

// ValidateIntervals reduces merged intervals to the sub-ranges actually
// covered by cov. Every code point is probed in ascending order; a
// non-covered code point closes the currently open covered sub-range and the
// next candidate range starts after the gap. Only maximal contiguous covered
// sub-intervals survive. Gaps are dropped silently: a code point absent from
// the font is a normal outcome, not an error. Intervals are clamped to the
// unicode code space before scanning.
func ValidateIntervals(merged []CodePointInterval, cov GlyphCoverage) []CodePointInterval {
	var valid []CodePointInterval
	for _, iv := range merged {
		iv, ok := clampToUnicode(iv)
		if !ok {
			continue
		}
		start := iv.First
		for cp := iv.First; cp <= iv.Last; cp++ {
			if !cov.Covers(cp) {
				if start < cp {
					valid = append(valid, CodePointInterval{First: start, Last: cp - 1})
				}
				start = cp + 1
			}
		}
		if start <= iv.Last {
			valid = append(valid, CodePointInterval{First: start, Last: iv.Last})
		}
	}
	if n := len(valid); n > 0 {
		tracer().Debugf("validated %d interval(s), first range U+%04X..U+%04X", n, valid[0].First, valid[0].Last)
	}
	return valid
}
