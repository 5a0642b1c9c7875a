package convert

import (
	"github.com/papyrix/epdfont"
)

// Unicode block presets. The base set is what every reader build ships;
// script flags add blocks for languages the built-in set does not reach.
// Presets may overlap or touch — MergeIntervals normalizes the final list.

// BaseIntervals are the default blocks of every conversion.
var BaseIntervals = []epdfont.CodePointInterval{
	{First: 0x0000, Last: 0x007F}, // Basic Latin (ASCII)
	{First: 0x0080, Last: 0x00FF}, // Latin-1 Supplement
	{First: 0x0100, Last: 0x017F}, // Latin Extended-A
	{First: 0x0180, Last: 0x024F}, // Latin Extended-B
	{First: 0x0250, Last: 0x02AF}, // IPA Extensions
	{First: 0x0300, Last: 0x036F}, // Combining Diacritical Marks
	{First: 0x0370, Last: 0x03FF}, // Greek and Coptic
	{First: 0x0400, Last: 0x04FF}, // Cyrillic
	{First: 0x1E00, Last: 0x1EFF}, // Latin Extended Additional (Vietnamese tones)
	{First: 0x2000, Last: 0x206F}, // General Punctuation
	{First: 0x2070, Last: 0x209F}, // Superscripts and Subscripts
	{First: 0x20A0, Last: 0x20CF}, // Currency Symbols
	{First: 0x2190, Last: 0x21FF}, // Arrows
	{First: 0x2200, Last: 0x22FF}, // Mathematical Operators
	{First: 0xFFFD, Last: 0xFFFD}, // Replacement Character
}

// ThaiIntervals adds the Thai block.
var ThaiIntervals = []epdfont.CodePointInterval{
	{First: 0x0E00, Last: 0x0E7F}, // Thai
}

// ArabicIntervals adds Arabic plus the presentation forms the shaper
// substitutes at render time.
var ArabicIntervals = []epdfont.CodePointInterval{
	{First: 0x0600, Last: 0x06FF}, // Arabic
	{First: 0x0750, Last: 0x077F}, // Arabic Supplement
	{First: 0xFB50, Last: 0xFDFF}, // Arabic Presentation Forms-A (ligatures)
	{First: 0xFE70, Last: 0xFEFF}, // Arabic Presentation Forms-B (contextual forms)
}

// HebrewIntervals adds Hebrew plus its presentation-form ligatures.
var HebrewIntervals = []epdfont.CodePointInterval{
	{First: 0x0590, Last: 0x05FF}, // Hebrew (letters, points, cantillation marks)
	{First: 0xFB1D, Last: 0xFB4F}, // Alphabetic Presentation Forms (Hebrew ligatures)
}

// ScriptFlags selects optional script blocks for a conversion.
type ScriptFlags struct {
	Thai   bool
	Arabic bool
	Hebrew bool
}

// RequestedIntervals composes the raw (pre-merge) interval list for a
// conversion: the base blocks, flagged script blocks, and any explicitly
// requested extra intervals.
func RequestedIntervals(scripts ScriptFlags, extra []epdfont.CodePointInterval) []epdfont.CodePointInterval {
	intervals := make([]epdfont.CodePointInterval, 0,
		len(BaseIntervals)+len(ThaiIntervals)+len(ArabicIntervals)+len(HebrewIntervals)+len(extra))
	intervals = append(intervals, BaseIntervals...)
	if scripts.Thai {
		intervals = append(intervals, ThaiIntervals...)
	}
	if scripts.Arabic {
		intervals = append(intervals, ArabicIntervals...)
	}
	if scripts.Hebrew {
		intervals = append(intervals, HebrewIntervals...)
	}
	intervals = append(intervals, extra...)
	return intervals
}
