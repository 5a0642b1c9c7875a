package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/papyrix/epdfont"
	"github.com/papyrix/epdfont/raster"
)

// DefaultDPI is the dot density of the target panel; glyph pixel sizes are
// computed for it unless Options overrides it.
const DefaultDPI = 150

// AllSizes are the point sizes generated for a full reader font family.
var AllSizes = []int{12, 14, 16, 18}

// Style is one typeface style within a family, rendered from an ordered
// fallback stack of font files (priority descending).
type Style struct {
	Name  string // "regular", "bold", "italic"
	Paths []string
}

// Options configure a conversion batch. One batch converts every requested
// (style, size) combination of one font family sequentially.
type Options struct {
	Family    string // output family name
	Styles    []Style
	Sizes     []int            // point sizes; one output per size
	Depth     epdfont.BitDepth // zero value means 1-bit
	Intervals []epdfont.CodePointInterval
	Weight    int // variable-font weight, 0 = leave axes at default
	DPI       int // 0 = DefaultDPI
	Header    bool   // emit C header tables instead of a binary container
	OutDir    string // output root, "" = current directory
}

// ItemResult is the outcome of one (style, size) conversion.
type ItemResult struct {
	Style      string
	Size       int
	OutputPath string // set on success
	GlyphCount int
	ByteSize   int
	Err        error
}

func (r ItemResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s %dpt: %v", r.Style, r.Size, r.Err)
	}
	return fmt.Sprintf("%s %dpt: %s (%d glyphs, %d bytes)", r.Style, r.Size, r.OutputPath, r.GlyphCount, r.ByteSize)
}

// BatchResult collects the per-item outcomes of a batch run.
type BatchResult struct {
	Items []ItemResult
}

// Failures returns the number of failed items.
func (r *BatchResult) Failures() int {
	n := 0
	for _, item := range r.Items {
		if item.Err != nil {
			n++
		}
	}
	return n
}

// OK reports whether every requested conversion produced an asset.
func (r *BatchResult) OK() bool {
	return len(r.Items) > 0 && r.Failures() == 0
}

// Run converts every (style, size) combination of the batch. Items fail
// independently: a missing or corrupt font file, or a stack covering none of
// the requested code points, is reported for that item while its siblings
// proceed. No output file is created for a failed item, and files are only
// written after the complete asset has been built in memory — an interrupted
// or failed conversion never leaves a partial output behind.
func Run(opts Options) *BatchResult {
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if opts.Depth == 0 {
		opts.Depth = epdfont.Depth1BPP
	}
	sizeInName := len(opts.Sizes) > 1

	result := &BatchResult{}
	for _, size := range opts.Sizes {
		for _, style := range opts.Styles {
			item := ItemResult{Style: style.Name, Size: size}
			asset, err := convertOne(style, size, opts)
			if err != nil {
				item.Err = err
				tracer().Errorf("conversion %s %dpt failed: %v", style.Name, size, err)
			} else {
				item.OutputPath, item.Err = writeOutput(asset, style, size, sizeInName, opts)
				item.GlyphCount = asset.GlyphCount()
				item.ByteSize = asset.ContainerSize()
				if item.Err == nil {
					tracer().Infof("converted %s %dpt: %d glyphs -> %s", style.Name, size, item.GlyphCount, item.OutputPath)
				}
			}
			result.Items = append(result.Items, item)
		}
	}
	return result
}

// convertOne opens the style's font stack at one size and runs the pipeline.
// The engine handles live exactly as long as the conversion.
func convertOne(style Style, size int, opts Options) (*epdfont.FontAsset, error) {
	stack, err := raster.OpenStack(style.Paths, size, opts.DPI, opts.Weight)
	if err != nil {
		return nil, err
	}
	defer stack.Close()
	return Convert(stack, opts.Depth, opts.Intervals)
}

// writeOutput serializes a finished asset to its output location.
//
// Binary containers go to <out>/<family>[-<size>]/<style>.epdfont — the
// directory layout the device scans on its storage card. Headers go to
// <out>/<name>_2b.h with table identifiers derived from family and style.
func writeOutput(asset *epdfont.FontAsset, style Style, size int, sizeInName bool, opts Options) (string, error) {
	if opts.Header {
		name := strings.ReplaceAll(opts.Family, "-", "_") + "_" + style.Name
		if sizeInName {
			name = fmt.Sprintf("%s_%d", name, size)
		}
		path := filepath.Join(opts.OutDir, name+"_2b.h")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, asset.EncodeHeader(name), 0o644); err != nil {
			return "", err
		}
		return path, nil
	}

	dir := filepath.Join(opts.OutDir, opts.Family)
	if sizeInName {
		dir = filepath.Join(opts.OutDir, fmt.Sprintf("%s-%d", opts.Family, size))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, style.Name+".epdfont")
	if err := os.WriteFile(path, asset.EncodeContainer(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
