/*
fontconvert converts TTF/OTF fonts into e-paper font assets: binary .epdfont
containers for the storage card, or C header tables for firmware builds.

	fontconvert [flags] <family-name> [fontfile ...]

Positional font files form one fallback stack for a single "regular" style;
alternatively -regular/-bold/-italic each name one style's font file.

	fontconvert -o /tmp/fonts -size 16 -2bit bookerly Bookerly.ttf
	fontconvert -o /tmp/fonts -all-sizes -thai -regular Reg.ttf -bold Bold.ttf noto-serif
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/papyrix/epdfont"
	"github.com/papyrix/epdfont/convert"
)

// tracer traces with key 'papyrix.convert'
func tracer() tracing.Trace {
	return tracing.Select("papyrix.convert")
}

// intervalFlags collects repeated -interval min,max arguments.
type intervalFlags []epdfont.CodePointInterval

func (f *intervalFlags) String() string {
	return fmt.Sprintf("%v", []epdfont.CodePointInterval(*f))
}

func (f *intervalFlags) Set(value string) error {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return fmt.Errorf("interval must be min,max (got %q)", value)
	}
	first, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 0, 32)
	if err != nil {
		return err
	}
	last, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 32)
	if err != nil {
		return err
	}
	if first > unicode.MaxRune || last > unicode.MaxRune {
		return fmt.Errorf("interval %q exceeds U+10FFFF", value)
	}
	if last < first {
		return fmt.Errorf("interval %q is inverted", value)
	}
	*f = append(*f, epdfont.CodePointInterval{First: rune(first), Last: rune(last)})
	return nil
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.papyrix.epdfont": "Error",
		"trace.papyrix.raster":  "Error",
		"trace.papyrix.convert": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	var extra intervalFlags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	regular := flag.String("regular", "", "Regular style font file")
	bold := flag.String("bold", "", "Bold style font file")
	italic := flag.String("italic", "", "Italic style font file")
	size := flag.Int("size", 16, "Font size in points")
	allSizes := flag.Bool("all-sizes", false, "Generate 12, 14, 16 and 18pt sizes")
	twoBit := flag.Bool("2bit", false, "2-bit greyscale output (smoother but larger)")
	thai := flag.Bool("thai", false, "Include Thai script (U+0E00-0E7F)")
	arabic := flag.Bool("arabic", false, "Include Arabic script and presentation forms")
	hebrew := flag.Bool("hebrew", false, "Include Hebrew script and presentation forms")
	weight := flag.Int("weight", 0, "Variable font weight (e.g. 400 regular, 700 bold)")
	header := flag.Bool("header", false, "Output C header tables instead of binary .epdfont")
	outDir := flag.String("o", ".", "Output directory")
	dpi := flag.Int("dpi", convert.DefaultDPI, "Target display resolution")
	flag.Var(&extra, "interval", "Additional code point interval as min,max (can be repeated)")
	flag.Parse()
	setTraceLevel(*tlevel)
	tracer().Infof("Trace level is %s", *tlevel)

	if flag.NArg() < 1 {
		pterm.Error.Println("missing family name")
		flag.Usage()
		os.Exit(2)
	}
	family := flag.Arg(0)

	var styles []convert.Style
	if *regular != "" || *bold != "" || *italic != "" {
		for _, s := range []struct{ name, path string }{
			{"regular", *regular}, {"bold", *bold}, {"italic", *italic},
		} {
			if s.path != "" {
				styles = append(styles, convert.Style{Name: s.name, Paths: []string{s.path}})
			}
		}
	} else if flag.NArg() > 1 {
		styles = []convert.Style{{Name: "regular", Paths: flag.Args()[1:]}}
	} else {
		pterm.Error.Println("no font files given (positional stack or -regular/-bold/-italic)")
		os.Exit(2)
	}

	depth := epdfont.Depth1BPP
	if *twoBit {
		depth = epdfont.Depth2BPP
	}
	sizes := []int{*size}
	if *allSizes {
		sizes = convert.AllSizes
	}
	scripts := convert.ScriptFlags{Thai: *thai, Arabic: *arabic, Hebrew: *hebrew}

	pterm.Info.Printf("Converting font family: %s (%s, %v pt)\n", family, depth, sizes)
	batch := convert.Run(convert.Options{
		Family:    family,
		Styles:    styles,
		Sizes:     sizes,
		Depth:     depth,
		Intervals: convert.RequestedIntervals(scripts, extra),
		Weight:    *weight,
		DPI:       *dpi,
		Header:    *header,
		OutDir:    *outDir,
	})

	for _, item := range batch.Items {
		if item.Err != nil {
			pterm.Error.Println(item.String())
		} else {
			pterm.Success.Println(item.String())
		}
	}
	if !batch.OK() {
		pterm.Error.Printf("%d of %d conversions failed\n", batch.Failures(), len(batch.Items))
		os.Exit(1)
	}
	pterm.Info.Println("Done! Copy font folder(s) to /config/fonts/ on the storage card.")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level string) {
	l := tracing.LevelError
	switch level {
	case "Debug":
		l = tracing.LevelDebug
	case "Info":
		l = tracing.LevelInfo
	case "Error":
		l = tracing.LevelError
	default:
		pterm.Error.Printf("Invalid trace level: %s\n", level)
		os.Exit(5)
	}
	for _, key := range []string{"papyrix.epdfont", "papyrix.raster", "papyrix.convert"} {
		tracing.Select(key).SetTraceLevel(l)
	}
}
