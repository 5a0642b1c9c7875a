/*
fontinspect is an interactive inspector for binary .epdfont containers. It
parses a container the way the device firmware does and lets you browse its
intervals, glyph records and packed bitmaps.

	fontinspect -font /config/fonts/bookerly/regular.epdfont

Commands at the prompt:

	info            container summary (mode, metrics, counts, sizes)
	intervals       list the unicode intervals with their glyph array offsets
	glyphs          list glyph records (glyphs:20 limits the listing)
	glyph:<cp>      show one glyph record plus its bitmap as ASCII art
	quit            leave (or <ctrl>D)

Code points accept decimal, hex (0x2026) or a literal character (glyph:A).
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/papyrix/epdfont"
)

// tracer traces with key 'papyrix.epdfont'
func tracer() tracing.Trace {
	return tracing.Select("papyrix.epdfont")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.papyrix.epdfont": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Container file (.epdfont) to inspect")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to the epdfont inspector")
	//
	// set up REPL
	repl, err := readline.New("epd > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load container to inspect
	if *fontname == "" {
		pterm.Error.Println("no container given, use -font <file>.epdfont")
		os.Exit(4)
	}
	if err := intp.loadAsset(*fontname); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	asset *epdfont.FontAsset
	path  string
	repl  *readline.Instance
}

func (intp *Intp) loadAsset(path string) (err error) {
	intp.asset, err = epdfont.LoadContainer(path)
	if err != nil {
		return err
	}
	intp.path = path
	tracer().Infof("loaded container %s: %d glyphs, %s", path, intp.asset.GlyphCount(), intp.asset.Depth)
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

var commandFn = map[string]func(*Intp, string) error{
	"info":      infoOp,
	"intervals": intervalsOp,
	"glyphs":    glyphsOp,
	"glyph":     glyphOp,
	"help":      helpOp,
}

func (intp *Intp) execute(line string) (quit bool, err error) {
	c := strings.SplitN(line, ":", 2) // e.g. "glyph:0x2026" or "info"
	op := strings.ToLower(c[0])
	if op == "quit" {
		return true, nil
	}
	f, ok := commandFn[op]
	if !ok {
		f = helpOp
	}
	return false, f(intp, getOptArg(c, 1))
}

func helpOp(intp *Intp, arg string) error {
	pterm.Println("commands: info | intervals | glyphs[:max] | glyph:<cp> | quit")
	return nil
}

func infoOp(intp *Intp, arg string) error {
	a := intp.asset
	pterm.Printf("container:    %s\n", intp.path)
	pterm.Printf("mode:         %s\n", a.Depth)
	pterm.Printf("line advance: %d px\n", a.Metrics.LineAdvanceY)
	pterm.Printf("ascender:     %d px\n", a.Metrics.Ascender)
	pterm.Printf("descender:    %d px\n", a.Metrics.Descender)
	pterm.Printf("intervals:    %d\n", len(a.Intervals))
	pterm.Printf("glyphs:       %d\n", a.GlyphCount())
	pterm.Printf("bitmap data:  %d bytes\n", len(a.Bitmap))
	pterm.Printf("container:    %d bytes\n", a.ContainerSize())
	return nil
}

func intervalsOp(intp *Intp, arg string) error {
	for i, iv := range intp.asset.Intervals {
		pterm.Printf("[%3d] U+%04X - U+%04X  (%5d glyphs, offset %d)\n",
			i, iv.First, iv.Last, iv.Count(), intp.asset.GlyphArrayOffset(i))
	}
	return nil
}

func glyphsOp(intp *Intp, arg string) error {
	max := len(intp.asset.Glyphs)
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return err
		}
		if n < max {
			max = n
		}
	}
	for _, g := range intp.asset.Glyphs[:max] {
		pterm.Printf("U+%04X  %3dx%-3d adv=%3d left=%4d top=%4d  %4d bytes @ %d\n",
			g.CodePoint, g.Width, g.Height, g.AdvanceX, g.Left, g.Top, g.DataLength, g.DataOffset)
	}
	if max < len(intp.asset.Glyphs) {
		pterm.Printf("... %d more\n", len(intp.asset.Glyphs)-max)
	}
	return nil
}

func glyphOp(intp *Intp, arg string) error {
	cp, err := parseCodePoint(arg)
	if err != nil {
		return err
	}
	g, ok := intp.asset.Lookup(cp)
	if !ok {
		return fmt.Errorf("U+%04X is not in the container", cp)
	}
	pterm.Printf("U+%04X  %dx%d  advance=%d left=%d top=%d\n",
		g.CodePoint, g.Width, g.Height, g.AdvanceX, g.Left, g.Top)
	if g.Width == 0 || g.Height == 0 {
		pterm.Println("(no ink)")
		return nil
	}
	data := intp.asset.Bitmap[g.DataOffset : g.DataOffset+uint32(g.DataLength)]
	pix := epdfont.DecodeGlyphBitmap(intp.asset.Depth, data, int(g.Width), int(g.Height))
	printBitmap(pix, int(g.Width), int(g.Height), intp.asset.Depth)
	return nil
}

// printBitmap renders a glyph's pixel values as ASCII art, two characters
// per pixel so the aspect ratio roughly survives terminal cells.
func printBitmap(pix []byte, width, height int, depth epdfont.BitDepth) {
	shades1 := []string{"  ", "##"}
	shades2 := []string{"  ", "..", "++", "##"}
	shades := shades1
	if depth == epdfont.Depth2BPP {
		shades = shades2
	}
	var sb strings.Builder
	for y := 0; y < height; y++ {
		sb.Reset()
		for x := 0; x < width; x++ {
			sb.WriteString(shades[pix[y*width+x]])
		}
		pterm.Println(sb.String())
	}
}

func parseCodePoint(arg string) (rune, error) {
	if arg == "" {
		return 0, fmt.Errorf("glyph command needs a code point, e.g. glyph:0x2026")
	}
	if v, err := strconv.ParseUint(arg, 0, 32); err == nil {
		return rune(v), nil
	}
	runes := []rune(arg)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("cannot parse code point %q", arg)
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}
