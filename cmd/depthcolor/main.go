package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/lixenwraith/depthcolor/colorize"
	"github.com/lixenwraith/depthcolor/config"
	"github.com/lixenwraith/depthcolor/depthio"
	"github.com/lixenwraith/depthcolor/gradient"
	"github.com/lixenwraith/depthcolor/terminal"
)

// customName is the palette entry built from -gradient
const customName = "custom"

type options struct {
	configPath string
	palette    string
	gradient   string
	list       bool
	size       string
	bpp        int
	bigEndian  bool
	output     string
	view       bool
	color      string
	columns    int
	workers    int
	debug      bool

	colorize bool
	min      float64
	max      float64
	median   int

	set map[string]bool // flags given on the command line
}

func main() {
	var opts options

	flag.StringVar(&opts.configPath, "config", "", "TOML config file")
	flag.StringVar(&opts.palette, "palette", "", "Active palette name (see -list)")
	flag.StringVar(&opts.gradient, "gradient", "", "Custom gradient as comma-separated hex colors, e.g. '#000000,#ff8000,#ffffff'")
	flag.BoolVar(&opts.list, "list", false, "List palette names and exit")
	flag.StringVar(&opts.size, "size", "", "Raw frame size WxH")
	flag.IntVar(&opts.bpp, "bpp", 2, "Raw bytes per pixel: 1, 2 or 4")
	flag.BoolVar(&opts.bigEndian, "big-endian", false, "Raw samples are big-endian")
	flag.StringVar(&opts.output, "o", "", "Output PNG path, or '-' for ANSI on stdout")
	flag.BoolVar(&opts.view, "view", false, "Interactive viewer")
	flag.StringVar(&opts.color, "color", "", "Color depth: 'auto', 'true', or '256'")
	flag.IntVar(&opts.columns, "columns", 0, "ANSI output width, 0 = terminal width")
	flag.IntVar(&opts.workers, "workers", 0, "Mapping goroutines, 0 = config/GOMAXPROCS")
	flag.BoolVar(&opts.debug, "debug", false, "Write debug log to logs/depthcolor.log")
	flag.BoolVar(&opts.colorize, "colorize", true, "Colorize depth; false draws min/max scaled gray")
	flag.Float64Var(&opts.min, "min", 0, "Raw value drawn black in gray mode, disables range estimation")
	flag.Float64Var(&opts.max, "max", 65535, "Raw value drawn white in gray mode, disables range estimation")
	flag.IntVar(&opts.median, "median", colorize.DefaultMedianWindow, "Frames in the gray range median window")
	flag.Usage = printUsage
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	logFile := setupLogging(opts.debug)
	os.Exit(finish(run(opts, flag.Args()), logFile))
}

// finish reports err and closes the debug log, returning the process exit code
func finish(err error, logFile *os.File) int {
	code := 0
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		code = 1
	}
	if logFile != nil {
		if cerr := logFile.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: close log: %v\n", cerr)
		}
	}
	return code
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: depthcolor [options] <depth image or raw dump>...")
	fmt.Fprintln(os.Stderr, "\nSupported inputs: 8/16-bit gray PNG, TIFF, BMP; headerless raw dumps with -size")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "\nViewer controls:")
	fmt.Fprintln(os.Stderr, "  q, Esc, Ctrl+C    Quit")
	fmt.Fprintln(os.Stderr, "  p / P             Next / previous palette")
	fmt.Fprintln(os.Stderr, "  n / N, arrows     Next / previous frame")
	fmt.Fprintln(os.Stderr, "  c                 Toggle colorized / gray")
	fmt.Fprintln(os.Stderr, "  r                 Toggle estimated / fixed gray range")
}

func run(opts options, args []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	var extra []gradient.Named
	if opts.gradient != "" {
		colors, err := gradient.ParseHex(strings.Split(opts.gradient, ","))
		if err != nil {
			return fmt.Errorf("-gradient: %w", err)
		}
		extra = append(extra, gradient.Named{Name: customName, Gradient: gradient.New(colors, 0)})
		if opts.palette == "" {
			cfg.Palette = customName
		}
	}

	palette, err := cfg.BuildPalette(extra...)
	if err != nil {
		return err
	}
	if opts.list {
		for i, name := range palette.Names() {
			marker := " "
			if i == palette.Index() {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	}

	if len(args) == 0 {
		printUsage()
		return errors.New("no input")
	}

	order, err := cfg.Order()
	if err != nil {
		return err
	}
	mode, err := terminal.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return err
	}

	w, h, err := parseSize(opts.size)
	if err != nil {
		return err
	}
	layout := depthio.RawLayout{
		Width:         w,
		Height:        h,
		BytesPerPixel: opts.bpp,
		BigEndian:     order == binary.BigEndian,
	}

	frames, err := openFrames(args, layout)
	if err != nil {
		return err
	}
	defer frames.Close()

	c := colorize.New(
		colorize.WithPalette(palette),
		colorize.WithByteOrder(order),
		colorize.WithWorkers(cfg.Workers),
		colorize.WithLogger(log.Default()),
		colorize.WithColorizing(cfg.Colorize),
		colorize.WithRange(cfg.RangeOptions()),
	)
	log.Printf("%d frames, palette %s, %d workers, %s", frames.Len(), palette.Active().Name, cfg.Workers, mode)

	switch {
	case opts.view:
		return runViewer(frames, c, mode)
	case opts.output == "" && !terminal.IsTerminal(os.Stdout):
		return errors.New("stdout is not a terminal; use -o file.png or -o -")
	case opts.output == "" || opts.output == "-":
		return writeANSI(frames, c, cfg.Columns, mode)
	default:
		return writePNGs(frames, c, opts.output)
	}
}

// loadConfig layers the config file under flags that were set explicitly
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	set := opts.set
	if opts.palette != "" {
		cfg.Palette = opts.palette
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if set["big-endian"] {
		cfg.ByteOrder = "little"
		if opts.bigEndian {
			cfg.ByteOrder = "big"
		}
	}
	if opts.color != "" {
		cfg.ColorMode = opts.color
	}
	if opts.columns > 0 {
		cfg.Columns = opts.columns
	}
	if set["colorize"] {
		cfg.Colorize = opts.colorize
	}
	if set["min"] || set["max"] {
		cfg.Normalize = false
		if set["min"] {
			cfg.Min = opts.min
		}
		if set["max"] {
			cfg.Max = opts.max
		}
	}
	if set["median"] {
		cfg.MedianWindow = opts.median
	}
	return cfg, cfg.Validate()
}

func writeANSI(frames *frameSet, c *colorize.Colorizer, columns int, mode terminal.ColorMode) error {
	if columns == 0 {
		columns, _ = terminal.Size(os.Stdout)
	}
	for i := 0; i < frames.Len(); i++ {
		f, err := frames.Load(i)
		if err != nil {
			return err
		}
		if err := c.ColorizeFrame(f); err != nil {
			return fmt.Errorf("%s: %w", frames.Label(i), err)
		}
		if frames.Len() > 1 {
			fmt.Printf("%s  %s\n", frames.Label(i), renderLabel(c))
		}
		if err := terminal.WriteImage(os.Stdout, f.Data, f.Width, f.Height, columns, mode); err != nil {
			return err
		}
	}
	return nil
}

func writePNGs(frames *frameSet, c *colorize.Colorizer, output string) error {
	n := frames.Len()
	for i := 0; i < n; i++ {
		f, err := frames.Load(i)
		if err != nil {
			return err
		}
		if err := c.ColorizeFrame(f); err != nil {
			return fmt.Errorf("%s: %w", frames.Label(i), err)
		}
		path := outputPath(output, i, n)
		if err := depthio.SavePNG(path, f); err != nil {
			return err
		}
		st := c.LastStats()
		log.Printf("%s -> %s (%d/%d valid, %d clamped)", frames.Label(i), path, st.Valid, st.Pixels, st.Clamped)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d frame(s) to %s\n", n, output)
	return nil
}
