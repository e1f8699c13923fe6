package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	config   string
	out      string
	cacheDir string
	scale    int
	minWidth int
	width    int
	tag      string
	verbose  bool
	version  bool
	input    string // positional Markdown file; empty means stdin
}

// parseFlags parses argv into cliFlags. Returns the flag set's usage
// error as-is so main can print it and exit nonzero.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("md2img", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.StringVarP(&f.out, "out", "o", "", "output PNG path (default: generated in cache dir)")
	fs.StringVar(&f.cacheDir, "cache-dir", "", "directory for generated images")
	fs.IntVar(&f.scale, "scale", 0, "device scale factor (>= 1)")
	fs.IntVar(&f.minWidth, "min-width", 0, "minimum content width in pixels")
	fs.IntVarP(&f.width, "width", "w", 0, "fixed content width in pixels (0 = auto-fit)")
	fs.StringVar(&f.tag, "tag", "", "tag name delimiting renderable spans")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: md2img [flags] [file.md]\n\nRenders a Markdown document (file or stdin) to a PNG image.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	rest := fs.Args()
	if len(rest) > 1 {
		return nil, fmt.Errorf("expected at most one input file, got %d", len(rest))
	}
	if len(rest) == 1 {
		f.input = rest[0]
	}

	return f, nil
}
