package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	md2img "github.com/seiji-k/go-md2img"
	"github.com/seiji-k/go-md2img/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flags.version {
		fmt.Printf("md2img %s\n", Version)
		return
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is
	// invalid, in which case Go runtime defaults apply.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run renders the input document and prints the output image path.
func run(flags *cliFlags) error {
	content, err := readInput(flags.input)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("empty input")
	}

	opts, err := buildOptions(flags)
	if err != nil {
		return err
	}

	svc := md2img.New(opts...)
	defer func() { _ = svc.Close() }()

	res := svc.RenderOnce(context.Background(), string(content))
	if !res.OK() {
		return fmt.Errorf("render failed: %w", res.Err)
	}

	if flags.out != "" {
		if err := os.Rename(res.ImagePath, flags.out); err != nil {
			return fmt.Errorf("moving image to %s: %w", flags.out, err)
		}
		fmt.Println(flags.out)
		return nil
	}

	fmt.Println(res.ImagePath)
	return nil
}

// readInput reads the positional file, or stdin when no file was given.
func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// buildOptions merges config file and flag overrides into service
// options. Flags win over the config file.
func buildOptions(flags *cliFlags) ([]md2img.Option, error) {
	var opts []md2img.Option

	if flags.config != "" {
		cfg, err := config.Load(flags.config)
		if err != nil {
			return nil, err
		}
		opts = cfg.Options()
	}

	if flags.cacheDir != "" {
		opts = append(opts, md2img.WithCacheDir(flags.cacheDir))
	}
	if flags.scale > 0 {
		opts = append(opts, md2img.WithScale(flags.scale))
	}
	if flags.minWidth > 0 {
		opts = append(opts, md2img.WithMinWidth(flags.minWidth))
	}
	if flags.width > 0 {
		opts = append(opts, md2img.WithFixedWidth(flags.width))
	}
	if flags.tag != "" {
		opts = append(opts, md2img.WithTag(flags.tag))
	}
	if flags.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		opts = append(opts, md2img.WithLogger(logger))
	}

	return opts, nil
}
