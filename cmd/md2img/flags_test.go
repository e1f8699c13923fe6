package main

import "testing"

func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"md2img"})
		if err != nil {
			t.Fatalf("parseFlags(): %v", err)
		}
		if f.input != "" {
			t.Errorf("input = %q, want stdin (empty)", f.input)
		}
		if f.scale != 0 || f.width != 0 || f.verbose {
			t.Errorf("unexpected defaults: %#v", f)
		}
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{
			"md2img",
			"--config", "cfg.yaml",
			"-o", "out.png",
			"--cache-dir", "/tmp/imgs",
			"--scale", "3",
			"--min-width", "400",
			"-w", "600",
			"--tag", "render",
			"-v",
			"notes.md",
		})
		if err != nil {
			t.Fatalf("parseFlags(): %v", err)
		}
		if f.config != "cfg.yaml" || f.out != "out.png" || f.cacheDir != "/tmp/imgs" {
			t.Errorf("paths = %#v", f)
		}
		if f.scale != 3 || f.minWidth != 400 || f.width != 600 {
			t.Errorf("dimensions = %#v", f)
		}
		if f.tag != "render" || !f.verbose {
			t.Errorf("tag/verbose = %#v", f)
		}
		if f.input != "notes.md" {
			t.Errorf("input = %q", f.input)
		}
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		f, err := parseFlags([]string{"md2img", "--version"})
		if err != nil {
			t.Fatalf("parseFlags(): %v", err)
		}
		if !f.version {
			t.Error("version flag not set")
		}
	})

	t.Run("too many positionals", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"md2img", "a.md", "b.md"}); err == nil {
			t.Error("expected error for two input files")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		if _, err := parseFlags([]string{"md2img", "--bogus"}); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}
