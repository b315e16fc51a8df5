// Package main runs the framebuffer console in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"fbcon/klog"
	"fbcon/sim"
)

// Version information (set via ldflags during build).
var version = "dev"

type options struct {
	configPath string
	logLevel   string
	logFile    string
	width      uint
	height     uint
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := sim.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = sim.LoadConfig(opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}
	if opts.width != 0 {
		cfg.Width = uint32(opts.width)
	}
	if opts.height != 0 {
		cfg.Height = uint32(opts.height)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: fbcon needs a terminal")
		return 1
	}

	// The terminal belongs to the screen, so the log goes to a file.
	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	log := klog.New(out, klog.ParseLevel(cfg.Log.Level))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize screen: %v\n", err)
		return 1
	}

	s, err := sim.New(cfg, screen, log)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = s.Run(ctx)
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to TOML configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write the kernel log to this file")
	flag.UintVar(&opts.width, "width", 0, "Framebuffer width in pixels (0 fits the terminal)")
	flag.UintVar(&opts.height, "height", 0, "Framebuffer height in pixels (0 fits the terminal)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "fbcon - framebuffer text console simulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: fbcon [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Esc or Ctrl-C quits, F2 saves a PNG snapshot, Ctrl-L clears.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("fbcon %s\n", version)
		os.Exit(0)
	}

	if opts.logLevel != "" && !klog.ValidLevel(opts.logLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}
