package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// config is the parsed command line.
type config struct {
	Arch       string
	BatchNorm  bool
	Batch      int
	Seed       uint64
	Eval       bool
	Summary    bool
	ConfigPath string
	LogLevel   slog.Level
	LogFormat  string
	List       bool
	Version    bool
}

// parseArgs processes command-line arguments. It returns the config, a flag
// telling the caller to exit cleanly (help was printed), or an ExitError.
func parseArgs(args []string, output io.Writer) (*config, bool, error) {
	flagSet := flag.NewFlagSet("vgg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
vgg - build a VGG network and run it on a random batch.

Usage:
  vgg [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	cfg := &config{}
	var logLevel string
	flagSet.StringVar(&cfg.Arch, "arch", "VGG19", "Architecture name (see -list).")
	flagSet.BoolVar(&cfg.BatchNorm, "bn", true, "Insert batch normalization after every convolution.")
	flagSet.IntVar(&cfg.Batch, "batch", 2, "Number of random images in the batch.")
	flagSet.Uint64Var(&cfg.Seed, "seed", 42, "Seed for weights, dropout and the input batch.")
	flagSet.BoolVar(&cfg.Eval, "eval", false, "Run in inference mode (no dropout, running statistics).")
	flagSet.BoolVar(&cfg.Summary, "summary", false, "Print the layer listing and parameter count.")
	flagSet.StringVar(&cfg.ConfigPath, "config", "", "HCL file with additional architectures.")
	flagSet.StringVar(&logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flagSet.StringVar(&cfg.LogFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	flagSet.BoolVar(&cfg.List, "list", false, "List available architectures and exit.")
	flagSet.BoolVar(&cfg.Version, "version", false, "Print the version and exit.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %v", flagSet.Args())}
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if cfg.Batch < 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid batch size %d: must be at least 1", cfg.Batch)}
	}

	return cfg, false, nil
}

// newLogger builds the process logger from the parsed flags.
func newLogger(cfg *config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
