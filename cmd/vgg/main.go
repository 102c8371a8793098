// Command vgg builds one VGG variant, feeds it a random batch of images and
// prints the shape of the class scores.
//
// Usage:
//
//	vgg                      # VGG19 with batch normalization, batch of 2
//	vgg -arch VGG11 -bn=false -batch 8
//	vgg -config archs.hcl -arch VGG8 -summary
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/born-ml/vgg/backend/cpu"
	"github.com/born-ml/vgg/internal/archfile"
	"github.com/born-ml/vgg/internal/ctxlog"
	"github.com/born-ml/vgg/nn"
	"github.com/born-ml/vgg/tensor"
	"github.com/born-ml/vgg/vgg"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, exit, err := parseArgs(args, stderr)
	if err != nil || exit {
		return err
	}

	if cfg.Version {
		fmt.Fprintf(stdout, "vgg %s\n", version)
		return nil
	}

	logger := newLogger(cfg, stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	catalog, err := loadCatalog(ctx, cfg.ConfigPath)
	if err != nil {
		return err
	}

	if cfg.List {
		for _, name := range catalog.Names() {
			row, _ := catalog.Lookup(name)
			fmt.Fprintf(stdout, "%-12s %s\n", name, row)
		}
		return nil
	}

	row, err := catalog.Lookup(cfg.Arch)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("%v (available: %v)", err, catalog.Names())}
	}

	backend := cpu.New()
	nn.Seed(cfg.Seed)

	logger.Info("Building network.", "arch", cfg.Arch, "batch_norm", cfg.BatchNorm, "stages", vgg.StageCount(row, cfg.BatchNorm))
	start := time.Now()
	net, err := vgg.NewFromRow(cfg.Arch, row, cfg.BatchNorm, backend)
	if err != nil {
		return err
	}
	logger.Debug("Network built.", "parameters", net.NumParameters(), "elapsed", time.Since(start))

	if cfg.Eval {
		net.Eval()
	}
	if cfg.Summary {
		fmt.Fprintln(stdout, net)
		fmt.Fprintf(stdout, "parameters: %d\n", net.NumParameters())
	}

	input := tensor.RandnSeeded[float32](net.InputShape(cfg.Batch), cfg.Seed, backend)

	start = time.Now()
	out, err := net.Infer(input)
	if err != nil {
		return err
	}
	logger.Info("Forward pass finished.", "input", input.Shape(), "training", net.Training(), "elapsed", time.Since(start))

	fmt.Fprintf(stdout, "output shape: %v\n", out.Shape())
	return nil
}

// loadCatalog returns the built-in architectures plus those defined in path,
// if set.
func loadCatalog(ctx context.Context, path string) (*vgg.Catalog, error) {
	catalog := vgg.NewCatalog()
	if path == "" {
		return catalog, nil
	}

	defs, err := archfile.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := archfile.Register(catalog, defs); err != nil {
		return nil, fmt.Errorf("registering architectures from %s: %w", path, err)
	}
	return catalog, nil
}
