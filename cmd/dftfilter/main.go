// Frequency-domain image filtering demo
// Loads a grayscale image, shows its power spectrum and the low-pass and
// high-pass reconstructions, then writes the intermediate images to disk.

package main

import (
	"errors"
	"flag"
	"fmt"
	stdio "io"
	"os"

	"github.com/sirupsen/logrus"

	"dft-image-filtering/internal/config"
	"dft-image-filtering/internal/core"
	"dft-image-filtering/internal/gui"
	"dft-image-filtering/internal/io"
	"dft-image-filtering/internal/spectrum"
)

const AppVersion = "1.0.0"

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout stdio.Writer) int {
	prog := args[0]
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stdout)

	debugMode := fs.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := fs.String("config", "", "TOML configuration file")
	radius := fs.Int("radius", 0, "Low-pass disk radius in frequency bins")
	backend := fs.String("backend", "", fmt.Sprintf("Transform backend %v", spectrum.Names()))
	viewer := fs.String("viewer", "", "Result viewer: opencv, fyne or none")
	outDir := fs.String("out", "", "Output directory (default: original naming)")
	quality := fs.Bool("quality", true, "Log reconstruction quality metrics")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stdout, "usage: %s image\n", prog)
		return 0
	}
	input := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath, cfg)
		if err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugMode
		case "radius":
			cfg.Radius = *radius
		case "backend":
			cfg.Backend = *backend
		case "viewer":
			cfg.Viewer = *viewer
		case "out":
			cfg.OutputDir = *outDir
		case "quality":
			cfg.Quality = *quality
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	logger := initLogger(cfg.Debug, stdout)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"input":      input,
	}).Info("Starting frequency-domain filtering")

	loader := io.NewImageLoader(logger)
	pipeline, err := core.NewPipeline(loader, logger, core.Options{
		Backend: cfg.Backend,
		Filter:  cfg.FilterParams(),
		Quality: cfg.Quality,
	})
	if err != nil {
		logger.WithError(err).Error("Invalid pipeline configuration")
		return 1
	}

	result, err := pipeline.Run(input)
	if err != nil {
		if core.IsUnreadable(err) {
			fmt.Fprintf(stdout, "can't read %s\n", input)
			return -1
		}
		logger.WithError(err).Error("Processing failed")
		return 1
	}
	defer result.Close()

	presenter, err := gui.NewPresenter(cfg.Viewer, logger)
	if err != nil {
		logger.WithError(err).Error("Invalid viewer")
		return 1
	}
	if err := presenter.Present(result.Views()); err != nil {
		logger.WithError(err).Error("Display failed")
		return 1
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			logger.WithError(err).Error("Cannot create output directory")
			return 1
		}
	}
	if err := core.WriteOutputs(loader, result.Outputs(cfg.OutputDir)); err != nil {
		logger.WithError(err).Error("Writing results failed")
		return 1
	}

	logger.Info("Frequency-domain filtering finished")
	return 0
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, out stdio.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
