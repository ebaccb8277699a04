// Package main renders mannequins headlessly through the software
// rasteriser and writes the frame as PNG or WebP.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/snapshot"
	"github.com/Faultbox/mannequin/internal/logger"
)

var (
	flagMode        = flag.String("mode", "idle", "Animation mode for every mannequin (idle, walk, turn, wave, pose)")
	flagAt          = flag.Duration("at", 0, "Animation time to render")
	flagOut         = flag.String("out", "", "Output file; defaults to a timestamped name in the snapshot dir")
	flagSize        = flag.Int("size", 0, "Output width and height in pixels")
	flagTransparent = flag.Bool("transparent", false, "Render on a transparent background")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := optionsFromFlags(cfg)
	if err != nil {
		logger.Error("invalid arguments", zap.Error(err))
		os.Exit(2)
	}

	img, err := render(cfg, opts)
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}

	format, err := snapshot.ParseFormat(cfg.Snapshot.Format)
	if err != nil {
		logger.Error("invalid format", zap.Error(err))
		os.Exit(2)
	}

	path := *flagOut
	if path == "" {
		path, err = snapshot.NewWriter(cfg.Snapshot.Dir, "mannequin", format).Save(img)
	} else {
		err = snapshot.WriteFile(path, img, format)
	}
	if err != nil {
		logger.Error("writing snapshot", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("snapshot written",
		zap.String("path", path),
		zap.Int("size", opts.Size),
		zap.Stringer("mode", opts.Mode),
	)
}
