package main

import (
	"errors"
	"image"
	"time"

	"github.com/Faultbox/mannequin/internal/app"
	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/raster"
)

type renderOptions struct {
	Mode        animation.Mode
	At          time.Duration
	Size        int
	Transparent bool
}

func optionsFromFlags(cfg *config.Config) (renderOptions, error) {
	mode, err := animation.ParseMode(*flagMode)
	if err != nil {
		return renderOptions{}, err
	}
	if *flagAt < 0 {
		return renderOptions{}, errors.New("-at must not be negative")
	}
	size := cfg.Snapshot.Size
	if *flagSize > 0 {
		size = *flagSize
	}
	return renderOptions{Mode: mode, At: *flagAt, Size: size, Transparent: *flagTransparent}, nil
}

// render draws one square frame of the configured bodies, all in opts.Mode
// and advanced to opts.At.
func render(cfg *config.Config, opts renderOptions) (*image.RGBA, error) {
	bg := cfg.Render.ClearColor
	if opts.Transparent {
		bg = [4]float32{}
	}
	backend := raster.New(opts.Size, opts.Size, raster.Options{
		Supersample: cfg.Snapshot.Supersample,
		ClearColor:  bg,
		CullBack:    true,
		Light:       app.KeyLight(cfg.Render.Light),
	})

	ctx := app.New(cfg, backend)
	defer ctx.Close()
	ctx.Resize(opts.Size, opts.Size)

	if err := ctx.Populate(); err != nil {
		return nil, err
	}
	ctx.RequestModeAll(opts.Mode)
	ctx.Pipeline.Step(opts.At.Seconds())

	return backend.Image(), nil
}
