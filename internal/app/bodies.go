package app

import (
	"fmt"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/config"
)

// LoadBodies resolves the configured starting bodies: every entry of the
// body file when one is set, otherwise one body predicted from height,
// weight and gender.
func LoadBodies(cfg config.BodyConfig) ([]body.Measurements, error) {
	if cfg.File != "" {
		bodies, err := body.LoadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("loading bodies: %w", err)
		}
		return bodies, nil
	}

	m, err := body.Entry{Height: cfg.Height, Weight: cfg.Weight, Gender: cfg.Gender}.Measurements()
	if err != nil {
		return nil, err
	}
	return []body.Measurements{m}, nil
}
