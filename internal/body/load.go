package body

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrOutOfRange is returned when a body's height or weight fails ValidateInput.
var ErrOutOfRange = errors.New("height or weight out of range")

// File is the on-disk list of bodies.
//
//	bodies:
//	  - height: 175
//	    weight: 70
//	    gender: male
//	    chest: 100   # optional, overrides the prediction
type File struct {
	Bodies []Entry `yaml:"bodies"`
}

// Entry is one body in a File. Zero measurement fields are predicted from
// height, weight and gender.
type Entry struct {
	Height        float32 `yaml:"height"`
	Weight        float32 `yaml:"weight"`
	Gender        string  `yaml:"gender"`
	Chest         float32 `yaml:"chest,omitempty"`
	Waist         float32 `yaml:"waist,omitempty"`
	Hips          float32 `yaml:"hips,omitempty"`
	ArmLength     float32 `yaml:"arm_length,omitempty"`
	LegLength     float32 `yaml:"leg_length,omitempty"`
	ShoulderWidth float32 `yaml:"shoulder_width,omitempty"`
	Inseam        float32 `yaml:"inseam,omitempty"`
}

// Measurements resolves the entry into a full record.
func (e Entry) Measurements() (Measurements, error) {
	g := Male
	if e.Gender != "" {
		var err error
		if g, err = ParseGender(e.Gender); err != nil {
			return Measurements{}, err
		}
	}
	if !ValidateInput(e.Height, e.Weight) {
		return Measurements{}, fmt.Errorf("%w: %gcm %gkg", ErrOutOfRange, e.Height, e.Weight)
	}

	m := Predict(e.Height, e.Weight, g)
	override(&m.Chest, e.Chest)
	override(&m.Waist, e.Waist)
	override(&m.Hips, e.Hips)
	override(&m.ArmLength, e.ArmLength)
	override(&m.LegLength, e.LegLength)
	override(&m.ShoulderWidth, e.ShoulderWidth)
	override(&m.Inseam, e.Inseam)
	return m, nil
}

func override(dst *float32, v float32) {
	if v > 0 {
		*dst = v
	}
}

// Parse decodes a YAML body list.
func Parse(data []byte) ([]Measurements, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding bodies: %w", err)
	}

	out := make([]Measurements, 0, len(f.Bodies))
	for i, e := range f.Bodies {
		m, err := e.Measurements()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadFile reads and parses a YAML body list.
func LoadFile(path string) ([]Measurements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	bodies, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bodies, nil
}
