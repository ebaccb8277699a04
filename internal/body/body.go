// Package body defines the anthropometric measurement record that drives
// mannequin geometry, plus the predictor and file loader that produce it.
package body

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownGender is returned when a gender string cannot be parsed.
var ErrUnknownGender = errors.New("unknown gender")

// Gender selects the regression used by Predict.
type Gender int

const (
	Male Gender = iota
	Female
)

// ParseGender accepts "male"/"female" and their one-letter forms.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return Male, nil
	case "female", "f":
		return Female, nil
	}
	return Male, fmt.Errorf("%w: %q", ErrUnknownGender, s)
}

func (g Gender) String() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// Measurements is an immutable body description. Height and lengths are in
// centimetres, Weight in kilograms.
type Measurements struct {
	Height        float32
	Weight        float32
	Gender        Gender
	Chest         float32
	Waist         float32
	Hips          float32
	ArmLength     float32
	LegLength     float32
	ShoulderWidth float32
	Inseam        float32
}

// BMI returns the body-mass index.
func (m Measurements) BMI() float32 {
	h := m.Height / 100
	if h == 0 {
		return 0
	}
	return m.Weight / (h * h)
}
