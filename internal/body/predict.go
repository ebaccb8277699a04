package body

// Input limits accepted by Predict callers.
const (
	MinHeight = 140
	MaxHeight = 220
	MinWeight = 40
	MaxWeight = 200
)

// ValidateInput reports whether height (cm) and weight (kg) are in the range
// the regression was fitted for.
func ValidateInput(height, weight float32) bool {
	return height >= MinHeight && height <= MaxHeight &&
		weight >= MinWeight && weight <= MaxWeight
}

// Predict derives a full measurement set from height, weight and gender using
// linear anthropometric regressions. Every derived value is clamped to a
// plausible adult range, which keeps all mesh radii positive.
func Predict(height, weight float32, g Gender) Measurements {
	heightM := height / 100
	bmi := weight / (heightM * heightM)

	m := Measurements{Height: height, Weight: weight, Gender: g}
	switch g {
	case Female:
		m.Chest = clamp(0.42*height+0.38*weight+18, 70, 130)
		m.Waist = clamp(0.22*height+0.48*weight+(bmi-21)*1.8, 55, 120)
		m.Hips = clamp(0.48*height+0.32*weight+15, 75, 140)
		m.ArmLength = clamp(height*0.37+1.5, 48, 85)
		m.LegLength = clamp(height*0.46, 58, 105)
		m.ShoulderWidth = clamp(0.22*height+0.06*weight+3, 32, 55)
		m.Inseam = clamp(height*0.45, 58, 100)
	default:
		m.Chest = clamp(0.45*height+0.35*weight+15, 70, 140)
		m.Waist = clamp(0.25*height+0.55*weight+(bmi-22)*2, 60, 130)
		m.Hips = clamp(0.42*height+0.28*weight+20, 70, 130)
		m.ArmLength = clamp(height*0.38+2, 50, 90)
		m.LegLength = clamp(height*0.47, 60, 110)
		m.ShoulderWidth = clamp(0.24*height+0.08*weight+5, 35, 60)
		m.Inseam = clamp(height*0.46, 60, 105)
	}
	return m
}

// RecommendSize maps chest circumference to a letter size.
func RecommendSize(m Measurements) string {
	limits := [...]float32{86, 94, 102, 110, 118}
	if m.Gender == Female {
		limits = [...]float32{82, 88, 96, 104, 112}
	}
	sizes := [...]string{"XS", "S", "M", "L", "XL"}
	for i, limit := range limits {
		if m.Chest < limit {
			return sizes[i]
		}
	}
	return "XXL"
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
