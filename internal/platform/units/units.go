package units

import (
	"fmt"
	"strings"
)

// Unit is a weight display unit. Stored data is always kilograms; a Unit only
// affects presentation.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lb"
)

const lbPerKg = 2.2046226218

func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilograms":
		return Kilograms, nil
	case "lb", "lbs", "pounds":
		return Pounds, nil
	default:
		return "", fmt.Errorf("unknown unit %q (want kg or lb)", s)
	}
}

func (u Unit) Validate() error {
	switch u {
	case Kilograms, Pounds:
		return nil
	default:
		return fmt.Errorf("unknown unit %q", string(u))
	}
}

// FromKg converts a stored kilogram value into this display unit.
func (u Unit) FromKg(kg float64) float64 {
	if u == Pounds {
		return kg * lbPerKg
	}
	return kg
}

// ToKg converts a display-unit value back to kilograms.
func (u Unit) ToKg(v float64) float64 {
	if u == Pounds {
		return v / lbPerKg
	}
	return v
}

func KgToLb(kg float64) float64 { return kg * lbPerKg }

func LbToKg(lb float64) float64 { return lb / lbPerKg }

// Format renders a value with the unit suffix, one decimal place.
func (u Unit) Format(v float64) string {
	return fmt.Sprintf("%.1f %s", v, string(u))
}
