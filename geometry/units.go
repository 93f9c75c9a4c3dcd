package geometry

import "fmt"

// Native length unit is the centimeter. Unit strings in definitions are
// converted at parse time.
var lengthUnits = map[string]float64{
	"nm": 1e-7,
	"um": 1e-4,
	"mm": 0.1,
	"cm": 1,
	"m":  100,
	"km": 1e5,
}

// UnitScale returns the factor converting the named length unit to cm.
func UnitScale(units string) (float64, error) {
	scale, ok := lengthUnits[units]
	if !ok {
		return 0, fmt.Errorf("unknown length units '%s'", units)
	}
	return scale, nil
}
