package viz

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/san-kum/kerrsim/internal/kerr"
)

// siLimit is the first magnitude past the largest SI prefix (Q, 1e30).
const siLimit = 1e33

// FormatLuminosity renders watts with an SI prefix, e.g. "37.8 QW", and
// falls back to scientific notation past the prefix table, e.g. "5.42e+37 W".
func FormatLuminosity(w float64) string {
	if w == 0 {
		return "0 W"
	}
	if math.Abs(w) >= siLimit || math.IsNaN(w) {
		return fmt.Sprintf("%.3g W", w)
	}
	return humanize.SIWithDigits(w, 2, "W")
}

func FormatMass(m float64) string {
	if m >= 1e5 {
		return fmt.Sprintf("%.2e M☉", m)
	}
	return humanize.FormatFloat("#,###.#", m) + " M☉"
}

func FormatKm(km float64) string {
	return humanize.FormatFloat("#,###.#", km) + " km"
}

func FormatPercent(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// Readout is one labelled line of the observables panel.
type Readout struct {
	Label, Value string
	// Warn marks values outside the usual regime, e.g. super-Eddington.
	Warn bool
}

// Readouts lists the observables in display order.
func Readouts(p kerr.Parameters, o kerr.Observables) []Readout {
	return []Readout{
		{Label: "Schwarzschild radius", Value: FormatKm(o.SchwarzschildRadiusKm)},
		{Label: "Event horizon r+", Value: fmt.Sprintf("%.3f rg (%s)", o.HorizonRadiusRg, FormatKm(o.HorizonRadiusKm()))},
		{Label: "Prograde ISCO", Value: fmt.Sprintf("%.3f rg (%s)", o.ISCORadiusRg, FormatKm(o.ISCORadiusKm()))},
		{Label: "Efficiency η", Value: FormatPercent(o.RadiativeEfficiency)},
		{Label: "L/L_Edd", Value: fmt.Sprintf("%.2f", o.EddingtonRatio()), Warn: o.EddingtonRatio() > 1},
		{Label: "L_Edd", Value: FormatLuminosity(o.EddingtonLuminosityW)},
		{Label: "L_bol", Value: FormatLuminosity(o.BolometricLuminosityW), Warn: o.EddingtonRatio() > 1},
	}
}

// EfficiencyCurve samples η over [0, maxSpin] for the side chart.
func EfficiencyCurve(n int, maxSpin float64) []float64 {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		a := maxSpin * float64(i) / float64(n-1)
		eta, err := kerr.RadiativeEfficiency(a)
		if err != nil || math.IsNaN(eta) {
			continue
		}
		out = append(out, eta)
	}
	return out
}
