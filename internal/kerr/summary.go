package kerr

import (
	"errors"
	"math"
)

// Parameters are the physical inputs of a Kerr black hole.
type Parameters struct {
	MassSolar     float64 `json:"mass_solar"`
	Spin          float64 `json:"spin"`
	AccretionRate float64 `json:"accretion_rate"`
}

// Observables are derived from Parameters by Summarize.
type Observables struct {
	SchwarzschildRadiusKm float64 `json:"schwarzschild_radius_km"`
	HorizonRadiusRg       float64 `json:"horizon_radius_rg"`
	ISCORadiusRg          float64 `json:"isco_radius_rg"`
	RadiativeEfficiency   float64 `json:"radiative_efficiency"`
	EddingtonLuminosityW  float64 `json:"eddington_luminosity_w"`
	BolometricLuminosityW float64 `json:"bolometric_luminosity_w"`
}

// Validate reports every out-of-domain field of p.
func Validate(p Parameters) error {
	return errors.Join(
		checkMass(p.MassSolar),
		checkSpin(p.Spin),
		checkAccretion(p.AccretionRate),
	)
}

// Summarize computes all observables for p. It either returns a fully
// populated, finite record or the zero value and an error.
func Summarize(p Parameters) (Observables, error) {
	if err := Validate(p); err != nil {
		return Observables{}, err
	}

	rs, err := SchwarzschildRadius(p.MassSolar)
	if err != nil {
		return Observables{}, err
	}
	ledd, err := EddingtonLuminosity(p.MassSolar)
	if err != nil {
		return Observables{}, err
	}
	lbol := ledd * p.AccretionRate
	if math.IsInf(lbol, 0) {
		return Observables{}, &ParameterError{Name: "accretion", Value: p.AccretionRate, Want: "small enough for a finite luminosity"}
	}
	risco := isco(p.Spin)

	return Observables{
		SchwarzschildRadiusKm: rs / 1000,
		HorizonRadiusRg:       horizon(p.Spin),
		ISCORadiusRg:          risco,
		RadiativeEfficiency:   efficiency(risco),
		EddingtonLuminosityW:  ledd,
		BolometricLuminosityW: lbol,
	}, nil
}

// EddingtonRatio returns L_bol / L_Edd.
func (o Observables) EddingtonRatio() float64 {
	if o.EddingtonLuminosityW == 0 {
		return 0
	}
	return o.BolometricLuminosityW / o.EddingtonLuminosityW
}

// HorizonRadiusKm converts the horizon radius to kilometres.
func (o Observables) HorizonRadiusKm() float64 {
	return o.HorizonRadiusRg * o.SchwarzschildRadiusKm / 2
}

// ISCORadiusKm converts the ISCO radius to kilometres.
func (o Observables) ISCORadiusKm() float64 {
	return o.ISCORadiusRg * o.SchwarzschildRadiusKm / 2
}
