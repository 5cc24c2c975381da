package kerr

import "math"

const (
	// G is the gravitational constant in m³ kg⁻¹ s⁻².
	G = 6.6743e-11
	// C is the speed of light in m/s.
	C = 299792458.0
	// SolarMass in kg.
	SolarMass = 1.98847e30
	// EddingtonPerSolarMass is the Eddington luminosity of one solar mass in W.
	EddingtonPerSolarMass = 1.26e31
	// MaxMassSolar is the largest mass whose derived quantities all stay
	// finite in float64.
	MaxMassSolar = math.MaxFloat64 / EddingtonPerSolarMass / SolarMass
)

func checkMass(massSolar float64) error {
	if math.IsNaN(massSolar) || massSolar <= 0 || massSolar > MaxMassSolar {
		return &ParameterError{Name: "mass", Value: massSolar, Want: "in (0, MaxMassSolar]"}
	}
	return nil
}

func checkSpin(spin float64) error {
	if math.IsNaN(spin) || spin < 0 || spin >= 1 {
		return &ParameterError{Name: "spin", Value: spin, Want: "in [0, 1)"}
	}
	return nil
}

func checkAccretion(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return &ParameterError{Name: "accretion", Value: rate, Want: "finite and >= 0"}
	}
	return nil
}

// SchwarzschildRadius returns rs = 2GM/c² in metres.
func SchwarzschildRadius(massSolar float64) (float64, error) {
	if err := checkMass(massSolar); err != nil {
		return 0, err
	}
	m := massSolar * SolarMass
	return 2 * G * m / (C * C), nil
}

// HorizonRadius returns the outer horizon r₊ = 1 + √(1 − a²) in r_g.
func HorizonRadius(spin float64) (float64, error) {
	if err := checkSpin(spin); err != nil {
		return 0, err
	}
	return horizon(spin), nil
}

func horizon(a float64) float64 {
	// radicand stays non-negative for |a| <= 1
	return 1 + math.Sqrt(math.Max(0, 1-a*a))
}

// ISCORadiusPrograde returns the co-rotating innermost stable circular
// orbit in r_g. It is 6 for a non-rotating hole and tends to 1 as a → 1.
func ISCORadiusPrograde(spin float64) (float64, error) {
	if err := checkSpin(spin); err != nil {
		return 0, err
	}
	return isco(spin), nil
}

func isco(a float64) float64 {
	a2 := a * a
	z1 := 1 + math.Cbrt(1-a2)*(math.Cbrt(1+a)+math.Cbrt(1-a))
	z2 := math.Sqrt(3*a2 + z1*z1)
	return 3 + z2 - math.Sqrt((3-z1)*(3+z1+2*z2))
}

// RadiativeEfficiency returns η = 1 − E_ISCO, the fraction of rest-mass
// energy released by matter spiralling down to the prograde ISCO.
func RadiativeEfficiency(spin float64) (float64, error) {
	if err := checkSpin(spin); err != nil {
		return 0, err
	}
	return efficiency(isco(spin)), nil
}

func efficiency(risco float64) float64 {
	e := math.Sqrt(1 - 2/(3*risco))
	return 1 - e
}

// EddingtonLuminosity returns L_Edd in W for the given mass.
func EddingtonLuminosity(massSolar float64) (float64, error) {
	if err := checkMass(massSolar); err != nil {
		return 0, err
	}
	return EddingtonPerSolarMass * massSolar, nil
}

// GravitationalRadius returns r_g = GM/c² in metres.
func GravitationalRadius(massSolar float64) (float64, error) {
	rs, err := SchwarzschildRadius(massSolar)
	if err != nil {
		return 0, err
	}
	return rs / 2, nil
}
