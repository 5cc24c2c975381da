package kerr

import (
	"errors"
	"math"
	"testing"
)

func TestNonRotatingLimit(t *testing.T) {
	rh, err := HorizonRadius(0)
	if err != nil {
		t.Fatalf("horizon: %v", err)
	}
	if rh != 2.0 {
		t.Errorf("expected horizon 2, got %v", rh)
	}

	risco, err := ISCORadiusPrograde(0)
	if err != nil {
		t.Fatalf("isco: %v", err)
	}
	if math.Abs(risco-6.0) > 1e-9 {
		t.Errorf("expected isco 6, got %v", risco)
	}

	eta, err := RadiativeEfficiency(0)
	if err != nil {
		t.Fatalf("efficiency: %v", err)
	}
	expected := 1 - math.Sqrt(8.0/9.0)
	if math.Abs(eta-expected) > 1e-12 {
		t.Errorf("expected efficiency %.6f, got %.6f", expected, eta)
	}
	if math.Abs(eta-0.0572) > 1e-4 {
		t.Errorf("expected efficiency ~0.0572, got %.6f", eta)
	}
}

func TestNearExtremalLimit(t *testing.T) {
	const a = 0.9999

	rh, _ := HorizonRadius(a)
	if math.Abs(rh-1.0) > 0.02 {
		t.Errorf("expected horizon near 1, got %v", rh)
	}

	risco, _ := ISCORadiusPrograde(a)
	if math.Abs(risco-1.0) > 0.1 {
		t.Errorf("expected isco near 1, got %v", risco)
	}

	eta, _ := RadiativeEfficiency(a)
	if math.Abs(eta-0.382) > 1e-3 {
		t.Errorf("expected efficiency ~0.382, got %.6f", eta)
	}
	limit := 1 - 1/math.Sqrt(3)
	if eta >= limit {
		t.Errorf("efficiency %.6f should stay below the extremal limit %.6f", eta, limit)
	}
}

func TestSchwarzschildRadiusSun(t *testing.T) {
	rs, err := SchwarzschildRadius(1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(rs-2954.13)/2954.13 > 1e-3 {
		t.Errorf("expected ~2954 m, got %.2f", rs)
	}

	rg, _ := GravitationalRadius(1.0)
	if rg != rs/2 {
		t.Errorf("expected r_g = rs/2, got %v vs %v", rg, rs)
	}
}

func TestKnownISCOValues(t *testing.T) {
	tests := []struct {
		spin float64
		isco float64
	}{
		{0.0, 6.0},
		{0.5, 4.233},
		{0.9, 2.321},
		{0.998, 1.237},
	}

	for _, tt := range tests {
		got, err := ISCORadiusPrograde(tt.spin)
		if err != nil {
			t.Fatalf("spin %v: %v", tt.spin, err)
		}
		if math.Abs(got-tt.isco) > 1e-3 {
			t.Errorf("spin %v: expected isco %.3f, got %.4f", tt.spin, tt.isco, got)
		}
	}
}

func TestInvalidMass(t *testing.T) {
	for _, m := range []float64{0, -1, math.NaN(), math.Inf(1), 1e300, MaxMassSolar * 1.01} {
		if _, err := SchwarzschildRadius(m); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("mass %v: expected ErrInvalidParameter, got %v", m, err)
		}
		if _, err := EddingtonLuminosity(m); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("mass %v: expected ErrInvalidParameter from luminosity, got %v", m, err)
		}
	}
}

func TestMaxMassStaysFinite(t *testing.T) {
	rs, err := SchwarzschildRadius(MaxMassSolar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ledd, err := EddingtonLuminosity(MaxMassSolar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsInf(rs, 0) || math.IsInf(ledd, 0) {
		t.Errorf("expected finite results, got rs=%v ledd=%v", rs, ledd)
	}
}

func TestInvalidSpin(t *testing.T) {
	funcs := map[string]func(float64) (float64, error){
		"horizon":    HorizonRadius,
		"isco":       ISCORadiusPrograde,
		"efficiency": RadiativeEfficiency,
	}

	for name, fn := range funcs {
		for _, a := range []float64{-0.1, 1.0, 1.5, math.NaN(), math.Inf(1)} {
			v, err := fn(a)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("%s(%v): expected ErrInvalidParameter, got %v", name, a, err)
			}
			if v != 0 {
				t.Errorf("%s(%v): expected zero value on error, got %v", name, a, v)
			}
		}
	}
}

func TestParameterErrorDetails(t *testing.T) {
	_, err := HorizonRadius(1.2)

	var pe *ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParameterError, got %T", err)
	}
	if pe.Name != "spin" || pe.Value != 1.2 {
		t.Errorf("unexpected error fields: %+v", pe)
	}
}

func TestHorizonGuardBeyondDomain(t *testing.T) {
	if got := horizon(1.5); got != 1 {
		t.Errorf("expected clamped horizon 1, got %v", got)
	}
}
