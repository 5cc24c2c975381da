package kerr_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kerrsim/internal/kerr"
)

func spinGrid() []float64 {
	spins := make([]float64, 0, 1001)
	for i := 0; i < 1000; i++ {
		spins = append(spins, float64(i)/1000)
	}
	return append(spins, 0.9999)
}

var _ = Describe("spin dependence", func() {
	It("shrinks the horizon monotonically from 2 towards 1", func() {
		prev := math.Inf(1)
		for _, a := range spinGrid() {
			rh, err := kerr.HorizonRadius(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(rh).To(BeNumerically("<=", prev))
			Expect(rh).To(BeNumerically(">", 1))
			Expect(rh).To(BeNumerically("<=", 2))
			prev = rh
		}
	})

	It("moves the prograde ISCO inwards monotonically", func() {
		prev := math.Inf(1)
		for _, a := range spinGrid() {
			r, err := kerr.ISCORadiusPrograde(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(BeNumerically("<=", prev))
			Expect(r).To(BeNumerically(">=", 1))
			prev = r
		}
	})

	It("keeps the ISCO outside the horizon", func() {
		for _, a := range spinGrid() {
			rh, _ := kerr.HorizonRadius(a)
			r, _ := kerr.ISCORadiusPrograde(a)
			Expect(r).To(BeNumerically(">", rh))
		}
	})

	It("raises the radiative efficiency monotonically", func() {
		prev := math.Inf(-1)
		for _, a := range spinGrid() {
			eta, err := kerr.RadiativeEfficiency(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(eta).To(BeNumerically(">=", prev))
			Expect(eta).To(BeNumerically("<", 1-1/math.Sqrt(3)))
			prev = eta
		}
	})
})

var _ = Describe("domain policy", func() {
	It("rejects spins outside [0, 1) instead of clamping", func() {
		for _, a := range []float64{-1, -1e-9, 1, 1 + 1e-9, 3} {
			_, err := kerr.HorizonRadius(a)
			Expect(err).To(MatchError(kerr.ErrInvalidParameter))
			_, err = kerr.ISCORadiusPrograde(a)
			Expect(err).To(MatchError(kerr.ErrInvalidParameter))
		}
	})

	It("rejects non-positive masses", func() {
		_, err := kerr.SchwarzschildRadius(0)
		Expect(err).To(MatchError(kerr.ErrInvalidParameter))
		_, err = kerr.Summarize(kerr.Parameters{MassSolar: -1, Spin: 0.3})
		Expect(err).To(MatchError(kerr.ErrInvalidParameter))
	})

	It("accepts super-Eddington accretion without a cap", func() {
		obs, err := kerr.Summarize(kerr.Parameters{MassSolar: 10, Spin: 0.5, AccretionRate: 5})
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.EddingtonRatio()).To(BeNumerically("~", 5, 1e-12))
	})
})

var _ = Describe("Summarize", func() {
	It("matches the reference state for a 10 solar mass hole at a*=0.9", func() {
		obs, err := kerr.Summarize(kerr.Parameters{MassSolar: 10, Spin: 0.9, AccretionRate: 0.3})
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.HorizonRadiusRg).To(BeNumerically("~", 1.436, 0.01))
		Expect(obs.ISCORadiusRg).To(BeNumerically("~", 2.321, 0.01))
		Expect(obs.RadiativeEfficiency).To(BeNumerically("~", 0.1558, 0.0015))
		Expect(obs.EddingtonLuminosityW).To(BeNumerically("~", 1.26e32, 1.26e30))
		Expect(obs.BolometricLuminosityW).To(BeNumerically("~", 3.78e31, 3.78e29))
	})

	It("is idempotent", func() {
		p := kerr.Parameters{MassSolar: 4.3e6, Spin: 0.7, AccretionRate: 1e-4}
		a, _ := kerr.Summarize(p)
		b, _ := kerr.Summarize(p)
		Expect(a).To(Equal(b))
	})
})
