// Package scene holds the backend-free animation state of the black-hole
// view and maps physical observables to visual parameters.
//
// A [State] is advanced explicitly with [State.Step]; nothing in the package
// reads a clock, so renderers decide the frame rate.
package scene

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/kerrsim/internal/kerr"
)

const (
	diskSpinRate  = 0.7
	diskTiltRate  = 0.3
	diskTiltAngle = 0.15
)

// State is the per-frame animation state.
type State struct {
	Phase     float64
	TimeScale float64
	Paused    bool
}

func New(timeScale float64) *State {
	return &State{TimeScale: timeScale}
}

// Step advances the phase by dt·TimeScale unless paused. Negative steps
// are ignored.
func (s *State) Step(dt float64) {
	if s.Paused || dt <= 0 {
		return
	}
	s.Phase += dt * s.TimeScale
}

func (s *State) SetTimeScale(v float64) {
	s.TimeScale = v
}

func (s *State) TogglePaused() bool {
	s.Paused = !s.Paused
	return s.Paused
}

// DiskRotation returns the in-plane rotation and the wobble tilt of the
// disk in radians.
func (s *State) DiskRotation() (angle, tilt float64) {
	return s.Phase * diskSpinRate, math.Sin(s.Phase*diskTiltRate) * diskTiltAngle
}

// Appearance is the visual mapping of one physical state.
type Appearance struct {
	Hue, Saturation, Lightness float64
	DiskColor                  string
	EmissiveColor              string
	DiskScale                  float64
	ErgosphereScale            float64
}

// Appear maps spin, accretion and the derived radii to disk colour and
// the relative sizes of the disk and ergosphere.
func Appear(p kerr.Parameters, o kerr.Observables) Appearance {
	hue := 0.08 - math.Min(0.06, (p.Spin-0.2)*0.07)
	light := 0.5 + math.Min(0.25, p.AccretionRate*0.15)
	const sat = 0.8

	c := colorful.Hsl(hue*360, sat, light)
	emissive := colorful.Color{R: c.R * 0.35, G: c.G * 0.35, B: c.B * 0.35}

	return Appearance{
		Hue:             hue,
		Saturation:      sat,
		Lightness:       light,
		DiskColor:       c.Clamped().Hex(),
		EmissiveColor:   emissive.Clamped().Hex(),
		DiskScale:       math.Max(0.55, o.ISCORadiusRg/5),
		ErgosphereScale: math.Max(0.65, o.HorizonRadiusRg/2),
	}
}

// Star is a background point in scene units.
type Star struct {
	X, Y, Z float64
}

// Starfield scatters n stars uniformly over directions at radii in
// [180, 600). The same seed yields the same field.
func Starfield(n int, seed int64) []Star {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]Star, n)
	for i := range stars {
		r := 180 + rng.Float64()*420
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		stars[i] = Star{
			X: r * math.Sin(phi) * math.Cos(theta),
			Y: r * math.Cos(phi),
			Z: r * math.Sin(phi) * math.Sin(theta),
		}
	}
	return stars
}
