// Package sweep evaluates Kerr observables over a one-dimensional grid of
// one input parameter while the other two stay fixed.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/kerrsim/internal/kerr"
)

var (
	ErrUnknownAxis   = errors.New("sweep: unknown axis")
	ErrInvalidGrid   = errors.New("sweep: invalid grid")
	ErrUnknownColumn = errors.New("sweep: unknown column")
)

type Axis string

const (
	AxisSpin      Axis = "spin"
	AxisMass      Axis = "mass"
	AxisAccretion Axis = "accretion"
)

func ParseAxis(s string) (Axis, error) {
	switch a := Axis(s); a {
	case AxisSpin, AxisMass, AxisAccretion:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q (want spin, mass or accretion)", ErrUnknownAxis, s)
}

// Grid describes the sampled values of one axis, inclusive of both ends.
type Grid struct {
	Axis  Axis    `json:"axis"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Steps int     `json:"steps"`
	Log   bool    `json:"log"`
}

func (g Grid) Validate() error {
	if _, err := ParseAxis(string(g.Axis)); err != nil {
		return err
	}
	if g.Steps < 2 {
		return fmt.Errorf("%w: steps = %d (want >= 2)", ErrInvalidGrid, g.Steps)
	}
	if g.From == g.To || math.IsNaN(g.From) || math.IsNaN(g.To) {
		return fmt.Errorf("%w: empty range [%g, %g]", ErrInvalidGrid, g.From, g.To)
	}
	if g.Log && (g.From <= 0 || g.To <= 0) {
		return fmt.Errorf("%w: log spacing needs positive bounds", ErrInvalidGrid)
	}
	return nil
}

// Values returns the Steps sample points of the grid.
func (g Grid) Values() []float64 {
	vals := make([]float64, g.Steps)
	last := float64(g.Steps - 1)
	if g.Log {
		lo, hi := math.Log10(g.From), math.Log10(g.To)
		for i := range vals {
			vals[i] = math.Pow(10, lo+(hi-lo)*float64(i)/last)
		}
	} else {
		for i := range vals {
			vals[i] = g.From + (g.To-g.From)*float64(i)/last
		}
	}
	vals[0], vals[len(vals)-1] = g.From, g.To
	return vals
}

func (g Grid) apply(base kerr.Parameters, v float64) kerr.Parameters {
	p := base
	switch g.Axis {
	case AxisSpin:
		p.Spin = v
	case AxisMass:
		p.MassSolar = v
	case AxisAccretion:
		p.AccretionRate = v
	}
	return p
}

type Sample struct {
	Input       float64          `json:"input"`
	Params      kerr.Parameters  `json:"params"`
	Observables kerr.Observables `json:"observables"`
}

type Result struct {
	Base    kerr.Parameters `json:"base"`
	Grid    Grid            `json:"grid"`
	Samples []Sample        `json:"samples"`
}

// Run evaluates every grid point. Any invalid point fails the whole sweep.
func Run(ctx context.Context, base kerr.Parameters, grid Grid) (*Result, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	vals := grid.Values()
	samples := make([]Sample, len(vals))
	errs := make([]error, len(vals))

	err := ParallelFor(ctx, len(vals), 64, func(start, end int) {
		for i := start; i < end; i++ {
			p := grid.apply(base, vals[i])
			obs, err := kerr.Summarize(p)
			if err != nil {
				errs[i] = fmt.Errorf("%s = %g: %w", grid.Axis, vals[i], err)
				continue
			}
			samples[i] = Sample{Input: vals[i], Params: p, Observables: obs}
		}
	})
	if err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Result{Base: base, Grid: grid, Samples: samples}, nil
}

var columns = []string{"input", "rs_km", "horizon", "isco", "efficiency", "l_edd", "l_bol", "eddington_ratio"}

// Columns lists the names accepted by Column, in storage order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

func columnValue(s Sample, name string) (float64, bool) {
	o := s.Observables
	switch name {
	case "input":
		return s.Input, true
	case "rs_km":
		return o.SchwarzschildRadiusKm, true
	case "horizon":
		return o.HorizonRadiusRg, true
	case "isco":
		return o.ISCORadiusRg, true
	case "efficiency":
		return o.RadiativeEfficiency, true
	case "l_edd":
		return o.EddingtonLuminosityW, true
	case "l_bol":
		return o.BolometricLuminosityW, true
	case "eddington_ratio":
		return o.EddingtonRatio(), true
	}
	return 0, false
}

// Column extracts one named series from the result.
func (r *Result) Column(name string) ([]float64, error) {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		v, ok := columnValue(s, name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		out[i] = v
	}
	return out, nil
}

// Row returns every column of sample i in Columns order.
func (r *Result) Row(i int) []float64 {
	row := make([]float64, len(columns))
	for j, name := range columns {
		row[j], _ = columnValue(r.Samples[i], name)
	}
	return row
}
