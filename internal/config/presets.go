package config

import "sort"

// Presets are named reference systems. Masses and spins follow commonly
// quoted estimates; accretion rates are in Eddington units.
var Presets = map[string]*Config{
	"schwarzschild": {
		Mass: 10, Spin: 0, Accretion: 0.1, TimeScale: DefaultTimeScale,
	},
	"cygnus_x1": {
		Mass: 21.2, Spin: 0.998, Accretion: 0.02, TimeScale: DefaultTimeScale,
	},
	"grs1915": {
		Mass: 12.4, Spin: 0.98, Accretion: 1.2, TimeScale: 2.0,
	},
	"sgr_a_star": {
		Mass: 4.3e6, Spin: 0.9, Accretion: 1e-7, TimeScale: 0.4,
	},
	"m87": {
		Mass: 6.5e9, Spin: 0.9, Accretion: 1e-5, TimeScale: 0.2,
	},
	"quasar": {
		Mass: 1e9, Spin: 0.95, Accretion: 1.0, TimeScale: 0.6,
	},
}

// GetPreset returns a copy of the named preset or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
