package viz

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/san-kum/kerrsim/internal/config"
	"github.com/san-kum/kerrsim/internal/kerr"
	"github.com/san-kum/kerrsim/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(3, 3)
	if !c.IsSet(3, 3) {
		t.Fatal("expected pixel set")
	}
	if c.IsSet(2, 3) {
		t.Error("neighbour should be clear")
	}
	c.Unset(3, 3)
	if c.IsSet(3, 3) || c.Grid[0][1] != blank {
		t.Error("expected pixel cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if strings.TrimRight(c.String(), "\n") != string([]rune{blank, blank}) {
		t.Error("out of range pixels should be ignored")
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)
	if !c.IsSet(28, 20) || !c.IsSet(12, 20) || !c.IsSet(20, 12) {
		t.Error("expected circle to pass through its axis points")
	}
	if c.IsSet(20, 20) {
		t.Error("outline should not fill the centre")
	}

	c.Clear()
	c.FillCircle(20, 20, 3)
	if !c.IsSet(20, 20) {
		t.Error("filled circle should cover the centre")
	}
}

func TestDrawScene(t *testing.T) {
	p := kerr.Parameters{MassSolar: 10, Spin: 0.9, AccretionRate: 0.3}
	c, look, err := RenderSnapshot(40, 16, p, scene.New(1), 1)
	if err != nil {
		t.Fatal(err)
	}
	if look.DiskColor == "" {
		t.Error("expected a disk colour")
	}
	w, h := c.PixelSize()
	if !c.IsSet(w/2, h/2) {
		t.Error("expected the hole to be drawn at the centre")
	}

	if _, _, err := RenderSnapshot(40, 16, kerr.Parameters{MassSolar: 0}, scene.New(1), 1); err == nil {
		t.Error("expected error for zero mass")
	}
}

func TestSlider(t *testing.T) {
	s := slider{name: "spin", min: 0, max: MaxSpin, step: 0.01}
	s.set(1.5)
	if s.value != MaxSpin {
		t.Errorf("expected clamp to %v, got %v", MaxSpin, s.value)
	}
	s.adjust(1)
	if s.value != MaxSpin {
		t.Errorf("expected to stay at max, got %v", s.value)
	}

	m := slider{name: "mass", min: 1, max: 1e10, step: 0.1, log: true, value: 10}
	m.adjust(10)
	if m.value < 99.999 || m.value > 100.001 {
		t.Errorf("expected one decade up to 100, got %v", m.value)
	}
	if f := m.fraction(); f < 0.19 || f > 0.21 {
		t.Errorf("expected fraction 0.2, got %v", f)
	}
}

func TestAppClampsConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Spin = 1.2
	cfg.Mass = -5

	app := NewApp(cfg)
	p := app.Params()
	if p.Spin != MaxSpin || p.MassSolar != 1 {
		t.Errorf("expected clamped params, got %+v", p)
	}
	if app.err != nil {
		t.Errorf("clamped params should be valid: %v", app.err)
	}
}

func TestAppKeys(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	start := app.Params().Spin

	press := func(a App, key tea.KeyMsg) App {
		m, _ := a.Update(key)
		return m.(App)
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.selected != sliderSpin {
		t.Fatalf("expected spin slider selected, got %d", app.selected)
	}
	app = press(app, tea.KeyMsg{Type: tea.KeyRight})
	if got := app.Params().Spin; got <= start {
		t.Errorf("expected spin to increase from %v, got %v", start, got)
	}
	want, _ := kerr.Summarize(app.Params())
	if app.Observables() != want {
		t.Error("observables not recomputed after adjustment")
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	if !app.scene.Paused {
		t.Error("expected paused scene")
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if app.Params().Spin != start {
		t.Errorf("expected reset spin %v, got %v", start, app.Params().Spin)
	}

	app = press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'i'}})
	if app.topic != 0 {
		t.Errorf("expected first topic, got %d", app.topic)
	}
	if !strings.Contains(app.View(), Topics[0].Title) {
		t.Error("expected inspector in view")
	}
}

func TestAppTickAdvancesScene(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	now := time.Now()

	m, _ := app.Update(TickMsg(now))
	m, _ = m.(App).Update(TickMsg(now.Add(time.Second)))
	got := m.(App).scene.Phase
	if got < 1.19 || got > 1.21 {
		t.Errorf("expected phase ~1.2 after one second, got %v", got)
	}
}

func TestReadouts(t *testing.T) {
	p := kerr.Parameters{MassSolar: 10, Spin: 0.9, AccretionRate: 0.3}
	o, _ := kerr.Summarize(p)
	rs := Readouts(p, o)
	if len(rs) != 7 {
		t.Fatalf("expected 7 readouts, got %d", len(rs))
	}
	if rs[3].Value != "15.58%" {
		t.Errorf("expected efficiency 15.58%%, got %s", rs[3].Value)
	}
	if rs[4].Value != "0.30" {
		t.Errorf("expected ratio 0.30, got %s", rs[4].Value)
	}
	if got := parseWatts(t, rs[6].Value); math.Abs(got-o.BolometricLuminosityW)/o.BolometricLuminosityW > 1e-2 {
		t.Errorf("expected L_bol %.3g W, got %s", o.BolometricLuminosityW, rs[6].Value)
	}
	if rs[4].Warn || rs[6].Warn {
		t.Error("sub-Eddington readouts should not warn")
	}
	if FormatLuminosity(0) != "0 W" {
		t.Errorf("unexpected zero luminosity format %q", FormatLuminosity(0))
	}

	o, _ = kerr.Summarize(kerr.Parameters{MassSolar: 10, Spin: 0.5, AccretionRate: 1.5})
	if rs := Readouts(p, o); !rs[4].Warn || !rs[6].Warn {
		t.Error("super-Eddington readouts should warn")
	}
}

// parseWatts reads back a FormatLuminosity string in watts.
func parseWatts(t *testing.T, s string) float64 {
	t.Helper()
	if strings.Contains(s, "e+") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, " W"), 64)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		return v
	}
	v, unit, err := humanize.ParseSI(s)
	if err != nil || unit != "W" {
		t.Fatalf("parse %q: unit %q, err %v", s, unit, err)
	}
	return v
}

func TestFormatLuminosityMagnitude(t *testing.T) {
	for _, m := range []float64{1, 10, 79, 100, 4.3e6, 6.5e9, 1e10} {
		ledd, err := kerr.EddingtonLuminosity(m)
		if err != nil {
			t.Fatal(err)
		}
		s := FormatLuminosity(ledd)
		if got := parseWatts(t, s); math.Abs(got-ledd)/ledd > 1e-2 {
			t.Errorf("mass %g: expected %.3g W, got %s", m, ledd, s)
		}
	}

	if got := FormatLuminosity(5.418e37); got != "5.42e+37 W" {
		t.Errorf("expected scientific notation, got %q", got)
	}
	if got := FormatLuminosity(1.26e32); got != "126 QW" {
		t.Errorf("expected SI prefix, got %q", got)
	}
}

func TestEraseCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 6)
	c.EraseCircle(10, 10, 3)
	if c.IsSet(10, 10) || c.IsSet(12, 10) {
		t.Error("expected erased centre")
	}
	if !c.IsSet(15, 10) {
		t.Error("pixels outside the erased radius should stay set")
	}
}

func TestDrawStarsClearsShadow(t *testing.T) {
	p := kerr.Parameters{MassSolar: 10, Spin: 0.9, AccretionRate: 0.3}
	o, _ := kerr.Summarize(p)
	look := scene.Appear(p, o)

	c := NewCanvas(40, 16)
	c.FillCircle(40, 32, 2)
	DrawStars(c, nil, look)
	if c.IsSet(40, 32) {
		t.Error("expected the sky behind the hole to be cleared")
	}
}

func TestRenderLayers(t *testing.T) {
	front, back := NewCanvas(3, 1), NewCanvas(3, 1)
	front.Set(0, 0)
	back.Set(0, 0)
	back.Set(4, 0)

	plain := lipgloss.NewStyle()
	got := renderLayers(front, back, plain, plain)
	want := string([]rune{blank | 0x1, blank, blank | 0x1}) + "\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAppViewUsesStarLayer(t *testing.T) {
	app := NewApp(config.DefaultConfig())
	m, _ := app.Update(TickMsg(time.Now()))
	a := m.(App)

	starCells := 0
	for y, row := range a.sky.Grid {
		for x, r := range row {
			if r != blank && a.canvas.Grid[y][x] == blank {
				starCells++
			}
		}
	}
	if starCells == 0 {
		t.Error("expected stars visible around the hole")
	}
	if strings.Count(a.View(), "⠀") == canvasWidth*canvasHeight {
		t.Error("expected a non-empty scene")
	}
}

func TestHasTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if !HasTheme(name) {
			t.Errorf("expected theme %s", name)
		}
	}
	if HasTheme("solarized") {
		t.Error("unexpected theme")
	}
}

func TestInspectorSeparator(t *testing.T) {
	if !strings.Contains(Separator(20), "◆") {
		t.Error("expected separator ornament")
	}
	if strings.Contains(Separator(4), "◆") {
		t.Error("short separators are plain")
	}
}

func TestNextThemeWraps(t *testing.T) {
	defer SetTheme("cyberpunk")
	SetTheme(Themes[len(Themes)-1].Name)
	if NextTheme().Name != Themes[0].Name {
		t.Error("expected wrap to first theme")
	}
	if GetTheme("unknown").Name != "cyberpunk" {
		t.Error("expected fallback theme")
	}
}
