package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kerrsim/internal/config"
	"github.com/san-kum/kerrsim/internal/kerr"
	"github.com/san-kum/kerrsim/internal/scene"
)

const (
	canvasWidth  = 48
	canvasHeight = 18
	starCount    = 400
	starSeed     = 42
	frameRate    = 30

	// MaxSpin is the largest spin the sliders reach.
	MaxSpin = 0.999
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

type slider struct {
	name     string
	min, max float64
	step     float64
	log      bool
	value    float64
}

func (s *slider) set(v float64) {
	if math.IsNaN(v) {
		v = s.min
	}
	s.value = math.Max(s.min, math.Min(s.max, v))
}

// adjust moves the slider by dir steps; log sliders step in decades/10.
func (s *slider) adjust(dir float64) {
	if s.log {
		s.set(s.value * math.Pow(10, dir*s.step))
		return
	}
	s.set(s.value + dir*s.step)
}

func (s *slider) fraction() float64 {
	if s.log {
		lo, hi := math.Log10(s.min), math.Log10(s.max)
		return (math.Log10(s.value) - lo) / (hi - lo)
	}
	return (s.value - s.min) / (s.max - s.min)
}

func (s *slider) format() string {
	switch s.name {
	case "mass":
		return FormatMass(s.value)
	case "spin":
		return fmt.Sprintf("%.3f", s.value)
	case "accretion":
		return fmt.Sprintf("%.2f Edd", s.value)
	default:
		return fmt.Sprintf("%.2fx", s.value)
	}
}

const (
	sliderMass = iota
	sliderSpin
	sliderAccretion
	sliderTimeScale
)

// App is the interactive black-hole inspector.
type App struct {
	sliders   []slider
	selected  int
	initial   config.Config
	scene     *scene.State
	stars     []scene.Star
	canvas    *Canvas
	sky       *Canvas
	params    kerr.Parameters
	obs       kerr.Observables
	look      scene.Appearance
	err       error
	topic     int
	curve     []float64
	lastFrame time.Time
}

// NewApp builds the inspector from cfg. Out-of-range values are clamped
// to the slider ranges, so the physics never sees an invalid input.
func NewApp(cfg *config.Config) App {
	a := App{
		sliders: []slider{
			{name: "mass", min: 1, max: 1e10, step: 0.1, log: true},
			{name: "spin", min: 0, max: MaxSpin, step: 0.01},
			{name: "accretion", min: 0, max: 2, step: 0.05},
			{name: "time", min: 0, max: 5, step: 0.1},
		},
		initial: *cfg,
		stars:   scene.Starfield(starCount, starSeed),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		sky:     NewCanvas(canvasWidth, canvasHeight),
		topic:   -1,
		curve:   EfficiencyCurve(60, MaxSpin),
	}
	if cfg.Theme != "" {
		SetTheme(cfg.Theme)
	}
	a.reset()
	return a
}

func (a *App) reset() {
	a.sliders[sliderMass].set(a.initial.Mass)
	a.sliders[sliderSpin].set(a.initial.Spin)
	a.sliders[sliderAccretion].set(a.initial.Accretion)
	a.sliders[sliderTimeScale].set(a.initial.TimeScale)
	a.scene = scene.New(a.initial.TimeScale)
	a.recompute()
}

// recompute re-derives observables after any slider change.
func (a *App) recompute() {
	a.params = kerr.Parameters{
		MassSolar:     a.sliders[sliderMass].value,
		Spin:          a.sliders[sliderSpin].value,
		AccretionRate: a.sliders[sliderAccretion].value,
	}
	a.scene.SetTimeScale(a.sliders[sliderTimeScale].value)
	a.obs, a.err = kerr.Summarize(a.params)
	if a.err == nil {
		a.look = scene.Appear(a.params, a.obs)
		a.sky.Clear()
		DrawStars(a.sky, a.stars, a.look)
	}
}

// Params returns the physical inputs currently selected.
func (a App) Params() kerr.Parameters { return a.params }

// Observables returns the last computed observables.
func (a App) Observables() kerr.Observables { return a.obs }

func (a App) Init() tea.Cmd {
	return tick()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case TickMsg:
		now := time.Time(msg)
		if !a.lastFrame.IsZero() {
			a.scene.Step(now.Sub(a.lastFrame).Seconds())
		}
		a.lastFrame = now
		if a.err == nil {
			a.canvas.Clear()
			DrawHole(a.canvas, a.scene, a.look)
		}
		return a, tick()
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab", "down", "j":
		a.selected = (a.selected + 1) % len(a.sliders)
	case "shift+tab", "up", "k":
		a.selected = (a.selected + len(a.sliders) - 1) % len(a.sliders)
	case "right", "l":
		a.sliders[a.selected].adjust(1)
		a.recompute()
	case "left", "h":
		a.sliders[a.selected].adjust(-1)
		a.recompute()
	case " ":
		a.scene.TogglePaused()
	case "r":
		a.reset()
	case "t":
		CurrentTheme = NextTheme()
	case "i":
		a.topic = (a.topic + 1) % len(Topics)
	case "esc":
		a.topic = -1
	}
	return a, nil
}

func (a App) View() string {
	var left strings.Builder
	status := StatusRunning.Render("ROTATING")
	if a.scene.Paused {
		status = StatusPaused.Render("PAUSED")
	}
	left.WriteString(titleStyle().Render("KERR BLACK HOLE") + "  " + status + "\n")

	diskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(a.look.DiskColor))
	starStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Stars)
	left.WriteString(renderLayers(a.canvas, a.sky, diskStyle, starStyle))

	var right strings.Builder
	right.WriteString(titleStyle().Render("PARAMETERS") + "\n")
	for i := range a.sliders {
		s := &a.sliders[i]
		line := fmt.Sprintf("%-10s %s %s", s.name, SliderBar(s.fraction(), 12), s.format())
		if i == a.selected {
			line = selectedStyle().Render("> " + line)
		} else {
			line = "  " + line
		}
		right.WriteString(line + "\n")
	}

	right.WriteString("\n" + titleStyle().Render("OBSERVABLES") + "\n")
	if a.err != nil {
		right.WriteString(ErrorText.Render(a.err.Error()) + "\n")
	} else {
		for _, r := range Readouts(a.params, a.obs) {
			style := valueStyle()
			if r.Warn {
				style = warningStyle()
			}
			right.WriteString(MetricLabel.Render(r.Label) + style.Render(r.Value) + "\n")
		}
	}

	if len(a.curve) > 1 {
		chart := asciigraph.Plot(a.curve, asciigraph.Height(5), asciigraph.Width(36), asciigraph.Caption("η vs spin"))
		right.WriteString("\n" + chart + "\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		GlassPanel.Render(left.String()),
		GlassPanel.Render(right.String()),
	)

	var s strings.Builder
	s.WriteString(body + "\n")
	if a.topic >= 0 {
		t := Topics[a.topic]
		s.WriteString(GlassPanel.Render(titleStyle().Render(t.Title) + "\n" + Separator(40) + "\n" + t.Explanation + "\n" + Subtle.Render(t.Hint)))
		s.WriteString("\n")
	}
	s.WriteString(keyHintStyle().Render("tab select • ←/→ adjust • space pause • i inspect • esc close • t theme (" + CurrentTheme.Name + ") • r reset • q quit"))
	return s.String()
}

// Run starts the interactive inspector.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
