package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/kerrsim/internal/kerr"
	"github.com/san-kum/kerrsim/internal/scene"
)

const (
	// sub-pixels per scene unit at disk scale 1
	pixelsPerUnit = 3.2
	diskRadius    = 4.8
	holeRadius    = 1.5
	ergoRadius    = 2.35
	cameraTilt    = 0.32
	starDistance  = 600.0
)

// layout returns the canvas centre and the number of sub-pixels per
// scene unit.
func layout(c *Canvas) (cx, cy, unit float64) {
	w, h := c.PixelSize()
	fit := math.Min(float64(w), float64(h)) / (2 * diskRadius * 1.4 * pixelsPerUnit)
	return float64(w) / 2, float64(h) / 2, pixelsPerUnit * fit
}

// DrawStars projects the far half of the starfield and clears the
// region inside the ergosphere, where the hole hides the sky.
func DrawStars(c *Canvas, stars []scene.Star, app scene.Appearance) {
	w, h := c.PixelSize()
	cx, cy, unit := layout(c)
	for _, s := range stars {
		if s.Z > 0 {
			continue
		}
		x := cx + s.X/starDistance*float64(w)/2
		y := cy - s.Y/starDistance*float64(h)/2
		c.Set(int(x), int(y))
	}
	c.EraseCircle(cx, cy, ergoRadius*app.ErgosphereScale*unit)
}

// DrawHole renders the ergosphere outline, the hole and the tilted
// rotating disk. Braille cells are square-ish at 2x4 dots, so vertical
// distances are not corrected.
func DrawHole(c *Canvas, st *scene.State, app scene.Appearance) {
	cx, cy, unit := layout(c)
	angle, tilt := st.DiskRotation()

	c.FillCircle(cx, cy, holeRadius*unit)
	c.DrawCircle(cx, cy, ergoRadius*app.ErgosphereScale*unit)

	r := diskRadius * app.DiskScale * unit
	squash := cameraTilt + tilt
	c.DrawEllipse(cx, cy, r, r*squash, tilt)
	c.DrawEllipse(cx, cy, r*1.25, r*1.25*squash, tilt)

	// bright spot co-rotating with the disk
	sx := cx + r*1.12*math.Cos(angle)
	sy := cy + r*1.12*squash*math.Sin(angle)
	c.FillCircle(sx, sy, math.Max(1, unit*0.6))
}

// DrawScene renders the sky and the hole onto one cleared canvas.
func DrawScene(c *Canvas, st *scene.State, app scene.Appearance, stars []scene.Star) {
	c.Clear()
	DrawStars(c, stars, app)
	DrawHole(c, st, app)
}

// renderLayers prints front over back cell by cell, each in its own style.
func renderLayers(front, back *Canvas, frontStyle, backStyle lipgloss.Style) string {
	var b strings.Builder
	for y, row := range front.Grid {
		var run []rune
		runFront := false
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runFront {
				b.WriteString(frontStyle.Render(string(run)))
			} else {
				b.WriteString(backStyle.Render(string(run)))
			}
			run = run[:0]
		}
		for x, r := range row {
			isFront := r != blank
			if !isFront && y < len(back.Grid) && x < len(back.Grid[y]) {
				r = back.Grid[y][x]
			}
			if isFront != runFront {
				flush()
				runFront = isFront
			}
			run = append(run, r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSnapshot draws one frame for the given parameters on a fresh canvas.
func RenderSnapshot(width, height int, p kerr.Parameters, st *scene.State, seed int64) (*Canvas, scene.Appearance, error) {
	obs, err := kerr.Summarize(p)
	if err != nil {
		return nil, scene.Appearance{}, err
	}
	app := scene.Appear(p, obs)
	c := NewCanvas(width, height)
	DrawScene(c, st, app, scene.Starfield(starCount, seed))
	return c, app, nil
}
