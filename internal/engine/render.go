package engine

import (
	"math"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/raphi011/spinelli/internal/config"
)

// Glyphs used on the wheel.
const (
	glyphPin     = '●'
	glyphOutline = '·'
	glyphHub     = '◉'
)

// pointer glyphs indexed by quadrant of the pointer angle: top, right,
// bottom, left. Each points toward the wheel center.
var pointerGlyphs = [4]rune{'▼', '◀', '▲', '▶'}

type cell struct {
	ch rune
	fg string // hex, empty = terminal default
	bg string
}

type grid struct {
	rows, cols int
	cells      [][]cell
}

func newGrid(rows, cols int) *grid {
	g := &grid{rows: rows, cols: cols, cells: make([][]cell, rows)}
	for r := range g.cells {
		g.cells[r] = make([]cell, cols)
		for c := range g.cells[r] {
			g.cells[r][c] = cell{ch: ' '}
		}
	}
	return g
}

func (g *grid) set(r, c int, cl cell) {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return
	}
	g.cells[r][c] = cl
}

// String renders the grid, merging runs of equally styled cells.
func (g *grid) String() string {
	var b strings.Builder
	for r, row := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		cur := row[0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(cellStyle(cur).Render(run.String()))
			run.Reset()
		}
		for _, cl := range row {
			if cl.fg != cur.fg || cl.bg != cur.bg {
				flush()
				cur = cl
			}
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return b.String()
}

func cellStyle(cl cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if cl.fg != "" {
		s = s.Foreground(lipgloss.Color(cl.fg))
	}
	if cl.bg != "" {
		s = s.Background(lipgloss.Color(cl.bg))
	}
	return s
}

// hex resolves a config color, falling back to no color.
func hex(token string) string {
	h, _ := config.ResolveColor(token)
	return h
}

// geometry returns grid size and center for the configured radius. One
// cell of margin is kept on every side for the pointer.
func (e *Engine) geometry() (rows, cols int, cy, cx float64) {
	r := float64(e.cfg.OuterRadius)
	halfCols := math.Ceil(r / e.cfg.CellAspect)
	rows = 2*e.cfg.OuterRadius + 3
	cols = 2*int(halfCols) + 3
	return rows, cols, float64(rows-1) / 2, float64(cols-1) / 2
}

// polar returns the distance from the center in row units and the screen
// angle in degrees clockwise from top.
func (e *Engine) polar(row, col int, cy, cx float64) (dist, angle float64) {
	dx := (float64(col) - cx) * e.cfg.CellAspect
	dy := float64(row) - cy
	dist = math.Hypot(dx, dy)
	angle = normalize(math.Atan2(dx, -dy) * 180 / math.Pi)
	return dist, angle
}

func (e *Engine) render() string {
	rows, cols, cy, cx := e.geometry()
	g := newGrid(rows, cols)
	n := len(e.segments)

	outer := float64(e.cfg.OuterRadius)
	inner := float64(e.cfg.InnerRadius)
	outline := hex(e.cfg.OutlineColor)
	pinFill, pinStroke := hex(e.cfg.PinFill), hex(e.cfg.PinStroke)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			dist, angle := e.polar(r, c, cy, cx)
			if dist > outer+0.25 || n == 0 {
				continue
			}
			if dist < inner {
				continue
			}
			wheelAngle := normalize(angle - e.rotation)
			seg := e.segments[segmentIndex(wheelAngle, n)]
			cl := cell{ch: ' ', bg: hex(seg.Color)}

			if e.cfg.OutlineWidth > 0 && n > 1 && e.onBoundary(wheelAngle, dist, n) {
				cl = cell{ch: glyphOutline, fg: outline, bg: cl.bg}
			}
			if e.cfg.Pins > 0 && dist > outer-0.75 && e.isPin(wheelAngle, dist) {
				cl = cell{ch: glyphPin, fg: pinFill, bg: pinStroke}
			}
			g.set(r, c, cl)
		}
	}

	if inner >= 1 {
		g.set(int(math.Round(cy)), int(math.Round(cx)), cell{ch: glyphHub, fg: outline})
	}

	e.drawLabels(g, cy, cx)
	e.drawPointer(g, cy, cx)
	return g.String()
}

// onBoundary reports whether a point lies within half the outline width
// (in row units, measured along the arc) of a segment boundary.
func (e *Engine) onBoundary(wheelAngle, dist float64, n int) bool {
	arc := 360 / float64(n)
	off := math.Mod(wheelAngle, arc)
	gap := math.Min(off, arc-off) * math.Pi / 180 * dist
	return gap < float64(e.cfg.OutlineWidth)*0.5*e.cfg.CellAspect
}

func (e *Engine) isPin(wheelAngle, dist float64) bool {
	arc := 360 / float64(e.cfg.Pins)
	off := math.Mod(wheelAngle, arc)
	gap := math.Min(off, arc-off) * math.Pi / 180 * dist
	return gap < 0.5*e.cfg.CellAspect
}

func (e *Engine) drawLabels(g *grid, cy, cx float64) {
	n := len(e.segments)
	if n == 0 {
		return
	}
	outer := float64(e.cfg.OuterRadius)
	inner := float64(e.cfg.InnerRadius)
	radius := inner + (outer-inner)*0.6
	arc := 360 / float64(n)
	text := hex(e.cfg.TextColor)

	// Horizontal room: the chord at the label radius, capped by the
	// radial depth of the ring.
	chordCols := 2 * radius * math.Sin(math.Min(arc, 180)*math.Pi/360) / e.cfg.CellAspect
	maxWidth := int(math.Min(chordCols*0.8, (outer-inner)/e.cfg.CellAspect))
	if maxWidth < 1 {
		return
	}

	for i, seg := range e.segments {
		mid := (float64(i) + 0.5) * arc
		screen := (mid + e.rotation) * math.Pi / 180
		row := int(math.Round(cy - radius*math.Cos(screen)))
		col := int(math.Round(cx + radius*math.Sin(screen)/e.cfg.CellAspect))

		label := ansi.Truncate(seg.Label, maxWidth, "…")
		runes := []rune(label)
		start := col - len(runes)/2
		for j, r := range runes {
			if ansi.StringWidth(string(r)) != 1 {
				r = '?'
			}
			g.set(row, start+j, cell{ch: r, fg: text, bg: hex(seg.Color)})
		}
	}
}

func (e *Engine) drawPointer(g *grid, cy, cx float64) {
	p := normalize(e.cfg.PointerAngle)
	rad := p * math.Pi / 180
	dist := float64(e.cfg.OuterRadius) + 1
	row := int(math.Round(cy - dist*math.Cos(rad)))
	col := int(math.Round(cx + dist*math.Sin(rad)/e.cfg.CellAspect))
	// clamp to the margin ring so the marker stays visible for any angle
	row = min(max(row, 0), g.rows-1)
	col = min(max(col, 0), g.cols-1)
	quadrant := int(math.Mod(p+45, 360) / 90)
	g.set(row, col, cell{ch: pointerGlyphs[quadrant], fg: hex("#FFFFFF")})
}
