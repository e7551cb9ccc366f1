package diagram

import (
	"fmt"
	"math"
	"strings"
)

// ASCII drawing size in characters.
const (
	asciiCols = 60
	asciiRows = 24
)

// DrawASCIIPlanform creates an ASCII plan view of the wing with the
// generated bodies filled in. The root is at the bottom.
func DrawASCIIPlanform(data PlanformData) string {
	var sb strings.Builder

	minX, maxX, minY, maxY := data.bounds()
	if !(maxX > minX) || !(maxY > minY) {
		return ""
	}
	// Keep the aspect ratio; a character is about twice as tall as wide.
	sx := (maxX - minX) / asciiCols
	sy := (maxY - minY) / asciiRows
	scale := math.Max(sx, sy/2)
	cols := int(math.Ceil((maxX - minX) / scale))
	rows := int(math.Ceil((maxY - minY) / (2 * scale)))
	cols, rows = max(cols, 1), max(rows, 1)
	cw, ch := (maxX-minX)/float64(cols), (maxY-minY)/float64(rows)

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
	}

	wingPoly := data.Wing[:]
	for r := 0; r < rows; r++ {
		y := maxY - (float64(r)+0.5)*ch
		for c := 0; c < cols; c++ {
			x := minX + (float64(c)+0.5)*cw
			if inside(wingPoly, Point{X: x, Y: y}) {
				grid[r][c] = '·'
			}
		}
	}

	// Bodies are clipped to each row band so thin ribs still show.
	for _, b := range data.Bodies {
		for r := 0; r < rows; r++ {
			hi := maxY - float64(r)*ch
			lo := hi - ch
			band := clipBand(b.Hull, lo, hi)
			if len(band) == 0 {
				continue
			}
			bx0, bx1 := math.Inf(1), math.Inf(-1)
			for _, p := range band {
				bx0, bx1 = math.Min(bx0, p.X), math.Max(bx1, p.X)
			}
			for c := 0; c < cols; c++ {
				x0 := minX + float64(c)*cw
				if x0+cw >= bx0 && x0 <= bx1 {
					grid[r][c] = '█'
				}
			}
		}
	}

	title := data.Title
	if title == "" {
		title = "PLANFORM"
	}
	sb.WriteString(fmt.Sprintf("  %s (tip at top, leading edge at left)\n", title))
	sb.WriteString("  ┌" + strings.Repeat("─", cols) + "┐\n")
	for r := range grid {
		sb.WriteString("  │" + string(grid[r]) + "│\n")
	}
	sb.WriteString("  └" + strings.Repeat("─", cols) + "┘\n")
	sb.WriteString(fmt.Sprintf("  1 char = %.3f m chordwise, %.3f m spanwise\n", cw, ch))
	sb.WriteString("  · wing   █ structure\n")

	return sb.String()
}

// clipBand clips a convex polygon to lo <= Y <= hi.
func clipBand(poly []Point, lo, hi float64) []Point {
	out := clipHalf(poly, func(p Point) float64 { return p.Y - lo })
	return clipHalf(out, func(p Point) float64 { return hi - p.Y })
}

// clipHalf keeps the part of poly where f >= 0.
func clipHalf(poly []Point, f func(Point) float64) []Point {
	if len(poly) == 0 {
		return nil
	}
	if len(poly) < 3 {
		var out []Point
		for _, p := range poly {
			if f(p) >= 0 {
				out = append(out, p)
			}
		}
		return out
	}
	var out []Point
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		fa, fb := f(a), f(b)
		if fa >= 0 {
			out = append(out, a)
		}
		if (fa >= 0) != (fb >= 0) {
			t := fa / (fa - fb)
			out = append(out, Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)})
		}
	}
	return out
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
