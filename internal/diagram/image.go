package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportPlanform exports a plan view of the wing and its generated bodies
// to an image file. The format follows the extension (png, svg, pdf); an
// unknown extension gets .png appended.
func ExportPlanform(data PlanformData, filename string) error {
	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Wing Structure Planform"
	}
	p.X.Label.Text = "Chordwise (m)"
	p.Y.Label.Text = "Spanwise (m)"
	p.Legend.Top = true

	// Wing outline
	wingOutline := make(plotter.XYs, len(data.Wing)+1)
	for i, v := range data.Wing {
		wingOutline[i] = plotter.XY{X: v.X, Y: v.Y}
	}
	wingOutline[len(data.Wing)] = wingOutline[0]
	wingLine, err := plotter.NewLine(wingOutline)
	if err != nil {
		return err
	}
	wingLine.LineStyle.Width = vg.Points(2)
	wingLine.LineStyle.Color = color.Black
	p.Add(wingLine)
	p.Legend.Add("Wing", wingLine)

	// Generated bodies
	for i, b := range data.Bodies {
		if len(b.Hull) < 3 {
			continue
		}
		pts := make(plotter.XYs, len(b.Hull))
		for j, v := range b.Hull {
			pts[j] = plotter.XY{X: v.X, Y: v.Y}
		}
		poly, err := plotter.NewPolygon(pts)
		if err != nil {
			return err
		}
		poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 150}
		poly.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		p.Add(poly)
		if i == 0 {
			p.Legend.Add("Structure", poly)
		}
	}

	// Corner markers
	corners, err := plotter.NewScatter(wingOutline[:len(data.Wing)])
	if err != nil {
		return err
	}
	corners.GlyphStyle.Shape = draw.CircleGlyph{}
	corners.GlyphStyle.Radius = vg.Points(3)
	corners.GlyphStyle.Color = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	p.Add(corners)

	names := []string{"LE-Base", "TE-Base", "TE-Tip", "LE-Tip"}
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    wingOutline[:len(data.Wing)],
		Labels: names[:len(data.Wing)],
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	minX, maxX, minY, maxY := data.bounds()
	padX, padY := 0.05*(maxX-minX), 0.05*(maxY-minY)
	p.X.Min, p.X.Max = minX-padX, maxX+padX
	p.Y.Min, p.Y.Max = minY-padY, maxY+padY

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
