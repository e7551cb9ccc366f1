package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestConvexHull(t *testing.T) {
	pts := []Point{{0, 1}, {0.5, 0.5}, {1, 1}, {0, 0}, {1, 0}, {0.5, 0}, {1, 1}}
	assert.Equal(t, []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, ConvexHull(pts))

	assert.Equal(t, []Point{{0, 0}, {1, 2}}, ConvexHull([]Point{{1, 2}, {0, 0}}))
	assert.Empty(t, ConvexHull(nil))
}

func TestProjection(t *testing.T) {
	p := NewProjection(r3.Vec{X: 1}, r3.Vec{X: 2}, r3.Vec{Z: 3})
	assert.Equal(t, Point{X: 1, Y: 4}, p.Point(r3.Vec{X: 2, Y: 5, Z: 4}))

	box := []r3.Vec{
		{X: 1, Z: 1}, {X: 2, Z: 1}, {X: 2, Z: 2}, {X: 1, Z: 2},
		{X: 1, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 1}, {X: 2, Y: 1, Z: 2}, {X: 1, Y: 1, Z: 2},
	}
	assert.Equal(t, []Point{{0, 1}, {1, 1}, {1, 2}, {0, 2}}, p.Hull(box))
}

func testPlanform() PlanformData {
	return PlanformData{
		Title: "Test",
		Wing:  [4]Point{{0, 0}, {2, 0}, {2.5, 4}, {0.5, 4}},
		Bodies: []Outline{
			{Name: "rib", Hull: []Point{{0.1, 2.05}, {2.1, 2.05}, {2.1, 2.07}, {0.1, 2.07}}},
		},
	}
}

func TestDrawASCIIPlanform(t *testing.T) {
	out := DrawASCIIPlanform(testPlanform())
	require.NotEmpty(t, out)
	assert.Contains(t, out, "Test (tip at top, leading edge at left)")
	assert.Contains(t, out, "·")

	// The thin rib still fills one full row.
	var ribRows int
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "█") && strings.HasPrefix(line, "  │") {
			ribRows++
		}
	}
	assert.Equal(t, 1, ribRows)

	assert.Empty(t, DrawASCIIPlanform(PlanformData{}))
}

func TestClipBand(t *testing.T) {
	sq := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	got := clipBand(sq, 0.25, 0.5)
	require.Len(t, got, 4)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Y, 0.25)
		assert.LessOrEqual(t, p.Y, 0.5)
	}
	assert.Empty(t, clipBand(sq, 2, 3))
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("RIBS", []string{"Bodies: 6", "Structure volume: 1.00 cm³"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	width := utf8.RuneCountInString(lines[0])
	for _, l := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(l), l)
	}
	assert.Contains(t, lines[1], "RIBS")
	assert.Contains(t, lines[4], "Structure volume: 1.00 cm³")
}

func TestExportPlanform(t *testing.T) {
	dir := t.TempDir()

	svg := filepath.Join(dir, "out", "plan.svg")
	require.NoError(t, ExportPlanform(testPlanform(), svg))
	info, err := os.Stat(svg)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.NoError(t, ExportPlanform(testPlanform(), filepath.Join(dir, "plan")))
	_, err = os.Stat(filepath.Join(dir, "plan.png"))
	assert.NoError(t, err)
}
