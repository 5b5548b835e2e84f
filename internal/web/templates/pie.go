package templates

import (
	"fmt"
	"math"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

// PieColors are assigned to slices in order, wrapping around.
var PieColors = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#00C8FF"}

const (
	pieSize        = 600
	pieCenter      = 300.0
	pieRadius      = 150.0
	pieLabelRadius = pieRadius + 20
)

// PieSlice is one department wedge, ready for SVG output.
type PieSlice struct {
	Name   string
	Count  int
	Color  string
	Path   string // empty when the slice is the whole circle
	Full   bool
	LabelX float64
	LabelY float64
	Anchor string
}

// BuildPie lays out department counts as wedges. Angles start at three
// o'clock and run counter-clockwise, matching the chart the panel always had.
func BuildPie(counts []core.DepartmentCount) []PieSlice {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		return nil
	}

	slices := make([]PieSlice, 0, len(counts))
	start := 0.0
	for i, c := range counts {
		sweep := 2 * math.Pi * float64(c.Count) / float64(total)
		mid := start + sweep/2

		s := PieSlice{
			Name:   c.Name,
			Count:  c.Count,
			Color:  PieColors[i%len(PieColors)],
			LabelX: round2(pieCenter + pieLabelRadius*math.Cos(mid)),
			LabelY: round2(pieCenter - pieLabelRadius*math.Sin(mid)),
			Anchor: "start",
		}
		if math.Cos(mid) < 0 {
			s.Anchor = "end"
		}

		if c.Count == total {
			s.Full = true
		} else {
			s.Path = wedgePath(start, start+sweep)
		}
		slices = append(slices, s)
		start += sweep
	}
	return slices
}

// wedgePath draws a wedge from angle a0 to a1 (radians, counter-clockwise).
func wedgePath(a0, a1 float64) string {
	x0 := pieCenter + pieRadius*math.Cos(a0)
	y0 := pieCenter - pieRadius*math.Sin(a0)
	x1 := pieCenter + pieRadius*math.Cos(a1)
	y1 := pieCenter - pieRadius*math.Sin(a1)

	largeArc := 0
	if a1-a0 > math.Pi {
		largeArc = 1
	}
	// Sweep flag 0 draws counter-clockwise in SVG's y-down space.
	return fmt.Sprintf("M %.2f %.2f L %.2f %.2f A %.0f %.0f 0 %d 0 %.2f %.2f Z",
		pieCenter, pieCenter, x0, y0, pieRadius, pieRadius, largeArc, x1, y1)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
