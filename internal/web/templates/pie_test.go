package templates

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

func TestBuildPie_Empty(t *testing.T) {
	if got := BuildPie(nil); got != nil {
		t.Errorf("BuildPie(nil) = %v, want nil", got)
	}
	if got := BuildPie([]core.DepartmentCount{{Name: "IT", Count: 0}}); got != nil {
		t.Errorf("BuildPie(zero counts) = %v, want nil", got)
	}
}

func TestBuildPie_SingleDepartmentIsFullCircle(t *testing.T) {
	got := BuildPie([]core.DepartmentCount{{Name: "IT", Count: 3}})
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if !got[0].Full || got[0].Path != "" {
		t.Errorf("slice = %+v, want full circle without path", got[0])
	}
	if got[0].Color != PieColors[0] {
		t.Errorf("Color = %q, want %q", got[0].Color, PieColors[0])
	}
}

func TestBuildPie_ColorsWrap(t *testing.T) {
	var counts []core.DepartmentCount
	for _, n := range []string{"A", "B", "C", "D", "E", "F"} {
		counts = append(counts, core.DepartmentCount{Name: n, Count: 1})
	}
	got := BuildPie(counts)
	if len(got) != 6 {
		t.Fatalf("len = %d, want 6", len(got))
	}
	if got[5].Color != PieColors[0] {
		t.Errorf("sixth color = %q, want %q", got[5].Color, PieColors[0])
	}
	for i, s := range got {
		if !strings.HasPrefix(s.Path, "M 300.00 300.00 L ") {
			t.Errorf("slice %d path = %q", i, s.Path)
		}
	}
}

func TestBuildPie_FirstSliceStartsAtThreeOclock(t *testing.T) {
	got := BuildPie([]core.DepartmentCount{{Name: "IT", Count: 1}, {Name: "HR", Count: 1}})
	if !strings.HasPrefix(got[0].Path, "M 300.00 300.00 L 450.00 300.00 A 150 150 0 0 0 150.00 300.00") {
		t.Errorf("first path = %q", got[0].Path)
	}
	// First half's label sits straight above the centre.
	if got[0].LabelX != 300 || got[0].LabelY != 130 {
		t.Errorf("label = (%v, %v), want (300, 130)", got[0].LabelX, got[0].LabelY)
	}
}

func TestBuildPie_LargeArcFlag(t *testing.T) {
	got := BuildPie([]core.DepartmentCount{{Name: "IT", Count: 3}, {Name: "HR", Count: 1}})
	if !strings.Contains(got[0].Path, " 0 1 0 ") {
		t.Errorf("three-quarter slice path %q lacks the large-arc flag", got[0].Path)
	}
	if !strings.Contains(got[1].Path, " 0 0 0 ") {
		t.Errorf("quarter slice path %q has the large-arc flag", got[1].Path)
	}
}
