package core

import (
	"slices"
	"strings"
)

// PageSize is the number of employees shown per table page.
const PageSize = 10

// FilterAll disables the department or status filter.
const FilterAll = "all"

// SortOrder is the direction of the name sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder returns SortDesc for "desc" and SortAsc for anything else.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// Params are the three inputs of the filter/sort stage.
type Params struct {
	Department string
	Status     string
	Sort       SortOrder
}

// DefaultParams shows everything sorted ascending.
func DefaultParams() Params {
	return Params{Department: FilterAll, Status: FilterAll, Sort: SortAsc}
}

// normalize maps empty filters to FilterAll and unknown sorts to ascending.
func (p Params) normalize() Params {
	if p.Department == "" {
		p.Department = FilterAll
	}
	if p.Status == "" {
		p.Status = FilterAll
	}
	if p.Sort != SortDesc {
		p.Sort = SortAsc
	}
	return p
}

// Apply filters and sorts employees. The input slice is not modified.
//
// Department matches exactly; status matches case-insensitively. The sort is
// stable on the lowercased name, so equal names keep their input order in
// both directions.
func Apply(employees []Employee, p Params) []Employee {
	p = p.normalize()

	out := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if p.Department != FilterAll && string(e.Department) != p.Department {
			continue
		}
		if p.Status != FilterAll && !strings.EqualFold(string(e.Status), p.Status) {
			continue
		}
		out = append(out, e)
	}

	slices.SortStableFunc(out, func(a, b Employee) int {
		c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		if p.Sort == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// TotalPages returns ceil(n/PageSize); zero records means zero pages.
func TotalPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Page returns the 1-indexed page p of a filtered and sorted sequence.
// Pages outside 1..TotalPages are empty.
func Page(sorted []Employee, p int) []Employee {
	if p < 1 || p > TotalPages(len(sorted)) {
		return nil
	}
	start := (p - 1) * PageSize
	end := min(start+PageSize, len(sorted))
	return sorted[start:end]
}

// ClampPage limits p to 1..total. An empty result still has page 1.
func ClampPage(p, total int) int {
	return max(1, min(p, total))
}

// View is one rendered state of the employee table.
type View struct {
	Params     Params
	Rows       []Employee // the current page
	Filtered   int        // records surviving the filters
	Page       int
	TotalPages int
}

// PageNumbers lists 1..TotalPages for the pager.
func (v View) PageNumbers() []int {
	nums := make([]int, v.TotalPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// BuildView runs the pipeline and slices out the requested page.
func BuildView(employees []Employee, p Params, page int) View {
	sorted := Apply(employees, p)
	return View{
		Params:     p.normalize(),
		Rows:       Page(sorted, page),
		Filtered:   len(sorted),
		Page:       page,
		TotalPages: TotalPages(len(sorted)),
	}
}
