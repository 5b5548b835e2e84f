package core

// Summary holds the dashboard counts for a full employee list.
type Summary struct {
	Total     int
	Kontrak   int
	Probation int
	// Departments are in order of first appearance in the list, which is
	// also the order pie chart colors are assigned in.
	Departments []DepartmentCount
}

// DepartmentCount is one pie chart slice.
type DepartmentCount struct {
	Name  string
	Count int
}

// Summarize counts statuses and departments over the whole list, ignoring
// any table filters. Status comparison is exact. Records without a
// department are not counted in Departments.
func Summarize(employees []Employee) Summary {
	s := Summary{Total: len(employees)}
	index := make(map[Department]int)

	for _, e := range employees {
		switch e.Status {
		case StatusKontrak:
			s.Kontrak++
		case StatusProbation:
			s.Probation++
		}
		if e.Department == "" {
			continue
		}
		i, ok := index[e.Department]
		if !ok {
			i = len(s.Departments)
			index[e.Department] = i
			s.Departments = append(s.Departments, DepartmentCount{Name: string(e.Department)})
		}
		s.Departments[i].Count++
	}
	return s
}

// Department returns the number of records in department d.
func (s Summary) Department(d string) int {
	for _, dc := range s.Departments {
		if dc.Name == d {
			return dc.Count
		}
	}
	return 0
}
