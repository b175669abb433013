package schema

// RowRange is an inclusive 1-based row span inside a line sheet.
type RowRange struct {
	First int
	Last  int
}

// Rows returns every row in the range, in order.
func (r RowRange) Rows() []int {
	if r.Last < r.First {
		return nil
	}
	rows := make([]int, 0, r.Last-r.First+1)
	for i := r.First; i <= r.Last; i++ {
		rows = append(rows, i)
	}
	return rows
}

// Contains reports whether row falls inside the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.First && row <= r.Last
}

// SteppedRows returns first, first+step, ... up to and including last.
func (r RowRange) SteppedRows(step int) []int {
	var rows []int
	for i := r.First; i <= r.Last; i += step {
		rows = append(rows, i)
	}
	return rows
}

// ShiftRegion describes where one shift lives inside the fixed sheet layout.
type ShiftRegion struct {
	Shift   Shift
	Summary RowRange // hourly plan/fact summary block
	Detail  RowRange // downtime detail block
	Probe   RowRange // operator rows used for the empty-sheet check
	// Plan/fact figures sit on every other row of the summary block,
	// starting at PlanFact.First.
	PlanFact RowRange
}

// SheetLayout is the declarative description of the line-sheet contract.
// The extraction logic is driven entirely by this descriptor, so synthetic
// grids can exercise it with small made-up layouts.
type SheetLayout struct {
	MinRow int // first row worth reading
	MaxRow int // last row worth reading
	MaxCol int // last column worth reading

	Regions []ShiftRegion

	// 1-based field columns.
	ProbeCol       int // first-column cell checked by the empty-sheet probe
	DurationCol    int
	CategoryCol    int
	DescriptionCol int
	CommentCol     int
	PlanCol        int
	FactCol        int
}

// KeepRow reports whether a row belongs to any summary or detail region.
// Rows outside the regions (the intervening unrelated block) are not cached.
func (l *SheetLayout) KeepRow(row int) bool {
	for _, reg := range l.Regions {
		if reg.Summary.Contains(row) || reg.Detail.Contains(row) {
			return true
		}
	}
	return false
}

// DefaultLayout matches the production line-sheet template: day shift on top,
// an unrelated block in the middle, night shift below. The literal offsets
// are the external contract with the template and change only with it.
func DefaultLayout() *SheetLayout {
	return &SheetLayout{
		MinRow: 21,
		MaxRow: 205,
		MaxCol: 13,
		Regions: []ShiftRegion{
			{
				Shift:    DayShift,
				Summary:  RowRange{21, 42},
				Detail:   RowRange{47, 113},
				Probe:    RowRange{37, 42},
				PlanFact: RowRange{21, 31},
			},
			{
				Shift:    NightShift,
				Summary:  RowRange{136, 158},
				Detail:   RowRange{162, 205},
				Probe:    RowRange{152, 157},
				PlanFact: RowRange{136, 146},
			},
		},
		ProbeCol:       1,
		DurationCol:    11,
		CategoryCol:    8,
		DescriptionCol: 6,
		CommentCol:     12,
		PlanCol:        10,
		FactCol:        11,
	}
}
