package xwfill

import (
	"slices"
	"testing"

	"crosswarped.com/xwfill/pkg/primitives"
)

func sortedSlots(slots []primitives.Slot) []primitives.Slot {
	out := slices.Clone(slots)
	slices.SortFunc(out, func(a, b primitives.Slot) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		if a.Col != b.Col {
			return a.Col - b.Col
		}
		return int(a.Direction) - int(b.Direction)
	})
	return out
}

func TestNewStructure_Slots(t *testing.T) {
	tests := []struct {
		name  string
		cells [][]bool
		want  []primitives.Slot
	}{
		{
			name:  "empty matrix",
			cells: nil,
			want:  nil,
		},
		{
			name: "fully blocked",
			cells: [][]bool{
				{false, false},
				{false, false},
			},
			want: nil,
		},
		{
			name:  "free-standing cell is not a slot",
			cells: [][]bool{{false, true, false}},
			want:  nil,
		},
		{
			name:  "single across run",
			cells: [][]bool{{true, true, true}},
			want: []primitives.Slot{
				{Row: 0, Col: 0, Direction: primitives.DirectionAcross, Length: 3},
			},
		},
		{
			name: "two runs split by a block",
			cells: [][]bool{
				{true, true, false, true, true, true},
			},
			want: []primitives.Slot{
				{Row: 0, Col: 0, Direction: primitives.DirectionAcross, Length: 2},
				{Row: 0, Col: 3, Direction: primitives.DirectionAcross, Length: 3},
			},
		},
		{
			name:  "cross",
			cells: crossCells(),
			want: []primitives.Slot{
				{Row: 0, Col: 0, Direction: primitives.DirectionAcross, Length: 3},
				{Row: 0, Col: 1, Direction: primitives.DirectionDown, Length: 3},
			},
		},
		{
			name:  "ring",
			cells: ringCells(),
			want: []primitives.Slot{
				{Row: 0, Col: 0, Direction: primitives.DirectionAcross, Length: 3},
				{Row: 0, Col: 0, Direction: primitives.DirectionDown, Length: 3},
				{Row: 0, Col: 2, Direction: primitives.DirectionDown, Length: 3},
				{Row: 2, Col: 0, Direction: primitives.DirectionAcross, Length: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortedSlots(NewStructure(tt.cells).Slots())
			if !slices.Equal(got, sortedSlots(tt.want)) {
				t.Errorf("Slots() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStructure_Dimensions(t *testing.T) {
	st := NewStructure([][]bool{
		{true, true, true},
		{true},
	})
	if st.Height() != 2 || st.Width() != 3 {
		t.Errorf("dimensions = %dx%d, want 2x3", st.Height(), st.Width())
	}
	// Cells past a short row's end are blocked.
	if st.Fillable(1, 2) {
		t.Error("Fillable(1, 2) = true for a ragged row, want false")
	}
	if st.Fillable(-1, 0) || st.Fillable(0, 3) || st.Fillable(2, 0) {
		t.Error("out-of-range cells must not be fillable")
	}
}

func TestStructure_Overlap(t *testing.T) {
	st := NewStructure(crossCells())

	ov, ok := st.Overlap(crossAcross, crossDown)
	if !ok {
		t.Fatal("Overlap(across, down) not found")
	}
	if ov.XOffset != 1 || ov.YOffset != 0 {
		t.Errorf("Overlap(across, down) = %+v, want {1 0}", ov)
	}

	flipped, ok := st.Overlap(crossDown, crossAcross)
	if !ok || flipped.XOffset != 0 || flipped.YOffset != 1 {
		t.Errorf("Overlap(down, across) = %+v, %v; want {0 1}, true", flipped, ok)
	}

	if _, ok := st.Overlap(crossAcross, crossAcross); ok {
		t.Error("a slot must not overlap itself")
	}
}

func TestStructure_Neighbors(t *testing.T) {
	st := NewStructure(ringCells())

	for _, x := range st.Slots() {
		neighbors := st.Neighbors(x)
		// Each side of the ring crosses exactly the two slots of the other
		// direction.
		if len(neighbors) != 2 {
			t.Errorf("Neighbors(%v) = %v, want 2 slots", x, neighbors)
		}
		for _, y := range neighbors {
			if y.Direction == x.Direction {
				t.Errorf("Neighbors(%v) contains parallel slot %v", x, y)
			}
			if !slices.Contains(st.Neighbors(y), x) {
				t.Errorf("neighbor relation not symmetric for %v and %v", x, y)
			}
		}
	}
}

func TestLetterGrid(t *testing.T) {
	st := NewStructure(crossCells())

	grid, err := st.LetterGrid(Assignment{crossAcross: "cat", crossDown: "age"})
	if err != nil {
		t.Fatalf("LetterGrid() error: %v", err)
	}
	wantLetters := map[[2]int]rune{
		{0, 0}: 'c', {0, 1}: 'a', {0, 2}: 't',
		{1, 1}: 'g', {2, 1}: 'e',
	}
	for cell, want := range wantLetters {
		if got := grid.Get(cell[0], cell[1]); got != want {
			t.Errorf("Get(%d, %d) = %c, want %c", cell[0], cell[1], got, want)
		}
	}
	if got := grid.Get(1, 0); got != 0 {
		t.Errorf("blocked cell holds %c, want the zero rune", got)
	}
}

func TestLetterGrid_Partial(t *testing.T) {
	st := NewStructure(crossCells())
	grid, err := st.LetterGrid(Assignment{crossDown: "age"})
	if err != nil {
		t.Fatalf("LetterGrid() error: %v", err)
	}
	if got := grid.Get(0, 1); got != 'a' {
		t.Errorf("Get(0, 1) = %c, want a", got)
	}
	if got := grid.Get(0, 0); got != 0 {
		t.Errorf("unassigned cell holds %c, want the zero rune", got)
	}
}

func TestLetterGrid_Errors(t *testing.T) {
	st := NewStructure(crossCells())

	tests := []struct {
		name       string
		assignment Assignment
	}{
		{
			name:       "word does not fit slot",
			assignment: Assignment{crossAcross: "bobs"},
		},
		{
			name: "slot outside the grid",
			assignment: Assignment{
				{Row: 5, Col: 5, Direction: primitives.DirectionAcross, Length: 3}: "cat",
			},
		},
		{
			name: "slot over blocked cells",
			assignment: Assignment{
				{Row: 1, Col: 0, Direction: primitives.DirectionAcross, Length: 3}: "cat",
			},
		},
		{
			name:       "conflicting letters at the crossing",
			assignment: Assignment{crossAcross: "cat", crossDown: "toe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := st.LetterGrid(tt.assignment); err == nil {
				t.Error("LetterGrid() = nil error, want placement error")
			}
		})
	}
}
