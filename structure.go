package xwfill

import (
	"fmt"

	"crosswarped.com/xwfill/pkg/primitives"
)

// Structure is the immutable description of a crossword grid: which cells are
// fillable, the slots derived from them, and where those slots cross.
//
// Construction is total. Any fillability matrix, including one with no
// fillable cells at all, yields a valid Structure; a Structure with zero
// slots is trivially solvable by the empty assignment.
type Structure struct {
	height   int
	width    int
	fillable [][]bool

	slots    []primitives.Slot
	overlaps map[slotPair]primitives.Overlap
}

type slotPair struct {
	x primitives.Slot
	y primitives.Slot
}

// NewStructure builds a Structure from a per-cell fillability matrix.
// Rows shorter than the widest row are treated as blocked past their end.
func NewStructure(fillable [][]bool) *Structure {
	st := &Structure{
		height:   len(fillable),
		fillable: fillable,
	}
	for _, row := range fillable {
		if len(row) > st.width {
			st.width = len(row)
		}
	}

	st.slots = append(st.slots, st.runs(primitives.DirectionAcross)...)
	st.slots = append(st.slots, st.runs(primitives.DirectionDown)...)
	st.overlaps = findOverlaps(st.slots)
	return st
}

// runs extracts the maximal contiguous fillable runs in one direction.
// Runs of length 1 are not slots: a free-standing cell is not an entry.
func (st *Structure) runs(dir primitives.Direction) []primitives.Slot {
	outer, inner := st.height, st.width
	if dir == primitives.DirectionDown {
		outer, inner = st.width, st.height
	}

	var slots []primitives.Slot
	for o := range outer {
		runStart := -1
		for i := 0; i <= inner; i++ {
			row, col := o, i
			if dir == primitives.DirectionDown {
				row, col = i, o
			}
			if i < inner && st.Fillable(row, col) {
				if runStart < 0 {
					runStart = i
				}
				continue
			}
			if runStart >= 0 && i-runStart >= 2 {
				slot := primitives.Slot{Row: o, Col: runStart, Direction: dir, Length: i - runStart}
				if dir == primitives.DirectionDown {
					slot.Row, slot.Col = runStart, o
				}
				slots = append(slots, slot)
			}
			runStart = -1
		}
	}
	return slots
}

// findOverlaps maps each ordered pair of crossing slots to the offset of the
// shared cell within each. Two slots of a planar grid share at most one cell.
func findOverlaps(slots []primitives.Slot) map[slotPair]primitives.Overlap {
	type slotAt struct {
		slot   primitives.Slot
		offset int
	}

	byCell := make(map[[2]int][]slotAt)
	for _, slot := range slots {
		for k := range slot.Length {
			row, col := slot.Cell(k)
			byCell[[2]int{row, col}] = append(byCell[[2]int{row, col}], slotAt{slot: slot, offset: k})
		}
	}

	overlaps := make(map[slotPair]primitives.Overlap)
	for _, at := range byCell {
		for i, first := range at {
			for _, second := range at[i+1:] {
				ov := primitives.Overlap{XOffset: first.offset, YOffset: second.offset}
				overlaps[slotPair{x: first.slot, y: second.slot}] = ov
				overlaps[slotPair{x: second.slot, y: first.slot}] = ov.Flipped()
			}
		}
	}
	return overlaps
}

func (st *Structure) Height() int {
	return st.height
}

func (st *Structure) Width() int {
	return st.width
}

// Fillable reports whether the cell at (row, col) can hold a letter.
// Out-of-range cells are blocked.
func (st *Structure) Fillable(row, col int) bool {
	if row < 0 || row >= st.height || col < 0 || col >= len(st.fillable[row]) {
		return false
	}
	return st.fillable[row][col]
}

// Slots returns the slots of the grid. The returned slice is shared and must
// not be modified.
func (st *Structure) Slots() []primitives.Slot {
	return st.slots
}

// Overlap returns the offsets into x's and y's words at their shared cell,
// or ok=false when the two slots do not cross.
func (st *Structure) Overlap(x, y primitives.Slot) (primitives.Overlap, bool) {
	ov, ok := st.overlaps[slotPair{x: x, y: y}]
	return ov, ok
}

// Neighbors returns the slots crossing x. It is derived from the overlap
// table on each call, so it can never drift out of sync with Overlap.
func (st *Structure) Neighbors(x primitives.Slot) []primitives.Slot {
	var neighbors []primitives.Slot
	for _, y := range st.slots {
		if y == x {
			continue
		}
		if _, ok := st.Overlap(x, y); ok {
			neighbors = append(neighbors, y)
		}
	}
	return neighbors
}

// LetterGrid places every word of the assignment onto a fresh letter grid.
//
// The assignment does not have to be complete, but every placement must be
// legal: the word must match its slot's length, every cell must be a fillable
// cell of this structure, and crossing words must agree on shared letters. On
// error the returned grid is nil and must be discarded.
func (st *Structure) LetterGrid(assignment Assignment) (Grid, error) {
	letters := make([][]rune, st.height)
	for row := range letters {
		letters[row] = make([]rune, st.width)
	}

	for slot, word := range assignment {
		if len(word) != slot.Length {
			return Grid{}, fmt.Errorf("word %q does not fit slot %v", word, slot)
		}
		for k := range slot.Length {
			row, col := slot.Cell(k)
			if !st.Fillable(row, col) {
				return Grid{}, fmt.Errorf("slot %v cell (%d,%d) is not a fillable cell of this grid", slot, row, col)
			}
			r := rune(word[k])
			if letters[row][col] != 0 && letters[row][col] != r {
				return Grid{}, fmt.Errorf("conflicting letters %c and %c at cell (%d,%d)", letters[row][col], r, row, col)
			}
			letters[row][col] = r
		}
	}

	return NewGrid(letters), nil
}
