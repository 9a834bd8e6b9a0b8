package primitives

import "fmt"

// Direction is an enum representing the direction of a slot in a grid, either 'Across' or 'Down'.
type Direction int

const (
	DirectionAcross Direction = iota
	DirectionDown
)

func (d Direction) String() string {
	if d == DirectionAcross {
		return "across"
	}
	return "down"
}

// Slot is one fillable run of cells in a grid, to be filled with a single word.
//
// It is a plain comparable value: two slots are the same slot iff row, column,
// direction, and length all match, which makes Slot usable as a map key.
type Slot struct {
	Row       int
	Col       int
	Direction Direction
	Length    int
}

// Cell returns the grid coordinates of the k-th cell of the slot.
func (s Slot) Cell(k int) (row, col int) {
	if s.Direction == DirectionAcross {
		return s.Row, s.Col + k
	}
	return s.Row + k, s.Col
}

func (s Slot) String() string {
	return fmt.Sprintf("(%d,%d %s %d)", s.Row, s.Col, s.Direction, s.Length)
}

// Overlap gives, for two crossing slots x and y, the index into each slot's
// word at the single cell they share.
type Overlap struct {
	XOffset int
	YOffset int
}

// Flipped returns the same overlap seen from the other slot's side.
func (o Overlap) Flipped() Overlap {
	return Overlap{XOffset: o.YOffset, YOffset: o.XOffset}
}
