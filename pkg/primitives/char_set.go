package primitives

// CharSet efficiently represents a set of single-byte characters.
//
// The solver uses it to summarize which letters remain admissible at one cell
// of a slot, collected over every candidate word still in a domain. Words are
// compared byte-wise, so the set covers the full byte range rather than a
// fixed alphabet.
type CharSet struct {
	available [256]bool
	count     int
}

func NewCharSet() *CharSet {
	return &CharSet{}
}

// Add adds a character to the set.
func (c *CharSet) Add(b byte) {
	if c.available[b] {
		return
	}
	c.available[b] = true
	c.count++
}

// AddAll adds all characters from another set to this set.
func (c *CharSet) AddAll(other *CharSet) {
	if c.IsFull() || other.count == 0 {
		return
	}
	for b, ok := range other.available {
		if !ok || c.available[b] {
			continue
		}
		c.available[b] = true
		c.count++
	}
}

// Contains checks if a character is in the set.
func (c *CharSet) Contains(b byte) bool {
	return c.available[b]
}

// IsFull checks if the set is full.
func (c *CharSet) IsFull() bool {
	return c.count == len(c.available)
}

// Count returns the number of characters in the set.
func (c *CharSet) Count() int {
	return c.count
}
