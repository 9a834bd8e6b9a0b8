package xwfill

import (
	"context"
	"maps"
	"slices"

	"crosswarped.com/xwfill/pkg/primitives"
)

// Assignment maps slots to the word chosen for each. It is complete when
// every slot of the structure is a key.
type Assignment map[primitives.Slot]string

// Arc is an ordered pair of slots meaning "x must be made consistent with y".
type Arc struct {
	X primitives.Slot
	Y primitives.Slot
}

// Solver fills a Structure from a vocabulary so that every slot's length
// matches and all crossing letters agree.
//
// It keeps one domain of candidate words per slot. The domains are pruned in
// place by EnforceNodeConsistency and AC3 before search begins; Backtrack
// itself never mutates them, so sibling search branches need no undo logic.
type Solver struct {
	structure *Structure
	domains   map[primitives.Slot]map[string]bool
}

// NewSolver initializes every slot's domain to its own copy of the whole
// vocabulary. Pruning one slot's domain never affects another's.
func NewSolver(structure *Structure, words []string) *Solver {
	s := &Solver{
		structure: structure,
		domains:   make(map[primitives.Slot]map[string]bool, len(structure.Slots())),
	}
	for _, slot := range structure.Slots() {
		domain := make(map[string]bool, len(words))
		for _, word := range words {
			domain[word] = true
		}
		s.domains[slot] = domain
	}
	return s
}

// Domain returns a sorted copy of the remaining candidate words for a slot.
func (s *Solver) Domain(slot primitives.Slot) []string {
	words := slices.Collect(maps.Keys(s.domains[slot]))
	slices.Sort(words)
	return words
}

// EnforceNodeConsistency removes from every domain the words whose length
// differs from the slot's length. It never fails; an emptied domain is only
// detected later, by AC3 or by search.
func (s *Solver) EnforceNodeConsistency() {
	for slot, domain := range s.domains {
		for word := range domain {
			if len(word) != slot.Length {
				delete(domain, word)
			}
		}
	}
}

// Revise makes x arc-consistent with y: it removes every word of x's domain
// that has no compatible partner left in y's domain at the cell the two slots
// share. It reports whether anything was removed. Slots that do not cross
// need no revision.
func (s *Solver) Revise(x, y primitives.Slot) bool {
	ov, ok := s.structure.Overlap(x, y)
	if !ok {
		return false
	}

	available := primitives.NewCharSet()
	for wy := range s.domains[y] {
		if ov.YOffset < len(wy) {
			available.Add(wy[ov.YOffset])
		}
	}

	revised := false
	for wx := range s.domains[x] {
		if ov.XOffset >= len(wx) || !available.Contains(wx[ov.XOffset]) {
			delete(s.domains[x], wx)
			revised = true
		}
	}
	return revised
}

// AC3 enforces arc consistency over the given worklist of arcs, or over every
// ordered pair of crossing slots when the worklist is nil. It returns false
// iff some domain ends up empty, meaning the puzzle as constrained so far
// has no solution.
//
// When a revision shrinks x's domain, the arcs (z, x) for the other neighbors
// z of x are put back on the queue without deduplication; a repeat revision is
// a safe no-op, and termination is guaranteed because domains only shrink.
func (s *Solver) AC3(arcs []Arc) bool {
	if arcs == nil {
		for _, x := range s.structure.Slots() {
			for _, y := range s.structure.Neighbors(x) {
				arcs = append(arcs, Arc{X: x, Y: y})
			}
		}
	}

	for len(arcs) > 0 {
		arc := arcs[0]
		arcs = arcs[1:]
		if !s.Revise(arc.X, arc.Y) {
			continue
		}
		for _, z := range s.structure.Neighbors(arc.X) {
			if z != arc.Y {
				arcs = append(arcs, Arc{X: z, Y: arc.X})
			}
		}
	}

	for _, domain := range s.domains {
		if len(domain) == 0 {
			return false
		}
	}
	return true
}

// Consistent reports whether the partial assignment violates no constraint:
// every word fits its slot, no word is used twice anywhere in the grid, and
// assigned slots agree at every cell they share. The empty assignment is
// consistent.
func (s *Solver) Consistent(assignment Assignment) bool {
	used := make(map[string]bool, len(assignment))
	for slot, word := range assignment {
		if len(word) != slot.Length {
			return false
		}
		if used[word] {
			return false
		}
		used[word] = true
	}

	for x, wx := range assignment {
		for _, y := range s.structure.Neighbors(x) {
			wy, assigned := assignment[y]
			if !assigned {
				continue
			}
			ov, ok := s.structure.Overlap(x, y)
			if ok && wx[ov.XOffset] != wy[ov.YOffset] {
				return false
			}
		}
	}
	return true
}

// SelectUnassignedVariable picks the unassigned slot with the fewest words
// left in its domain (minimum remaining values). Ties are broken arbitrarily.
func (s *Solver) SelectUnassignedVariable(assignment Assignment) primitives.Slot {
	var best primitives.Slot
	bestSize := -1
	for _, slot := range s.structure.Slots() {
		if _, assigned := assignment[slot]; assigned {
			continue
		}
		if size := len(s.domains[slot]); bestSize < 0 || size < bestSize {
			best, bestSize = slot, size
		}
	}
	return best
}

// OrderDomainValues orders the slot's remaining candidates by how few words
// they would rule out in the domains of its still-unassigned neighbors
// (least-constraining value first). Candidates with equal counts appear in no
// guaranteed order.
func (s *Solver) OrderDomainValues(slot primitives.Slot, assignment Assignment) []string {
	// countsAt[i] counts, per letter, the neighbor-domain words carrying that
	// letter at the i-th neighbor's shared cell, so scoring one candidate is a
	// lookup instead of a scan of the neighbor's whole domain.
	type neighborIndex struct {
		offset   int
		total    int
		countsAt [256]int
	}

	var neighbors []neighborIndex
	for _, y := range s.structure.Neighbors(slot) {
		if _, assigned := assignment[y]; assigned {
			continue
		}
		ov, ok := s.structure.Overlap(slot, y)
		if !ok {
			continue
		}
		idx := neighborIndex{offset: ov.XOffset, total: len(s.domains[y])}
		for wy := range s.domains[y] {
			if ov.YOffset < len(wy) {
				idx.countsAt[wy[ov.YOffset]]++
			}
		}
		neighbors = append(neighbors, idx)
	}

	ruledOut := func(word string) int {
		count := 0
		for _, n := range neighbors {
			if n.offset < len(word) {
				count += n.total - n.countsAt[word[n.offset]]
			} else {
				count += n.total
			}
		}
		return count
	}

	words := slices.Collect(maps.Keys(s.domains[slot]))
	slices.SortFunc(words, func(a, b string) int {
		return ruledOut(a) - ruledOut(b)
	})
	return words
}

// Backtrack searches depth-first for a complete, consistent extension of the
// given assignment. It returns ok=false when none exists, which is a normal
// outcome, or when the context is cancelled. The caller's assignment is never
// mutated: each branch extends its own copy.
func (s *Solver) Backtrack(ctx context.Context, assignment Assignment) (Assignment, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	if len(assignment) == len(s.structure.Slots()) {
		return assignment, true
	}

	slot := s.SelectUnassignedVariable(assignment)
	for _, word := range s.OrderDomainValues(slot, assignment) {
		next := maps.Clone(assignment)
		if next == nil {
			next = Assignment{}
		}
		next[slot] = word
		if !s.Consistent(next) {
			continue
		}
		if result, ok := s.Backtrack(ctx, next); ok {
			return result, true
		}
	}
	return nil, false
}

// Solve prunes the domains (node consistency, then AC-3 over all neighbor
// arcs) and runs backtracking search. It returns the complete assignment, or
// ok=false when the puzzle has no solution. A grid with zero slots succeeds
// with the empty assignment.
//
// An AC-3 wipeout already proves unsatisfiability, so Solve aborts there
// rather than letting backtracking rediscover the same failure.
func (s *Solver) Solve(ctx context.Context) (Assignment, bool) {
	s.EnforceNodeConsistency()
	if !s.AC3(nil) {
		return nil, false
	}
	return s.Backtrack(ctx, Assignment{})
}
