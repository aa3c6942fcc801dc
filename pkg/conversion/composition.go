package conversion

import "slices"

// Selection is a user-pinned phrase choice for a specific span: any
// candidate phrase covering this span must agree with Phrase at the
// corresponding offset, counted in runes.
type Selection struct {
	Start  int
	End    int
	Phrase string
}

// Composition is the caller-supplied input to the engine: the current
// buffer plus the user's pinning state. Break positions forbid a phrase
// from spanning them; glue positions request that adjacent intervals
// meeting there are merged in the final output.
type Composition struct {
	Buffer     []Symbol
	Selections []Selection
	Breaks     []int
	Glues      []int
}

// NewComposition builds a Composition with no constraints.
func NewComposition(buffer []Symbol) Composition {
	return Composition{Buffer: buffer}
}

// hasBreakIn reports whether any recorded break strictly separates start
// from end, i.e. a position i with start < i < end.
func (c Composition) hasBreakIn(start, end int) bool {
	for _, b := range c.Breaks {
		if start < b && b < end {
			return true
		}
	}
	return false
}

// selectionsWithin returns the selections fully contained in [start, end).
func (c Composition) selectionsWithin(start, end int) []Selection {
	var out []Selection
	for _, s := range c.Selections {
		if start <= s.Start && end >= s.End {
			out = append(out, s)
		}
	}
	return out
}

// isGlue reports whether position i is a recorded glue point.
func (c Composition) isGlue(i int) bool {
	return slices.Contains(c.Glues, i)
}
