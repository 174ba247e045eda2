// Package textsel tracks the text range selected inside the focused block's
// editing surface, independent of block-level selection.
package textsel

// Range is a character range inside one block. Start and End are rune
// offsets with Start <= End.
type Range struct {
	BlockID string
	Start   int
	End     int
}

// Collapsed reports whether the range is a bare caret
func (r Range) Collapsed() bool { return r.Start == r.End }

// Snapshot is a saved range. The zero Snapshot holds nothing.
type Snapshot struct {
	rng   Range
	valid bool
}

// Range returns the saved range and whether there was one
func (s Snapshot) Range() (Range, bool) { return s.rng, s.valid }

// Bridge owns the current text range
type Bridge struct {
	current Range
	active  bool
}

// NewBridge creates a bridge with no range
func NewBridge() *Bridge {
	return &Bridge{}
}

// Select makes r the current range, normalising its direction
func (b *Bridge) Select(r Range) {
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	b.current = r
	b.active = true
}

// Current returns the current range and whether one exists
func (b *Bridge) Current() (Range, bool) {
	return b.current, b.active
}

// Save snapshots the current range
func (b *Bridge) Save() Snapshot {
	return Snapshot{rng: b.current, valid: b.active}
}

// Restore reinstates a snapshot. Restoring an empty snapshot removes the
// current range.
func (b *Bridge) Restore(s Snapshot) {
	b.current = s.rng
	b.active = s.valid
}

// RemoveAllRanges drops the current range
func (b *Bridge) RemoveAllRanges() {
	b.current = Range{}
	b.active = false
}
