// Package dictionary implements the read-only Dictionary contract and the
// mutable TrieBuf overlay that backs the user dictionary: an immutable
// on-disk trie merged with an in-memory addition/update/tombstone layer.
package dictionary

// Phrase is a dictionary entry: its rendered text, a frequency used to
// rank candidates, and an optional last-used timestamp (unix seconds)
// used only for bookkeeping, never by the scoring rules.
type Phrase struct {
	Text     string
	Freq     uint32
	LastUsed *uint64
}

// NewPhrase builds a Phrase with no last-used stamp.
func NewPhrase(text string, freq uint32) Phrase {
	return Phrase{Text: text, Freq: freq}
}

// NewPhraseWithTime builds a Phrase with an explicit last-used stamp.
func NewPhraseWithTime(text string, freq uint32, lastUsed uint64) Phrase {
	return Phrase{Text: text, Freq: freq, LastUsed: &lastUsed}
}

// Equal compares phrases by text only, matching the spec's "equality by
// text" rule for Phrase.
func (p Phrase) Equal(other Phrase) bool {
	return p.Text == other.Text
}

func (p Phrase) String() string {
	return p.Text
}

// lastUsedValue returns the stamp or zero, for use in the mutable overlay
// where the on-disk representation always carries a concrete uint64.
func (p Phrase) lastUsedValue() uint64 {
	if p.LastUsed == nil {
		return 0
	}
	return *p.LastUsed
}
