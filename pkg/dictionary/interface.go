package dictionary

import "github.com/hanzikit/chewing/pkg/zhuyin"

// Entry pairs a syllable sequence with one of its phrases, the unit
// yielded by Entries.
type Entry struct {
	Syllables []zhuyin.Syllable
	Phrase    Phrase
}

// Dictionary is the read-only lookup contract the conversion engine
// consumes. Implementations must deduplicate by phrase text, keeping the
// entry with the greatest Freq (ties keep the greater LastUsed).
type Dictionary interface {
	// LookupAllPhrases returns every phrase keyed by exactly this
	// syllable sequence, deduplicated by text. Order is unspecified.
	LookupAllPhrases(syllables []zhuyin.Syllable) []Phrase
	// LookupFirstNPhrases is LookupAllPhrases truncated to at most n
	// entries after deduplication.
	LookupFirstNPhrases(syllables []zhuyin.Syllable, n int) []Phrase
	// Entries iterates the full dictionary, sorted by (syllables,
	// phrase text).
	Entries() []Entry
	// About returns the descriptive metadata of the backing trie, or
	// the zero Info if there is none.
	About() Info
}

// Mutable is implemented by dictionaries that accept user edits. TrieBuf
// is the only implementation in this module.
type Mutable interface {
	Dictionary
	AddPhrase(syllables []zhuyin.Syllable, phrase Phrase) error
	UpdatePhrase(syllables []zhuyin.Syllable, phrase Phrase, freq uint32, lastUsed uint64) error
	RemovePhrase(syllables []zhuyin.Syllable, text string) error
	Flush() error
}

// LookupFirstPhrase is a convenience wrapper returning only the first
// phrase LookupFirstNPhrases yields, or false if there is none.
func LookupFirstPhrase(d Dictionary, syllables []zhuyin.Syllable) (Phrase, bool) {
	phrases := d.LookupFirstNPhrases(syllables, 1)
	if len(phrases) == 0 {
		return Phrase{}, false
	}
	return phrases[0], true
}

// dedupeByText collects phrases keeping, for each distinct text, the one
// with the greatest Freq (ties keep the greater LastUsed). The returned
// slice preserves first-seen order of each distinct text.
func dedupeByText(phrases []Phrase) []Phrase {
	index := make(map[string]int, len(phrases))
	out := make([]Phrase, 0, len(phrases))
	for _, p := range phrases {
		if i, ok := index[p.Text]; ok {
			if better(p, out[i]) {
				out[i] = p
			}
			continue
		}
		index[p.Text] = len(out)
		out = append(out, p)
	}
	return out
}

// better reports whether candidate should replace incumbent when they
// share the same phrase text: greater Freq wins, ties go to the greater
// LastUsed stamp.
func better(candidate, incumbent Phrase) bool {
	if candidate.Freq != incumbent.Freq {
		return candidate.Freq > incumbent.Freq
	}
	return candidate.lastUsedValue() > incumbent.lastUsedValue()
}
