package dictionary

import "github.com/hanzikit/chewing/pkg/zhuyin"

// OverlayDictionary is the read-only union of an immutable system
// dictionary and the caller's user dictionary overlay, mirroring the
// traditional split between a shared phrase table and a personal one:
// lookups see both, but mutations always go through the user dictionary
// directly (OverlayDictionary does not implement Mutable).
type OverlayDictionary struct {
	system Dictionary
	user   *TrieBuf
}

// NewOverlayDictionary combines a system dictionary with a user overlay.
func NewOverlayDictionary(system Dictionary, user *TrieBuf) *OverlayDictionary {
	return &OverlayDictionary{system: system, user: user}
}

func (d *OverlayDictionary) About() Info {
	return d.user.About()
}

func (d *OverlayDictionary) LookupAllPhrases(syllables []zhuyin.Syllable) []Phrase {
	var combined []Phrase
	if d.system != nil {
		combined = append(combined, d.system.LookupAllPhrases(syllables)...)
	}
	combined = append(combined, d.user.LookupAllPhrases(syllables)...)
	return dedupeByText(combined)
}

func (d *OverlayDictionary) LookupFirstNPhrases(syllables []zhuyin.Syllable, n int) []Phrase {
	phrases := d.LookupAllPhrases(syllables)
	if n >= 0 && len(phrases) > n {
		phrases = phrases[:n]
	}
	return phrases
}

// Entries merges both dictionaries' full entry sets, keeping the
// greater-Freq side for any (syllables, text) pair present in both.
func (d *OverlayDictionary) Entries() []Entry {
	merged := make(map[phraseKey]Entry)
	if d.system != nil {
		for _, e := range d.system.Entries() {
			key := phraseKey{syllables: string(zhuyin.Encode(e.Syllables)), text: e.Phrase.Text}
			merged[key] = e
		}
	}
	for _, e := range d.user.Entries() {
		key := phraseKey{syllables: string(zhuyin.Encode(e.Syllables)), text: e.Phrase.Text}
		if existing, ok := merged[key]; ok && !better(e.Phrase, existing.Phrase) {
			continue
		}
		merged[key] = e
	}
	entries := make([]Entry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}
