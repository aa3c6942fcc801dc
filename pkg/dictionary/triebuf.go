package dictionary

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// phraseKey is the sort/lookup key for an entry in the mutable overlay:
// a syllable sequence paired with the phrase's own text, matching the
// on-disk trie's key ordering.
type phraseKey struct {
	syllables string // zhuyin.Encode, used as a comparable/hashable map key
	text      string
}

// TrieBuf overlays a mutable in-memory layer (additions/updates, plus a
// tombstone graveyard) on top of an immutable on-disk TrieDictionary. It
// is the user dictionary: AddPhrase/UpdatePhrase/RemovePhrase mutate the
// overlay only, and Flush rebuilds the base trie file and clears the
// overlay.
type TrieBuf struct {
	mu    sync.RWMutex
	path  string
	base  *TrieDictionary
	dirty map[phraseKey]Phrase
	grave map[phraseKey]struct{}
	info  Info
}

// OpenTrieBuf loads the base trie at path, creating an empty one with
// DefaultUserInfo(software) on first use if it does not exist yet, and
// wraps it in a fresh, clean overlay.
func OpenTrieBuf(path, software string) (*TrieBuf, error) {
	base, err := Open(path)
	switch {
	case err == nil:
		// base loaded fine
	case isMissingFile(err):
		built, buildErr := NewBuilder().buildEmpty(path, DefaultUserInfo(software))
		if buildErr != nil {
			return nil, &OpenError{Path: path, Err: buildErr}
		}
		base = built
	default:
		return nil, err
	}
	return &TrieBuf{
		path:  path,
		base:  base,
		dirty: make(map[phraseKey]Phrase),
		grave: make(map[phraseKey]struct{}),
		info:  base.info,
	}, nil
}

func isMissingFile(err error) bool {
	oe, ok := err.(*OpenError)
	if !ok {
		return false
	}
	return os.IsNotExist(oe.Unwrap())
}

// buildEmpty writes a header-only trie file, used to seed a brand new
// user dictionary.
func (b *Builder) buildEmpty(path string, info Info) (*TrieDictionary, error) {
	if err := b.SetInfo(info); err != nil {
		return nil, err
	}
	return b.Build(path)
}

// NewTrieBufInMemory builds a TrieBuf with no backing file, used by tests
// that only exercise the overlay (add/update/remove/merge) without disk
// I/O. Flush merges the overlay into a fresh in-memory base and performs
// no I/O.
func NewTrieBufInMemory(info Info) *TrieBuf {
	return &TrieBuf{
		base:  &TrieDictionary{info: info, trie: patricia.NewTrie()},
		dirty: make(map[phraseKey]Phrase),
		grave: make(map[phraseKey]struct{}),
		info:  info,
	}
}

// FromEntries builds an in-memory TrieBuf preloaded with the given
// entries, treated as already-flushed base content. It is the overlay
// analogue of a freshly opened trie file, for engine tests that need a
// quick scripted dictionary without touching disk.
func FromEntries(info Info, entries []Entry) *TrieBuf {
	builder := NewBuilder()
	builder.SetInfo(info)
	sorted := append([]Entry(nil), entries...)
	sortEntries(sorted)
	for _, e := range sorted {
		builder.Insert(e.Syllables, e.Phrase)
	}
	return &TrieBuf{
		base:  builder.buildInMemory(info),
		dirty: make(map[phraseKey]Phrase),
		grave: make(map[phraseKey]struct{}),
		info:  info,
	}
}

// buildInMemory assembles a TrieDictionary directly from accumulated
// entries without touching disk, for FromEntries and in-memory Flush.
func (b *Builder) buildInMemory(info Info) *TrieDictionary {
	trie := patricia.NewTrie()
	for _, e := range b.entries {
		trie.Insert(patricia.Prefix(e.key), e.value)
	}
	return &TrieDictionary{info: info, trie: trie}
}

func (t *TrieBuf) About() Info {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.info
}

// LookupAllPhrases merges the base dictionary and the overlay: entries
// in the graveyard are hidden, entries in dirty are combined with the
// base's, and the result is deduplicated by text keeping the greater Freq.
func (t *TrieBuf) LookupAllPhrases(syllables []zhuyin.Syllable) []Phrase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return dedupeByText(t.mergedRaw(syllables))
}

func (t *TrieBuf) LookupFirstNPhrases(syllables []zhuyin.Syllable, n int) []Phrase {
	phrases := t.LookupAllPhrases(syllables)
	if n >= 0 && len(phrases) > n {
		phrases = phrases[:n]
	}
	return phrases
}

// mergedRaw must be called with mu held (for reading or writing).
func (t *TrieBuf) mergedRaw(syllables []zhuyin.Syllable) []Phrase {
	enc := string(zhuyin.Encode(syllables))
	var phrases []Phrase
	if t.base != nil {
		phrases = append(phrases, t.base.lookupRaw(syllables)...)
	}
	filtered := phrases[:0]
	for _, p := range phrases {
		key := phraseKey{syllables: enc, text: p.Text}
		if _, dead := t.grave[key]; dead {
			continue
		}
		filtered = append(filtered, p)
	}
	phrases = filtered
	for key, p := range t.dirty {
		if key.syllables != enc {
			continue
		}
		phrases = append(phrases, p)
	}
	sortPhrasesByText(phrases)
	return phrases
}

// Entries merges base and overlay across the whole dictionary, sorted by
// (syllables, phrase text), the same order TrieDictionary.Entries uses.
// Where both hold the same (syllables, text), the greater Freq is kept
// (ties go to the greater LastUsed, then to the overlay).
func (t *TrieBuf) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.entriesLocked()
}

func (t *TrieBuf) entriesLocked() []Entry {
	merged := make(map[phraseKey]Entry)
	if t.base != nil {
		for _, e := range t.base.Entries() {
			key := phraseKey{syllables: string(zhuyin.Encode(e.Syllables)), text: e.Phrase.Text}
			merged[key] = e
		}
	}
	for key := range t.grave {
		delete(merged, key)
	}
	for key, p := range t.dirty {
		syllables, err := zhuyin.Decode([]byte(key.syllables))
		if err != nil {
			log.Warnf("dictionary: skipping malformed overlay key: %v", err)
			continue
		}
		if existing, ok := merged[key]; ok && better(existing.Phrase, p) {
			continue
		}
		merged[key] = Entry{Syllables: syllables, Phrase: p}
	}
	entries := make([]Entry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}
	sortEntries(entries)
	return entries
}

// AddPhrase inserts a brand new phrase. It fails with ErrDuplicatePhrase
// if the merged view already has a phrase with this text under these
// syllables.
func (t *TrieBuf) AddPhrase(syllables []zhuyin.Syllable, phrase Phrase) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enc := string(zhuyin.Encode(syllables))
	for _, p := range t.mergedRaw(syllables) {
		if p.Text == phrase.Text {
			return &UpdateError{Op: "AddPhrase", Err: ErrDuplicatePhrase}
		}
	}
	key := phraseKey{syllables: enc, text: phrase.Text}
	delete(t.grave, key)
	t.dirty[key] = phrase
	return nil
}

// UpdatePhrase overwrites the frequency and last-used stamp of an
// existing phrase, or inserts it fresh if it is not present yet. It
// never fails.
func (t *TrieBuf) UpdatePhrase(syllables []zhuyin.Syllable, phrase Phrase, freq uint32, lastUsed uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enc := string(zhuyin.Encode(syllables))
	key := phraseKey{syllables: enc, text: phrase.Text}
	delete(t.grave, key)
	t.dirty[key] = Phrase{Text: phrase.Text, Freq: freq, LastUsed: &lastUsed}
	return nil
}

// RemovePhrase tombstones a phrase so it no longer surfaces from either
// the base trie or the overlay, regardless of whether it currently comes
// from one, the other, or both. It never fails, even if the phrase is
// not present.
func (t *TrieBuf) RemovePhrase(syllables []zhuyin.Syllable, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	enc := string(zhuyin.Encode(syllables))
	key := phraseKey{syllables: enc, text: text}
	delete(t.dirty, key)
	t.grave[key] = struct{}{}
	return nil
}

// Flush rebuilds the base trie from the merged view and clears the
// overlay. If the TrieBuf has no backing path (built with
// NewTrieBufInMemory or FromEntries), Flush rebuilds an in-memory base
// instead, performing no I/O.
func (t *TrieBuf) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	builder := NewBuilder()
	builder.SetInfo(t.info)
	for _, e := range t.entriesLocked() {
		if err := builder.Insert(e.Syllables, e.Phrase); err != nil {
			return &UpdateError{Op: "Flush", Err: err}
		}
	}

	if t.path == "" {
		t.base = builder.buildInMemory(t.info)
	} else {
		built, err := builder.Build(t.path)
		if err != nil {
			return &UpdateError{Op: "Flush", Err: err}
		}
		t.base = built
	}
	t.dirty = make(map[phraseKey]Phrase)
	t.grave = make(map[phraseKey]struct{})
	log.Debugf("dictionary: flushed user dictionary (%d entries)", len(t.base.Entries()))
	return nil
}

// Close flushes the overlay to disk, best-effort: errors are logged but
// not returned, matching a flush-on-drop that cannot propagate failures
// to its caller.
func (t *TrieBuf) Close() {
	if err := t.Flush(); err != nil {
		log.Warnf("dictionary: best-effort flush on close failed: %v", err)
	}
}
