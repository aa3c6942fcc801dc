package dictionary

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// fileMagic tags the on-disk trie format so Open can fail fast on a
// foreign file instead of misreading it.
const fileMagic = "CHEWTRIE1"

// keyCountLen is the width, in bytes, of the syllable-count header that
// opens every patricia trie key. zhuyin.Encode's two-bytes-per-syllable
// packing can itself produce a 0x00 byte (e.g. any syllable with
// Initial==InitialNone and Medial in {MedialNone, MedialI} packs to a
// 0x00 high byte), so a sentinel separator byte cannot reliably mark the
// end of the encoded syllables. The count header makes the key
// self-delimiting instead: the boundary is a fixed offset computed from
// the count, never found by scanning the key's bytes.
const keyCountLen = 2

type trieValue struct {
	freq     uint32
	lastUsed uint64
}

// TrieDictionary is the immutable, file-backed dictionary layer: an
// on-disk snapshot of (syllables, phrase) entries, loaded once at Open
// time into an in-memory radix trie for lookup. It implements Dictionary
// but not Mutable — all edits go through TrieBuf's overlay.
type TrieDictionary struct {
	path string
	info Info
	trie *patricia.Trie
}

// Open reads a trie file written by Builder.Build.
func Open(path string) (*TrieDictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)
	info, err := readHeader(r)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("reading entry count: %w", err)}
	}

	trie := patricia.NewTrie()
	for i := int32(0); i < count; i++ {
		key, val, err := readEntry(r)
		if err != nil {
			return nil, &OpenError{Path: path, Err: fmt.Errorf("reading entry %d: %w", i, err)}
		}
		trie.Insert(key, val)
	}

	log.Debugf("dictionary: opened trie %s (%d entries)", path, count)
	return &TrieDictionary{path: path, info: info, trie: trie}, nil
}

func (t *TrieDictionary) About() Info { return t.info }

func (t *TrieDictionary) LookupAllPhrases(syllables []zhuyin.Syllable) []Phrase {
	return dedupeByText(t.lookupRaw(syllables))
}

func (t *TrieDictionary) LookupFirstNPhrases(syllables []zhuyin.Syllable, n int) []Phrase {
	phrases := t.LookupAllPhrases(syllables)
	if n >= 0 && len(phrases) > n {
		phrases = phrases[:n]
	}
	return phrases
}

func (t *TrieDictionary) lookupRaw(syllables []zhuyin.Syllable) []Phrase {
	prefix := subtreePrefix(syllables)
	var phrases []Phrase
	err := t.trie.VisitSubtree(patricia.Prefix(prefix), func(key patricia.Prefix, item patricia.Item) error {
		text, ok := splitText([]byte(key), prefix)
		if !ok {
			return nil
		}
		v := item.(trieValue)
		last := v.lastUsed
		phrases = append(phrases, Phrase{Text: text, Freq: v.freq, LastUsed: &last})
		return nil
	})
	if err != nil {
		log.Errorf("dictionary: error visiting trie subtree: %v", err)
	}
	// go-patricia does not guarantee subtree visits in lexicographic
	// order; sort explicitly so candidate scans over tied frequencies
	// are deterministic regardless of the trie's internal branching.
	sortPhrasesByText(phrases)
	return phrases
}

func sortPhrasesByText(phrases []Phrase) {
	slices.SortFunc(phrases, func(a, b Phrase) int { return cmp.Compare(a.Text, b.Text) })
}

// Entries iterates every (syllables, phrase) pair, sorted by
// (syllables, phrase text).
func (t *TrieDictionary) Entries() []Entry {
	var entries []Entry
	err := t.trie.Visit(func(key patricia.Prefix, item patricia.Item) error {
		syllables, text, err := splitKey([]byte(key))
		if err != nil {
			log.Warnf("dictionary: skipping malformed trie key: %v", err)
			return nil
		}
		v := item.(trieValue)
		last := v.lastUsed
		entries = append(entries, Entry{
			Syllables: syllables,
			Phrase:    Phrase{Text: text, Freq: v.freq, LastUsed: &last},
		})
		return nil
	})
	if err != nil {
		log.Errorf("dictionary: error visiting trie: %v", err)
	}
	sortEntries(entries)
	return entries
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := zhuyin.CompareSlices(a.Syllables, b.Syllables); c != 0 {
			return c
		}
		return cmp.Compare(a.Phrase.Text, b.Phrase.Text)
	})
}

// subtreePrefix builds the patricia key prefix matching exactly the
// given syllable sequence: a count header followed by the encoding.
// Because the count is part of the prefix, a different syllable count
// can never share this prefix, regardless of what bytes the encoding
// itself contains.
func subtreePrefix(syllables []zhuyin.Syllable) []byte {
	prefix := make([]byte, keyCountLen, keyCountLen+len(syllables)*2)
	binary.BigEndian.PutUint16(prefix, uint16(len(syllables)))
	return append(prefix, zhuyin.Encode(syllables)...)
}

// entryKey builds the full patricia key for one (syllables, text) pair.
func entryKey(syllables []zhuyin.Syllable, text string) []byte {
	key := subtreePrefix(syllables)
	return append(key, []byte(text)...)
}

func splitText(key, prefix []byte) (string, bool) {
	if len(key) < len(prefix) || !bytes.Equal(key[:len(prefix)], prefix) {
		return "", false
	}
	return string(key[len(prefix):]), true
}

func splitKey(key []byte) ([]zhuyin.Syllable, string, error) {
	if len(key) < keyCountLen {
		return nil, "", fmt.Errorf("dictionary: key too short for syllable count header")
	}
	count := int(binary.BigEndian.Uint16(key[:keyCountLen]))
	encLen := count * 2
	if len(key) < keyCountLen+encLen {
		return nil, "", fmt.Errorf("dictionary: truncated syllable encoding in key")
	}
	syllables, err := zhuyin.Decode(key[keyCountLen : keyCountLen+encLen])
	if err != nil {
		return nil, "", err
	}
	return syllables, string(key[keyCountLen+encLen:]), nil
}

// --- On-disk format ---
//
// [magic: 9 bytes]
// [info: 5 length-prefixed (uint16) strings: name, copyright, license, version, software]
// [count: int32]
// count * [keyLen: uint16][key bytes][freq: uint32][lastUsed: uint64]

func readHeader(r io.Reader) (Info, error) {
	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return Info{}, fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != fileMagic {
		return Info{}, fmt.Errorf("not a chewing trie file (bad magic %q)", magic)
	}
	fields := make([]string, 5)
	for i := range fields {
		s, err := readString(r)
		if err != nil {
			return Info{}, fmt.Errorf("reading info field %d: %w", i, err)
		}
		fields[i] = s
	}
	return Info{Name: fields[0], Copyright: fields[1], License: fields[2], Version: fields[3], Software: fields[4]}, nil
}

func writeHeader(w io.Writer, info Info) error {
	if _, err := w.Write([]byte(fileMagic)); err != nil {
		return err
	}
	for _, s := range []string{info.Name, info.Copyright, info.License, info.Version, info.Software} {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func readString(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func readEntry(r io.Reader) (patricia.Prefix, trieValue, error) {
	var keyLen uint16
	if err := binary.Read(r, binary.LittleEndian, &keyLen); err != nil {
		return nil, trieValue{}, err
	}
	key := make([]byte, keyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, trieValue{}, err
	}
	var v trieValue
	if err := binary.Read(r, binary.LittleEndian, &v.freq); err != nil {
		return nil, trieValue{}, err
	}
	if err := binary.Read(r, binary.LittleEndian, &v.lastUsed); err != nil {
		return nil, trieValue{}, err
	}
	return patricia.Prefix(key), v, nil
}

func writeEntry(w io.Writer, key []byte, v trieValue) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(len(key))); err != nil {
		return err
	}
	if _, err := w.Write(key); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v.freq); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, v.lastUsed)
}

// Builder accumulates (syllables, phrase) entries and writes them into a
// new trie file atomically. Entries must be inserted in the sorted order
// Dictionary.Entries produces; Build does not re-sort.
type Builder struct {
	info    Info
	entries []builderEntry
}

type builderEntry struct {
	key   []byte
	value trieValue
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetInfo records the descriptive metadata written to the trie file.
func (b *Builder) SetInfo(info Info) error {
	b.info = info
	return nil
}

// Insert appends one (syllables, phrase) entry. Callers must insert in
// ascending (syllables, phrase text) order.
func (b *Builder) Insert(syllables []zhuyin.Syllable, phrase Phrase) error {
	b.entries = append(b.entries, builderEntry{
		key:   entryKey(syllables, phrase.Text),
		value: trieValue{freq: phrase.Freq, lastUsed: phrase.lastUsedValue()},
	})
	return nil
}

// Build atomically writes the accumulated entries to path (write to a
// temp file in the same directory, then rename) and returns the freshly
// opened TrieDictionary.
func (b *Builder) Build(path string) (*TrieDictionary, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dictionary: creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".chewing-trie-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("dictionary: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	if err := writeHeader(w, b.info); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("dictionary: writing header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(b.entries))); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("dictionary: writing entry count: %w", err)
	}
	for _, e := range b.entries {
		if err := writeEntry(w, e.key, e.value); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("dictionary: writing entry: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("dictionary: flushing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("dictionary: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return nil, fmt.Errorf("dictionary: renaming into place: %w", err)
	}
	log.Debugf("dictionary: built trie %s (%d entries)", path, len(b.entries))
	return Open(path)
}
