package dictionary

import (
	"path/filepath"
	"testing"

	"github.com/hanzikit/chewing/pkg/zhuyin"
)

func syl(initial zhuyin.Initial, medial zhuyin.Medial, final zhuyin.Final, tone zhuyin.Tone) zhuyin.Syllable {
	return zhuyin.New(initial, medial, final, tone)
}

func TestBuilderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.trie")

	guo := []zhuyin.Syllable{syl(zhuyin.InitialG, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2)}

	b := NewBuilder()
	if err := b.SetInfo(Info{Name: "test", Version: "1.0.0"}); err != nil {
		t.Fatalf("SetInfo: %v", err)
	}
	if err := b.Insert(guo, NewPhrase("國", 100)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := b.Insert(guo, NewPhrase("果", 50)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	dict, err := b.Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if dict.About().Name != "test" {
		t.Fatalf("About().Name = %q, want test", dict.About().Name)
	}

	phrases := dict.LookupAllPhrases(guo)
	if len(phrases) != 2 {
		t.Fatalf("LookupAllPhrases: got %d phrases, want 2", len(phrases))
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	again := reopened.LookupAllPhrases(guo)
	if len(again) != 2 {
		t.Fatalf("after reopen: got %d phrases, want 2", len(again))
	}
}

func TestLookupDoesNotMatchLongerSyllableSequence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.trie")

	short := []zhuyin.Syllable{syl(zhuyin.InitialG, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2)}
	long := []zhuyin.Syllable{
		syl(zhuyin.InitialG, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2),
		syl(zhuyin.InitialM, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2),
	}

	b := NewBuilder()
	b.SetInfo(Info{})
	if err := b.Insert(long, NewPhrase("果末", 10)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	dict, err := b.Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if phrases := dict.LookupAllPhrases(short); len(phrases) != 0 {
		t.Fatalf("LookupAllPhrases(short) = %v, want none", phrases)
	}
}

// TestLookupDoesNotMatchLongerSequenceWithZeroHighByte exercises the case
// the maintainer flagged: a syllable whose Initial is InitialNone and
// whose Medial is MedialNone or MedialI packs to a 0x00 high byte
// (e.g. "一", "音"). TestLookupDoesNotMatchLongerSyllableSequence above
// only uses a second syllable with a non-zero high byte, so it never
// actually exercised a 0x00 byte inside the syllable encoding.
func TestLookupDoesNotMatchLongerSequenceWithZeroHighByte(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.trie")

	short := []zhuyin.Syllable{syl(zhuyin.InitialG, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2)}
	zeroHighByte := syl(zhuyin.InitialNone, zhuyin.MedialI, zhuyin.FinalNone, zhuyin.Tone2)
	if packed := zhuyin.Encode([]zhuyin.Syllable{zeroHighByte}); packed[0] != 0x00 {
		t.Fatalf("test syllable does not pack to a 0x00 high byte: %x", packed)
	}
	long := append(append([]zhuyin.Syllable(nil), short...), zeroHighByte)

	b := NewBuilder()
	b.SetInfo(Info{})
	if err := b.Insert(long, NewPhrase("國一", 10)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	dict, err := b.Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if phrases := dict.LookupAllPhrases(short); len(phrases) != 0 {
		t.Fatalf("LookupAllPhrases(short) = %v, want none (over-matched a longer sequence via a 0x00 encoding byte)", phrases)
	}
	if phrases := dict.LookupAllPhrases(long); len(phrases) != 1 || phrases[0].Text != "國一" {
		t.Fatalf("LookupAllPhrases(long) = %v, want [國一]", phrases)
	}
}

// TestEntriesSurviveLeadingZeroHighByteSyllable exercises the Entries()
// split path for a phrase whose *first* syllable packs to a 0x00 high
// byte, the case that used to be mistaken for the key separator and
// corrupt TrieBuf.Flush round-trips (e.g. "一下").
func TestEntriesSurviveLeadingZeroHighByteSyllable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.trie")

	first := syl(zhuyin.InitialNone, zhuyin.MedialI, zhuyin.FinalNone, zhuyin.Tone1)
	if packed := zhuyin.Encode([]zhuyin.Syllable{first}); packed[0] != 0x00 {
		t.Fatalf("test syllable does not pack to a 0x00 high byte: %x", packed)
	}
	second := syl(zhuyin.InitialX, zhuyin.MedialNone, zhuyin.FinalA, zhuyin.Tone4)
	syllables := []zhuyin.Syllable{first, second}

	b := NewBuilder()
	b.SetInfo(Info{})
	if err := b.Insert(syllables, NewPhrase("一下", 50)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	dict, err := b.Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	entries := dict.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries: got %d, want 1", len(entries))
	}
	if entries[0].Phrase.Text != "一下" {
		t.Fatalf("Entries: Phrase.Text = %q, want 一下 (got garbled text, separator collided with encoding)", entries[0].Phrase.Text)
	}
	if !zhuyin.Equal(entries[0].Syllables, syllables) {
		t.Fatalf("Entries: Syllables = %v, want %v", entries[0].Syllables, syllables)
	}
}

func TestEntriesSortedBySyllablesThenText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dict.trie")

	a := []zhuyin.Syllable{syl(zhuyin.InitialD, zhuyin.MedialNone, zhuyin.FinalA, zhuyin.Tone4)}
	b := []zhuyin.Syllable{syl(zhuyin.InitialB, zhuyin.MedialNone, zhuyin.FinalA, zhuyin.Tone4)}

	builder := NewBuilder()
	builder.SetInfo(Info{})
	builder.Insert(a, NewPhrase("大", 1))
	builder.Insert(b, NewPhrase("爸", 1))
	dict, err := builder.Build(path)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	entries := dict.Entries()
	if len(entries) != 2 {
		t.Fatalf("Entries: got %d, want 2", len(entries))
	}
	if entries[0].Phrase.Text != "爸" || entries[1].Phrase.Text != "大" {
		t.Fatalf("Entries not sorted by syllables: got %q, %q", entries[0].Phrase.Text, entries[1].Phrase.Text)
	}
}
