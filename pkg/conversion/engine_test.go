package conversion

import (
	"reflect"
	"testing"

	"github.com/hanzikit/chewing/pkg/dictionary"
	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// The syllable names below mirror the informal romanization used in the
// scenarios this suite reproduces: each corresponds to exactly one
// Syllable value, chosen only to be distinct from the others used in the
// same test (their phonetic plausibility is not load-bearing).
var (
	guo2 = zhuyin.New(zhuyin.InitialG, zhuyin.MedialNone, zhuyin.FinalO, zhuyin.Tone2)
	min2 = zhuyin.New(zhuyin.InitialM, zhuyin.MedialNone, zhuyin.FinalEn, zhuyin.Tone2)
	da4  = zhuyin.New(zhuyin.InitialD, zhuyin.MedialNone, zhuyin.FinalA, zhuyin.Tone4)
	hui4 = zhuyin.New(zhuyin.InitialH, zhuyin.MedialU, zhuyin.FinalEi, zhuyin.Tone4)
	dai4 = zhuyin.New(zhuyin.InitialD, zhuyin.MedialNone, zhuyin.FinalAi, zhuyin.Tone4)
	biau3 = zhuyin.New(zhuyin.InitialB, zhuyin.MedialI, zhuyin.FinalAo, zhuyin.Tone3)

	xien = zhuyin.New(zhuyin.InitialX, zhuyin.MedialI, zhuyin.FinalEn, zhuyin.Tone1)
	ku4  = zhuyin.New(zhuyin.InitialK, zhuyin.MedialU, zhuyin.FinalNone, zhuyin.Tone4)
	ien  = zhuyin.New(zhuyin.InitialNone, zhuyin.MedialI, zhuyin.FinalEn, zhuyin.Tone1)

	ce4 = zhuyin.New(zhuyin.InitialC, zhuyin.MedialNone, zhuyin.FinalE, zhuyin.Tone4)
	sh4 = zhuyin.New(zhuyin.InitialSh, zhuyin.MedialNone, zhuyin.FinalNone, zhuyin.Tone4)
	i2  = zhuyin.New(zhuyin.InitialNone, zhuyin.MedialI, zhuyin.FinalNone, zhuyin.Tone2)
	xia4 = zhuyin.New(zhuyin.InitialX, zhuyin.MedialI, zhuyin.FinalA, zhuyin.Tone4)
)

func entry(freq uint32, text string, syllables ...zhuyin.Syllable) dictionary.Entry {
	return dictionary.Entry{Syllables: syllables, Phrase: dictionary.NewPhrase(text, freq)}
}

// testDictionary reproduces the scenarios' test dictionary: single-char
// entries at freq 1, ordinary multi-char entries at freq 200, and the
// two named exceptions at their documented frequencies.
func testDictionary() dictionary.Dictionary {
	entries := []dictionary.Entry{
		entry(1, "國", guo2),
		entry(1, "民", min2),
		entry(1, "大", da4),
		entry(1, "會", hui4),
		entry(1, "代", dai4),
		entry(1, "表", biau3),
		entry(1, "錶", biau3),
		entry(1, "新", xien),
		entry(1, "酷", ku4),
		entry(1, "音", ien),
		entry(1, "測", ce4),
		entry(1, "試", sh4),
		entry(1, "一", i2),
		entry(1, "儀", i2),
		entry(1, "下", xia4),

		entry(200, "國民", guo2, min2),
		entry(200, "大會", da4, hui4),
		entry(200, "代表", dai4, biau3),
		entry(200, "戴錶", dai4, biau3),
		entry(200, "新酷音", xien, ku4, ien),
		entry(200, "酷音", ku4, ien),
		entry(200, "庫音", ku4, ien),
		entry(200, "測試儀", ce4, sh4, i2),

		entry(9318, "測試", ce4, sh4),
		entry(10576, "一下", i2, xia4),
	}
	return dictionary.FromEntries(dictionary.Info{}, entries)
}

func symbols(syllables ...zhuyin.Syllable) []Symbol {
	out := make([]Symbol, len(syllables))
	for i, s := range syllables {
		out[i] = SyllableSymbol(s)
	}
	return out
}

func phraseTexts(intervals []Interval) []string {
	out := make([]string, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Phrase
	}
	return out
}

func TestConvertEmptyBuffer(t *testing.T) {
	engine := NewEngine()
	result := engine.Convert(testDictionary(), NewComposition(nil))
	if len(result) != 0 {
		t.Fatalf("Convert(empty) = %v, want empty", result)
	}
}

func TestS1NoConstraints(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	got := phraseTexts(NewEngine().Convert(testDictionary(), comp))
	want := []string{"國民", "大會", "代表"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("S1: got %v, want %v", got, want)
	}
}

func TestS2Breaks(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	comp.Breaks = []int{1, 5}
	got := phraseTexts(NewEngine().Convert(testDictionary(), comp))
	want := []string{"國", "民", "大會", "代", "表"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("S2: got %v, want %v", got, want)
	}
}

func TestS3Selection(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	comp.Selections = []Selection{{Start: 4, End: 6, Phrase: "戴錶"}}
	got := phraseTexts(NewEngine().Convert(testDictionary(), comp))
	want := []string{"國民", "大會", "戴錶"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("S3: got %v, want %v", got, want)
	}
}

func TestS4SelectionWithinWholeSpanPhrase(t *testing.T) {
	comp := NewComposition(symbols(xien, ku4, ien))
	comp.Selections = []Selection{{Start: 1, End: 3, Phrase: "酷音"}}
	got := phraseTexts(NewEngine().Convert(testDictionary(), comp))
	want := []string{"新酷音"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("S4: got %v, want %v", got, want)
	}
}

func TestS5ConflictingSelectionsForceSingleChars(t *testing.T) {
	comp := NewComposition(symbols(dai4, biau3))
	comp.Selections = []Selection{
		{Start: 0, End: 1, Phrase: "代"},
		{Start: 1, End: 2, Phrase: "錶"},
	}
	got := phraseTexts(NewEngine().Convert(testDictionary(), comp))
	want := []string{"代", "錶"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("S5: got %v, want %v", got, want)
	}
}

func TestS6CyclingWraps(t *testing.T) {
	comp := NewComposition(symbols(ce4, sh4, i2, xia4))
	engine := NewEngine()
	dict := testDictionary()

	c0 := phraseTexts(engine.ConvertNext(dict, comp, 0))
	if want := []string{"測試", "一下"}; !reflect.DeepEqual(c0, want) {
		t.Fatalf("convert_next(0) = %v, want %v", c0, want)
	}

	c1 := phraseTexts(engine.ConvertNext(dict, comp, 1))
	if want := []string{"測試儀", "下"}; !reflect.DeepEqual(c1, want) {
		t.Fatalf("convert_next(1) = %v, want %v", c1, want)
	}

	c2 := phraseTexts(engine.ConvertNext(dict, comp, 2))
	if !reflect.DeepEqual(c2, c0) {
		t.Fatalf("convert_next(2) = %v, want wrap to %v", c2, c0)
	}
}

func TestConvertMatchesConvertNextZero(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	engine := NewEngine()
	dict := testDictionary()

	convert := phraseTexts(engine.Convert(dict, comp))
	next0 := phraseTexts(engine.ConvertNext(dict, comp, 0))
	if !reflect.DeepEqual(convert, next0) {
		t.Fatalf("Convert = %v, ConvertNext(0) = %v, want equal", convert, next0)
	}
}

func TestIntervalsCoverBufferContiguously(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	result := NewEngine().Convert(testDictionary(), comp)

	pos := 0
	for _, iv := range result {
		if iv.Start != pos {
			t.Fatalf("gap before interval %v, expected start %d", iv, pos)
		}
		pos = iv.End
	}
	if pos != len(comp.Buffer) {
		t.Fatalf("coverage ends at %d, want %d", pos, len(comp.Buffer))
	}
}

func TestNoIntervalSpansABreak(t *testing.T) {
	comp := NewComposition(symbols(guo2, min2, da4, hui4, dai4, biau3))
	comp.Breaks = []int{1, 5}
	result := NewEngine().Convert(testDictionary(), comp)

	for _, iv := range result {
		for _, b := range comp.Breaks {
			if iv.Start < b && b < iv.End {
				t.Fatalf("interval %v spans break %d", iv, b)
			}
		}
	}
}
