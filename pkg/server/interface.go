/*
Package server implements MessagePack IPC for the conversion engine and
the user dictionary.

The server operates on a request/response model: a client sends one
structured message as one msgpack value on stdin and reads exactly one
msgpack response value from stdout. Every message carries an id field the
client chose, echoed back unchanged so responses can be matched to
requests when read off a shared stream.

A convert request carries a whole Composition (buffer, selections,
breaks, glues) since the engine is stateless between calls:

	{"id": "c1", "buf": [{"sy": {...}}, {"sy": {...}}]}

The server responds with the resulting intervals:

	{"id": "c1", "iv": [{"s": 0, "e": 2, "p": true, "t": "國民"}], "t": 812}

Dictionary requests mutate the user overlay at runtime:

	{"id": "d1", "action": "add", "sy": [...], "text": "測試", "freq": 100}

msgpack keeps these messages small and avoids JSON's text-parsing
overhead on the hot convert path.
*/
package server

import "github.com/hanzikit/chewing/pkg/zhuyin"

// WireSyllable is the wire form of zhuyin.Syllable.
type WireSyllable struct {
	Initial uint8 `msgpack:"i"`
	Medial  uint8 `msgpack:"m"`
	Final   uint8 `msgpack:"f"`
	Tone    uint8 `msgpack:"t"`
}

func (w WireSyllable) toSyllable() zhuyin.Syllable {
	return zhuyin.New(zhuyin.Initial(w.Initial), zhuyin.Medial(w.Medial), zhuyin.Final(w.Final), zhuyin.Tone(w.Tone))
}

// WireSymbol is the wire form of conversion.Symbol: exactly one of
// Syllable or Char is set.
type WireSymbol struct {
	Syllable *WireSyllable `msgpack:"sy,omitempty"`
	Char     string        `msgpack:"ch,omitempty"`
}

// WireSelection is the wire form of conversion.Selection.
type WireSelection struct {
	Start  int    `msgpack:"s"`
	End    int    `msgpack:"e"`
	Phrase string `msgpack:"p"`
}

// WireInterval is the wire form of conversion.Interval.
type WireInterval struct {
	Start    int    `msgpack:"s"`
	End      int    `msgpack:"e"`
	IsPhrase bool   `msgpack:"p,omitempty"`
	Phrase   string `msgpack:"t"`
}

// ConvertRequest asks for the best segmentation of a composition.
type ConvertRequest struct {
	ID         string          `msgpack:"id"`
	Buffer     []WireSymbol    `msgpack:"buf"`
	Selections []WireSelection `msgpack:"sel,omitempty"`
	Breaks     []int           `msgpack:"brk,omitempty"`
	Glues      []int           `msgpack:"glu,omitempty"`
}

// ConvertNextRequest asks for the n-th alternative segmentation.
type ConvertNextRequest struct {
	ConvertRequest
	N int `msgpack:"n"`
}

// ConvertResponse carries the resulting intervals and processing time in
// microseconds.
type ConvertResponse struct {
	ID        string         `msgpack:"id"`
	Intervals []WireInterval `msgpack:"iv"`
	TimeTaken int64          `msgpack:"t"`
}

// DictRequest manages the user dictionary overlay at runtime. Action is
// one of "add", "update", "remove", "flush", "info".
type DictRequest struct {
	ID       string         `msgpack:"id"`
	Action   string         `msgpack:"action"`
	Syllable []WireSyllable `msgpack:"sy,omitempty"`
	Text     string         `msgpack:"text,omitempty"`
	Freq     uint32         `msgpack:"freq,omitempty"`
	LastUsed uint64         `msgpack:"last_used,omitempty"`
}

// DictResponse reports the outcome of a DictRequest.
type DictResponse struct {
	ID      string `msgpack:"id"`
	Status  string `msgpack:"status"`
	Error   string `msgpack:"error,omitempty"`
	Entries int    `msgpack:"entries,omitempty"`
}

// ErrorResponse reports a malformed or unrecognized request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
