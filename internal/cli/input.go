// Package cli provides an interactive shell for exercising the
// conversion engine from a terminal, for manual testing and debugging.
package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hanzikit/chewing/internal/logger"
	"github.com/hanzikit/chewing/pkg/conversion"
	"github.com/hanzikit/chewing/pkg/dictionary"
	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// InputHandler reads lines of whitespace-separated romanized syllable
// tokens from stdin, converts each line with the engine, and prints the
// resulting intervals. A line prefixed with "!" is a command instead of
// a buffer: "!next" re-converts the previous line asking for the next
// alternative segmentation, "!info" prints dictionary entry counts.
type InputHandler struct {
	engine        conversion.Engine
	dict          dictionary.Dictionary
	echoIntervals bool
	log           *log.Logger

	lastComposition conversion.Composition
	nextIndex       int
}

// NewInputHandler creates a shell over the given engine and dictionary.
func NewInputHandler(engine conversion.Engine, dict dictionary.Dictionary, echoIntervals bool) *InputHandler {
	return &InputHandler{engine: engine, dict: dict, echoIntervals: echoIntervals, log: logger.New("cli")}
}

// Start begins the shell loop, returning when stdin is closed.
func (h *InputHandler) Start() error {
	h.log.Print("chewing conversion shell")
	h.log.Print("type space-separated syllable tokens (e.g. guo2 mien2 da4 huei4), Ctrl+C to exit")
	h.log.Print("!next repeats the last line with the next-best segmentation, !info shows dictionary size")

	reader := bufio.NewReader(os.Stdin)
	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

func (h *InputHandler) handleLine(line string) {
	switch {
	case line == "!info":
		h.log.Printf("dictionary has %d entries", len(h.dict.Entries()))
		return
	case line == "!next":
		h.nextIndex++
		h.printIntervals(h.engine.ConvertNext(h.dict, h.lastComposition, h.nextIndex))
		return
	}

	tokens := zhuyin.ParseBuffer(line)
	if len(tokens) == 0 {
		h.log.Warn("no recognizable syllables or characters in input")
		return
	}

	buffer := make([]conversion.Symbol, len(tokens))
	for i, tok := range tokens {
		if tok.IsSyllable {
			buffer[i] = conversion.SyllableSymbol(tok.Syllable)
		} else {
			buffer[i] = conversion.CharSymbol(tok.Char)
		}
	}

	h.lastComposition = conversion.NewComposition(buffer)
	h.nextIndex = 0
	h.printIntervals(h.engine.Convert(h.dict, h.lastComposition))
}

func (h *InputHandler) printIntervals(intervals []conversion.Interval) {
	if len(intervals) == 0 {
		h.log.Warn("no conversion result")
		return
	}
	var sb strings.Builder
	for _, iv := range intervals {
		sb.WriteString(iv.Phrase)
	}
	h.log.Printf("%s", sb.String())
	if h.echoIntervals {
		for _, iv := range intervals {
			h.log.Printf("  [%d,%d) phrase=%v %q", iv.Start, iv.End, iv.IsPhrase, iv.Phrase)
		}
	}
}
