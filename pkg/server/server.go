package server

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hanzikit/chewing/internal/logger"
	"github.com/hanzikit/chewing/pkg/config"
	"github.com/hanzikit/chewing/pkg/conversion"
	"github.com/hanzikit/chewing/pkg/dictionary"
	"github.com/hanzikit/chewing/pkg/zhuyin"
)

// Server handles convert/convert_next requests and user dictionary
// mutations over MessagePack on stdin/stdout.
type Server struct {
	engine     conversion.Engine
	dict       *dictionary.TrieBuf
	config     *config.Config
	configPath string

	log          *log.Logger
	decoder      *msgpack.Decoder
	writeMutex   sync.Mutex
	requestCount int64
}

// NewServer creates a server over the given engine, user dictionary
// overlay, and config.
func NewServer(engine conversion.Engine, dict *dictionary.TrieBuf, cfg *config.Config, configPath string) *Server {
	l := logger.New("server")
	l.Debugf("creating server with engine type: %T", engine)
	return &Server{
		engine:     engine,
		dict:       dict,
		config:     cfg,
		configPath: configPath,
		log:        l,
		decoder:    msgpack.NewDecoder(os.Stdin),
	}
}

func (s *Server) reloadConfig() {
	newConfig, err := config.LoadConfig(s.configPath)
	if err != nil {
		s.log.Warnf("failed to reload config, keeping current: %v", err)
		return
	}
	s.config = newConfig
	s.log.Debugf("config reloaded from: %s", s.configPath)
}

// Start begins listening for requests until the client disconnects.
func (s *Server) Start() error {
	s.log.Debug("starting MessagePack conversion server")
	for {
		if err := s.processRequest(); err != nil {
			if err == io.EOF {
				s.log.Debug("client disconnected")
				return nil
			}
			s.log.Warnf("request error: %v", err)
		}
	}
}

func (s *Server) processRequest() error {
	s.requestCount++
	if s.requestCount%100 == 0 {
		s.reloadConfig()
	}

	var raw map[string]any
	if err := s.decoder.Decode(&raw); err != nil {
		return err
	}

	if action, ok := raw["action"].(string); ok {
		return s.processDictRequest(raw, action)
	}
	if _, hasN := raw["n"]; hasN {
		return s.processConvertNext(raw)
	}
	return s.processConvert(raw)
}

func decodeRaw[T any](raw map[string]any, out *T) error {
	buf, err := msgpack.Marshal(raw)
	if err != nil {
		return err
	}
	return msgpack.Unmarshal(buf, out)
}

func toComposition(req ConvertRequest) conversion.Composition {
	buffer := make([]conversion.Symbol, len(req.Buffer))
	for i, sym := range req.Buffer {
		if sym.Syllable != nil {
			buffer[i] = conversion.SyllableSymbol(sym.Syllable.toSyllable())
		} else {
			r := []rune(sym.Char)
			if len(r) > 0 {
				buffer[i] = conversion.CharSymbol(r[0])
			}
		}
	}
	selections := make([]conversion.Selection, len(req.Selections))
	for i, sel := range req.Selections {
		selections[i] = conversion.Selection{Start: sel.Start, End: sel.End, Phrase: sel.Phrase}
	}
	return conversion.Composition{
		Buffer:     buffer,
		Selections: selections,
		Breaks:     req.Breaks,
		Glues:      req.Glues,
	}
}

func toWireIntervals(intervals []conversion.Interval) []WireInterval {
	out := make([]WireInterval, len(intervals))
	for i, iv := range intervals {
		out[i] = WireInterval{Start: iv.Start, End: iv.End, IsPhrase: iv.IsPhrase, Phrase: iv.Phrase}
	}
	return out
}

func (s *Server) processConvert(raw map[string]any) error {
	var req ConvertRequest
	if err := decodeRaw(raw, &req); err != nil {
		return s.sendError(idOf(raw), fmt.Sprintf("malformed convert request: %v", err), 400)
	}

	start := time.Now()
	intervals := s.engine.Convert(s.dict, toComposition(req))
	elapsed := time.Since(start)

	return s.sendResponse(&ConvertResponse{
		ID:        req.ID,
		Intervals: toWireIntervals(intervals),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) processConvertNext(raw map[string]any) error {
	var req ConvertNextRequest
	if err := decodeRaw(raw, &req); err != nil {
		return s.sendError(idOf(raw), fmt.Sprintf("malformed convert_next request: %v", err), 400)
	}

	start := time.Now()
	intervals := s.engine.ConvertNext(s.dict, toComposition(req.ConvertRequest), req.N)
	elapsed := time.Since(start)

	return s.sendResponse(&ConvertResponse{
		ID:        req.ID,
		Intervals: toWireIntervals(intervals),
		TimeTaken: elapsed.Microseconds(),
	})
}

func (s *Server) processDictRequest(raw map[string]any, action string) error {
	var req DictRequest
	if err := decodeRaw(raw, &req); err != nil {
		return s.sendError(idOf(raw), fmt.Sprintf("malformed dictionary request: %v", err), 400)
	}

	syllables := make([]zhuyin.Syllable, len(req.Syllable))
	for i, w := range req.Syllable {
		syllables[i] = w.toSyllable()
	}

	switch action {
	case "add":
		if err := s.dict.AddPhrase(syllables, dictionary.NewPhrase(req.Text, req.Freq)); err != nil {
			return s.sendResponse(&DictResponse{ID: req.ID, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "ok"})

	case "update":
		if err := s.dict.UpdatePhrase(syllables, dictionary.NewPhrase(req.Text, req.Freq), req.Freq, req.LastUsed); err != nil {
			return s.sendResponse(&DictResponse{ID: req.ID, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "ok"})

	case "remove":
		if err := s.dict.RemovePhrase(syllables, req.Text); err != nil {
			return s.sendResponse(&DictResponse{ID: req.ID, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "ok"})

	case "flush":
		if err := s.dict.Flush(); err != nil {
			return s.sendResponse(&DictResponse{ID: req.ID, Status: "error", Error: err.Error()})
		}
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "ok"})

	case "info":
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "ok", Entries: len(s.dict.Entries())})

	default:
		return s.sendResponse(&DictResponse{ID: req.ID, Status: "error", Error: fmt.Sprintf("unknown action: %s", action)})
	}
}

func idOf(raw map[string]any) string {
	if id, ok := raw["id"].(string); ok {
		return id
	}
	return ""
}

// sendResponse encodes and writes one MessagePack response to stdout
// atomically, buffering the encode before the write.
func (s *Server) sendResponse(response any) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(response); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(&ErrorResponse{ID: id, Error: message, Code: code})
}
