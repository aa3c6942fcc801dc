package dictionary

import "errors"

// ErrDuplicatePhrase is returned by AddPhrase when the merged dictionary
// view already has a phrase with the same text under the same syllables.
var ErrDuplicatePhrase = errors.New("dictionary: phrase already exists for these syllables")

// OpenError wraps the I/O failure surfaced when opening a TrieBuf.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return "dictionary: failed to open " + e.Path + ": " + e.Err.Error()
}

func (e *OpenError) Unwrap() error { return e.Err }

// UpdateError wraps a failed mutation: a duplicate AddPhrase, or a build/
// I/O failure during Flush. UpdatePhrase and RemovePhrase never fail.
type UpdateError struct {
	Op  string
	Err error
}

func (e *UpdateError) Error() string {
	if e.Err == nil {
		return "dictionary: " + e.Op + " failed"
	}
	return "dictionary: " + e.Op + " failed: " + e.Err.Error()
}

func (e *UpdateError) Unwrap() error { return e.Err }
