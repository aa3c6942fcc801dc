package dictionary

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanzikit/chewing/internal/logger"
)

// TrieFileExtension is the conventional extension for a chewing trie
// dictionary file; ValidateTrieFile does not require it, but tooling
// that generates new dictionaries should use it.
const TrieFileExtension = ".trie"

// ValidateTrieFile checks that filename looks like a chewing trie file
// without fully loading it: readable, non-empty, and carrying the
// expected magic header.
func ValidateTrieFile(filename string) error {
	log := logger.Default("dictionary")

	info, err := os.Stat(filename)
	if err != nil {
		log.Errorf("failed to stat file %s: %v", filename, err)
		return err
	}
	if info.Size() < int64(len(fileMagic)) {
		log.Errorf("file %s is too small (%d bytes) to be a trie dictionary", filename, info.Size())
		return errors.New("dictionary: file too small")
	}

	f, err := os.Open(filename)
	if err != nil {
		log.Errorf("failed to open file %s: %v", filename, err)
		return err
	}
	defer f.Close()

	if _, err := readHeader(bufio.NewReader(f)); err != nil {
		log.Errorf("file %s does not look like a trie dictionary: %v", filename, err)
		return err
	}
	log.Debugf("trie file %s validated", filename)
	return nil
}

// LooksLikeTrieFile is a cheap extension-only check, used before the
// more expensive ValidateTrieFile header check.
func LooksLikeTrieFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), TrieFileExtension)
}
