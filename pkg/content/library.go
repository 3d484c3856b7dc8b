// Package content provides the text utilities behind the content routes:
// facts, quotes, pickup lines, bible verses, fancy text, background removal
// and URL shortening.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// File names inside the data directory.
const (
	FactsFile  = "facts.json"
	QuotesFile = "quotes.json"
	RizzFile   = "rizz.json"
)

// ErrEmpty is returned when a resource file holds no entries.
var ErrEmpty = errors.New("resource list is empty")

type Quote struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

type factsFile struct {
	Facts []string `json:"facts"`
}

type quotesFile struct {
	Quotes []Quote `json:"quotes"`
}

type rizzFile struct {
	Lines []string `json:"lines"`
}

// ReadFacts reads the fact list from dir. A missing file yields an error
// satisfying errors.Is(err, os.ErrNotExist).
func ReadFacts(dir string) ([]string, error) {
	var f factsFile
	if err := readJSON(filepath.Join(dir, FactsFile), &f); err != nil {
		return nil, err
	}
	return f.Facts, nil
}

// ReadQuotes reads the quote list from dir.
func ReadQuotes(dir string) ([]Quote, error) {
	var f quotesFile
	if err := readJSON(filepath.Join(dir, QuotesFile), &f); err != nil {
		return nil, err
	}
	return f.Quotes, nil
}

// ReadRizz reads the pickup line list from dir.
func ReadRizz(dir string) ([]string, error) {
	var f rizzFile
	if err := readJSON(filepath.Join(dir, RizzFile), &f); err != nil {
		return nil, err
	}
	return f.Lines, nil
}

func readJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Pick returns a uniformly random element of items.
func Pick[T any](items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmpty
	}
	return items[rand.Intn(len(items))], nil
}

// Library holds the static lists loaded once at startup. It is never
// mutated after Load and is safe for concurrent use.
type Library struct {
	facts  []string
	quotes []Quote
	rizz   []string
}

// LoadLibrary reads every list from dir. All files must be present.
func LoadLibrary(dir string) (*Library, error) {
	facts, err := ReadFacts(dir)
	if err != nil {
		return nil, err
	}
	quotes, err := ReadQuotes(dir)
	if err != nil {
		return nil, err
	}
	rizz, err := ReadRizz(dir)
	if err != nil {
		return nil, err
	}
	return NewLibrary(facts, quotes, rizz), nil
}

func NewLibrary(facts []string, quotes []Quote, rizz []string) *Library {
	return &Library{facts: facts, quotes: quotes, rizz: rizz}
}

func (l *Library) Fact(context.Context) (string, error) {
	return Pick(l.facts)
}

func (l *Library) Quote(context.Context) (Quote, error) {
	return Pick(l.quotes)
}

func (l *Library) Rizz(context.Context) (string, error) {
	return Pick(l.rizz)
}
