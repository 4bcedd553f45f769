package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Header holds deck-level metadata.
type Header struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description,omitempty"`
	Mode        string `toml:"mode" json:"mode,omitempty"` // preferred study mode; empty means the caller decides
}

// Document is the on-disk shape of a deck file.
type Document struct {
	Deck  Header    `toml:"deck" json:"deck"`
	Cards []RawCard `toml:"cards" json:"cards"`
}

// File is a loaded deck: its metadata, the validated pool, and any cards
// that were skipped during validation.
type File struct {
	Path        string
	Name        string
	Description string
	Mode        string
	Pool        *Pool
	Skipped     []SkippedCard
}

// LoadFile reads a deck from a .toml or .json file.
func LoadFile(path string) (*File, error) {
	doc, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}

	pool, skipped := NewPool(doc.Cards)
	name := doc.Deck.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &File{
		Path:        path,
		Name:        name,
		Description: doc.Deck.Description,
		Mode:        doc.Deck.Mode,
		Pool:        pool,
		Skipped:     skipped,
	}, nil
}

// ReadDocument parses a deck file without validating individual cards.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML(data)
	case ".json":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported deck format %q (want .toml or .json)", filepath.Ext(path))
	}
}

func decodeTOML(data []byte) (*Document, error) {
	var doc Document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("parse deck toml: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse deck toml: unknown key %q", undecoded[0].String())
	}
	return &doc, nil
}

func decodeJSON(data []byte) (*Document, error) {
	if err := validateJSON(data); err != nil {
		return nil, err
	}
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse deck json: %w", err)
	}
	return &doc, nil
}
