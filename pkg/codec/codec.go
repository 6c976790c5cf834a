// Package codec serializes scopes to JSON and YAML.
//
// A scope is an object keyed by entry name, in scope order. Each entry is an
// object with a type and a value term. A term is a record whose "type" field
// names the variant, as in:
//
//	{"type": "pi", "head": "n", "from": {"type": "reference", "identifier": "Nat"}, ...}
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"src.tyed.sh/pkg/term"
)

// Errors returned when decoding.
var (
	ErrUnknownTag    = errors.New("unknown term type")
	ErrMissingField  = errors.New("missing field")
	ErrUnknownFormat = errors.New("unknown format")
)

// Format is a serialization format.
type Format string

// Supported formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat parses the name of a format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf guesses the format of a file from its extension. Files with
// unknown extensions are assumed to be JSON.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Marshal encodes a scope in the given format.
func Marshal(s term.Scope, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return marshalJSON(s)
	case YAML:
		return marshalYAML(s)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Unmarshal decodes a scope in the given format.
func Unmarshal(data []byte, f Format) (term.Scope, error) {
	switch f {
	case JSON:
		return unmarshalJSON(data)
	case YAML:
		return unmarshalYAML(data)
	}
	return term.Scope{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// record is the serialized form of a term.
type record struct {
	Type       string  `json:"type" yaml:"type"`
	Universe   *int    `json:"universe,omitempty" yaml:"universe,omitempty"`
	Identifier *string `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Head       *string `json:"head,omitempty" yaml:"head,omitempty"`
	From       *record `json:"from,omitempty" yaml:"from,omitempty"`
	To         *record `json:"to,omitempty" yaml:"to,omitempty"`
	Body       *record `json:"body,omitempty" yaml:"body,omitempty"`
	Left       *record `json:"left,omitempty" yaml:"left,omitempty"`
	Right      *record `json:"right,omitempty" yaml:"right,omitempty"`
}

// entryRecord is the serialized form of a scope entry.
type entryRecord struct {
	Type  *record `json:"type" yaml:"type"`
	Value *record `json:"value" yaml:"value"`
}

func toEntryRecord(e term.Entry) entryRecord {
	return entryRecord{toRecord(e.Type), toRecord(e.Value)}
}

func toRecord(t term.Term) *record {
	r := &record{Type: term.Kind(t)}
	switch t := t.(type) {
	case term.Type:
		r.Universe = &t.Universe
	case term.Reference:
		r.Identifier = &t.Identifier
	case term.Application:
		r.Left, r.Right = toRecord(t.Left), toRecord(t.Right)
	case term.Pi:
		r.Head, r.From, r.To = &t.Head, toRecord(t.From), toRecord(t.To)
	case term.Lambda:
		r.Head, r.From, r.Body = &t.Head, toRecord(t.From), toRecord(t.Body)
	case term.Let:
		r.Head, r.From = &t.Head, toRecord(t.From)
		r.Left, r.Right = toRecord(t.Left), toRecord(t.Right)
	}
	return r
}

func fromEntryRecord(name string, r entryRecord) (term.Entry, error) {
	typ, err := fromRecord(r.Type)
	if err != nil {
		return term.Entry{}, fmt.Errorf("type of %s: %w", name, err)
	}
	value, err := fromRecord(r.Value)
	if err != nil {
		return term.Entry{}, fmt.Errorf("value of %s: %w", name, err)
	}
	return term.Entry{Name: name, Type: typ, Value: value}, nil
}

// fromRecord decodes a term. A missing term decodes to the empty term.
func fromRecord(r *record) (term.Term, error) {
	if r == nil {
		return term.Empty, nil
	}
	d := decoder{r: r}
	var t term.Term
	switch r.Type {
	case "type":
		t = term.Type{Universe: d.int("universe", r.Universe)}
	case "reference":
		t = term.Reference{Identifier: d.string("identifier", r.Identifier)}
	case "application":
		t = term.Application{Left: d.term("left", r.Left), Right: d.term("right", r.Right)}
	case "pi":
		t = term.Pi{Head: d.string("head", r.Head),
			From: d.term("from", r.From), To: d.term("to", r.To)}
	case "lambda":
		t = term.Lambda{Head: d.string("head", r.Head),
			From: d.term("from", r.From), Body: d.term("body", r.Body)}
	case "let":
		t = term.Let{Head: d.string("head", r.Head), From: d.term("from", r.From),
			Left: d.term("left", r.Left), Right: d.term("right", r.Right)}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, r.Type)
	}
	if d.err != nil {
		return nil, d.err
	}
	return t, nil
}

// decoder reads the fields of a record, keeping the first error.
type decoder struct {
	r   *record
	err error
}

func (d *decoder) missing(field string) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s in %s", ErrMissingField, field, d.r.Type)
	}
}

func (d *decoder) int(field string, p *int) int {
	if p == nil {
		d.missing(field)
		return 0
	}
	if *p < 0 && d.err == nil {
		d.err = fmt.Errorf("negative universe %d", *p)
	}
	return *p
}

func (d *decoder) string(field string, p *string) string {
	if p == nil {
		d.missing(field)
		return ""
	}
	return *p
}

func (d *decoder) term(field string, r *record) term.Term {
	if r == nil {
		d.missing(field)
		return term.Empty
	}
	t, err := fromRecord(r)
	if err != nil {
		if d.err == nil {
			d.err = fmt.Errorf("%s: %w", field, err)
		}
		return term.Empty
	}
	return t
}
