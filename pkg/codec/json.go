package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"src.tyed.sh/pkg/term"
)

func marshalJSON(s term.Scope) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(toEntryRecord(e))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// unmarshalJSON decodes the top-level object token by token, so that the
// order of the entries is kept.
func unmarshalJSON(data []byte) (term.Scope, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return term.Scope{}, err
	}
	var entries []term.Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return term.Scope{}, err
		}
		name, _ := tok.(string)
		var r entryRecord
		if err := dec.Decode(&r); err != nil {
			return term.Scope{}, fmt.Errorf("entry %s: %w", name, err)
		}
		e, err := fromEntryRecord(name, r)
		if err != nil {
			return term.Scope{}, err
		}
		entries = append(entries, e)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return term.Scope{}, err
	}
	return term.NewScope(entries...)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}
