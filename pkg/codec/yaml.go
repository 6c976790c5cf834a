package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"src.tyed.sh/pkg/term"
)

func marshalYAML(s term.Scope) ([]byte, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range s.Entries() {
		var value yaml.Node
		if err := value.Encode(toEntryRecord(e)); err != nil {
			return nil, err
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name}, &value)
	}
	return yaml.Marshal(m)
}

// unmarshalYAML walks the node tree of the document, so that the order of
// the entries is kept.
func unmarshalYAML(data []byte) (term.Scope, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return term.Scope{}, err
	}
	if doc.Kind == 0 {
		// Empty document.
		return term.Scope{}, nil
	}
	m := &doc
	if m.Kind == yaml.DocumentNode && len(m.Content) == 1 {
		m = m.Content[0]
	}
	if m.Kind != yaml.MappingNode {
		return term.Scope{}, fmt.Errorf("line %d: expected a mapping of entries", m.Line)
	}
	var entries []term.Entry
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]
		var r entryRecord
		if err := value.Decode(&r); err != nil {
			return term.Scope{}, fmt.Errorf("entry %s: %w", key.Value, err)
		}
		e, err := fromEntryRecord(key.Value, r)
		if err != nil {
			return term.Scope{}, err
		}
		entries = append(entries, e)
	}
	return term.NewScope(entries...)
}
