package list

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrFormat is wrapped by every decode failure so callers can tell a
// malformed document apart from an I/O error.
var ErrFormat = errors.New("malformed item list")

// document is the top-level shape of an items file.
type document struct {
	Items []Item `yaml:"items"`
}

// Decode parses an items document. Unknown fields, unknown enum tags and
// missing labels are all rejected; no partial list is ever returned.
func Decode(data []byte) ([]Item, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	for i, it := range doc.Items {
		if it.Label == "" {
			return nil, fmt.Errorf("%w: item %d has an empty label", ErrFormat, i)
		}
	}
	return doc.Items, nil
}

// Encode serializes items back to the on-disk document format. Encode and
// Decode round-trip: Decode(Encode(items)) yields an equal list.
func Encode(items []Item) ([]byte, error) {
	data, err := yaml.Marshal(document{Items: items})
	if err != nil {
		return nil, fmt.Errorf("encoding item list: %w", err)
	}
	return data, nil
}
