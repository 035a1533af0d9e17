package models

import (
	"bytes"
	"encoding/json"
)

// Document is the document-store projection of a schema type: a plain
// JSON-compatible nested mapping. Timestamps are ISO-8601 strings, enums
// their underlying values, nested models plain mappings.
type Document = map[string]interface{}

// toDocument lowers v to its Document form through its JSON encoding.
// When dropNulls is set, any key whose lowered value is null is omitted,
// at every nesting level.
func toDocument(v interface{}, dropNulls bool) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if dropNulls {
		stripNulls(doc)
	}
	return doc, nil
}

func stripNulls(v interface{}) {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, val := range x {
			if val == nil {
				delete(x, k)
				continue
			}
			stripNulls(val)
		}
	case []interface{}:
		for _, val := range x {
			stripNulls(val)
		}
	}
}

// decodeStrict decodes JSON into v, rejecting unknown keys. Every schema
// type in this package is a closed shape.
func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// fromDocument reconstructs a schema type from its stored Document form.
func fromDocument(doc Document, v interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return decodeStrict(raw, v)
}

func strPtr(s string) *string { return &s }
