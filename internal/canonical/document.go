// Package canonical defines the canonical document representation that all
// fingerprinting and comparison operates on. Serialization follows RFC 8785
// (JSON Canonicalization Scheme) so identical content always produces
// identical bytes regardless of key order or incidental whitespace.
package canonical

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/gowebpki/jcs"

	dErrors "docseal/pkg/domain-errors"
)

// Document is a mapping of field name to scalar or nested value, representing
// sealed content exactly as hashed. Ordering is immaterial: canonicalization
// sorts keys, so two documents with the same fields and values are the same
// document.
type Document map[string]any

// Parse builds a Document from raw JSON bytes.
//
// Errors: CodeValidation when the bytes are not a JSON object.
func Parse(raw []byte) (Document, error) {
	var doc Document
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeValidation, "document is not a JSON object", err)
	}
	return doc, nil
}

// Marshal returns the RFC 8785 canonical JSON bytes of the document.
// Key ordering and number formatting are fully determined by the content,
// never by the execution environment.
func Marshal(doc Document) ([]byte, error) {
	intermediate, err := json.Marshal(doc)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeValidation, "document cannot be serialized", err)
	}
	canonical, err := jcs.Transform(intermediate)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeValidation, "document cannot be canonicalized", err)
	}
	return canonical, nil
}

// Flatten maps every leaf field to its dot-separated path. Nested objects are
// descended into; arrays and scalars are leaves. The resulting paths are the
// unit of comparison for the diff engine.
func Flatten(doc Document) map[string]any {
	leaves := make(map[string]any)
	flattenInto(leaves, "", doc)
	return leaves
}

func flattenInto(leaves map[string]any, prefix string, value map[string]any) {
	for key, v := range value {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flattenInto(leaves, path, nested)
			continue
		}
		leaves[path] = v
	}
}

// Paths returns the sorted union of leaf paths across the given documents.
// Sorting keeps change reporting deterministic.
func Paths(flattened ...map[string]any) []string {
	seen := make(map[string]struct{})
	for _, doc := range flattened {
		for path := range doc {
			seen[path] = struct{}{}
		}
	}
	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ValueEqual compares two leaf values by their canonical JSON encoding, so
// 1 and 1.0, or equal arrays, compare the way the fingerprint sees them.
func ValueEqual(a, b any) bool {
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	ca, errA := jcs.Transform(ab)
	cb, errB := jcs.Transform(bb)
	if errA != nil || errB != nil {
		return bytes.Equal(ab, bb)
	}
	return bytes.Equal(ca, cb)
}
