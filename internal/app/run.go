package app

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads and parses the input document from r (spec.md §6). A
// malformed document is an input format error, fatal upstream of the core
// (spec.md §7).
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("input error: %w", err)
	}
	return doc, nil
}

// Run executes the full batch pipeline: decode, build, answer every
// stat_requests entry in input order, and return the encoded output array
// (spec.md §6). The default stdin/stdout CLI mode uses it; the "serve"
// HTTP mode calls Decode and Build directly and answers queries over HTTP.
func Run(r io.Reader) ([]byte, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	core, err := Build(doc)
	if err != nil {
		return nil, fmt.Errorf("input error: %w", err)
	}

	queries, err := ParseStatRequests(doc.StatRequests)
	if err != nil {
		return nil, fmt.Errorf("input error: %w", err)
	}

	responses := Answer(core, queries)
	return MarshalResponses(responses)
}
