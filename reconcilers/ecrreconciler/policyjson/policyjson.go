/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package policyjson compares policy documents by deep structural equality
// of their parsed JSON.
//
// Equality is defined over the decoded value trees, not the document text:
// object key order, insignificant whitespace, and numeric formatting never
// distinguish two documents. Numbers decode to float64, so 1 and 1.0 (and
// 1e0) compare equal. This matches how the registry normalizes stored
// policies and keeps formatting-only edits to local documents from
// triggering writes.
package policyjson

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// Equal reports whether a and b are structurally equal JSON documents.
// Either document failing to parse is an error, not inequality.
func Equal(a, b []byte) (bool, error) {
	av, err := parse(a)
	if err != nil {
		return false, err
	}
	bv, err := parse(b)
	if err != nil {
		return false, err
	}
	return cmp.Equal(av, bv), nil
}

// Validate reports whether doc parses as JSON.
func Validate(doc []byte) error {
	_, err := parse(doc)
	return err
}

func parse(doc []byte) (any, error) {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return v, nil
}
