/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package policyjson

import "testing"

// TestEqualStructural verifies that formatting-only differences never make
// two documents unequal, and that genuine content differences always do.
func TestEqualStructural(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{{
		name: "identical",
		a:    `{"rules":[]}`,
		b:    `{"rules":[]}`,
		want: true,
	}, {
		name: "whitespace",
		a:    `{"rules":[{"a":1}]}`,
		b:    "{\n  \"rules\": [ {\"a\": 1} ]\n}",
		want: true,
	}, {
		name: "key order",
		a:    `{"a":1,"b":2}`,
		b:    `{"b":2,"a":1}`,
		want: true,
	}, {
		name: "numeric formatting",
		a:    `{"n":1}`,
		b:    `{"n":1.0}`,
		want: true,
	}, {
		name: "numeric exponent",
		a:    `{"n":100}`,
		b:    `{"n":1e2}`,
		want: true,
	}, {
		name: "different value",
		a:    `{"n":1}`,
		b:    `{"n":2}`,
		want: false,
	}, {
		name: "different numeric value",
		a:    `{"n":1}`,
		b:    `{"n":1.5}`,
		want: false,
	}, {
		name: "missing key",
		a:    `{"a":1,"b":2}`,
		b:    `{"a":1}`,
		want: false,
	}, {
		name: "array order matters",
		a:    `{"rules":[1,2]}`,
		b:    `{"rules":[2,1]}`,
		want: false,
	}, {
		name: "nested reorder",
		a:    `{"rules":[{"selection":{"tagStatus":"untagged","countType":"imageCountMoreThan"}}]}`,
		b:    `{"rules":[{"selection":{"countType":"imageCountMoreThan","tagStatus":"untagged"}}]}`,
		want: true,
	}, {
		name: "null vs absent",
		a:    `{"a":null}`,
		b:    `{}`,
		want: false,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Equal([]byte(test.a), []byte(test.b))
			if err != nil {
				t.Fatalf("Equal error: got = %v, wanted = nil", err)
			}
			if got != test.want {
				t.Errorf("Equal(%s, %s): got = %t, wanted = %t", test.a, test.b, got, test.want)
			}
		})
	}
}

// TestEqualParseFailure verifies that malformed JSON on either side is an
// error rather than inequality.
func TestEqualParseFailure(t *testing.T) {
	if _, err := Equal([]byte(`{`), []byte(`{}`)); err == nil {
		t.Error("error: got = nil, wanted = non-nil")
	}
	if _, err := Equal([]byte(`{}`), []byte(`not json`)); err == nil {
		t.Error("error: got = nil, wanted = non-nil")
	}
}

// TestValidate verifies basic document validation.
func TestValidate(t *testing.T) {
	if err := Validate([]byte(`{"rules":[]}`)); err != nil {
		t.Errorf("Validate error: got = %v, wanted = nil", err)
	}
	if err := Validate([]byte(`{"rules":`)); err == nil {
		t.Error("error: got = nil, wanted = non-nil")
	}
}
