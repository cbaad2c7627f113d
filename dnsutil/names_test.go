package dnsutil

import (
	"strings"
	"testing"
)

func TestChompCanonicalName(t *testing.T) {
	testCases := []struct{ in, expect string }{
		{"Example.Com.", "example.com"},
		{"example.com", "example.com"},
		{".", ""},
		{"", ""},
	}
	for ix, tc := range testCases {
		if got := ChompCanonicalName(tc.in); got != tc.expect {
			t.Error(ix, "Got", got, "Expected", tc.expect)
		}
	}
}

func TestLabels(t *testing.T) {
	got := Labels("www.Example.COM")
	if strings.Join(got, "/") != "www/example/com" {
		t.Error("Labels wrong", got)
	}
	if Labels(".") != nil {
		t.Error("Root should have no labels")
	}
}

func TestInZone(t *testing.T) {
	testCases := []struct {
		qName, origin string
		expect        bool
	}{
		{"example.com.", "example.com.", true},
		{"www.example.com.", "Example.Com.", true},
		{"a.b.c.example.com.", "example.com", true},
		{"example.com.", "www.example.com.", false},
		{"anexample.com.", "example.com.", false}, // Suffix but not on a label boundary
		{"example.org.", "example.com.", false},
		{"anything.at.all.", ".", true},

		// An escaped dot is part of its label: `a\.example` is one label under
		// com., not two labels ending in example.com.
		{`a\.example.com.`, "example.com.", false},
		{`a\.example.com.`, "com.", true},
		{`b.a\.example.com.`, `a\.example.com.`, true},
	}
	for ix, tc := range testCases {
		if got := InZone(tc.qName, tc.origin); got != tc.expect {
			t.Error(ix, tc.qName, "in", tc.origin, "got", got)
		}
	}
}

func TestSubLabels(t *testing.T) {
	sub, ok := SubLabels("a.B.example.com.", "example.COM.")
	if !ok || strings.Join(sub, "/") != "a/b" {
		t.Error("SubLabels wrong", sub, ok)
	}

	sub, ok = SubLabels("example.com.", "example.com.")
	if !ok || len(sub) != 0 {
		t.Error("Origin should return empty sub labels", sub, ok)
	}

	_, ok = SubLabels("example.org.", "example.com.")
	if ok {
		t.Error("Out of zone name should not return ok")
	}

	_, ok = SubLabels(`a\.example.com.`, "example.com.")
	if ok {
		t.Error("Escaped-dot label should not be split across the origin boundary")
	}

	sub, ok = SubLabels(`a\.example.com.`, "com.")
	if !ok || strings.Join(sub, "/") != `a\.example` {
		t.Error("Escaped-dot label should survive as a single label", sub, ok)
	}
}
