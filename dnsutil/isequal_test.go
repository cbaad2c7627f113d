package dnsutil

import (
	"testing"

	"github.com/miekg/dns"
)

func newRR(t *testing.T, s string) dns.RR {
	rr, err := dns.NewRR(s)
	if err != nil {
		t.Fatal("Setup error with", s, err)
	}

	return rr
}

func TestRRIsEqual(t *testing.T) {
	testCases := []struct {
		a, b   string
		expect bool
	}{
		{"a.b.c. IN A 1.2.3.4", "A.B.C. IN A 1.2.3.4", true},
		{"a.b.c. 60 IN A 1.2.3.4", "a.b.c. 3600 IN A 1.2.3.4", true}, // TTL ignored
		{"a.b.c. IN A 1.2.3.4", "a.b.c. IN A 1.2.3.5", false},
		{"a.b.c. IN A 1.2.3.4", "a.b.c. IN AAAA ::1", false},
		{"a.b.c. IN A 1.2.3.4", "d.b.c. IN A 1.2.3.4", false},
		{"a.b.c. IN MX 10 Mail.B.C.", "a.b.c. IN MX 10 mail.b.c.", true},
		{"a.b.c. IN MX 10 mail.b.c.", "a.b.c. CH MX 10 mail.b.c.", false},
	}
	for ix, tc := range testCases {
		if got := RRIsEqual(newRR(t, tc.a), newRR(t, tc.b)); got != tc.expect {
			t.Error(ix, "RRIsEqual got", got, "for", tc.a, "vs", tc.b)
		}
	}
}
