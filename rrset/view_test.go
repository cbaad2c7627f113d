package rrset

import (
	"strings"
	"testing"

	"github.com/miekg/dns"
)

func TestViewEqual(t *testing.T) {
	zd := buildZone(t, "example.com.",
		"www.example.com. 300 IN A 192.0.2.1",
		"mail.example.com. 300 IN A 192.0.2.2")
	defer zd.Release()
	c := NewCollection(zd)

	v1 := c.Find("www.example.com.", dns.ClassINET, dns.TypeA)
	v2 := c.Find("www.example.com.", dns.ClassINET, dns.TypeA)
	v3 := c.Find("mail.example.com.", dns.ClassINET, dns.TypeA)
	if v1 == v2 {
		t.Fatal("Setup expected independently constructed views")
	}
	if !v1.Equal(v2) {
		t.Error("Independent views over the same (node, set) should be equal")
	}
	if v1.Equal(v3) {
		t.Error("Views over different nodes should not be equal")
	}
	var nilView *View
	if v1.Equal(nilView) || !nilView.Equal(nilView) {
		t.Error("Nil view equality wrong")
	}
}

func TestViewRestartable(t *testing.T) {
	zd := buildZone(t, "example.com.",
		"www.example.com. 300 IN A 192.0.2.1",
		"www.example.com. 300 IN A 192.0.2.2")
	defer zd.Release()
	v := NewCollection(zd).Find("www.example.com.", dns.ClassINET, dns.TypeA)
	if v == nil {
		t.Fatal("Setup find failed")
	}

	// Two passes over the rdata yield the same sequence; mutating the first pass
	// cannot leak into the second.
	first := v.RRs()
	first[0].Header().Ttl = 1
	second := v.RRs()
	if len(first) != 2 || len(second) != 2 {
		t.Fatal("Wrong lengths", len(first), len(second))
	}
	for ix := range second {
		if second[ix].Header().Ttl != 300 {
			t.Error("Second pass saw first pass mutation at", ix)
		}
		if second[ix].(*dns.A).A.String() != first[ix].(*dns.A).A.String() {
			t.Error("Passes disagree at", ix)
		}
	}
}

func TestViewSignatures(t *testing.T) {
	sigA := "www.example.com. 300 IN RRSIG A 13 3 300 20310101000000 20260101000000 12345 example.com. dGhpcyBpcyBub3QgYSByZWFsIHNpZw=="

	zd := buildZone(t, "example.com.",
		"www.example.com. 300 IN A 192.0.2.1",
		sigA)
	defer zd.Release()
	c := NewCollection(zd)

	v := c.Find("www.example.com.", dns.ClassINET, dns.TypeA)
	if v == nil {
		t.Fatal("Setup find failed")
	}
	if v.SigLen() != 1 || len(v.Sigs()) != 1 {
		t.Error("View should expose the co-located signature", v.SigLen())
	}

	// A view built without signature exposure reports none even though the set
	// carries one.
	bare := NewView(v.Class(), v.node, v.set, false)
	if bare.SigLen() != 0 || bare.Sigs() != nil {
		t.Error("Unsigned view leaked signatures", bare.SigLen())
	}
	if !bare.Equal(v) {
		t.Error("Signature exposure should not affect view equality")
	}
}

func TestViewString(t *testing.T) {
	zd := buildZone(t, "example.com.", "www.example.com. 300 IN A 192.0.2.1")
	defer zd.Release()
	v := NewCollection(zd).Find("www.example.com.", dns.ClassINET, dns.TypeA)

	got := v.String()
	if !strings.Contains(got, "www.example.com.") || !strings.Contains(got, "192.0.2.1") {
		t.Error("String missing owner or rdata:", got)
	}
}
