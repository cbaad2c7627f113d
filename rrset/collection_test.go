package rrset

import (
	"testing"

	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/zonedata"
)

func newRR(t *testing.T, s string) dns.RR {
	rr, err := dns.NewRR(s)
	if err != nil {
		t.Fatal("Setup error with", s, err)
	}

	return rr
}

func buildZone(t *testing.T, origin string, rrs ...string) *zonedata.ZoneData {
	t.Helper()
	b := zonedata.NewBuilder(origin, dns.ClassINET)
	for _, s := range rrs {
		if _, err := b.AddRR(newRR(t, s)); err != nil {
			t.Fatal("Setup AddRR failed", s, err)
		}
	}
	zd, err := b.Build()
	if err != nil {
		t.Fatal("Setup Build failed", err)
	}

	return zd
}

func TestCollectionFind(t *testing.T) {
	zd := buildZone(t, "example.com.",
		"example.com. 300 IN SOA ns1.example.com. hostmaster.example.com. 1 7200 3600 604800 300",
		"www.example.com. 300 IN A 192.0.2.1")
	defer zd.Release()
	c := NewCollection(zd)

	if c.Class() != dns.ClassINET {
		t.Error("Wrong collection class", c.Class())
	}

	v := c.Find("www.example.com.", dns.ClassINET, dns.TypeA)
	if v == nil {
		t.Fatal("Expected a view for www/IN/A")
	}
	if v.Name() != "www.example.com." || v.Class() != dns.ClassINET ||
		v.Type() != dns.TypeA || v.TTL() != 300 || v.Len() != 1 {
		t.Error("Wrong view shape", v.Name(), v.Class(), v.Type(), v.TTL(), v.Len())
	}
	rrs := v.RRs()
	if len(rrs) != 1 || rrs[0].(*dns.A).A.String() != "192.0.2.1" {
		t.Error("Wrong rdata", rrs)
	}

	testCases := []struct {
		qName  string
		qClass uint16
		qType  uint16
	}{
		{"www.example.com.", dns.ClassINET, dns.TypeMX},   // Node exists, type absent
		{"nothere.example.com.", dns.ClassINET, dns.TypeA}, // Name absent
		{"www.example.com.", dns.ClassCHAOS, dns.TypeA},   // Class mismatch
		{"example.org.", dns.ClassINET, dns.TypeA},        // Out of zone
		{"example.com.", dns.ClassINET, dns.TypeMX},       // Apex, type absent
	}
	for ix, tc := range testCases {
		if got := c.Find(tc.qName, tc.qClass, tc.qType); got != nil {
			t.Error(ix, "Expected nil view for", tc.qName, "got", got)
		}
	}

	// The apex cases above both return nil from the collection, but the tree must
	// still distinguish them for the resolution layer's wildcard logic.
	if res, _ := zd.Tree().Find("example.com."); res != zonedata.ExactMatch {
		t.Error("Apex must be ExactMatch even for an absent type", res)
	}
	if res, _ := zd.Tree().Find("nothere.example.com."); res != zonedata.PartialMatch {
		t.Error("Absent name should be PartialMatch at the tree level", res)
	}
}

// `a\.example.com.` is the single label "a.example" under com. - it merely looks
// like a descendant of example.com. in presentation form. Membership must be judged
// label-wise so a foreign name never resolves against this zone.
func TestCollectionEscapedDot(t *testing.T) {
	zd := buildZone(t, "example.com.",
		"example.com. 300 IN SOA ns1.example.com. hostmaster.example.com. 1 7200 3600 604800 300")
	defer zd.Release()
	c := NewCollection(zd)

	if v := c.Find(`a\.example.com.`, dns.ClassINET, dns.TypeSOA); v != nil {
		t.Error("Out-of-zone escaped-dot name must find nothing, got", v)
	}
	if res, _ := zd.Tree().Find(`a\.example.com.`); res != zonedata.NotFound {
		t.Error("Out-of-zone escaped-dot name should be NotFound, got", res)
	}
}

func TestCollectionNoSynthesis(t *testing.T) {
	zd := buildZone(t, "example.com.",
		"*.wild.example.com. 60 IN TXT \"synthesized\"")
	defer zd.Release()
	c := NewCollection(zd)

	// The collection never performs wildcard synthesis; only the literal owner
	// matches.
	if v := c.Find("host.wild.example.com.", dns.ClassINET, dns.TypeTXT); v != nil {
		t.Error("Collection must not synthesize wildcard answers", v)
	}
	if v := c.Find("*.wild.example.com.", dns.ClassINET, dns.TypeTXT); v == nil {
		t.Error("Literal wildcard owner must match exactly")
	}
}

func TestCollectionPlaceholderInvisible(t *testing.T) {
	sigTXT := "www.example.com. 300 IN RRSIG TXT 13 3 300 20310101000000 20260101000000 12345 example.com. dGhpcyBpcyBub3QgYSByZWFsIHNpZw=="

	b := zonedata.NewBuilder("example.com.", dns.ClassINET)
	if _, err := b.AddRR(newRR(t, "www.example.com. 300 IN A 192.0.2.1")); err != nil {
		t.Fatal("Setup failed", err)
	}
	if _, err := b.AddRRsig(newRR(t, sigTXT).(*dns.RRSIG)); err != nil {
		t.Fatal("Setup failed", err)
	}
	zd, err := b.Build()
	if err != nil {
		t.Fatal("Setup failed", err)
	}
	defer zd.Release()

	c := NewCollection(zd)
	if v := c.Find("www.example.com.", dns.ClassINET, dns.TypeTXT); v != nil {
		t.Error("Signature-only placeholder must not answer ordinary queries", v)
	}
	if v := c.Find("www.example.com.", dns.ClassINET, dns.TypeA); v == nil {
		t.Error("Real set alongside a placeholder must still answer")
	}
}
