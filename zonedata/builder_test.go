package zonedata

import (
	"errors"
	"testing"

	"github.com/miekg/dns"
)

func TestBuilderAddRR(t *testing.T) {
	b := NewBuilder("example.com.", dns.ClassINET)

	added, err := b.AddRR(newRR(t, "www.example.com. 300 IN A 192.0.2.1"))
	if err != nil || !added {
		t.Error("First AddRR should add", added, err)
	}
	added, err = b.AddRR(newRR(t, "WWW.example.com. 600 IN A 192.0.2.1"))
	if err != nil {
		t.Error("Duplicate AddRR should not error", err)
	}
	if added {
		t.Error("Duplicate rdata should be skipped")
	}
	added, err = b.AddRR(newRR(t, "www.example.com. 300 IN A 192.0.2.2"))
	if err != nil || !added {
		t.Error("Distinct rdata should add", added, err)
	}

	_, err = b.AddRR(newRR(t, "bind.version. CH TXT \"10.1\""))
	if !errors.Is(err, ErrClassMismatch) {
		t.Error("Class mismatch should be a load violation, got", err)
	}
	_, err = b.AddRR(newRR(t, "www.example.org. 300 IN A 192.0.2.1"))
	if !errors.Is(err, ErrOutOfZone) {
		t.Error("Out of zone RR should be a load violation, got", err)
	}

	zd, err := b.Build()
	if err != nil {
		t.Fatal("Build failed", err)
	}
	if zd.Count() != 2 {
		t.Error("Count should be two, not", zd.Count())
	}
	if zd.Origin() != "example.com." || zd.Class() != dns.ClassINET {
		t.Error("Wrong zone metadata", zd.Origin(), zd.Class())
	}
	if !zd.Tree().Published() {
		t.Error("Build should publish the tree")
	}

	// The builder is spent
	if _, err = b.AddRR(newRR(t, "www.example.com. 300 IN A 192.0.2.3")); !errors.Is(err, ErrNotLoading) {
		t.Error("AddRR after Build should fail with ErrNotLoading, got", err)
	}
	if _, err = b.Build(); !errors.Is(err, ErrNotLoading) {
		t.Error("Second Build should fail, got", err)
	}
}

func TestBuilderAddRdata(t *testing.T) {
	b := NewBuilder("example.com.", dns.ClassINET)
	node, _, err := b.InsertName("mail.example.com.")
	if err != nil {
		t.Fatal("InsertName failed", err)
	}

	err = b.AddRdata(node, dns.TypeA, 120)
	if !errors.Is(err, ErrEmptyRdataSet) {
		t.Error("Empty rdata should be rejected, got", err)
	}

	err = b.AddRdata(node, dns.TypeA, 120,
		newRR(t, "mail.example.com. 300 IN A 192.0.2.10"),
		newRR(t, "mail.example.com. 300 IN A 192.0.2.11"))
	if err != nil {
		t.Fatal("AddRdata failed", err)
	}

	err = b.AddRdata(node, dns.TypeA, 120, newRR(t, "mail.example.com. 300 IN A 192.0.2.12"))
	if !errors.Is(err, ErrDuplicateType) {
		t.Error("Second set of the same type should be rejected, got", err)
	}

	err = b.AddRdata(node, dns.TypeMX, 120, newRR(t, "mail.example.com. 300 IN A 192.0.2.13"))
	if err == nil {
		t.Error("Type mismatch between set and rdata should be rejected")
	}

	// The bulk form enforces the zone class just as AddRR does
	err = b.AddRdata(node, dns.TypeTXT, 120, newRR(t, "mail.example.com. 300 CH TXT \"chaos\""))
	if !errors.Is(err, ErrClassMismatch) {
		t.Error("Class mismatch should be a load violation, got", err)
	}

	zd, err := b.Build()
	if err != nil {
		t.Fatal("Build failed", err)
	}
	_, found := zd.Tree().Find("mail.example.com.")
	set := found.FindSet(dns.TypeA, false)
	if set == nil || set.Len() != 2 || set.TTL() != 120 {
		t.Error("Wrong set after AddRdata", set)
	}
}

func TestBuilderSigBeforeBase(t *testing.T) {
	sigA := "ftp.example.com. 300 IN RRSIG A 13 3 300 20310101000000 20260101000000 12345 example.com. dGhpcyBpcyBub3QgYSByZWFsIHNpZw=="

	b := NewBuilder("example.com.", dns.ClassINET)
	if _, err := b.AddRRsig(newRR(t, sigA).(*dns.RRSIG)); err != nil {
		t.Fatal("AddRRsig failed", err)
	}
	// Base rdata arriving after the signature lands on the same set
	if _, err := b.AddRR(newRR(t, "ftp.example.com. 600 IN A 192.0.2.20")); err != nil {
		t.Fatal("AddRR after sig failed", err)
	}

	zd, _ := b.Build()
	_, node := zd.Tree().Find("ftp.example.com.")
	set := node.FindSet(dns.TypeA, false)
	if set == nil {
		t.Fatal("Set not visible after base rdata arrived")
	}
	if set.Len() != 1 || set.SigLen() != 1 {
		t.Error("Set should hold the base rdata and the earlier signature",
			set.Len(), set.SigLen())
	}
	if set.TTL() != 600 {
		t.Error("Placeholder should take its TTL from the first real rdata", set.TTL())
	}
}

func TestBuilderDuplicateSig(t *testing.T) {
	sigA := "ftp.example.com. 300 IN RRSIG A 13 3 300 20310101000000 20260101000000 12345 example.com. dGhpcyBpcyBub3QgYSByZWFsIHNpZw=="

	b := NewBuilder("example.com.", dns.ClassINET)
	if _, err := b.AddRR(newRR(t, "ftp.example.com. 300 IN A 192.0.2.20")); err != nil {
		t.Fatal("Setup AddRR failed", err)
	}
	added, err := b.AddRRsig(newRR(t, sigA).(*dns.RRSIG))
	if err != nil || !added {
		t.Fatal("First AddRRsig should add", added, err)
	}

	// Master files repeat records; a repeated signature is skipped like rdata is
	added, err = b.AddRRsig(newRR(t, sigA).(*dns.RRSIG))
	if err != nil {
		t.Error("Duplicate AddRRsig should not error", err)
	}
	if added {
		t.Error("Duplicate signature should be skipped")
	}
	if added, err = b.AddRR(newRR(t, sigA)); err != nil || added {
		t.Error("Duplicate signature via AddRR should be skipped too", added, err)
	}

	zd, _ := b.Build()
	_, node := zd.Tree().Find("ftp.example.com.")
	set := node.FindSet(dns.TypeA, false)
	if set == nil || set.SigLen() != 1 {
		t.Error("Set should hold the signature exactly once", set)
	}
	if zd.Count() != 2 { // The A and one copy of its signature
		t.Error("Skipped duplicates must not inflate the count", zd.Count())
	}
}

func TestBuilderNSEC3(t *testing.T) {
	b := NewBuilder("example.com.", dns.ClassINET)
	b.SetNSEC3Params(NSEC3Params{Algorithm: 1, Iterations: 10, Salt: []byte{0xab, 0xcd}})
	b.AddRR(newRR(t, "example.com. 300 IN A 192.0.2.1"))
	zd, _ := b.Build()

	p := zd.NSEC3()
	if p == nil || p.Algorithm != 1 || p.Iterations != 10 || len(p.Salt) != 2 {
		t.Error("NSEC3 params lost", p)
	}

	b2 := NewBuilder("example.org.", dns.ClassINET)
	b2.AddRR(newRR(t, "example.org. 300 IN A 192.0.2.1"))
	zd2, _ := b2.Build()
	if zd2.NSEC3() != nil {
		t.Error("Unsigned zone should have nil NSEC3 params")
	}
}
