package zonedata

import (
	"fmt"

	"github.com/miekg/dns"
)

// RdataSet holds all rdata for one (owner, type) pair plus any RRSIGs covering that
// type, chained to the owning node's next type via an intrusive link. The rdata is
// kept packed in wire format: one compact allocation per record across millions of
// names, unpacked into a fresh dns.RR only when a reader asks. The unpack-per-read
// also means callers can never mutate the stored copy, the property the old
// dns.Copy-on-lookup approach paid for on every hit.
type RdataSet struct {
	next   *RdataSet
	rrType uint16
	ttl    uint32
	rdata  [][]byte // Packed wire-format RRs in insertion order
	sigs   [][]byte // Packed RRSIG RRs covering rrType
}

func newRdataSet(rrType uint16, ttl uint32) *RdataSet {
	return &RdataSet{rrType: rrType, ttl: ttl}
}

// Next returns the following RdataSet in the owning node's type chain, or nil.
func (t *RdataSet) Next() *RdataSet {
	return t.next
}

// Type returns the rr type code of the set.
func (t *RdataSet) Type() uint16 {
	return t.rrType
}

// TTL returns the TTL shared by every record in the set.
func (t *RdataSet) TTL() uint32 {
	return t.ttl
}

// Len returns the number of ordinary rdata entries.
func (t *RdataSet) Len() int {
	return len(t.rdata)
}

// SigLen returns the number of attached RRSIG records.
func (t *RdataSet) SigLen() int {
	return len(t.sigs)
}

// SigOnly reports whether this set is a signature-only placeholder: RRSIGs were added
// for a type which has no base rdata. Placeholders are never answers to ordinary type
// queries; see Node.FindSet.
func (t *RdataSet) SigOnly() bool {
	return len(t.rdata) == 0
}

// RRs unpacks and returns the ordinary records. Every call re-derives the slice from
// the packed form, so each caller gets private copies in insertion order and the set
// itself is never mutated. Records that fail to unpack are skipped; they can only
// exist if the store itself is corrupt.
func (t *RdataSet) RRs() []dns.RR {
	return unpackAll(t.rdata)
}

// Sigs unpacks and returns the attached RRSIG records, if any. Same copy semantics
// as RRs.
func (t *RdataSet) Sigs() []dns.RR {
	return unpackAll(t.sigs)
}

func unpackAll(packed [][]byte) []dns.RR {
	if len(packed) == 0 {
		return nil
	}
	ar := make([]dns.RR, 0, len(packed))
	for _, b := range packed {
		rr, _, err := dns.UnpackRR(b, 0)
		if err != nil {
			continue
		}
		ar = append(ar, rr)
	}

	return ar
}

// packRR converts an RR to its uncompressed wire form. The RR's header must already
// be normalized (canonical owner, set TTL, zone class) by the caller.
func packRR(rr dns.RR) ([]byte, error) {
	buf := make([]byte, dns.Len(rr))
	off, err := dns.PackRR(rr, buf, 0, nil, false)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", rr.Header().Name, err)
	}

	return buf[:off:off], nil
}
