package rrset

import (
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
	"github.com/markdingo/zonedb/zonedata"
)

// View is an RRset materialized on demand from a (node, rdataset) pair. Construction
// copies nothing: the owner name is derived from the node's tree position, the class
// comes from the collection, and the rdata stays in its packed in-tree form until a
// read call unpacks it. Every read re-derives from the store, so iteration is
// restartable and returned records are private to the caller.
//
// A View is only valid while its generation is: it borrows the node and rdataset and
// must be dropped before the caller releases its ZoneData reference.
type View struct {
	node     zonedata.Node
	set      *zonedata.RdataSet
	class    uint16
	withSigs bool
}

// NewView wraps a (node, rdataset) pair. withSigs controls whether Sigs() exposes
// any RRSIGs co-located on the set; a view for a non-DNSSEC response simply reports
// none.
func NewView(class uint16, node zonedata.Node, set *zonedata.RdataSet, withSigs bool) *View {
	return &View{node: node, set: set, class: class, withSigs: withSigs}
}

// Name returns the canonical owner name of the RRset.
func (t *View) Name() string {
	return t.node.Name()
}

// Class returns the RRset class.
func (t *View) Class() uint16 {
	return t.class
}

// Type returns the RRset type.
func (t *View) Type() uint16 {
	return t.set.Type()
}

// TTL returns the TTL shared by all records of the set.
func (t *View) TTL() uint32 {
	return t.set.TTL()
}

// Len returns the number of rdata entries without materializing them.
func (t *View) Len() int {
	return t.set.Len()
}

// SigLen returns the number of exposed signatures - zero if the view was built
// without signature exposure.
func (t *View) SigLen() int {
	if !t.withSigs {
		return 0
	}

	return t.set.SigLen()
}

// RRs materializes the records. Each call performs the unpack transform afresh and
// returns records in the original insertion order; mutating them cannot touch the
// store.
func (t *View) RRs() []dns.RR {
	return t.set.RRs()
}

// Sigs materializes the co-located RRSIGs, or nil if the view does not expose
// signatures or the set has none.
func (t *View) Sigs() []dns.RR {
	if !t.withSigs {
		return nil
	}

	return t.set.Sigs()
}

// Equal reports value equality: two views over the same node and rdataset are equal
// even if constructed independently.
func (t *View) Equal(o *View) bool {
	if t == nil || o == nil {
		return t == o
	}

	return t.node.Equal(o.node) && t.set == o.set && t.class == o.class
}

// String renders the RRset compactly, one record per comma-separated entry, with any
// exposed signatures appended. The transform runs per call and is never cached.
func (t *View) String() string {
	s := dnsutil.PrettyRRSet(t.RRs(), true)
	if sigs := t.Sigs(); len(sigs) > 0 {
		s += ", " + dnsutil.PrettyRRSet(sigs, true)
	}

	return s
}
