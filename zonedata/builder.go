package zonedata

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
)

// Builder accumulates one zone generation during the offline load phase. All the
// load-time invariants are enforced here and surfaced as returned errors, never
// panics: a loader that trips one simply abandons the build and the previous
// generation keeps serving. Build() publishes the generation and renders the Builder
// inert.
//
// Zone-level invariants such as "exactly one SOA" or a consistent NS set are the
// loader's business, not the store's, so Builder deliberately does not check them.
type Builder struct {
	zd *ZoneData
}

// NewBuilder starts a new generation for the zone rooted at origin with the supplied
// class.
func NewBuilder(origin string, class uint16) *Builder {
	origin = dns.CanonicalName(origin)
	zd := &ZoneData{origin: origin, class: class, tree: newTree(origin)}
	zd.refs.Store(1) // The builder's reference, handed to the caller by Build()

	return &Builder{zd: zd}
}

// Origin returns the canonical origin of the zone being built.
func (t *Builder) Origin() string {
	return t.zd.origin
}

// Class returns the class of the zone being built.
func (t *Builder) Class() uint16 {
	return t.zd.class
}

// InsertName adds qName to the tree without attaching any rdata, returning the node
// and whether it was newly created. Loaders use this for empty non-terminals they
// want a handle on, such as delegation points.
func (t *Builder) InsertName(qName string) (Node, bool, error) {
	if t.zd == nil {
		return Node{}, false, fmt.Errorf("InsertName after Build(): %w", ErrNotLoading)
	}

	return t.zd.tree.Insert(qName)
}

// AddRR inserts one RR, creating the owner node and its RdataSet as needed. Returns
// true if the RR was added and false if it duplicates rdata already in the set
// (duplicates are skipped, not errors, since master files and transfers repeat
// records in practice). RRSIGs are routed to AddRRsig and attach to the set covering
// their type. The first TTL seen for a set wins; later differing TTLs are normalized
// to it.
func (t *Builder) AddRR(rr dns.RR) (bool, error) {
	if t.zd == nil {
		return false, fmt.Errorf("AddRR after Build(): %w", ErrNotLoading)
	}
	hdr := rr.Header()
	if hdr.Class != t.zd.class {
		return false, fmt.Errorf("AddRR %s class %s: %w", hdr.Name,
			dnsutil.ClassToString(dns.Class(hdr.Class)), ErrClassMismatch)
	}
	if sig, ok := rr.(*dns.RRSIG); ok {
		return t.AddRRsig(sig)
	}

	node, _, err := t.zd.tree.Insert(hdr.Name)
	if err != nil {
		return false, err
	}

	// Look the set up with placeholders included: RRSIGs may have arrived before
	// the base rdata and the new rdata belongs on that same set.
	set := node.FindSet(hdr.Rrtype, true)
	if set == nil {
		set = newRdataSet(hdr.Rrtype, hdr.Ttl)
		if err = node.addSet(set); err != nil {
			return false, err
		}
	} else if set.SigOnly() {
		set.ttl = hdr.Ttl // Placeholder takes its TTL from the first real rdata
	}

	for _, existing := range set.RRs() {
		if dnsutil.RRIsEqual(existing, rr) {
			return false, nil
		}
	}

	packed, err := packRR(normalize(rr, set.ttl))
	if err != nil {
		return false, err
	}
	set.rdata = append(set.rdata, packed)
	t.zd.count++

	return true, nil
}

// AddRdata attaches a complete RdataSet of rrType to node in one call - the bulk form
// used by loaders that assemble whole sets before touching the tree. Unlike AddRR it
// treats an existing set of the same type as a load violation (ErrDuplicateType) and
// an empty rdata slice as invalid (ErrEmptyRdataSet). A signature-only placeholder
// for the type absorbs the rdata instead of erroring.
func (t *Builder) AddRdata(node Node, rrType uint16, ttl uint32, rdata ...dns.RR) error {
	if t.zd == nil {
		return fmt.Errorf("AddRdata after Build(): %w", ErrNotLoading)
	}
	if !node.IsValid() || node.tree != t.zd.tree {
		return fmt.Errorf("AddRdata: node does not belong to the zone being built")
	}
	if len(rdata) == 0 {
		return fmt.Errorf("AddRdata %s/%s: %w", node.Name(),
			dnsutil.TypeToString(rrType), ErrEmptyRdataSet)
	}

	set := node.FindSet(rrType, true)
	switch {
	case set == nil:
		set = newRdataSet(rrType, ttl)
		if err := node.addSet(set); err != nil {
			return err
		}
	case set.SigOnly():
		set.ttl = ttl
	default:
		return fmt.Errorf("AddRdata %s/%s: %w", node.Name(),
			dnsutil.TypeToString(rrType), ErrDuplicateType)
	}

	for _, rr := range rdata {
		if rr.Header().Rrtype != rrType {
			return fmt.Errorf("AddRdata %s/%s: rdata entry is type %s",
				node.Name(), dnsutil.TypeToString(rrType),
				dnsutil.TypeToString(rr.Header().Rrtype))
		}
		if rr.Header().Class != t.zd.class {
			return fmt.Errorf("AddRdata %s class %s: %w", node.Name(),
				dnsutil.ClassToString(dns.Class(rr.Header().Class)),
				ErrClassMismatch)
		}
		packed, err := packRR(normalize(rr, ttl))
		if err != nil {
			return err
		}
		set.rdata = append(set.rdata, packed)
		t.zd.count++
	}

	return nil
}

// AddRRsig attaches a signature to the set covering its type, returning true if it
// was added and false for a duplicate of one already attached (duplicates are
// skipped, same as AddRR does for ordinary rdata). If no base set exists yet a
// signature-only placeholder is created; should the base rdata never arrive the
// placeholder survives the build but is invisible to ordinary type queries.
func (t *Builder) AddRRsig(sig *dns.RRSIG) (bool, error) {
	if t.zd == nil {
		return false, fmt.Errorf("AddRRsig after Build(): %w", ErrNotLoading)
	}
	node, _, err := t.zd.tree.Insert(sig.Hdr.Name)
	if err != nil {
		return false, err
	}

	covered := sig.TypeCovered
	set := node.FindSet(covered, true)
	if set == nil {
		set = newRdataSet(covered, sig.Hdr.Ttl)
		if err = node.addSet(set); err != nil {
			return false, err
		}
	}

	for _, existing := range set.Sigs() {
		if dnsutil.RRIsEqual(existing, sig) {
			return false, nil
		}
	}

	packed, err := packRR(normalize(sig, sig.Hdr.Ttl))
	if err != nil {
		return false, err
	}
	set.sigs = append(set.sigs, packed)
	t.zd.count++

	return true, nil
}

// SetNSEC3Params records the zone's NSEC3 parameters on the generation.
func (t *Builder) SetNSEC3Params(p NSEC3Params) {
	if t.zd != nil {
		t.zd.nsec3 = &p
	}
}

// OnReclaim registers a hook which runs when the generation's last reference drops.
func (t *Builder) OnReclaim(fn func()) {
	if t.zd != nil {
		t.zd.onReclaim = fn
	}
}

// Build prunes dead leaves, publishes the generation and returns it. The returned
// ZoneData carries the builder's reference; hand it to Getter.Replace or Release it.
// The Builder is spent afterwards - all further calls fail with ErrNotLoading.
func (t *Builder) Build() (*ZoneData, error) {
	if t.zd == nil {
		return nil, fmt.Errorf("Build() called twice: %w", ErrNotLoading)
	}
	zd := t.zd
	t.zd = nil

	zd.tree.prune()
	zd.publish()

	return zd, nil
}

// normalize returns a copy of rr with its header rewritten to the canonical owner
// name and the set's TTL, so the packed form is uniform no matter how the master file
// spelt it.
func normalize(rr dns.RR, ttl uint32) dns.RR {
	c := dns.Copy(rr)
	h := c.Header()
	h.Name = dns.CanonicalName(h.Name)
	h.Ttl = ttl

	return c
}
