package zonedata

import (
	"sync/atomic"
)

// NSEC3Params carries the zone's NSEC3 hashing parameters as opaque metadata. The
// store never hashes anything; online NSEC3 belongs to the DNSSEC layer which reads
// these off the generation it is answering from.
type NSEC3Params struct {
	Algorithm  uint8
	Flags      uint8
	Iterations uint16
	Salt       []byte
}

// ZoneData is one immutable generation of a zone: the tree plus zone-level metadata.
// Generations are reference counted. The builder starts a generation with one
// reference which is adopted by the Getter on install; every reader that obtains the
// generation via Getter.Current() holds a further reference until it calls Release().
// A superseded generation is reclaimed exactly when its last reference drops, so
// in-flight reads against an old generation stay fully consistent and a reload never
// blocks or is blocked by readers.
type ZoneData struct {
	origin string // Canonical with trailing dot
	class  uint16
	tree   *Tree
	nsec3  *NSEC3Params
	count  int // RRs loaded, fixed at publish

	refs      atomic.Int32
	reclaimed atomic.Bool
	onReclaim func() // Optional, set before publish. Runs once, on the releasing goroutine.
}

// Origin returns the canonical zone origin.
func (t *ZoneData) Origin() string {
	return t.origin
}

// Class returns the zone class, e.g. dns.ClassINET.
func (t *ZoneData) Class() uint16 {
	return t.class
}

// Tree returns the zone tree of this generation.
func (t *ZoneData) Tree() *Tree {
	return t.tree
}

// NSEC3 returns the zone's NSEC3 parameters, or nil for an unsigned zone.
func (t *ZoneData) NSEC3() *NSEC3Params {
	return t.nsec3
}

// Count returns the total count of RRs loaded into this generation.
func (t *ZoneData) Count() int {
	return t.count
}

// Acquire takes an additional reference and returns the receiver for call chaining.
// Callers normally get their reference from Getter.Current() rather than here.
func (t *ZoneData) Acquire() *ZoneData {
	t.refs.Add(1)

	return t
}

// Release drops one reference. When the last reference drops the generation is
// reclaimed and the reclaim hook, if any, runs. Releasing more times than acquired is
// a programming error and panics rather than silently corrupting the count.
func (t *ZoneData) Release() {
	n := t.refs.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic("zonedata: ZoneData.Release() without a matching reference")
	}
	t.reclaimed.Store(true)
	if t.onReclaim != nil {
		t.onReclaim()
	}
}

// Reclaimed reports whether the last reference has dropped. Mostly of interest to
// tests verifying generation lifetimes.
func (t *ZoneData) Reclaimed() bool {
	return t.reclaimed.Load()
}

// publish freezes the generation. From here on Insert and addSet fail with
// ErrNotLoading and concurrent readers need no locks.
func (t *ZoneData) publish() {
	t.tree.published = true
}
