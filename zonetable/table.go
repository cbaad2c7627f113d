// Package zonetable maps query names to the zone that should answer them. Each zone
// is registered by origin with the Getter serving its current generation; lookups
// find the longest registered zone enclosing a query name, which is how a server
// front end picks the right store for an arbitrary qName.
package zonetable

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/dchest/siphash"
	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/zonedata"
)

// Table is keyed by a siphash-2-4 of the canonical origin rather than the origin
// string itself. The hash keys are drawn from crypto/rand per Table, so an outsider
// who controls query names cannot herd every zone into one bucket. Collisions are
// resolved by comparing the stored origin.
type Table struct {
	k0, k1 uint64 // siphash keys, fixed at construction

	mu    sync.RWMutex
	zones map[uint64][]*entry
}

type entry struct {
	origin string // Canonical
	getter *zonedata.Getter
}

// NewTable creates an empty table with fresh hash keys.
func NewTable() *Table {
	var b [16]byte
	rand.Read(b[:]) // as needed by siphash-2-4

	return &Table{
		k0:    binary.BigEndian.Uint64(b[0:8]),
		k1:    binary.BigEndian.Uint64(b[8:16]),
		zones: make(map[uint64][]*entry),
	}
}

func (t *Table) hash(canonical string) uint64 {
	return siphash.Hash(t.k0, t.k1, []byte(canonical))
}

// Add registers a zone by origin. Each origin can only be registered once; use the
// Getter to replace generations of an existing zone.
func (t *Table) Add(origin string, getter *zonedata.Getter) error {
	if getter == nil {
		return fmt.Errorf("zonetable: Add(%s) with a nil Getter", origin)
	}
	origin = dns.CanonicalName(origin)
	h := t.hash(origin)

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.zones[h] {
		if e.origin == origin {
			return fmt.Errorf("zonetable: zone %s already registered", origin)
		}
	}
	t.zones[h] = append(t.zones[h], &entry{origin: origin, getter: getter})

	return nil
}

// Lookup returns the Getter registered for exactly origin, or nil.
func (t *Table) Lookup(origin string) *zonedata.Getter {
	origin = dns.CanonicalName(origin)
	h := t.hash(origin)

	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, e := range t.zones[h] {
		if e.origin == origin {
			return e.getter
		}
	}

	return nil
}

// FindEnclosing returns the longest registered zone containing qName along with its
// Getter, or ok=false if no registered zone encloses it. A zone for the root name
// encloses everything. Given zones example.com. and sub.example.com., the name
// a.sub.example.com. belongs to sub.example.com.
func (t *Table) FindEnclosing(qName string) (origin string, getter *zonedata.Getter, ok bool) {
	qName = dns.CanonicalName(qName)

	// Try each suffix of qName from longest to shortest, then the root. dns.Split
	// gives the offset of each label so suffixes need no re-joining.
	for _, off := range dns.Split(qName) {
		if g := t.Lookup(qName[off:]); g != nil {
			return qName[off:], g, true
		}
	}
	if g := t.Lookup("."); g != nil {
		return ".", g, true
	}

	return "", nil, false
}

// Count returns the number of registered zones.
func (t *Table) Count() (c int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, entries := range t.zones {
		c += len(entries)
	}

	return
}

// Origins returns the registered origins in no particular order, mostly for logging.
func (t *Table) Origins() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ar := make([]string, 0, len(t.zones))
	for _, entries := range t.zones {
		for _, e := range entries {
			ar = append(ar, e.origin)
		}
	}

	return ar
}
