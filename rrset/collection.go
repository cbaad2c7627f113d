package rrset

import (
	"github.com/markdingo/zonedb/zonedata"
)

// Collection exposes one zone generation as a generic RRset collection. It answers
// exact triples only - no wildcard synthesis, no delegation following, no partial
// match information - because callers of a collection want "the RRset or nothing",
// and the resolution layer that needs more works off the tree directly.
type Collection struct {
	zd *zonedata.ZoneData
}

// NewCollection wraps a generation. The caller's generation reference must outlive
// the Collection and every View it hands out.
func NewCollection(zd *zonedata.ZoneData) *Collection {
	return &Collection{zd: zd}
}

// Class returns the class of the underlying zone.
func (t *Collection) Class() uint16 {
	return t.zd.Class()
}

// Find returns the RRset for the exact (qName, qClass, qType) triple, or nil. All
// absence cases are nil, never an error: a class other than the zone's (we could
// treat that as a caller error, but a collection is expected to support arbitrary
// queries, so it just reports no data), a name with no exact match in the tree, a
// matched node without the type, or a signature-only placeholder for the type.
// Returned views expose any signatures co-located on the set.
func (t *Collection) Find(qName string, qClass, qType uint16) *View {
	if qClass != t.zd.Class() {
		return nil
	}

	result, node := t.zd.Tree().Find(qName)
	if result != zonedata.ExactMatch {
		return nil
	}

	set := node.FindSet(qType, false)
	if set == nil {
		return nil
	}

	return NewView(t.zd.Class(), node, set, true)
}
