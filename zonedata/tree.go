package zonedata

import (
	"fmt"
	"sort"

	"github.com/miekg/dns"

	"github.com/markdingo/zonedb/dnsutil"
)

// If the zone is example.com. and it holds a.b.example.com., then the node for "a" is
// reached by descending the labels below the origin most significant first:
//
// origin node -> children["b"] -> children["a"]
//
// Nodes live in an arena slice and refer to each other by index, so the arena can grow
// during load without invalidating relationships. Each child slice is kept sorted by
// label so descent is a binary search per level - name-ordered and O(log n) overall.

// FindResult classifies a Tree.Find outcome. The distinction between PartialMatch and
// NotFound matters to resolution layers: PartialMatch carries the closest encloser
// needed for wildcard synthesis and zone-cut detection, whereas NotFound means the
// query name is not within this zone at all.
type FindResult int

const (
	NotFound     FindResult = iota // qName is outside the zone
	PartialMatch                   // Deepest existing ancestor of qName returned
	ExactMatch                     // qName itself is in the tree
)

func (t FindResult) String() string {
	switch t {
	case PartialMatch:
		return "PartialMatch"
	case ExactMatch:
		return "ExactMatch"
	}

	return "NotFound"
}

const (
	originIndex  int32 = 0  // The origin node is always the first arena entry
	noParent     int32 = -1 // parent value of the origin node
	prunedParent int32 = -2 // parent value of a node removed by prune()
)

type treeNode struct {
	label         string    // Canonical (lower-cased) label. Empty for the origin node.
	parent        int32
	children      []int32   // Sorted ascending by label
	wildcard      bool      // This node's own label is "*"
	wildcardBelow bool      // Some descendant is a wildcard owner
	sets          *RdataSet // Head of the per-type chain, nil for empty non-terminals
}

// Tree is the name-indexed search structure over one zone's owner names. It is only
// mutable while loading; once the owning ZoneData is published, Insert fails with
// ErrNotLoading and lookups proceed without any locking.
type Tree struct {
	origin    string // Canonical with trailing dot, e.g. "example.com."
	nodes     []treeNode
	published bool
}

func newTree(origin string) *Tree {
	return &Tree{
		origin: dns.CanonicalName(origin),
		nodes:  []treeNode{{parent: noParent}},
	}
}

// Origin returns the canonical zone origin, e.g. "example.com."
func (t *Tree) Origin() string {
	return t.origin
}

// OriginNode returns the node for the zone origin. It always exists, with or without
// rdatasets attached; apex queries must resolve via ExactMatch regardless.
func (t *Tree) OriginNode() Node {
	return Node{tree: t, ix: originIndex}
}

// Published returns true once the owning ZoneData has been published for queries, at
// which point the tree is immutable.
func (t *Tree) Published() bool {
	return t.published
}

// NodeCount returns the number of live nodes, origin included.
func (t *Tree) NodeCount() (c int) {
	for ix := range t.nodes {
		if t.nodes[ix].parent != prunedParent {
			c++
		}
	}

	return
}

// Insert adds qName to the tree, creating empty non-terminal nodes for any
// intermediate labels. It returns the node for qName and whether that node was newly
// created. Inserting the origin or an existing name returns the existing node with
// created=false. Only valid while loading: a published tree returns ErrNotLoading.
func (t *Tree) Insert(qName string) (Node, bool, error) {
	if t.published {
		return Node{}, false, fmt.Errorf("insert of %s: %w", qName, ErrNotLoading)
	}
	sub, ok := dnsutil.SubLabels(qName, t.origin)
	if !ok {
		return Node{}, false, fmt.Errorf("insert of %s into %s: %w",
			qName, t.origin, ErrOutOfZone)
	}

	cur := originIndex
	created := false
	for ix := len(sub) - 1; ix >= 0; ix-- { // Descend most significant label first
		child, found := t.findChild(cur, sub[ix])
		if !found {
			child = t.newChild(cur, sub[ix])
		}
		created = !found
		cur = child
	}

	return Node{tree: t, ix: cur}, created, nil
}

// Find looks up qName. ExactMatch returns qName's own node. PartialMatch returns the
// closest encloser - the deepest existing ancestor, possibly the origin itself - which
// callers use to detect zone cuts and to drive wildcard synthesis: if the immediate
// child "*.<encloser>" exists, the caller may re-query for that wildcard owner name.
// NotFound means qName is not at or below the origin; its Node is not valid.
func (t *Tree) Find(qName string) (FindResult, Node) {
	sub, ok := dnsutil.SubLabels(qName, t.origin)
	if !ok {
		return NotFound, Node{}
	}

	cur := originIndex
	for ix := len(sub) - 1; ix >= 0; ix-- {
		child, found := t.findChild(cur, sub[ix])
		if !found {
			return PartialMatch, Node{tree: t, ix: cur}
		}
		cur = child
	}

	return ExactMatch, Node{tree: t, ix: cur}
}

// findChild binary searches the sorted child slice of parent for label. Labels are
// stored canonicalized so a plain byte comparison is already case-insensitive.
func (t *Tree) findChild(parent int32, label string) (int32, bool) {
	kids := t.nodes[parent].children
	ix := sort.Search(len(kids), func(i int) bool {
		return t.nodes[kids[i]].label >= label
	})
	if ix < len(kids) && t.nodes[kids[ix]].label == label {
		return kids[ix], true
	}

	return 0, false
}

// newChild appends a node to the arena and splices its index into the parent's sorted
// child slice. A "*" label marks the new node as a wildcard owner and flags every
// ancestor so wildcard search can be pruned cheaply.
func (t *Tree) newChild(parent int32, label string) int32 {
	nix := int32(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{label: label, parent: parent})

	kids := t.nodes[parent].children
	ix := sort.Search(len(kids), func(i int) bool {
		return t.nodes[kids[i]].label >= label
	})
	kids = append(kids, 0)
	copy(kids[ix+1:], kids[ix:])
	kids[ix] = nix
	t.nodes[parent].children = kids

	if label == dnsutil.WildcardLabel {
		t.nodes[nix].wildcard = true
		for p := parent; p >= 0; p = t.nodes[p].parent {
			t.nodes[p].wildcardBelow = true
		}
	}

	return nix
}

// prune removes dead leaves - nodes with no rdatasets and no children - repeating
// until stable since removing a leaf can orphan its parent. Pruned nodes stay in the
// arena (indices must remain stable) but are detached and unreachable. The wildcard
// subtree flags are recomputed afterwards as a pruned leaf may have been the only
// wildcard owner below an ancestor.
func (t *Tree) prune() {
	for {
		removed := false
		for ix := int32(1); ix < int32(len(t.nodes)); ix++ {
			n := &t.nodes[ix]
			if n.parent == prunedParent || n.sets != nil || len(n.children) > 0 {
				continue
			}
			t.removeChild(n.parent, ix)
			n.parent = prunedParent
			removed = true
		}
		if !removed {
			break
		}
	}

	for ix := range t.nodes {
		t.nodes[ix].wildcardBelow = false
	}
	for ix := int32(1); ix < int32(len(t.nodes)); ix++ {
		n := t.nodes[ix]
		if n.parent == prunedParent || !n.wildcard {
			continue
		}
		for p := n.parent; p >= 0; p = t.nodes[p].parent {
			t.nodes[p].wildcardBelow = true
		}
	}
}

func (t *Tree) removeChild(parent, child int32) {
	kids := t.nodes[parent].children
	for ix, k := range kids {
		if k == child {
			t.nodes[parent].children = append(kids[:ix], kids[ix+1:]...)
			return
		}
	}
}
