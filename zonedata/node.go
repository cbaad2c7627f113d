package zonedata

import (
	"fmt"
	"strings"
)

// Node is a handle on one tree vertex: a (tree, arena index) pair. Handles are cheap
// values and remain valid for the life of the tree they came from - they are how tree
// positions are passed around without exposing arena internals. The zero Node is not
// valid; Find returns one for NotFound.
type Node struct {
	tree *Tree
	ix   int32
}

// IsValid reports whether the handle refers to a node at all.
func (n Node) IsValid() bool {
	return n.tree != nil
}

// IsOrigin reports whether this node is the zone origin (apex).
func (n Node) IsOrigin() bool {
	return n.tree != nil && n.ix == originIndex
}

// IsWildcard reports whether this node's own leftmost label is "*", i.e. the node is
// a wildcard owner name.
func (n Node) IsWildcard() bool {
	return n.tree.nodes[n.ix].wildcard
}

// WildcardBelow reports whether any descendant of this node is a wildcard owner.
// Resolution layers use it to skip wildcard re-queries against subtrees that cannot
// synthesize anything.
func (n Node) WildcardBelow() bool {
	return n.tree.nodes[n.ix].wildcardBelow
}

// Parent returns the parent node handle, or an invalid Node for the origin.
func (n Node) Parent() Node {
	p := n.tree.nodes[n.ix].parent
	if p < 0 {
		return Node{}
	}

	return Node{tree: n.tree, ix: p}
}

// Name reconstructs the fully qualified canonical owner name from the node's position
// in the tree. The labels are only joined when asked for; nothing is stored per node
// beyond its own label fragment.
func (n Node) Name() string {
	if n.ix == originIndex {
		return n.tree.origin
	}

	var b strings.Builder
	for ix := n.ix; ix != originIndex; ix = n.tree.nodes[ix].parent {
		b.WriteString(n.tree.nodes[ix].label)
		b.WriteByte('.')
	}
	if n.tree.origin != "." {
		b.WriteString(n.tree.origin)
	}

	return b.String()
}

// Equal reports whether two handles refer to the same node of the same tree. This is
// identity, not name comparison - handles from different generations never compare
// equal even for the same owner name.
func (n Node) Equal(o Node) bool {
	return n.tree == o.tree && n.ix == o.ix
}

// Sets returns the head of the node's RdataSet chain, or nil for an empty
// non-terminal. Iterate with RdataSet.Next().
func (n Node) Sets() *RdataSet {
	return n.tree.nodes[n.ix].sets
}

// FindSet scans the node's type chain for rrType. Chains are expected to be short
// (typically under ten types per name) so this is a single linear scan with no
// per-type index. A signature-only placeholder - RRSIGs present but no base rdata -
// is only returned when sigOK is true; ordinary type queries must not see them.
func (n Node) FindSet(rrType uint16, sigOK bool) *RdataSet {
	for s := n.Sets(); s != nil; s = s.next {
		if s.rrType != rrType {
			continue
		}
		if s.SigOnly() && !sigOK {
			return nil
		}
		return s
	}

	return nil
}

// addSet appends set to the node's type chain. At most one set per type may exist at
// a node, and only while the tree is loading.
func (n Node) addSet(set *RdataSet) error {
	if n.tree.published {
		return fmt.Errorf("add rdataset at %s: %w", n.Name(), ErrNotLoading)
	}
	tn := &n.tree.nodes[n.ix]
	var tail *RdataSet
	for s := tn.sets; s != nil; s = s.next {
		if s.rrType == set.rrType {
			return fmt.Errorf("add rdataset at %s: %w", n.Name(), ErrDuplicateType)
		}
		tail = s
	}
	if tail == nil {
		tn.sets = set
	} else {
		tail.next = set
	}

	return nil
}

func (n Node) String() string {
	if !n.IsValid() {
		return "Node(invalid)"
	}

	return n.Name()
}
