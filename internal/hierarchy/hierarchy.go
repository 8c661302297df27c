// Package hierarchy models a binary-tree sales organisation: building it from
// the legacy serialized notation, placing leads on the best available rep and
// summing the risk the company carries on assigned leads.
//
// Nodes live in an arena owned by the Hierarchy and are addressed by NodeID.
// A Hierarchy is not safe for concurrent use; callers sharing one must hold a
// single exclusive lock around every assign or read.
package hierarchy

// NodeID addresses a salesperson inside its Hierarchy.
type NodeID int

// NoNode is the absent handle (no parent, no child, no candidate).
const NoNode NodeID = -1

type node struct {
	name    string
	variant Variant
	parent  NodeID
	left    NodeID
	right   NodeID
	lead    *Lead
}

type Hierarchy struct {
	nodes   []node
	root    NodeID
	dropped int
}

func newHierarchy() *Hierarchy {
	return &Hierarchy{root: NoNode}
}

func (h *Hierarchy) add(name string, v Variant) NodeID {
	h.nodes = append(h.nodes, node{
		name:    name,
		variant: v,
		parent:  NoNode,
		left:    NoNode,
		right:   NoNode,
	})
	return NodeID(len(h.nodes) - 1)
}

func (h *Hierarchy) setLeft(parent, child NodeID) {
	h.nodes[parent].left = child
	h.nodes[child].parent = parent
}

func (h *Hierarchy) setRight(parent, child NodeID) {
	h.nodes[parent].right = child
	h.nodes[child].parent = parent
}

func (h *Hierarchy) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(h.nodes)
}

func (h *Hierarchy) Root() NodeID { return h.root }

func (h *Hierarchy) Len() int { return len(h.nodes) }

// Dropped reports how many trailing records Build ignored because no right
// slot was left for them.
func (h *Hierarchy) Dropped() int { return h.dropped }

func (h *Hierarchy) Parent(id NodeID) NodeID { return h.nodes[id].parent }

func (h *Hierarchy) Left(id NodeID) NodeID { return h.nodes[id].left }

func (h *Hierarchy) Right(id NodeID) NodeID { return h.nodes[id].right }

func (h *Hierarchy) Name(id NodeID) string { return h.nodes[id].name }

func (h *Hierarchy) Variant(id NodeID) Variant { return h.nodes[id].variant }

// CurrentLead returns the lead held by id, if any.
func (h *Hierarchy) CurrentLead(id NodeID) (Lead, bool) {
	if l := h.nodes[id].lead; l != nil {
		return *l, true
	}
	return Lead{}, false
}

// SuccessRate is recomputed on every call from the variant and parent chain.
func (h *Hierarchy) SuccessRate(id NodeID) float64 {
	n := h.nodes[id]
	switch n.variant {
	case Aggressive:
		return aggressiveRate
	case Indifferent:
		if n.parent != NoNode && h.nodes[n.parent].variant == Aggressive {
			return indifferentBossRate
		}
		return indifferentRate
	case SelfDeprecating:
		if n.parent != NoNode && h.nodes[n.parent].variant == SelfDeprecating {
			return h.SuccessRate(n.parent) / 2
		}
		return selfDeprecatingRate
	}
	return 0
}

// CanTakeLead reports whether id is idle and willing to work lead.
func (h *Hierarchy) CanTakeLead(id NodeID, lead Lead) bool {
	n := h.nodes[id]
	if n.lead != nil {
		return false
	}
	if n.variant == Aggressive {
		return lead.value >= AggressiveLeadFloor
	}
	return true
}

// BestRep searches the whole tree for the eligible rep with the highest
// success rate. Ties go to the rep visited first in pre-order.
func (h *Hierarchy) BestRep(lead Lead) (NodeID, bool) {
	if h.root == NoNode {
		return NoNode, false
	}
	best := h.bestRep(h.root, lead, NoNode)
	return best, best != NoNode
}

func (h *Hierarchy) bestRep(id NodeID, lead Lead, best NodeID) NodeID {
	if h.CanTakeLead(id, lead) && (best == NoNode || h.SuccessRate(id) > h.SuccessRate(best)) {
		best = id
	}
	if l := h.nodes[id].left; l != NoNode {
		best = h.bestRep(l, lead, best)
	}
	if r := h.nodes[id].right; r != NoNode {
		best = h.bestRep(r, lead, best)
	}
	return best
}

// AssignToBestRep gives lead to the best eligible rep. It returns false when
// nobody can take it; the lead then stays unassigned.
func (h *Hierarchy) AssignToBestRep(lead Lead) (NodeID, bool) {
	id, ok := h.BestRep(lead)
	if !ok {
		return NoNode, false
	}
	l := lead
	h.nodes[id].lead = &l
	return id, true
}

// Risk is the expected loss on the lead held by id, zero when idle.
func (h *Hierarchy) Risk(id NodeID) float64 {
	l := h.nodes[id].lead
	if l == nil {
		return 0
	}
	return l.value * (1 - h.SuccessRate(id))
}

func (h *Hierarchy) TotalRisk() float64 {
	if h.root == NoNode {
		return 0
	}
	return h.totalRisk(h.root)
}

func (h *Hierarchy) totalRisk(id NodeID) float64 {
	total := h.Risk(id)
	if l := h.nodes[id].left; l != NoNode {
		total += h.totalRisk(l)
	}
	if r := h.nodes[id].right; r != NoNode {
		total += h.totalRisk(r)
	}
	return total
}
