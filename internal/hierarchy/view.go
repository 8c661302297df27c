package hierarchy

import "fmt"

// NodeView is a read-only copy of one node and its derived figures.
type NodeView struct {
	ID          NodeID
	Name        string
	Variant     Variant
	Parent      NodeID
	Left        NodeID
	Right       NodeID
	SuccessRate float64
	Lead        *Lead
	Risk        float64
}

func (h *Hierarchy) View(id NodeID) (NodeView, error) {
	if !h.valid(id) {
		return NodeView{}, fmt.Errorf("node %d out of range [0,%d)", id, len(h.nodes))
	}
	n := h.nodes[id]
	v := NodeView{
		ID:          id,
		Name:        n.name,
		Variant:     n.variant,
		Parent:      n.parent,
		Left:        n.left,
		Right:       n.right,
		SuccessRate: h.SuccessRate(id),
		Risk:        h.Risk(id),
	}
	if n.lead != nil {
		l := *n.lead
		v.Lead = &l
	}
	return v, nil
}

// Walk visits every node in pre-order (self, left, right).
func (h *Hierarchy) Walk(fn func(NodeView)) {
	if h.root == NoNode {
		return
	}
	h.walk(h.root, fn)
}

func (h *Hierarchy) walk(id NodeID, fn func(NodeView)) {
	v, _ := h.View(id)
	fn(v)
	if v.Left != NoNode {
		h.walk(v.Left, fn)
	}
	if v.Right != NoNode {
		h.walk(v.Right, fn)
	}
}
