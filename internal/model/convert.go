package model

import "sales-hierarchy/internal/hierarchy"

func handle(id hierarchy.NodeID) *int {
	if id == hierarchy.NoNode {
		return nil
	}
	i := int(id)
	return &i
}

func NewNodeState(v hierarchy.NodeView) NodeState {
	ns := NodeState{
		ID:          int(v.ID),
		Name:        v.Name,
		Variant:     v.Variant.String(),
		Parent:      handle(v.Parent),
		Left:        handle(v.Left),
		Right:       handle(v.Right),
		SuccessRate: v.SuccessRate,
		Risk:        v.Risk,
	}
	if v.Lead != nil {
		ns.Lead = &LeadState{Name: v.Lead.Name(), Value: v.Lead.Value()}
	}
	return ns
}

// NewHierarchyState snapshots h. A nil hierarchy yields an empty state.
func NewHierarchyState(h *hierarchy.Hierarchy) HierarchyState {
	st := HierarchyState{Nodes: []NodeState{}}
	if h == nil {
		return st
	}
	st.Root = handle(h.Root())
	h.Walk(func(v hierarchy.NodeView) {
		st.Nodes = append(st.Nodes, NewNodeState(v))
	})
	st.TotalRisk = h.TotalRisk()
	st.Dropped = h.Dropped()
	return st
}
