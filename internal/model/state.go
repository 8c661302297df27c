package model

// HierarchyState is the serializable picture of a hierarchy at one point in
// the evaluation. Nodes are listed in pre-order; parent/left/right refer to
// node ids and are nil when absent.
type HierarchyState struct {
	Root      *int        `json:"root"`
	Nodes     []NodeState `json:"nodes"`
	TotalRisk float64     `json:"total_risk"`
	Dropped   int         `json:"dropped_records"`
}

type NodeState struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Variant     string     `json:"variant"`
	Parent      *int       `json:"parent"`
	Left        *int       `json:"left"`
	Right       *int       `json:"right"`
	SuccessRate float64    `json:"success_rate"`
	Lead        *LeadState `json:"lead"`
	Risk        float64    `json:"risk"`
}

type LeadState struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
