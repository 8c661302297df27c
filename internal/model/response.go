package model

import json "github.com/goccy/go-json"

type EvaluationResponse struct {
	CalculationMetadata CalculationMetadata `json:"calculation_metadata"`
	CalculationResult   CalculationResult   `json:"calculation_result"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	Messages     []CalculationMessage `json:"messages"`
	Operations   []ProcessedOperation `json:"operations"`
	EndState     StateEnvelope        `json:"end_state"`
	InitialState HierarchyState       `json:"initial_state"`
}

type ProcessedOperation struct {
	Operation                 Operation       `json:"operation"`
	CalculationMessageIndexes []int           `json:"calculation_message_indexes,omitempty"`
	ForwardPatch              json.RawMessage `json:"forward_patch_to_state,omitempty"`
	BackwardPatch             json.RawMessage `json:"backward_patch_to_previous_state,omitempty"`
}

type StateEnvelope struct {
	OperationID    string         `json:"operation_id"`
	OperationIndex int            `json:"operation_index"`
	State          HierarchyState `json:"state"`
}

type HierarchyCreated struct {
	ID    string         `json:"id"`
	State HierarchyState `json:"state"`
}

type AssignmentResponse struct {
	Assigned  bool       `json:"assigned"`
	Node      *NodeState `json:"node"`
	TotalRisk float64    `json:"total_risk"`
}

type RiskResponse struct {
	TotalRisk float64 `json:"total_risk"`
}

type InventoryResponse struct {
	List  []string       `json:"list"`
	Count int            `json:"count"`
	Freq  map[string]int `json:"freq,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
