package model

import json "github.com/goccy/go-json"

type EvaluationRequest struct {
	TenantID   string      `json:"tenant_id"`
	Hierarchy  string      `json:"hierarchy" validate:"required"`
	Operations []Operation `json:"operations" validate:"dive"`
}

type Operation struct {
	OperationID   string          `json:"operation_id"`
	OperationName string          `json:"operation_name" validate:"required"`
	Properties    json.RawMessage `json:"properties"`
}

type CreateHierarchyRequest struct {
	Hierarchy string `json:"hierarchy" validate:"required"`
}

type LeadRequest struct {
	Name  string  `json:"name"`
	Value float64 `json:"value" validate:"gte=0"`
}

type InventoryRequest struct {
	Inventory string `json:"inventory"`
	Freq      bool   `json:"freq"`
}
