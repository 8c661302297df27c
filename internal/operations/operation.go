package operations

import (
	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/model"
)

// OperationHandler defines the contract for all operation implementations.
// Validate checks the request against the current hierarchy without touching
// it; Apply mutates the hierarchy and reports what happened.
type OperationHandler interface {
	Validate(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage
	Apply(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage
}
