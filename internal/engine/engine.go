package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/jsonpatch"
	"sales-hierarchy/internal/model"
	"sales-hierarchy/internal/operations"
)

// Process builds the hierarchy described by req and runs its operations in
// order. The first CRITICAL message stops processing; end_state then holds the
// state after the last operation that completed cleanly.
func Process(req *model.EvaluationRequest) *model.EvaluationResponse {
	start := time.Now()

	var allMessages []model.CalculationMessage
	var processed []model.ProcessedOperation
	outcome := model.OutcomeSuccess

	addMessage := func(m model.CalculationMessage) int {
		m.ID = len(allMessages)
		allMessages = append(allMessages, m)
		return m.ID
	}

	h, err := hierarchy.Build(req.Hierarchy)
	if err != nil {
		addMessage(buildFailure(err))
		outcome = model.OutcomeFailure
	} else if h.Dropped() > 0 {
		addMessage(model.CalculationMessage{
			Level:   model.LevelWarning,
			Code:    model.CodeHierarchyTruncated,
			Message: fmt.Sprintf("No right slot left; %d trailing records were ignored", h.Dropped()),
		})
	}

	initial := model.NewHierarchyState(h)
	endSituation := model.StateEnvelope{OperationIndex: -1, State: initial}
	prev := initial

	for i, op := range req.Operations {
		if outcome == model.OutcomeFailure {
			break
		}

		handler, ok := operations.Get(op.OperationName)
		if !ok {
			id := addMessage(model.CalculationMessage{
				Level:   model.LevelCritical,
				Code:    model.CodeUnknownOperation,
				Message: fmt.Sprintf("Unknown operation: %s", op.OperationName),
			})
			processed = append(processed, model.ProcessedOperation{
				Operation:                 op,
				CalculationMessageIndexes: []int{id},
			})
			outcome = model.OutcomeFailure
			break
		}

		var msgIndexes []int
		hasCritical := false
		record := func(msgs []model.CalculationMessage) {
			for _, m := range msgs {
				msgIndexes = append(msgIndexes, addMessage(m))
				if m.Level == model.LevelCritical {
					hasCritical = true
				}
			}
		}

		record(handler.Validate(h, &op))
		if hasCritical {
			outcome = model.OutcomeFailure
			processed = append(processed, model.ProcessedOperation{
				Operation:                 op,
				CalculationMessageIndexes: msgIndexes,
			})
			break
		}

		record(handler.Apply(h, &op))
		next := model.NewHierarchyState(h)
		po := model.ProcessedOperation{
			Operation:                 op,
			CalculationMessageIndexes: msgIndexes,
		}
		if fwd, bwd, err := jsonpatch.Between(prev, next); err == nil {
			po.ForwardPatch = fwd
			po.BackwardPatch = bwd
		}
		processed = append(processed, po)

		if hasCritical {
			outcome = model.OutcomeFailure
			break
		}

		prev = next
		endSituation = model.StateEnvelope{
			OperationID:    op.OperationID,
			OperationIndex: i,
			State:          next,
		}
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()

	if allMessages == nil {
		allMessages = []model.CalculationMessage{}
	}
	if processed == nil {
		processed = []model.ProcessedOperation{}
	}

	return &model.EvaluationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          uuid.New().String(),
			TenantID:               req.TenantID,
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:     allMessages,
			Operations:   processed,
			EndState:     endSituation,
			InitialState: initial,
		},
	}
}

func buildFailure(err error) model.CalculationMessage {
	code := model.CodeInvalidHierarchy
	switch {
	case errors.Is(err, hierarchy.ErrUnknownVariant):
		code = model.CodeUnknownVariant
	case errors.Is(err, hierarchy.ErrEmptyHierarchy):
		code = model.CodeEmptyHierarchy
	}
	return model.CalculationMessage{
		Level:   model.LevelCritical,
		Code:    code,
		Message: err.Error(),
	}
}
