package operations

import (
	"fmt"
	"math"
	"strings"

	json "github.com/goccy/go-json"

	"sales-hierarchy/internal/hierarchy"
	"sales-hierarchy/internal/model"
)

type leadProps struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func decodeProps(op *model.Operation, v any) []model.CalculationMessage {
	if len(op.Properties) == 0 {
		return nil
	}
	if err := json.Unmarshal(op.Properties, v); err != nil {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidProperties,
			Message: fmt.Sprintf("Operation properties are not valid: %v", err),
		}}
	}
	return nil
}

func validateLead(p leadProps) []model.CalculationMessage {
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) || p.Value < 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidLeadValue,
			Message: fmt.Sprintf("Lead value %v must be a non-negative amount", p.Value),
		}}
	}
	if strings.TrimSpace(p.Name) == "" {
		return []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeBlankLeadName,
			Message: "Lead name is empty or blank",
		}}
	}
	return nil
}

// assign places one lead and reports LEAD_UNASSIGNED when no rep is free.
func assign(h *hierarchy.Hierarchy, p leadProps) []model.CalculationMessage {
	lead, err := hierarchy.NewLead(p.Name, p.Value)
	if err != nil {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidLeadValue,
			Message: err.Error(),
		}}
	}
	if _, ok := h.AssignToBestRep(lead); !ok {
		return []model.CalculationMessage{{
			Level:   model.LevelWarning,
			Code:    model.CodeLeadUnassigned,
			Message: fmt.Sprintf("No salesperson can take lead %q worth %v", p.Name, p.Value),
		}}
	}
	return nil
}

type AssignLeadHandler struct{}

func (a *AssignLeadHandler) Validate(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage {
	var props leadProps
	if msgs := decodeProps(op, &props); msgs != nil {
		return msgs
	}
	return validateLead(props)
}

func (a *AssignLeadHandler) Apply(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage {
	var props leadProps
	decodeProps(op, &props)
	return assign(h, props)
}

type assignLeadsProps struct {
	Leads []leadProps `json:"leads"`
}

// AssignLeadsHandler places several leads in the given order.
type AssignLeadsHandler struct{}

func (a *AssignLeadsHandler) Validate(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage {
	var props assignLeadsProps
	if msgs := decodeProps(op, &props); msgs != nil {
		return msgs
	}
	if len(props.Leads) == 0 {
		return []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeNoLeads,
			Message: "At least one lead is required",
		}}
	}

	var msgs []model.CalculationMessage
	for _, p := range props.Leads {
		for _, m := range validateLead(p) {
			msgs = append(msgs, m)
			if m.Level == model.LevelCritical {
				return msgs
			}
		}
	}
	return msgs
}

func (a *AssignLeadsHandler) Apply(h *hierarchy.Hierarchy, op *model.Operation) []model.CalculationMessage {
	var props assignLeadsProps
	decodeProps(op, &props)

	var msgs []model.CalculationMessage
	for _, p := range props.Leads {
		msgs = append(msgs, assign(h, p)...)
	}
	return msgs
}
