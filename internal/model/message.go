package model

// CalculationMessage reports one finding of an evaluation. ID is its index in
// the response's message list.
type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeUnknownVariant     = "UNKNOWN_VARIANT"
	CodeEmptyHierarchy     = "EMPTY_HIERARCHY"
	CodeInvalidHierarchy   = "INVALID_HIERARCHY"
	CodeHierarchyTruncated = "HIERARCHY_TRUNCATED"
	CodeUnknownOperation   = "UNKNOWN_OPERATION"
	CodeInvalidProperties  = "INVALID_PROPERTIES"
	CodeInvalidLeadValue   = "INVALID_LEAD_VALUE"
	CodeBlankLeadName      = "BLANK_LEAD_NAME"
	CodeNoLeads            = "NO_LEADS"
	CodeLeadUnassigned     = "LEAD_UNASSIGNED"
)
