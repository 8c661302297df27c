package operations

var registry = map[string]OperationHandler{
	"assign_lead":  &AssignLeadHandler{},
	"assign_leads": &AssignLeadsHandler{},
}

func Get(name string) (OperationHandler, bool) {
	h, ok := registry[name]
	return h, ok
}
