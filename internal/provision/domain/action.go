package domain

// ActionKind is the operation requested by the user.
type ActionKind string

const (
	ActionCreate   ActionKind = "create"
	ActionList     ActionKind = "list"
	ActionDelete   ActionKind = "delete"
	ActionDescribe ActionKind = "describe"
)

// ActionKinds lists the kinds the model is allowed to emit.
var ActionKinds = []ActionKind{ActionCreate, ActionList, ActionDelete, ActionDescribe}

// ProvisionAction is the structured intent extracted from a user message.
// Config is nil when the model supplied no configuration; otherwise it is
// the variant matching ResourceType.
type ProvisionAction struct {
	Kind         ActionKind     `json:"action"`
	ResourceType ResourceType   `json:"resourceType"`
	ResourceName string         `json:"resourceName,omitempty"`
	Config       ResourceConfig `json:"config,omitempty"`
}
