package domain

import (
	pdomain "nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// ProvisionToolName is the name of the single provisioning tool.
const ProvisionToolName = "provision_infrastructure"

// ProvisionTool returns the tool declaration the model uses to express a
// provisioning request.
func ProvisionTool() Tool {
	actions := make([]string, 0, len(pdomain.ActionKinds))
	for _, k := range pdomain.ActionKinds {
		actions = append(actions, string(k))
	}
	types := make([]string, 0, len(pdomain.ResourceTypes))
	for _, t := range pdomain.ResourceTypes {
		types = append(types, string(t))
	}

	return Tool{
		Name:        ProvisionToolName,
		Description: "Provision or manage cloud infrastructure resources like databases, servers, storage, and networking",
		Parameters: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"action": {
					Type:        TypeString,
					Enum:        actions,
					Description: "The action to perform on the resource",
				},
				"resourceType": {
					Type:        TypeString,
					Enum:        types,
					Description: "The type of infrastructure resource",
				},
				"resourceName": {
					Type:        TypeString,
					Description: "Name for the resource being created",
				},
				"config": {
					Type:        TypeObject,
					Description: "Configuration parameters for the resource",
					Properties: map[string]*Schema{
						"engine":    {Type: TypeString, Description: "Database engine (postgres, mysql, etc.)"},
						"version":   {Type: TypeString, Description: "Version of the database engine"},
						"image":     {Type: TypeString, Description: "OS image for server"},
						"size":      {Type: TypeString, Description: "Instance size (small, medium, large)"},
						"cidrBlock": {Type: TypeString, Description: "CIDR block for networking"},
						"region":    {Type: TypeString, Description: "AWS region for storage bucket"},
					},
				},
			},
			Required: []string{"action", "resourceType"},
		},
	}
}

// Extraction is the outcome of intent extraction: either a structured
// action or, when the model did not call the tool, its plain-text reply.
type Extraction struct {
	Action *pdomain.ProvisionAction
	Text   string
}
