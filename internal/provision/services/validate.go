package services

import (
	"fmt"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"
)

// Rejection describes why an extracted action was refused.
type Rejection struct {
	// Error is the machine-facing reason.
	Error string

	// AIResponse is the chat reply shown to the user.
	AIResponse string
}

// ValidateAction checks that the action targets the declared resource type.
// It returns nil when the action may be executed.
func ValidateAction(action domain.ProvisionAction, declared domain.ResourceType) *Rejection {
	if action.ResourceType == declared {
		return nil
	}
	noun := declared.Noun()
	return &Rejection{
		Error:      fmt.Sprintf("Invalid resource type. This page is for provisioning %ss only.", noun),
		AIResponse: fmt.Sprintf("I can only create %ss on this page. Please use the correct provisioning page for %ss.", noun, action.ResourceType),
	}
}
