package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/infrachat/internal/provision/domain"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// ErrAborted is returned when a user cancels an interactive flow.
var ErrAborted = errors.New("aborted by user")

// SelectResourceType asks which kind of resource the chat session
// provisions. A valid prefill is preselected.
func SelectResourceType(prefill domain.ResourceType) (domain.ResourceType, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	value := string(prefill)
	field := huh.NewSelect[string]().
		Title("What would you like to provision?").
		Options(buildResourceTypeOptions(domain.ResourceTypes, prefill)...).
		Value(&value).
		Height(selectHeight(len(domain.ResourceTypes)+2, 8))

	if err := runForm(accessible, huh.NewGroup(field)); err != nil {
		return "", err
	}
	return domain.ParseResourceType(value)
}

// ConfirmBucketDelete asks the user to confirm deleting a storage bucket.
func ConfirmBucketDelete(name, region string) (bool, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	confirm := false
	field := huh.NewConfirm().
		Title(fmt.Sprintf("Delete bucket %q?", name)).
		Description(fmt.Sprintf("Region: %s\nThis cannot be undone.", region)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&confirm)

	if err := runForm(accessible, huh.NewGroup(field)); err != nil {
		return false, err
	}
	return confirm, nil
}

// RunWithSpinner runs action behind a spinner on stderr. User interrupts are
// reported as ErrAborted.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	err := spinner.New().
		Title(title).
		Accessible(os.Getenv("ACCESSIBLE") != "").
		Output(os.Stderr).
		Context(ctx).
		ActionWithErr(action).
		Run()
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return ErrAborted
	}
	return err
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// --- Option builders ---

func buildResourceTypeOptions(types []domain.ResourceType, selected domain.ResourceType) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(types))
	for _, t := range types {
		opt := huh.NewOption(resourceTypeLabel(t), string(t))
		if t == selected {
			opt = opt.Selected(true)
		}
		options = append(options, opt)
	}
	return options
}

func resourceTypeLabel(t domain.ResourceType) string {
	switch t {
	case domain.ResourceServer:
		return "Server - compute instance"
	case domain.ResourceDatabase:
		return "Database - managed database"
	case domain.ResourceStorage:
		return "Storage Bucket - S3 bucket"
	case domain.ResourceNetworking:
		return "Network Resource - VPC and subnets"
	}
	return t.Title()
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
