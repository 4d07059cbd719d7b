package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

// Confirm asks a yes/no question and returns the answer. The default is no.
func Confirm(ctx context.Context, title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	return confirmed, nil
}
