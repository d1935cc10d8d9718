package prompt

import (
	"context"
	"fmt"
)

// ThemeChoice is the outcome of PickThemes.
type ThemeChoice struct {
	Themes []string
	// Only replaces the table's stack instead of appending to it.
	Only bool
}

// PickThemes asks which of the available themes to stack, which of them
// wins block lookups, and whether the choice replaces the table's stack.
// Themes already on the stack are preselected. Picking nothing keeps current.
func PickThemes(ctx context.Context, driver Driver, available, current []string) (ThemeChoice, error) {
	if driver == nil {
		return ThemeChoice{}, fmt.Errorf("prompt: driver is nil")
	}
	if len(available) == 0 {
		return ThemeChoice{}, fmt.Errorf("prompt: no themes available")
	}

	picked, err := driver.MultiSelect(ctx, SelectConfig{
		Message:  "Themes to stack",
		Options:  available,
		Defaults: indicesOf(available, current),
		Help:     "Later themes override blocks of earlier ones.",
	})
	if err != nil {
		return ThemeChoice{}, err
	}
	themes := defaultsFromIndices(available, picked)
	if len(themes) == 0 {
		return ThemeChoice{Themes: append([]string(nil), current...)}, nil
	}

	if len(themes) > 1 {
		winner, err := driver.Select(ctx, SelectConfig{
			Message:      "Theme that wins block lookups",
			Options:      themes,
			DefaultIndex: len(themes) - 1,
		})
		if err != nil {
			return ThemeChoice{}, err
		}
		themes = moveLast(themes, winner)
	}

	only, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Replace the table's theme stack?",
		Default: true,
	})
	if err != nil {
		return ThemeChoice{}, err
	}
	return ThemeChoice{Themes: themes, Only: only}, nil
}

func moveLast(values []string, idx int) []string {
	if idx < 0 || idx >= len(values)-1 {
		return values
	}
	out := make([]string, 0, len(values))
	out = append(out, values[:idx]...)
	out = append(out, values[idx+1:]...)
	return append(out, values[idx])
}
