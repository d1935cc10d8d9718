package theme

import (
	"fmt"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// DefaultManifestKey is the manifest template key holding the data table
// theme of a go-theme manifest.
const DefaultManifestKey = "datatable.theme"

// StackFromSelection converts a go-theme selection into a theme stack: the
// manifest's own template for key first, then the template the selected
// variant resolves to when it differs, so the variant overrides its base.
func StackFromSelection(selection *gotheme.Selection, key string) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultManifestKey
	}

	base := gotheme.Selection{Theme: selection.Theme, Manifest: selection.Manifest}.Template(key, "")
	selected := selection.Template(key, "")

	var stack []string
	if base != "" {
		stack = append(stack, base)
	}
	if selected != "" && selected != base {
		stack = append(stack, selected)
	}
	return stack
}

// SelectStack asks selector for name/variant and returns the selection
// together with the stack it contributes.
func SelectStack(selector gotheme.ThemeSelector, name, variant, key string) (*gotheme.Selection, []string, error) {
	if selector == nil {
		return nil, nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, nil, fmt.Errorf("theme: select %q/%q: %w", name, variant, err)
	}
	return selection, StackFromSelection(selection, key), nil
}
