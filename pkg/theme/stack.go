package theme

import (
	"github.com/goliatone/go-datatable/pkg/view"
)

// SetThemes updates the theme stack stored on the root of node. With only set
// the stack is replaced; otherwise themes are appended after the existing
// entries. Identifiers are not checked here, a missing theme only surfaces
// when a block is resolved.
func SetThemes(node *view.View, themes []string, only bool) {
	root := node.DataTable()
	if root == nil {
		return
	}
	if root.Vars == nil {
		root.Vars = view.Vars{}
	}
	if only {
		root.Vars[view.VarThemes] = append([]string(nil), themes...)
		return
	}
	current := Themes(root)
	stack := make([]string, 0, len(current)+len(themes))
	stack = append(stack, current...)
	stack = append(stack, themes...)
	root.Vars[view.VarThemes] = stack
}

// Themes returns the stack visible to node, which is always the one stored
// on its data table root.
func Themes(node *view.View) []string {
	root := node.DataTable()
	if root == nil {
		return nil
	}
	return root.Vars.Strings(view.VarThemes)
}

// ParseThemeList validates a caller supplied themes override. Empty values
// (nil, "", empty lists) report ok=false without error; anything else must
// be a list of strings.
func ParseThemeList(value any) ([]string, bool, error) {
	switch typed := value.(type) {
	case nil:
		return nil, false, nil
	case string:
		if typed == "" {
			return nil, false, nil
		}
		return nil, false, &InvalidThemeListError{Value: value}
	case []string:
		if len(typed) == 0 {
			return nil, false, nil
		}
		return append([]string(nil), typed...), true, nil
	case []any:
		if len(typed) == 0 {
			return nil, false, nil
		}
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil, false, &InvalidThemeListError{Value: value}
			}
			out = append(out, s)
		}
		return out, true, nil
	default:
		return nil, false, &InvalidThemeListError{Value: value}
	}
}

// ApplyOverride replaces the stack of node's data table with
// overrides["themes"] when that value is a non-empty list. The override is
// validated before anything is resolved.
func ApplyOverride(node *view.View, overrides map[string]any) (bool, error) {
	if len(overrides) == 0 {
		return false, nil
	}
	themes, ok, err := ParseThemeList(overrides[view.VarThemes])
	if err != nil || !ok {
		return false, err
	}
	SetThemes(node, themes, true)
	return true, nil
}
