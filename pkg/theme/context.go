package theme

import "github.com/goliatone/go-datatable/pkg/view"

// Resolution metadata injected into render contexts.
const (
	KeyTheme      = "theme"
	KeyBlockName  = "block_name"
	KeyBlockTheme = "block_theme"
	KeyDataTable  = "data_table"
	KeyAttr       = view.VarAttr
)

// BuildContext merges node variables with caller overrides, later wins. When
// resetAttr is set a non-empty inherited attr map is replaced by an empty
// one so HTML attributes do not accumulate across nested renders.
func BuildContext(vars view.Vars, overrides map[string]any, resetAttr bool) Context {
	ctx := make(Context, len(vars)+len(overrides)+2)
	for key, value := range vars {
		ctx[key] = value
	}
	for key, value := range overrides {
		ctx[key] = value
	}
	if resetAttr {
		ResetAttr(ctx)
	}
	return ctx
}

// ResetAttr clears the attr entry in place when it holds anything.
func ResetAttr(ctx Context) {
	if !isEmpty(ctx[KeyAttr]) {
		ctx[KeyAttr] = map[string]any{}
	}
}

func isEmpty(value any) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case map[string]any:
		return len(typed) == 0
	case map[string]string:
		return len(typed) == 0
	case view.Vars:
		return len(typed) == 0
	case string:
		return typed == ""
	case []any:
		return len(typed) == 0
	default:
		return false
	}
}
