package view

import "strings"

// Kind identifies which UI fragment a view node represents.
type Kind string

// Built-in view kinds.
const (
	KindDataTable    Kind = "data_table"
	KindHeaderRow    Kind = "header_row"
	KindValueRow     Kind = "value_row"
	KindColumnHeader Kind = "column_header"
	KindColumnValue  Kind = "column_value"
	KindAction       Kind = "action"
	KindPagination   Kind = "pagination"
	KindFilter       Kind = "filter"
	KindForm         Kind = "form"
)

// Well-known variable names shared between the snapshot builder, the theme
// resolver and the bundled templates.
const (
	VarThemes        = "themes"
	VarAttr          = "attr"
	VarBlockPrefixes = "block_prefixes"
	VarPagination    = "pagination"
	VarName          = "name"
)

// Vars holds the named variables exposed to templates for a node.
type Vars map[string]any

// Clone returns a shallow copy of the variables.
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// String returns the string stored under key, or "" when missing.
func (v Vars) String(key string) string {
	if v == nil {
		return ""
	}
	if s, ok := v[key].(string); ok {
		return s
	}
	return ""
}

// Strings returns the string list stored under key. []any values holding
// only strings are accepted as well.
func (v Vars) Strings(key string) []string {
	if v == nil {
		return nil
	}
	switch typed := v[key].(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

// View is one renderable UI fragment. Parent is a back-reference only; the
// parent owns its Children.
type View struct {
	Kind     Kind
	Vars     Vars
	Parent   *View
	Children []*View
}

// New creates a node of the given kind and attaches it to parent when one is
// supplied.
func New(kind Kind, parent *View) *View {
	node := &View{
		Kind:   kind,
		Vars:   Vars{},
		Parent: parent,
	}
	if parent != nil {
		parent.Children = append(parent.Children, node)
	}
	return node
}

// Root walks parent links up to the top-most node.
func (v *View) Root() *View {
	if v == nil {
		return nil
	}
	node := v
	for node.Parent != nil {
		node = node.Parent
	}
	return node
}

// DataTable returns the closest data table ancestor (including the node
// itself), falling back to the root.
func (v *View) DataTable() *View {
	for node := v; node != nil; node = node.Parent {
		if node.Kind == KindDataTable {
			return node
		}
	}
	return v.Root()
}

// BlockPrefixes returns the ordered block name prefixes, most specific first.
func (v *View) BlockPrefixes() []string {
	if v == nil {
		return nil
	}
	return v.Vars.Strings(VarBlockPrefixes)
}

// ChildrenOf returns the direct children with the requested kind.
func (v *View) ChildrenOf(kind Kind) []*View {
	if v == nil {
		return nil
	}
	var out []*View
	for _, child := range v.Children {
		if child.Kind == kind {
			out = append(out, child)
		}
	}
	return out
}

// Child returns the first direct child with the requested kind and name. An
// empty name matches any child of that kind.
func (v *View) Child(kind Kind, name string) *View {
	if v == nil {
		return nil
	}
	name = strings.TrimSpace(name)
	for _, child := range v.Children {
		if child.Kind != kind {
			continue
		}
		if name == "" || child.Vars.String(VarName) == name {
			return child
		}
	}
	return nil
}
