package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-datatable/pkg/datatable"
)

// Transformer mutates a table before its view is built. Implementations can
// relabel columns, hide them, or perform arbitrary rewrites.
type Transformer interface {
	Transform(ctx context.Context, table *datatable.Table) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, table *datatable.Table) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, table *datatable.Table) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, table)
}

// JSONPresetTransformer applies declarative overrides loaded from a JSON file.
// The document shape supports table-level settings and per-column and
// per-action patches:
//
//	{
//	  "title": "Catalogue",
//	  "themes": ["base", "compact"],
//	  "columns": {
//	    "price": {"label": "Unit price", "priority": -1, "options": {"currency": "USD"}}
//	  },
//	  "actions": {"create": {"label": "New product"}}
//	}
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title   string                     `json:"title"`
	Themes  []string                   `json:"themes"`
	Attr    map[string]any             `json:"attr"`
	Columns map[string]jsonColumnPatch `json:"columns"`
	Actions map[string]jsonActionPatch `json:"actions"`
}

type jsonColumnPatch struct {
	Label    string         `json:"label"`
	Hidden   *bool          `json:"hidden"`
	Sortable *bool          `json:"sortable"`
	Priority *int           `json:"priority"`
	Options  map[string]any `json:"options"`
	Attr     map[string]any `json:"attr"`
}

type jsonActionPatch struct {
	Label   string         `json:"label"`
	Href    string         `json:"href"`
	Confirm string         `json:"confirm"`
	Attr    map[string]any `json:"attr"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied table.
func (t *JSONPresetTransformer) Transform(ctx context.Context, table *datatable.Table) error {
	if table == nil {
		return errors.New("json preset transformer: table is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	if doc.Title != "" {
		table.Title = doc.Title
	}
	if len(doc.Themes) > 0 {
		table.Themes = append([]string(nil), doc.Themes...)
	}
	if len(doc.Attr) > 0 {
		table.Attr = mergeMap(table.Attr, doc.Attr)
	}

	for name, patch := range doc.Columns {
		idx := findColumn(table.Columns, name)
		if idx < 0 {
			return fmt.Errorf("json preset transformer: column %q not found", name)
		}
		applyColumnPatch(&table.Columns[idx], patch)
	}
	for name, patch := range doc.Actions {
		idx := findAction(table.Actions, name)
		if idx < 0 {
			return fmt.Errorf("json preset transformer: action %q not found", name)
		}
		applyActionPatch(&table.Actions[idx], patch)
	}
	return nil
}

func applyColumnPatch(col *datatable.Column, patch jsonColumnPatch) {
	if patch.Label != "" {
		col.Label = patch.Label
	}
	if patch.Hidden != nil {
		col.Hidden = *patch.Hidden
	}
	if patch.Sortable != nil {
		col.Sortable = *patch.Sortable
	}
	if patch.Priority != nil {
		col.Priority = *patch.Priority
	}
	if len(patch.Options) > 0 {
		col.Options = mergeMap(col.Options, patch.Options)
	}
	if len(patch.Attr) > 0 {
		col.Attr = mergeMap(col.Attr, patch.Attr)
	}
}

func applyActionPatch(action *datatable.Action, patch jsonActionPatch) {
	if patch.Label != "" {
		action.Label = patch.Label
	}
	if patch.Href != "" {
		action.Href = patch.Href
	}
	if patch.Confirm != "" {
		action.Confirm = patch.Confirm
	}
	if len(patch.Attr) > 0 {
		action.Attr = mergeMap(action.Attr, patch.Attr)
	}
}

func findColumn(columns []datatable.Column, name string) int {
	for idx := range columns {
		if columns[idx].Name == name {
			return idx
		}
	}
	return -1
}

func findAction(actions []datatable.Action, name string) int {
	for idx := range actions {
		if actions[idx].Name == name {
			return idx
		}
	}
	return -1
}

// mergeMap returns a copy of dst with src applied, leaving both inputs
// untouched.
func mergeMap(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for key, value := range dst {
		out[key] = value
	}
	for key, value := range src {
		out[key] = value
	}
	return out
}
