// Package theme resolves named template blocks against an ordered stack of
// themes. A theme is any template the configured Environment can load; the
// stack lives on the root data table view and later entries override earlier
// ones.
//
// Two lookups are provided. RenderBlock scans the stack in reverse for a
// single block name, so the last registered theme wins. Decorate walks a
// fallback chain of candidate names (most specific first) and, for each
// candidate, scans the stack in registration order; the first hit is frozen
// into the context as block_name and block_theme for RenderDecorated.
package theme
