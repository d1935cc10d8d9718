// Package datatable turns a table definition plus its current state (rows,
// sorting, filters, pagination, personalization) into the view tree consumed
// by the theme resolver. It deliberately stops at snapshotting: queries,
// sorting and exporting happen upstream, this package only records their
// outcome in view variables.
//
// Column and action types form a single-parent hierarchy. A type's block
// prefixes are its name followed by its ancestors, ending with the category
// ("column" or "action"), which is what the fallback chain builder in
// package theme expects.
package datatable
