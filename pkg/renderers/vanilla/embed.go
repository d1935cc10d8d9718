package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const StylesheetName = "datatable-vanilla.css"

// Built-in theme identifiers.
const (
	ThemeBase    = "base"
	ThemeCompact = "compact"
)

// TemplatesFS exposes the embedded themes, one file per theme, for callers
// that want to stack their own themes on top of the built-in ones.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the embedded stylesheet so callers can serve it over HTTP
// or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// Should never happen, but fall back to raw FS so assets remain usable.
		return embeddedAssets
	}
	return sub
}

func defaultStylesheet() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
}
