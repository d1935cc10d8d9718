package datatable

import (
	"io/fs"

	"github.com/goliatone/go-datatable/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla themes so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedAssets exposes the default stylesheet.
//
// Typical mount:
//
//	mux.Handle("/datatable/",
//	  http.StripPrefix("/datatable/",
//	    http.FileServerFS(datatable.EmbeddedAssets()),
//	  ),
//	)
func EmbeddedAssets() fs.FS {
	return vanilla.AssetsFS()
}
