package ogstudio

import (
	"io/fs"

	"github.com/goliatone/go-ogstudio/pkg/studio"
)

// EmbeddedTemplates exposes the built-in studio page templates so callers
// can reuse or extend them without importing the studio package directly.
func EmbeddedTemplates() fs.FS {
	return studio.TemplatesFS()
}
