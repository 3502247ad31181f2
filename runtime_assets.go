package ogstudio

import (
	"io/fs"

	"github.com/goliatone/go-ogstudio/pkg/studio"
)

// RuntimeAssetsFS exposes the studio browser runtime and stylesheet so Go
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(ogstudio.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return studio.StaticFS()
}
