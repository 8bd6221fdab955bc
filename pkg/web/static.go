package web

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/JaimeStill/cmyk-lab/pkg/routes"
)

// DistServer serves files under subdir of fsys at urlPrefix.
func DistServer(fsys fs.FS, subdir, urlPrefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return http.NotFound
	}
	server := http.StripPrefix(urlPrefix, http.FileServerFS(sub))
	return server.ServeHTTP
}

// PublicFile serves a single file from subdir of fsys.
func PublicFile(fsys fs.FS, subdir, name string) http.HandlerFunc {
	filePath := path.Join(subdir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, fsys, filePath)
	}
}

// PublicFileRoutes creates a GET route at "/<name>" for each named file.
func PublicFileRoutes(fsys fs.FS, subdir string, names ...string) []routes.Route {
	out := make([]routes.Route, 0, len(names))
	for _, name := range names {
		out = append(out, routes.Route{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: PublicFile(fsys, subdir, name),
		})
	}
	return out
}

// ServeEmbeddedFile serves data with a fixed content type.
func ServeEmbeddedFile(data []byte, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}
