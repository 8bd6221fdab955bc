// Package scalar serves the Scalar API reference for the generated
// OpenAPI document.
package scalar

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/cmyk-lab/pkg/module"
	"github.com/JaimeStill/cmyk-lab/pkg/web"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// NewModule creates the reference module at basePath, loading the
// document from specURL.
func NewModule(basePath, specURL string) (*module.Module, error) {
	var page bytes.Buffer
	if err := indexTmpl.Execute(&page, struct{ SpecURL string }{specURL}); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", web.ServeEmbeddedFile(page.Bytes(), "text/html; charset=utf-8"))

	return module.New(basePath, mux), nil
}
