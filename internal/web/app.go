// Package web serves the browser UI and the JSON search API.
package web

import (
	_ "embed"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/phyten/findx/internal/match"
)

const (
	stylesPath = "/assets/styles.css"
	scriptPath = "/assets/ui.js"

	indexCSP = "default-src 'none'; style-src 'self'; script-src 'self'; img-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'"
)

var (
	//go:embed templates/index.html
	indexHTML string
	//go:embed assets/styles.css
	stylesCSS string
	//go:embed assets/ui.js
	scriptJS string

	indexTmpl = template.Must(template.New("index").Parse(indexHTML))
)

type indexData struct {
	StylesPath string
	ScriptPath string
	RootName   string
	Algorithms []string
}

// Register mounts the UI and the search endpoints for root on mux.
func Register(mux *http.ServeMux, root string) {
	mux.Handle("/", indexHandler(root))
	mux.Handle(stylesPath, assetHandler("text/css; charset=utf-8", stylesCSS))
	mux.Handle(scriptPath, assetHandler("application/javascript; charset=utf-8", scriptJS))
	mux.HandleFunc("/api/search", SearchHandler(root))
	mux.HandleFunc("/api/search/stream", StreamHandler(root))
}

func indexHandler(root string) http.Handler {
	data := indexData{
		StylesPath: stylesPath,
		ScriptPath: scriptPath,
		RootName:   filepath.Base(root),
		Algorithms: match.AlgorithmNames(),
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if !allowMethod(w, r) {
			return
		}
		h := w.Header()
		setSecurityHeaders(h)
		h.Set("Content-Type", "text/html; charset=utf-8")
		h.Set("Content-Security-Policy", indexCSP)
		if err := indexTmpl.Execute(w, data); err != nil {
			http.Error(w, "template rendering failed", http.StatusInternalServerError)
		}
	})
}

func assetHandler(contentType, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}
		h := w.Header()
		setSecurityHeaders(h)
		h.Set("Content-Type", contentType)
		h.Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write([]byte(body))
	})
}

func setSecurityHeaders(h http.Header) {
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Referrer-Policy", "no-referrer")
	h.Set("X-Frame-Options", "DENY")
}
