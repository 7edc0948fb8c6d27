// Package web serves the single-page upload front end: pick an exported mod
// list, get the preset text back with a copy-to-clipboard button.
package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"modpreset/internal/preset"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// MaxUploadBytes bounds the size of an uploaded document.
const MaxUploadBytes = 10 << 20

// RegisterRoutes builds the router. extractor is shared by all requests and
// must not be mutated afterwards.
func RegisterRoutes(extractor *preset.Extractor, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	h := &handler{extractor: extractor, logger: logger}

	r.Get("/", h.index)
	r.Post("/preset", h.convert)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

type handler struct {
	extractor *preset.Extractor
	logger    *log.Logger
}

// pageData feeds templates/index.html.
type pageData struct {
	Error    string
	Preset   string
	Count    int
	Filename string
}

func (h *handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		h.logger.Printf("web: render page: %v", err)
	}
}
