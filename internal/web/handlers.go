package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	"modpreset/internal/preset"
)

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageData{})
}

// convert handles the upload form. The response is the HTML page, or plain
// text when the request asks for ?format=text.
func (h *handler) convert(w http.ResponseWriter, r *http.Request) {
	uploadID := uuid.NewString()
	w.Header().Set("X-Upload-ID", uploadID)
	asText := r.URL.Query().Get("format") == "text"

	fail := func(status int, msg string) {
		if asText {
			http.Error(w, msg, status)
			return
		}
		h.render(w, status, pageData{Error: msg})
	}

	if r.ContentLength > MaxUploadBytes {
		fail(http.StatusRequestEntityTooLarge, "File is too large.")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(http.StatusRequestEntityTooLarge, "File is too large.")
			return
		}
		fail(http.StatusBadRequest, "No file uploaded.")
		return
	}
	defer file.Close()

	if err := preset.CheckKind(header.Filename); err != nil {
		h.logger.Printf("web: upload=%s rejected: %v", uploadID, err)
		fail(http.StatusBadRequest, preset.UserMessage(err))
		return
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		fail(http.StatusBadRequest, "Could not read the uploaded file.")
		return
	}

	p, err := h.extractor.Extract(&buf)
	if err != nil {
		h.logger.Printf("web: upload=%s file=%q extract: %v", uploadID, header.Filename, err)
		fail(http.StatusUnprocessableEntity, preset.UserMessage(err))
		return
	}
	h.logger.Printf("web: upload=%s file=%q mods=%d", uploadID, header.Filename, len(p))

	if asText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName(header.Filename)))
		_, _ = io.WriteString(w, p.String())
		return
	}

	h.render(w, http.StatusOK, pageData{
		Preset:   p.String(),
		Count:    len(p),
		Filename: header.Filename,
	})
}

// downloadName derives the text download name from the uploaded file name,
// e.g. "Operation Nightfall.html" -> "operation_nightfall.txt".
func downloadName(uploaded string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	name := strcase.ToSnake(base)
	if name == "" {
		name = "preset"
	}
	return name + ".txt"
}
