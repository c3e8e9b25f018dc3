// File: internal/handlers/render.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts an answer's markdown to HTML for clients that
// render rich text. Returns empty on conversion failure; the raw markdown is
// always present alongside it.
func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return ""
	}
	return buf.String()
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
