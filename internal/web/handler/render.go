package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/mcoot/tictactoe-go/internal/web/templates/layout"
)

// render writes a full HTML page with the given status
func render(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = layout.Base(title, body).Render(r.Context(), w)
}
