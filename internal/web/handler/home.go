package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/tictactoe-go/internal/web/templates/pages"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the form for picking a game to watch
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "Tic-tac-toe", pages.Home())
}

// Find redirects GET /games?id=... to the game's page
func (h *HomeHandler) Find(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/games/"+url.PathEscape(id), http.StatusSeeOther)
}
