package server

import (
	"net/http"

	"dil-avcilari/internal/web"

	"github.com/a-h/templ"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	templ.Handler(web.Home(s.homeSummaries())).ServeHTTP(w, r)
}
