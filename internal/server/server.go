package server

import (
	"net/http"

	"dil-avcilari/internal/config"
	"dil-avcilari/internal/game"
	"dil-avcilari/internal/social"

	"gorm.io/gorm"
)

type Server struct {
	registry *Registry
	db       *gorm.DB
	ws       *wsHub
	homeWS   *homeHub
	cfg      config.Config
	gen      game.Generator
	social   *social.Store
}

func New(conn *gorm.DB, cfg config.Config, gen game.Generator, roster *social.Store) *Server {
	return &Server{
		registry: NewRegistry(),
		db:       conn,
		ws:       newWSHub(),
		homeWS:   newHomeHub(),
		cfg:      cfg,
		gen:      gen,
		social:   roster,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /api/rooms", s.handleListRooms)
	mux.HandleFunc("POST /api/rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /api/rooms/{id}", s.handleRoomSnapshot)
	mux.HandleFunc("GET /api/rooms/{id}/qr", s.handleRoomQR)
	mux.HandleFunc("POST /api/rooms/{id}/{command}", s.handleRoomCommand)
	mux.HandleFunc("GET /api/social/users", s.handleSocialUsers)
	mux.HandleFunc("POST /api/social/users/{id}/friend", s.handleToggleFriend)
	mux.HandleFunc("GET /api/social/users/{id}/chat", s.handleChatHistory)
	mux.HandleFunc("POST /api/social/users/{id}/chat", s.handleSendChat)
	mux.HandleFunc("GET /ws/rooms/{id}", s.handleWebsocket)
	mux.HandleFunc("GET /ws/home", s.handleHomeWebsocket)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	return mux
}

// attachRoom wires a freshly created room into the websocket hub so every
// orchestrator mutation reaches connected screens.
func (s *Server) attachRoom(room *Room) {
	room.Orch.Subscribe(func(snap game.Snapshot) {
		s.ws.Broadcast(room.ID, snapshotPayload(room, snap))
		s.broadcastHomeUpdate()
	})
}
