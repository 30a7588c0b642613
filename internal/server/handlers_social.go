package server

import (
	"net/http"
)

type chatRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSocialUsers(w http.ResponseWriter, r *http.Request) {
	if s.social == nil {
		writeJSON(w, http.StatusOK, map[string]any{"users": []any{}})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": s.social.All()})
}

func (s *Server) handleToggleFriend(w http.ResponseWriter, r *http.Request) {
	if s.social == nil {
		writeError(w, http.StatusNotFound, "social roster unavailable")
		return
	}
	id := r.PathValue("id")
	if err := s.social.ToggleFriend(id); err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	user, _ := s.social.GetByID(id)
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	if s.social == nil {
		writeError(w, http.StatusNotFound, "social roster unavailable")
		return
	}
	id := r.PathValue("id")
	if _, ok := s.social.GetByID(id); !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": s.social.ChatHistory(id)})
}

func (s *Server) handleSendChat(w http.ResponseWriter, r *http.Request) {
	if s.social == nil {
		writeError(w, http.StatusNotFound, "social roster unavailable")
		return
	}
	var req chatRequest
	if err := readJSON(r.Body, &req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	messages, err := s.social.SendMessage(r.PathValue("id"), req.Text)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}
