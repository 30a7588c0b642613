package server

import (
	"sync"

	"dil-avcilari/internal/game"
)

// wsSink pushes sound cues over the room's websocket group so screens can
// play them. The room id is bound after registry assignment because the
// orchestrator needs the sink at construction time.
type wsSink struct {
	s *Server

	mu     sync.Mutex
	roomID string
}

func newWSSink(s *Server) *wsSink {
	return &wsSink{s: s}
}

func (k *wsSink) bind(roomID string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.roomID = roomID
}

func (k *wsSink) Play(cue game.Cue) {
	k.mu.Lock()
	roomID := k.roomID
	k.mu.Unlock()
	if roomID == "" || k.s.ws == nil {
		return
	}
	k.s.ws.Broadcast(roomID, map[string]any{
		"type": "sound",
		"cue":  string(cue),
	})
}
