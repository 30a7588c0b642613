package server

import "dil-avcilari/internal/game"

// snapshotPayload wraps an orchestrator snapshot with the room's addressing
// so websocket clients and HTTP callers see the same shape.
func snapshotPayload(room *Room, snap game.Snapshot) map[string]any {
	return map[string]any{
		"type":      "snapshot",
		"room_id":   room.ID,
		"join_code": room.JoinCode,
		"snapshot":  snap,
	}
}
