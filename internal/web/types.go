package web

// RoomSummary is the slice element pushed to the home screen over the
// lobby websocket.
type RoomSummary struct {
	ID       string `json:"id"`
	JoinCode string `json:"join_code"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Players  int    `json:"players"`
}
