package server

// EventPayload is the JSON body stored with every persisted event. Fields
// are omitted when empty so each event type only carries what it used.
type EventPayload struct {
	RoomID     string `json:"room_id,omitempty"`
	JoinCode   string `json:"join_code,omitempty"`
	PlayerID   string `json:"player_id,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
	State      string `json:"state,omitempty"`
	Stage      string `json:"stage,omitempty"`
	CardID     int    `json:"card_id,omitempty"`
	CardType   string `json:"card_type,omitempty"`
	Points     int    `json:"points,omitempty"`
	Success    bool   `json:"success,omitempty"`
	Reason     string `json:"reason,omitempty"`
}
