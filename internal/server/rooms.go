package server

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"dil-avcilari/internal/game"
)

// Room pairs one orchestrator with its registry bookkeeping and the
// database ids persistence has assigned so far.
type Room struct {
	ID       string
	JoinCode string
	DBID     uint
	Orch     *game.Orchestrator

	mu          sync.Mutex
	playerDBIDs map[string]uint
	roundDBIDs  map[int]uint
}

type RoomSummary struct {
	ID       string
	JoinCode string
	Name     string
	State    game.State
	Players  int
}

// Registry owns the live rooms, addressable by id or join code.
type Registry struct {
	mu     sync.Mutex
	nextID int
	rooms  map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		nextID: 1,
		rooms:  make(map[string]*Room),
	}
}

func (r *Registry) Add(orch *game.Orchestrator) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := fmt.Sprintf("room-%d", r.nextID)
	r.nextID++
	room := &Room{
		ID:          id,
		JoinCode:    newJoinCode(),
		Orch:        orch,
		playerDBIDs: make(map[string]uint),
		roundDBIDs:  make(map[int]uint),
	}
	r.rooms[id] = room
	return room
}

// Get resolves a room by id or join code.
func (r *Registry) Get(idOrCode string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[idOrCode]; ok {
		return room, true
	}
	code := strings.ToUpper(idOrCode)
	for _, room := range r.rooms {
		if room.JoinCode == code {
			return room, true
		}
	}
	return nil, false
}

func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return errors.New("room not found")
	}
	delete(r.rooms, id)
	return nil
}

func (r *Registry) Summaries() []RoomSummary {
	r.mu.Lock()
	rooms := make([]*Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	r.mu.Unlock()

	list := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		snap := room.Orch.Snapshot()
		list = append(list, RoomSummary{
			ID:       room.ID,
			JoinCode: room.JoinCode,
			Name:     snap.Settings.RoomName,
			State:    snap.State,
			Players:  len(snap.Players),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return roomSortKey(list[i].ID) < roomSortKey(list[j].ID)
	})
	return list
}

func roomSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

func (room *Room) playerDBID(uid string) (uint, bool) {
	room.mu.Lock()
	defer room.mu.Unlock()
	id, ok := room.playerDBIDs[uid]
	return id, ok
}

func (room *Room) setPlayerDBID(uid string, id uint) {
	room.mu.Lock()
	defer room.mu.Unlock()
	room.playerDBIDs[uid] = id
}

func (room *Room) roundDBID(number int) (uint, bool) {
	room.mu.Lock()
	defer room.mu.Unlock()
	id, ok := room.roundDBIDs[number]
	return id, ok
}

func (room *Room) setRoundDBID(number int, id uint) {
	room.mu.Lock()
	defer room.mu.Unlock()
	room.roundDBIDs[number] = id
}
