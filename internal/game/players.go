package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

func (o *Orchestrator) playerIndexLocked(id string) int {
	for i := range o.players {
		if o.players[i].ID == id {
			return i
		}
	}
	return -1
}

func (o *Orchestrator) hasPatronLocked() bool {
	for _, p := range o.players {
		if p.IsPatron {
			return true
		}
	}
	return false
}

func randomTeam() Team {
	if rand.IntN(2) == 0 {
		return TeamKing
	}
	return TeamQueen
}

// AddPlayer adds a participant. The first player in an empty room (or an
// explicit forcePatron when no patron exists yet) becomes the patron; the
// roster never holds two patrons or duplicate ids.
func (o *Orchestrator) AddPlayer(name string, forcePatron bool, existingID string) *Player {
	o.mu.Lock()
	player := o.addPlayerLocked(name, forcePatron, existingID, nil, false)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return player
}

// AddBot seeds a roster entry from the social store.
func (o *Orchestrator) AddBot(id, name string, badges []string) *Player {
	o.mu.Lock()
	for i := range o.players {
		if o.players[i].Name == name {
			o.mu.Unlock()
			return nil
		}
	}
	player := o.addPlayerLocked(name, false, id, badges, true)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	return player
}

func (o *Orchestrator) addPlayerLocked(name string, forcePatron bool, existingID string, badges []string, isBot bool) *Player {
	id := existingID
	if id == "" {
		id = uuid.New().String()
	}
	if idx := o.playerIndexLocked(id); idx != -1 {
		return &o.players[idx]
	}
	player := Player{
		ID:       id,
		Name:     name,
		Status:   StatusActive,
		IsPatron: (forcePatron || len(o.players) == 0) && !o.hasPatronLocked(),
		Team:     randomTeam(),
		Badges:   badges,
		IsBot:    isBot,
	}
	o.players = append(o.players, player)
	if len(o.players) > 1 {
		o.sound.Play(CueTick)
	}
	return &o.players[len(o.players)-1]
}

// KickPlayer removes a player from the roster. The patron cannot be kicked.
func (o *Orchestrator) KickPlayer(id string) {
	o.mu.Lock()
	idx := o.playerIndexLocked(id)
	if idx == -1 || o.players[idx].IsPatron {
		o.mu.Unlock()
		return
	}
	if o.activePlayerID == id {
		o.activePlayerID = ""
	}
	o.players = append(o.players[:idx], o.players[idx+1:]...)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) ToggleMute(id string) {
	o.mu.Lock()
	if idx := o.playerIndexLocked(id); idx != -1 {
		o.players[idx].Muted = !o.players[idx].Muted
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) MuteAll(mute bool) {
	o.mu.Lock()
	for i := range o.players {
		if !o.players[i].IsPatron {
			o.players[i].Muted = mute
		}
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// SetPlayerOnStage stages a contestant for the next card. Eliminated players
// and players who already used their turn (outside round 3) are refused with
// a failure cue; staging is also refused while a card is mid-resolution.
func (o *Orchestrator) SetPlayerOnStage(id string) {
	o.mu.Lock()
	idx := o.playerIndexLocked(id)
	if idx == -1 {
		o.mu.Unlock()
		return
	}
	if o.players[idx].Status == StatusEliminated {
		o.sound.Play(CueFail)
		o.addLogLocked(fmt.Sprintf("UYARI: %s elendi.", o.players[idx].Name))
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return
	}
	if o.players[idx].HasPlayedInRound && o.state != StateRound3 {
		o.sound.Play(CueFail)
		o.addLogLocked(fmt.Sprintf("UYARI: %s bu turu tamamladı.", o.players[idx].Name))
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return
	}
	if o.activeCardID == 0 || o.state == StateRound3 {
		o.players[idx].Muted = false
		o.activePlayerID = id
		o.sound.Play(CueOrbClick)
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) DropPlayerFromStage() {
	o.mu.Lock()
	o.dropPlayerFromStageLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// dropPlayerFromStageLocked un-stages the current player, leaving them muted.
func (o *Orchestrator) dropPlayerFromStageLocked() {
	if o.activePlayerID != "" {
		if idx := o.playerIndexLocked(o.activePlayerID); idx != -1 {
			o.players[idx].Muted = true
		}
	}
	o.activePlayerID = ""
	o.sound.Play(CueTensionStop)
}

// UpdateScore applies a generic score delta, used by round 3 and joker
// flows. Crossing the elimination threshold flips status immediately.
func (o *Orchestrator) UpdateScore(id string, delta int) {
	o.mu.Lock()
	o.applyScoreLocked(id, delta)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

const eliminationThreshold = -50

func (o *Orchestrator) applyScoreLocked(id string, delta int) {
	idx := o.playerIndexLocked(id)
	if idx == -1 {
		return
	}
	o.players[idx].Score += delta
	o.players[idx].LastDelta = delta
	o.players[idx].LastDeltaAt = time.Now()
	if o.players[idx].Score <= eliminationThreshold && o.players[idx].Status == StatusActive {
		o.players[idx].Status = StatusEliminated
		o.addLogLocked(fmt.Sprintf("%s elendi.", o.players[idx].Name))
	}
}

func (o *Orchestrator) Players() []Player {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Player(nil), o.players...)
}
