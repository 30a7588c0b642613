package server

import (
	"encoding/json"
	"errors"
	"time"

	"dil-avcilari/internal/db"
	"dil-avcilari/internal/game"

	"github.com/jackc/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// Persistence is best effort: every function is a no-op without a database
// connection so the server runs fully in memory when DATABASE_URL is unset.

func (s *Server) persistRoom(room *Room) error {
	if s.db == nil {
		return nil
	}
	snap := room.Orch.Snapshot()
	record := db.Room{
		RoomCode:       room.JoinCode,
		Name:           snap.Settings.RoomName,
		TargetLanguage: snap.Settings.TargetLanguage,
		Difficulty:     string(snap.Settings.Difficulty),
		Mode:           string(snap.Settings.Mode),
		State:          string(snap.State),
		MaxPlayers:     snap.Settings.MaxPlayers,
		Published:      snap.Settings.Published,
	}
	if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record).Error; err != nil {
		return err
	}
	room.DBID = record.ID
	for _, player := range snap.Players {
		if err := s.persistPlayer(room, player); err != nil {
			return err
		}
	}
	return s.persistEvent(room, "room_created", EventPayload{
		RoomID:   room.ID,
		JoinCode: room.JoinCode,
	})
}

func (s *Server) persistPlayer(room *Room, player game.Player) error {
	if s.db == nil {
		return nil
	}
	if _, ok := room.playerDBID(player.ID); ok {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	record := db.Player{
		RoomID:    room.DBID,
		PlayerUID: player.ID,
		Name:      player.Name,
		IsPatron:  player.IsPatron,
		IsBot:     player.IsBot,
		Score:     player.Score,
		Status:    string(player.Status),
		JoinedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			if existing, lookupErr := s.findPlayerDBID(room.DBID, player.Name); lookupErr == nil && existing != 0 {
				room.setPlayerDBID(player.ID, existing)
				return nil
			}
		}
		return err
	}
	room.setPlayerDBID(player.ID, record.ID)
	return s.persistEvent(room, "player_joined", EventPayload{
		PlayerID:   player.ID,
		PlayerName: player.Name,
	})
}

// persistState records the room's current phase and an event naming what
// moved it there.
func (s *Server) persistState(room *Room, eventType string) {
	if s.db == nil {
		return
	}
	snap := room.Orch.Snapshot()
	if err := s.ensureRoomDBID(room); err != nil || room.DBID == 0 {
		return
	}
	_ = s.db.Model(&db.Room{}).Where("id = ?", room.DBID).Update("state", string(snap.State)).Error
	if number := roundNumber(snap.State); number != 0 {
		if id, err := s.ensureRound(room, number, snap.State); err == nil && id != 0 {
			_ = s.db.Model(&db.Round{}).Where("id = ?", id).Update("state", string(snap.State)).Error
		}
	}
	_ = s.persistEvent(room, eventType, EventPayload{State: string(snap.State)})
}

func (s *Server) persistCard(room *Room, cardID int) error {
	if s.db == nil {
		return nil
	}
	snap := room.Orch.Snapshot()
	var card *game.Card
	for i := range snap.Cards {
		if snap.Cards[i].ID == cardID {
			card = &snap.Cards[i]
			break
		}
	}
	if card == nil || !card.Revealed {
		return nil
	}
	number := roundNumber(snap.State)
	if number == 0 {
		return nil
	}
	roundID, err := s.ensureRound(room, number, snap.State)
	if err != nil || roundID == 0 {
		return err
	}
	record := db.CardRecord{
		RoundID:   roundID,
		CardID:    card.ID,
		CardType:  string(card.Type),
		ColorName: card.ColorName,
		Content:   card.Content,
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return s.persistEvent(room, "card_opened", EventPayload{
		CardID:   card.ID,
		CardType: string(card.Type),
	})
}

func (s *Server) persistJudgment(room *Room, playerUID string, success bool) error {
	if s.db == nil {
		return nil
	}
	snap := room.Orch.Snapshot()
	var player *game.Player
	for i := range snap.Players {
		if snap.Players[i].ID == playerUID {
			player = &snap.Players[i]
			break
		}
	}
	if player == nil {
		return errors.New("player not found")
	}
	if err := s.persistPlayer(room, *player); err != nil {
		return err
	}
	playerDBID, ok := room.playerDBID(playerUID)
	if !ok {
		return errors.New("player not persisted")
	}
	var roundID *uint
	if number := roundNumber(snap.State); number != 0 {
		if id, err := s.ensureRound(room, number, snap.State); err == nil && id != 0 {
			roundID = &id
		}
	}
	record := db.Judgment{
		RoundID:  roundID,
		PlayerID: playerDBID,
		Points:   player.LastDelta,
		Success:  success,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	_ = s.db.Model(&db.Player{}).Where("id = ?", playerDBID).
		Updates(map[string]any{"score": player.Score, "status": string(player.Status)}).Error
	return s.persistEvent(room, "player_judged", EventPayload{
		PlayerID: playerUID,
		Points:   player.LastDelta,
		Success:  success,
	})
}

func (s *Server) persistEvent(room *Room, eventType string, payload EventPayload) error {
	if s.db == nil {
		return nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return err
	}
	if room.DBID == 0 {
		return errors.New("room not found")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := db.Event{
		RoomID:   room.DBID,
		RoundID:  s.resolveEventRoundID(room),
		PlayerID: s.resolveEventPlayerID(room, payload),
		Type:     eventType,
		Payload:  datatypes.JSON(data),
	}
	return s.db.Create(&event).Error
}

func (s *Server) resolveEventRoundID(room *Room) *uint {
	snap := room.Orch.Snapshot()
	number := roundNumber(snap.State)
	if number == 0 {
		return nil
	}
	id, err := s.ensureRound(room, number, snap.State)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func (s *Server) resolveEventPlayerID(room *Room, payload EventPayload) *uint {
	if payload.PlayerID == "" {
		return nil
	}
	if id, ok := room.playerDBID(payload.PlayerID); ok && id != 0 {
		return &id
	}
	return nil
}

func (s *Server) ensureRoomDBID(room *Room) error {
	if s.db == nil || room.DBID != 0 {
		return nil
	}
	var record db.Room
	if err := s.db.Where("room_code = ?", room.JoinCode).First(&record).Error; err != nil {
		return nil
	}
	room.DBID = record.ID
	return nil
}

func (s *Server) ensureRound(room *Room, number int, state game.State) (uint, error) {
	if id, ok := room.roundDBID(number); ok {
		return id, nil
	}
	if err := s.ensureRoomDBID(room); err != nil {
		return 0, err
	}
	if room.DBID == 0 {
		return 0, errors.New("room not found")
	}
	record := db.Round{
		RoomID: room.DBID,
		Number: number,
		State:  string(state),
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			var existing db.Round
			if lookupErr := s.db.Where("room_id = ? AND number = ?", room.DBID, number).First(&existing).Error; lookupErr == nil {
				room.setRoundDBID(number, existing.ID)
				return existing.ID, nil
			}
		}
		return 0, err
	}
	room.setRoundDBID(number, record.ID)
	return record.ID, nil
}

func (s *Server) findPlayerDBID(roomDBID uint, name string) (uint, error) {
	var record db.Player
	if err := s.db.Where("room_id = ? AND name = ?", roomDBID, name).First(&record).Error; err != nil {
		return 0, err
	}
	return record.ID, nil
}

func roundNumber(state game.State) int {
	switch state {
	case game.StateRound1:
		return 1
	case game.StateRound2:
		return 2
	case game.StateRound3:
		return 3
	default:
		return 0
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
