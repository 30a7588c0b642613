package server

import (
	"log"
	"net/http"

	"dil-avcilari/internal/game"
)

type createRoomRequest struct {
	Name           string `json:"name"`
	HostName       string `json:"host_name"`
	TargetLanguage string `json:"target_language"`
	Difficulty     string `json:"difficulty"`
	MaxPlayers     int    `json:"max_players"`
	Mode           string `json:"mode"`
	Private        bool   `json:"private"`
}

type joinRequest struct {
	Name string `json:"name"`
}

type botsRequest struct {
	Count int `json:"count"`
}

type cardRequest struct {
	CardID int `json:"card_id"`
}

type judgeRequest struct {
	Success bool `json:"success"`
}

type stageRequest struct {
	PlayerID string `json:"player_id"`
}

type round3StageRequest struct {
	Stage string `json:"stage"`
}

type round3JudgeRequest struct {
	PlayerID string `json:"player_id"`
	Success  bool   `json:"success"`
}

type muteRequest struct {
	PlayerID string `json:"player_id"`
	All      bool   `json:"all"`
	Mute     bool   `json:"mute"`
}

type scoreRequest struct {
	PlayerID string `json:"player_id"`
	Delta    int    `json:"delta"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sink := newWSSink(s)
	orch := game.New(s.gen, sink, s.cfg.Timing())
	room := s.registry.Add(orch)
	sink.bind(room.ID)
	s.attachRoom(room)
	orch.CreateRoom(game.Settings{
		RoomName:       req.Name,
		TargetLanguage: req.TargetLanguage,
		Difficulty:     game.Difficulty(req.Difficulty),
		MaxPlayers:     req.MaxPlayers,
		Mode:           game.Mode(req.Mode),
		Private:        req.Private,
	}, "", req.HostName)
	if err := s.persistRoom(room); err != nil {
		log.Printf("persist room failed room_id=%s error=%v", room.ID, err)
	}
	log.Printf("room created room_id=%s join_code=%s", room.ID, room.JoinCode)
	writeJSON(w, http.StatusCreated, map[string]any{
		"room_id":   room.ID,
		"join_code": room.JoinCode,
		"snapshot":  snapshotPayload(room, orch.Snapshot()),
	})
	s.broadcastHomeUpdate()
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.registry.Summaries()})
}

func (s *Server) handleRoomSnapshot(w http.ResponseWriter, r *http.Request) {
	room, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, snapshotPayload(room, room.Orch.Snapshot()))
}

func (s *Server) handleRoomCommand(w http.ResponseWriter, r *http.Request) {
	room, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch r.PathValue("command") {
	case "join":
		s.handleJoin(w, r, room)
	case "bots":
		s.handleAddBots(w, r, room)
	case "publish":
		room.Orch.PublishRoom()
		s.respondSnapshot(w, room)
	case "start":
		s.handleStart(w, r, room)
	case "open":
		s.handleOpenCard(w, r, room)
	case "judge":
		s.handleJudge(w, r, room)
	case "stage":
		s.handleStage(w, r, room)
	case "unstage":
		room.Orch.DropPlayerFromStage()
		s.respondSnapshot(w, room)
	case "prepare":
		room.Orch.StartNextRoundPreparation()
		s.persistState(room, "round_prepared")
		s.respondSnapshot(w, room)
	case "proceed":
		room.Orch.ProceedToNextRound()
		s.persistState(room, "round_proceeded")
		s.respondSnapshot(w, room)
	case "round3-stage":
		s.handleRound3Stage(w, r, room)
	case "round3-judge":
		s.handleRound3Judge(w, r, room)
	case "finalize":
		room.Orch.FinalizeRound3()
		s.persistState(room, "round3_finalized")
		s.respondSnapshot(w, room)
	case "joker":
		s.handleJoker(w, r, room)
	case "kick":
		s.handleKick(w, r, room)
	case "mute":
		s.handleMute(w, r, room)
	case "score":
		s.handleScore(w, r, room)
	case "winner":
		s.handleWinner(w, r, room)
	case "restart":
		room.Orch.RestartGame()
		s.persistState(room, "game_restarted")
		s.respondSnapshot(w, room)
	case "reset":
		room.Orch.ResetGame()
		s.persistState(room, "game_reset")
		s.respondSnapshot(w, room)
	case "leave":
		room.Orch.LeaveGame()
		s.persistState(room, "game_left")
		s.respondSnapshot(w, room)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) respondSnapshot(w http.ResponseWriter, room *Room) {
	writeJSON(w, http.StatusOK, snapshotPayload(room, room.Orch.Snapshot()))
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request, room *Room) {
	var req joinRequest
	if err := readJSON(r.Body, &req); err != nil || req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	snap := room.Orch.Snapshot()
	if snap.State != game.StateLobby {
		writeError(w, http.StatusConflict, "game already started")
		return
	}
	if snap.Settings.MaxPlayers > 0 && len(snap.Players) >= snap.Settings.MaxPlayers {
		writeError(w, http.StatusConflict, "room full")
		return
	}
	player := room.Orch.AddPlayer(req.Name, false, "")
	if player == nil {
		writeError(w, http.StatusConflict, "could not join")
		return
	}
	if err := s.persistPlayer(room, *player); err != nil {
		log.Printf("persist player failed room_id=%s player_id=%s error=%v", room.ID, player.ID, err)
	}
	log.Printf("player joined room_id=%s player_id=%s name=%s", room.ID, player.ID, player.Name)
	writeJSON(w, http.StatusOK, map[string]any{
		"player_id": player.ID,
		"snapshot":  snapshotPayload(room, room.Orch.Snapshot()),
	})
}

func (s *Server) handleAddBots(w http.ResponseWriter, r *http.Request, room *Room) {
	var req botsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if s.social == nil {
		writeError(w, http.StatusConflict, "no bot roster available")
		return
	}
	added := 0
	for _, bot := range s.social.RandomBots(req.Count) {
		player := room.Orch.AddBot(bot.ID, bot.Username, bot.Achievements)
		if player == nil {
			continue
		}
		added++
		if err := s.persistPlayer(room, *player); err != nil {
			log.Printf("persist player failed room_id=%s player_id=%s error=%v", room.ID, player.ID, err)
		}
	}
	log.Printf("bots added room_id=%s count=%d", room.ID, added)
	s.respondSnapshot(w, room)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request, room *Room) {
	snap := room.Orch.Snapshot()
	if len(snap.Players) < 2 {
		writeError(w, http.StatusConflict, "at least two players required")
		return
	}
	room.Orch.StartGame()
	s.persistState(room, "game_started")
	log.Printf("game started room_id=%s players=%d", room.ID, len(snap.Players))
	s.respondSnapshot(w, room)
}

func (s *Server) handleOpenCard(w http.ResponseWriter, r *http.Request, room *Room) {
	var req cardRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	room.Orch.OpenCard(req.CardID)
	if err := s.persistCard(room, req.CardID); err != nil {
		log.Printf("persist card failed room_id=%s card_id=%d error=%v", room.ID, req.CardID, err)
	}
	s.respondSnapshot(w, room)
}

func (s *Server) handleJudge(w http.ResponseWriter, r *http.Request, room *Room) {
	var req judgeRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	staged := room.Orch.Snapshot().ActivePlayerID
	room.Orch.JudgeActivePlayer(req.Success)
	if staged != "" {
		if err := s.persistJudgment(room, staged, req.Success); err != nil {
			log.Printf("persist judgment failed room_id=%s player_id=%s error=%v", room.ID, staged, err)
		}
	}
	s.respondSnapshot(w, room)
}

func (s *Server) handleStage(w http.ResponseWriter, r *http.Request, room *Room) {
	var req stageRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.SetPlayerOnStage(req.PlayerID)
	s.respondSnapshot(w, room)
}

func (s *Server) handleRound3Stage(w http.ResponseWriter, r *http.Request, room *Room) {
	var req round3StageRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	stage := game.Round3Stage(req.Stage)
	switch stage {
	case game.StageWrongWord, game.StageQuery, game.StageRiddle:
	default:
		writeError(w, http.StatusBadRequest, "unknown stage")
		return
	}
	room.Orch.TriggerRound3Stage(stage)
	s.persistEvent(room, "round3_stage", EventPayload{Stage: string(stage)})
	s.respondSnapshot(w, room)
}

func (s *Server) handleRound3Judge(w http.ResponseWriter, r *http.Request, room *Room) {
	var req round3JudgeRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.JudgeRound3(req.PlayerID, req.Success)
	if err := s.persistJudgment(room, req.PlayerID, req.Success); err != nil {
		log.Printf("persist judgment failed room_id=%s player_id=%s error=%v", room.ID, req.PlayerID, err)
	}
	s.respondSnapshot(w, room)
}

func (s *Server) handleJoker(w http.ResponseWriter, r *http.Request, room *Room) {
	var req stageRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.UseJoker(req.PlayerID)
	s.persistEvent(room, "joker_used", EventPayload{PlayerID: req.PlayerID})
	s.respondSnapshot(w, room)
}

func (s *Server) handleKick(w http.ResponseWriter, r *http.Request, room *Room) {
	var req stageRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.KickPlayer(req.PlayerID)
	s.persistEvent(room, "player_kicked", EventPayload{PlayerID: req.PlayerID})
	s.respondSnapshot(w, room)
}

func (s *Server) handleMute(w http.ResponseWriter, r *http.Request, room *Room) {
	var req muteRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.All {
		room.Orch.MuteAll(req.Mute)
	} else if req.PlayerID != "" {
		room.Orch.ToggleMute(req.PlayerID)
	} else {
		writeError(w, http.StatusBadRequest, "player_id or all is required")
		return
	}
	s.respondSnapshot(w, room)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request, room *Room) {
	var req scoreRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.UpdateScore(req.PlayerID, req.Delta)
	s.persistEvent(room, "score_updated", EventPayload{PlayerID: req.PlayerID, Points: req.Delta})
	s.respondSnapshot(w, room)
}

func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request, room *Room) {
	var req stageRequest
	if err := readJSON(r.Body, &req); err != nil || req.PlayerID == "" {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return
	}
	room.Orch.DeclareWinner(req.PlayerID)
	s.persistState(room, "winner_declared")
	s.respondSnapshot(w, room)
}
