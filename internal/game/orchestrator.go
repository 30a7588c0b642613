package game

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

const maxLogLines = 50

// Orchestrator owns one game session: settings, players, decks, the active
// card/player, the countdown timer, and the phase machine. All mutation goes
// through its methods; reads go through snapshots published to subscribers.
//
// Delayed work (transitions, reveal delays, grace checks, timer ticks) is
// scheduled with time.AfterFunc and carries the epoch current at schedule
// time. A callback whose epoch no longer matches aborts, so stale timeouts
// never act on a newer phase or card.
type Orchestrator struct {
	mu     sync.Mutex
	gen    Generator
	sound  Sink
	timing Timing

	epoch uint64

	settings        Settings
	state           State
	round3Stage     Round3Stage
	transitionTitle string
	transitionSub   string
	nextRoundTitle  string
	nextRoundDesc   string
	nextRoundState  State
	instruction     string
	logLines        []string

	players        []Player
	cards          []Card
	deckMap        map[int]CardType
	activeCardID   int
	activePlayerID string
	winner         *Player
	finalContent   string

	patronName string
	patronID   string

	timerValue   int
	timerMax     int
	timerRunning bool
	timerGen     uint64

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func New(gen Generator, sound Sink, timing Timing) *Orchestrator {
	if sound == nil {
		sound = NopSink{}
	}
	return &Orchestrator{
		gen:         gen,
		sound:       sound,
		timing:      timing,
		settings:    DefaultSettings(),
		state:       StateMenu,
		round3Stage: StageWaiting,
		instruction: "Oyun başlamayı bekliyor.",
		deckMap:     make(map[int]CardType),
		subs:        make(map[int]func(Snapshot)),
	}
}

func DefaultSettings() Settings {
	return Settings{
		RoomID:         fmt.Sprintf("RM-%04d", rand.IntN(9000)+1000),
		RoomName:       "DİL AVCILARI",
		TargetLanguage: "İngilizce",
		Difficulty:     DifficultyNormal,
		MaxPlayers:     12,
		Mode:           ModeIndividual,
	}
}

// Subscribe registers a snapshot listener and returns a cancel func. The
// current snapshot is not replayed; callers read Snapshot() first.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) func() {
	o.subsMu.Lock()
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn
	o.subsMu.Unlock()
	return func() {
		o.subsMu.Lock()
		delete(o.subs, id)
		o.subsMu.Unlock()
	}
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) publish(snap Snapshot) {
	o.subsMu.Lock()
	subs := make([]func(Snapshot), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.subsMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	snap := Snapshot{
		Settings:         o.settings,
		State:            o.state,
		Round3Stage:      o.round3Stage,
		TransitionTitle:  o.transitionTitle,
		TransitionSub:    o.transitionSub,
		NextRoundTitle:   o.nextRoundTitle,
		NextRoundDesc:    o.nextRoundDesc,
		RoundInstruction: o.instruction,
		Players:          append([]Player(nil), o.players...),
		Cards:            append([]Card(nil), o.cards...),
		ActivePlayerID:   o.activePlayerID,
		FinalContent:     o.finalContent,
		TimerValue:       o.timerValue,
		TimerMax:         o.timerMax,
		TimerRunning:     o.timerRunning,
		Log:              append([]string(nil), o.logLines...),
	}
	if idx := o.cardIndexLocked(o.activeCardID); idx != -1 {
		card := o.cards[idx]
		snap.ActiveCard = &card
	}
	if o.winner != nil {
		winner := *o.winner
		snap.Winner = &winner
	}
	for _, p := range o.players {
		switch p.Team {
		case TeamKing:
			snap.KingScore += p.Score
		case TeamQueen:
			snap.QueenScore += p.Score
		}
	}
	return snap
}

// --- Room lifecycle ---

// EnterLobby moves MENU -> LOBBY and seeds the patron from the given profile
// (or a placeholder when none is known).
func (o *Orchestrator) EnterLobby(profileID, profileName string) {
	o.mu.Lock()
	o.state = StateLobby
	o.instruction = "Kral/Kraliçe Seçimi Bekleniyor."
	if profileName != "" {
		o.patronID, o.patronName = profileID, profileName
	}
	if o.patronName == "" {
		o.patronName = "Yönetici"
	}
	if !o.hasPatronLocked() {
		o.addPlayerLocked(o.patronName, true, o.patronID, nil, false)
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// CreateRoom applies room settings, clears the roster and re-seeds the
// patron, then enters the lobby.
func (o *Orchestrator) CreateRoom(settings Settings, profileID, profileName string) {
	o.mu.Lock()
	if settings.RoomName != "" {
		o.settings.RoomName = settings.RoomName
	}
	if settings.TargetLanguage != "" {
		o.settings.TargetLanguage = settings.TargetLanguage
	}
	if settings.Difficulty != "" {
		o.settings.Difficulty = settings.Difficulty
	}
	if settings.MaxPlayers > 0 {
		o.settings.MaxPlayers = settings.MaxPlayers
	}
	if settings.Mode != "" {
		o.settings.Mode = settings.Mode
	}
	o.settings.Private = settings.Private
	o.settings.RoomID = fmt.Sprintf("RM-%04d", rand.IntN(9000)+1000)
	o.players = nil
	o.mu.Unlock()
	o.EnterLobby(profileID, profileName)
}

func (o *Orchestrator) PublishRoom() {
	o.mu.Lock()
	o.settings.Published = true
	o.sound.Play(CueSuccess)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) Settings() Settings {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settings
}

// --- Game flow ---

// StartGame begins round 1. Requires the lobby phase and at least two
// players; otherwise it is a silent no-op.
func (o *Orchestrator) StartGame() {
	o.mu.Lock()
	if o.state != StateLobby || len(o.players) < 2 {
		o.mu.Unlock()
		return
	}
	o.sound.Play(CueGameStart)
	o.resetRoundStatusLocked()
	o.runTransitionLocked("1. TUR", "BAŞLANGIÇ", StateRound1)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) resetRoundStatusLocked() {
	for i := range o.players {
		o.players[i].HasPlayedInRound = false
	}
}

// runTransitionLocked shows the interstitial and schedules the real round
// start after the transition delay. The delay is epoch-guarded: a reset or a
// competing transition invalidates it.
func (o *Orchestrator) runTransitionLocked(title, subtitle string, next State) {
	o.state = StateTransition
	o.transitionTitle = title
	o.transitionSub = subtitle
	o.sound.Play(CueGameStart)
	o.epoch++
	epoch := o.epoch
	time.AfterFunc(o.timing.Transition, func() {
		o.mu.Lock()
		if o.epoch != epoch || o.state != StateTransition {
			o.mu.Unlock()
			return
		}
		switch next {
		case StateRound1:
			o.startRound1Locked()
		case StateRound2:
			o.startRound2Locked()
		case StateRound3:
			o.startRound3Locked()
		}
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
}

func (o *Orchestrator) startRound1Locked() {
	o.resetRoundStatusLocked()
	o.state = StateRound1
	o.instruction = "1. TUR: ISINMA. Herkesin 1 Hakkı Var."
	o.cards, o.deckMap = buildRound1Deck()
	o.activeCardID = 0
	o.stopTimerLocked()
	log.Printf("round started room_id=%s round=1", o.settings.RoomID)
}

func (o *Orchestrator) startRound2Locked() {
	o.resetRoundStatusLocked()
	o.state = StateRound2
	o.instruction = "2. TUR: ZORLUK ARTIYOR. Dikkatli Ol."
	o.cards, o.deckMap = buildRound2Deck()
	o.activeCardID = 0
	log.Printf("round started room_id=%s round=2", o.settings.RoomID)
}

func (o *Orchestrator) startRound3Locked() {
	o.state = StateRound3
	o.round3Stage = StageWaiting
	o.instruction = "3. TUR: BÜYÜK SORGULAMA."
	o.cards = nil
	o.deckMap = make(map[int]CardType)
	o.activeCardID = 0
	o.sound.Play(CueTension)
	log.Printf("round started room_id=%s round=3", o.settings.RoomID)
}

// StartNextRoundPreparation ends the current deck round and shows the
// preparation screen for the next one. Only meaningful in rounds 1 and 2.
func (o *Orchestrator) StartNextRoundPreparation() {
	o.mu.Lock()
	o.startNextRoundPreparationLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) startNextRoundPreparationLocked() {
	switch o.state {
	case StateRound1:
		o.nextRoundState = StateRound2
		o.nextRoundTitle = "2. TUR: RENKLERİN GÜCÜ"
		o.nextRoundDesc = "Bu turda renklerin dili konuşacak. Sorular soyutlaşacak, süre kısalacak. Sadece dil ustaları hayatta kalabilir. Herkes hazır mı?"
	case StateRound2:
		o.nextRoundState = StateRound3
		o.nextRoundTitle = "3. TUR: BÜYÜK FİNAL"
		o.nextRoundDesc = "Sadece en iyi 3 oyuncu sahneye çıkacak. Yanlış yapan elenir. Büyük ödül sahibini arıyor."
	default:
		return
	}
	o.epoch++
	o.state = StatePrepareRound
	o.activeCardID = 0
	o.dropPlayerFromStageLocked()
	o.sound.Play(CueTension)
}

// ProceedToNextRound is the host-gated exit from the preparation screen.
func (o *Orchestrator) ProceedToNextRound() {
	o.mu.Lock()
	if o.state != StatePrepareRound {
		o.mu.Unlock()
		return
	}
	if o.nextRoundState == StateRound2 {
		o.runTransitionLocked("2. TUR", "RENK SPEKTRUMU", StateRound2)
	} else {
		o.runTransitionLocked("3. TUR", "BÜYÜK SORGULAMA", StateRound3)
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// --- Card logic ---

func (o *Orchestrator) cardIndexLocked(id int) int {
	if id == 0 {
		return -1
	}
	for i := range o.cards {
		if o.cards[i].ID == id {
			return i
		}
	}
	return -1
}

func (o *Orchestrator) timerSecondsLocked(typ CardType) int {
	if typ == CardPunishment {
		return punishmentSeconds
	}
	base := taskBaseSeconds(o.settings.Difficulty)
	if o.state == StateRound2 {
		return base - 10
	}
	return base
}

// OpenCard reveals a deck card for the staged player. Refused when no player
// is staged, another card is mid-resolution, or the card is already done.
func (o *Orchestrator) OpenCard(id int) {
	o.mu.Lock()
	if o.activePlayerID == "" {
		o.sound.Play(CueFail)
		o.mu.Unlock()
		return
	}
	idx := o.cardIndexLocked(id)
	if idx == -1 || o.cards[idx].Completed || o.activeCardID != 0 {
		o.mu.Unlock()
		return
	}
	typ, ok := o.deckMap[id]
	if !ok {
		typ = CardTask
	}
	o.sound.Play(CueTension)
	o.cards[idx].Revealed = true
	o.cards[idx].Type = typ
	o.cards[idx].Content = contentLoading
	o.activeCardID = id
	epoch := o.epoch
	playerID := o.activePlayerID
	state := o.state
	colorName := o.cards[idx].ColorName
	language := o.settings.TargetLanguage
	difficulty := o.settings.Difficulty
	log.Printf("card opened room_id=%s card_id=%d type=%s player_id=%s", o.settings.RoomID, id, typ, playerID)

	if typ == CardLuck {
		outcome := o.applyLuckLocked(playerID)
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		go o.resolveLuckCard(epoch, id, outcome)
		return
	}
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
	go o.resolveTaskCard(epoch, id, typ, state, colorName, language, difficulty)
}

// applyLuckLocked rolls the fixed outcome table and applies it immediately;
// the flavor text fetched afterwards is cosmetic only.
func (o *Orchestrator) applyLuckLocked(playerID string) luckOutcome {
	outcome := luckOutcomes[rand.IntN(len(luckOutcomes))]
	for i := range o.players {
		if o.players[i].ID != playerID {
			continue
		}
		o.players[i].Score += outcome.Points
		if outcome.Joker {
			o.players[i].HasJoker = true
		}
		o.players[i].HasPlayedInRound = true
		o.players[i].LastDelta = outcome.Points
		o.players[i].LastDeltaAt = time.Now()
	}
	return outcome
}

func (o *Orchestrator) resolveLuckCard(epoch uint64, cardID int, outcome luckOutcome) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timing.FetchTimeout)
	defer cancel()
	flavor, err := o.gen.LuckFlavor(ctx, outcome.Kind)
	if err != nil {
		o.failCardFetch(epoch, cardID)
		return
	}
	content := fmt.Sprintf("%s\n\n\"%s\"", outcome.Text, flavor)
	time.AfterFunc(o.timing.Reveal, func() {
		o.mu.Lock()
		if o.epoch != epoch || o.activeCardID != cardID {
			o.mu.Unlock()
			return
		}
		if idx := o.cardIndexLocked(cardID); idx != -1 {
			o.cards[idx].Content = content
			o.cards[idx].Completed = true
		}
		o.sound.Play(CueVictory)
		o.scheduleCompletionCheckLocked()
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
}

func (o *Orchestrator) resolveTaskCard(epoch uint64, cardID int, typ CardType, state State, colorName, language string, difficulty Difficulty) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timing.FetchTimeout)
	defer cancel()
	var content string
	var err error
	switch {
	case typ == CardPunishment:
		content, err = o.gen.Penalty(ctx, language)
	case state == StateRound2:
		if colorName == "" {
			colorName = "Renk"
		}
		content, err = o.gen.ColorTask(ctx, colorName, language, difficulty)
	default:
		content, err = o.gen.RoundTask(ctx, language, difficulty)
	}
	if err != nil {
		o.failCardFetch(epoch, cardID)
		return
	}
	time.AfterFunc(o.timing.Reveal, func() {
		o.mu.Lock()
		if o.epoch != epoch || o.activeCardID != cardID {
			o.mu.Unlock()
			return
		}
		if idx := o.cardIndexLocked(cardID); idx != -1 {
			o.cards[idx].Content = content
		}
		o.sound.Play(CueTensionStop)
		if typ == CardPunishment {
			o.sound.Play(CueAlarm)
		} else {
			o.sound.Play(CueSuccess)
		}
		o.startTimerLocked(o.timerSecondsLocked(typ))
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
}

// failCardFetch surfaces a provider failure on the still-open card. The
// timer never starts; the host dismisses the card manually.
func (o *Orchestrator) failCardFetch(epoch uint64, cardID int) {
	o.mu.Lock()
	if o.epoch != epoch || o.activeCardID != cardID {
		o.mu.Unlock()
		return
	}
	if idx := o.cardIndexLocked(cardID); idx != -1 {
		o.cards[idx].Content = contentError
	}
	o.sound.Play(CueTensionStop)
	log.Printf("content fetch failed room_id=%s card_id=%d", o.settings.RoomID, cardID)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// JudgeActivePlayer resolves the open task or punishment card. Pass is +15;
// fail is -5, or -15 when failing a punishment. A post-judgment score at or
// below -50 eliminates the player on the spot.
func (o *Orchestrator) JudgeActivePlayer(success bool) {
	o.mu.Lock()
	playerID := o.activePlayerID
	idx := o.cardIndexLocked(o.activeCardID)
	if playerID == "" || idx == -1 {
		o.mu.Unlock()
		return
	}
	if o.cards[idx].Type == CardLuck {
		o.closeActiveCardLocked()
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
		return
	}
	o.cards[idx].Completed = true

	points := -5
	if success {
		points = 15
	} else if o.cards[idx].Type == CardPunishment {
		points = -15
	}
	o.applyScoreLocked(playerID, points)
	if i := o.playerIndexLocked(playerID); i != -1 {
		o.players[i].HasPlayedInRound = true
	}
	if points > 0 {
		o.sound.Play(CueVictory)
	} else {
		o.sound.Play(CueFail)
	}
	log.Printf("player judged room_id=%s player_id=%s points=%d", o.settings.RoomID, playerID, points)
	o.closeActiveCardLocked()
	o.scheduleCompletionCheckLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// scheduleCompletionCheckLocked re-checks round completion after the grace
// delay so the UI can finish animating first.
func (o *Orchestrator) scheduleCompletionCheckLocked() {
	epoch := o.epoch
	time.AfterFunc(o.timing.Grace, func() {
		o.mu.Lock()
		if o.epoch != epoch || (o.state != StateRound1 && o.state != StateRound2) {
			o.mu.Unlock()
			return
		}
		if o.waitingCountLocked() > 0 {
			o.mu.Unlock()
			return
		}
		o.startNextRoundPreparationLocked()
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
}

// waitingCountLocked counts active contestants that still have a turn.
func (o *Orchestrator) waitingCountLocked() int {
	count := 0
	for _, p := range o.players {
		if !p.IsPatron && p.Status == StatusActive && !p.HasPlayedInRound {
			count++
		}
	}
	return count
}

func (o *Orchestrator) handleTimeoutLocked() {
	playerID := o.activePlayerID
	if playerID == "" {
		o.closeActiveCardLocked()
		return
	}
	if i := o.playerIndexLocked(playerID); i != -1 {
		o.applyScoreLocked(playerID, -10)
		o.players[i].HasPlayedInRound = true
		if o.players[i].Status == StatusActive {
			o.players[i].Status = StatusEliminated
			o.addLogLocked(fmt.Sprintf("%s elendi.", o.players[i].Name))
		}
	}
	o.sound.Play(CueAlarm)
	if idx := o.cardIndexLocked(o.activeCardID); idx != -1 {
		o.cards[idx].Content = contentTimeout
	}
	log.Printf("player timed out room_id=%s player_id=%s", o.settings.RoomID, playerID)
	epoch := o.epoch
	cardID := o.activeCardID
	time.AfterFunc(o.timing.TimeoutDrop, func() {
		o.mu.Lock()
		if o.epoch != epoch || o.activeCardID != cardID || o.activePlayerID != playerID {
			o.mu.Unlock()
			return
		}
		o.dropPlayerFromStageLocked()
		o.closeActiveCardLocked()
		o.scheduleCompletionCheckLocked()
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
}

func (o *Orchestrator) closeActiveCardLocked() {
	o.activeCardID = 0
	o.dropPlayerFromStageLocked()
	o.stopTimerLocked()
	o.sound.Play(CueTensionStop)
}

// --- Round 3 ---

// TriggerRound3Stage fetches the sub-stage content and starts its timer.
func (o *Orchestrator) TriggerRound3Stage(stage Round3Stage) {
	o.mu.Lock()
	if o.state != StateRound3 {
		o.mu.Unlock()
		return
	}
	o.round3Stage = stage
	o.finalContent = contentFinalPrep
	o.sound.Play(CueTension)
	epoch := o.epoch
	language := o.settings.TargetLanguage
	difficulty := o.settings.Difficulty
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timing.FetchTimeout)
		defer cancel()
		var content string
		var err error
		var seconds int
		switch stage {
		case StageWrongWord:
			content, err = o.gen.WrongWordPuzzle(ctx, language, difficulty)
			seconds = wrongWordSeconds
		case StageQuery:
			content, err = o.gen.InterviewQuestion(ctx, language, difficulty)
			seconds = querySeconds
		case StageRiddle:
			content, err = o.gen.Riddle(ctx, language)
			seconds = riddleSeconds
		default:
			return
		}
		o.mu.Lock()
		if o.epoch != epoch || o.state != StateRound3 || o.round3Stage != stage {
			o.mu.Unlock()
			return
		}
		if err != nil {
			o.finalContent = contentFinalError
		} else {
			o.finalContent = content
			o.startTimerLocked(seconds)
		}
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	}()
}

// JudgeRound3 scores a finalist: +50 on success, -20 on failure.
func (o *Orchestrator) JudgeRound3(playerID string, success bool) {
	o.mu.Lock()
	points := -20
	if success {
		points = 50
	}
	o.applyScoreLocked(playerID, points)
	if success {
		o.sound.Play(CueVictory)
	} else {
		o.sound.Play(CueFail)
	}
	o.dropPlayerFromStageLocked()
	o.stopTimerLocked()
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// Top3Players returns the current finalists: the three highest-scoring
// active contestants, stable within equal scores.
func (o *Orchestrator) Top3Players() []Player {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.top3Locked()
}

func (o *Orchestrator) top3Locked() []Player {
	finalists := make([]Player, 0, len(o.players))
	for _, p := range o.players {
		if !p.IsPatron && p.Status == StatusActive {
			finalists = append(finalists, p)
		}
	}
	sort.SliceStable(finalists, func(i, j int) bool {
		return finalists[i].Score > finalists[j].Score
	})
	if len(finalists) > 3 {
		finalists = finalists[:3]
	}
	return finalists
}

// FinalizeRound3 crowns the highest-scoring finalist. Ties go to the first
// max encountered: a later finalist must beat the leader strictly.
func (o *Orchestrator) FinalizeRound3() {
	o.mu.Lock()
	finalists := o.top3Locked()
	if len(finalists) == 0 {
		o.mu.Unlock()
		return
	}
	winner := finalists[0]
	for _, p := range finalists[1:] {
		if p.Score > winner.Score {
			winner = p
		}
	}
	o.declareWinnerLocked(winner.ID)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) DeclareWinner(playerID string) {
	o.mu.Lock()
	o.declareWinnerLocked(playerID)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) declareWinnerLocked(playerID string) {
	idx := o.playerIndexLocked(playerID)
	if idx == -1 {
		return
	}
	o.epoch++
	winner := o.players[idx]
	o.winner = &winner
	o.state = StateWinnerReveal
	o.stopTimerLocked()
	o.activeCardID = 0
	o.sound.Play(CueVictory)
	log.Printf("winner declared room_id=%s player_id=%s score=%d", o.settings.RoomID, winner.ID, winner.Score)
}

// --- Joker ---

// UseJoker spends a held joker for the risk mini-event: placeholder content,
// then a follow-up prompt with a fresh 30-second timer.
func (o *Orchestrator) UseJoker(playerID string) {
	o.mu.Lock()
	idx := o.playerIndexLocked(playerID)
	if idx == -1 || !o.players[idx].HasJoker {
		o.mu.Unlock()
		return
	}
	o.players[idx].HasJoker = false
	o.sound.Play(CueSuccess)
	if i := o.cardIndexLocked(o.activeCardID); i != -1 {
		o.cards[i].Content = contentRiskMode
	}
	epoch := o.epoch
	time.AfterFunc(o.timing.JokerRisk, func() {
		o.mu.Lock()
		if o.epoch != epoch {
			o.mu.Unlock()
			return
		}
		if i := o.cardIndexLocked(o.activeCardID); i != -1 {
			o.cards[i].Content = contentRiskLoaded
		}
		o.startTimerLocked(jokerRiskSeconds)
		snap := o.snapshotLocked()
		o.mu.Unlock()
		o.publish(snap)
	})
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// --- Session resets ---

// RestartGame returns to the lobby keeping the roster, with scores and
// per-round flags wiped.
func (o *Orchestrator) RestartGame() {
	o.mu.Lock()
	o.epoch++
	o.state = StateLobby
	for i := range o.players {
		o.players[i].Score = 0
		o.players[i].Status = StatusActive
		o.players[i].HasPlayedInRound = false
		o.players[i].HasJoker = false
		o.players[i].LastDelta = 0
	}
	o.cards = nil
	o.deckMap = make(map[int]CardType)
	o.activeCardID = 0
	o.activePlayerID = ""
	o.winner = nil
	o.round3Stage = StageWaiting
	o.finalContent = ""
	o.stopTimerLocked()
	o.sound.Play(CueSuccess)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// ResetGame hard-resets to the menu, clearing everyone and re-seeding the
// patron from the known profile.
func (o *Orchestrator) ResetGame() {
	o.mu.Lock()
	o.epoch++
	o.state = StateMenu
	o.players = nil
	o.cards = nil
	o.deckMap = make(map[int]CardType)
	o.activeCardID = 0
	o.activePlayerID = ""
	o.winner = nil
	o.round3Stage = StageWaiting
	o.finalContent = ""
	o.instruction = "Oyun başlamayı bekliyor."
	o.stopTimerLocked()
	if o.patronName != "" {
		o.addPlayerLocked(o.patronName, true, o.patronID, nil, false)
	}
	o.sound.Play(CueTensionStop)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

// LeaveGame returns to the menu without touching the roster.
func (o *Orchestrator) LeaveGame() {
	o.mu.Lock()
	o.epoch++
	o.state = StateMenu
	o.stopTimerLocked()
	o.sound.Play(CueTensionStop)
	snap := o.snapshotLocked()
	o.mu.Unlock()
	o.publish(snap)
}

func (o *Orchestrator) addLogLocked(line string) {
	o.logLines = append([]string{line}, o.logLines...)
	if len(o.logLines) > maxLogLines {
		o.logLines = o.logLines[:maxLogLines]
	}
}
