package game

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubGenerator struct {
	err error
}

func (g stubGenerator) text(value string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return value, nil
}

func (g stubGenerator) RoundTask(context.Context, string, Difficulty) (string, error) {
	return g.text("GÖREV: Üç eşyayı hedef dilde say.")
}

func (g stubGenerator) ColorTask(context.Context, string, string, Difficulty) (string, error) {
	return g.text("GÖREV: Bu rengin çağrıştırdığı kelimeyi söyle.")
}

func (g stubGenerator) Penalty(context.Context, string) (string, error) {
	return g.text("CEZA: Tavuk gibi ses çıkararak kelimeyi heceleyerek söyle.")
}

func (g stubGenerator) LuckFlavor(context.Context, LuckKind) (string, error) {
	return g.text("Kader bugün senden yana.")
}

func (g stubGenerator) WrongWordPuzzle(context.Context, string, Difficulty) (string, error) {
	return g.text("CÜMLE: I goed to school yesterday.")
}

func (g stubGenerator) InterviewQuestion(context.Context, string, Difficulty) (string, error) {
	return g.text("SORU: Describe your best day.")
}

func (g stubGenerator) Riddle(context.Context, string) (string, error) {
	return g.text("BİLMECE: Gündüz kaybolur, gece parlar.")
}

func testTiming() Timing {
	return Timing{
		Transition:   5 * time.Millisecond,
		Reveal:       5 * time.Millisecond,
		Grace:        5 * time.Millisecond,
		TimeoutDrop:  5 * time.Millisecond,
		JokerRisk:    5 * time.Millisecond,
		Tick:         2 * time.Millisecond,
		FetchTimeout: time.Second,
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// newLobby builds a lobby with a patron and two contestants and returns
// their ids.
func newLobby(t *testing.T) (*Orchestrator, string, string) {
	t.Helper()
	o := New(stubGenerator{}, NopSink{}, testTiming())
	o.CreateRoom(Settings{RoomName: "Test Odası"}, "host-1", "Sunucu")
	p1 := o.AddPlayer("Ada", false, "")
	p2 := o.AddPlayer("Baran", false, "")
	if p1 == nil || p2 == nil {
		t.Fatal("players not added")
	}
	return o, p1.ID, p2.ID
}

// startRound1 drives the lobby through the transition into round 1.
func startRound1(t *testing.T, o *Orchestrator) {
	t.Helper()
	o.StartGame()
	if o.Snapshot().State != StateTransition {
		t.Fatalf("expected transition, got %s", o.Snapshot().State)
	}
	waitFor(t, "round 1", func() bool { return o.Snapshot().State == StateRound1 })
}

// findCard returns the lowest-id unfinished card of the wanted hidden type.
func findCard(o *Orchestrator, want CardType) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	best := 0
	for id, typ := range o.deckMap {
		if typ != want {
			continue
		}
		if idx := o.cardIndexLocked(id); idx == -1 || o.cards[idx].Completed {
			continue
		}
		if best == 0 || id < best {
			best = id
		}
	}
	return best
}

func findPlayer(t *testing.T, o *Orchestrator, id string) Player {
	t.Helper()
	for _, p := range o.Players() {
		if p.ID == id {
			return p
		}
	}
	t.Fatalf("player %s not found", id)
	return Player{}
}

func TestCreateRoomSeedsSinglePatron(t *testing.T) {
	o, _, _ := newLobby(t)
	o.EnterLobby("host-1", "Sunucu")
	o.EnterLobby("", "")
	patrons := 0
	for _, p := range o.Players() {
		if p.IsPatron {
			patrons++
		}
	}
	if patrons != 1 {
		t.Fatalf("expected exactly one patron, got %d", patrons)
	}
}

func TestStartGameRequiresTwoPlayers(t *testing.T) {
	o := New(stubGenerator{}, NopSink{}, testTiming())
	o.CreateRoom(Settings{}, "", "Sunucu")
	o.StartGame()
	if state := o.Snapshot().State; state != StateLobby {
		t.Fatalf("expected lobby, got %s", state)
	}
}

func TestStartGameDealsRound1Deck(t *testing.T) {
	o, _, _ := newLobby(t)
	startRound1(t, o)
	snap := o.Snapshot()
	if len(snap.Cards) != 15 {
		t.Fatalf("expected 15 cards, got %d", len(snap.Cards))
	}
	for _, card := range snap.Cards {
		if card.Revealed || card.Type != CardEmpty {
			t.Fatalf("card %d dealt face up", card.ID)
		}
	}
}

func TestOpenCardRequiresStagedPlayer(t *testing.T) {
	o, _, _ := newLobby(t)
	startRound1(t, o)
	o.OpenCard(1)
	for _, card := range o.Snapshot().Cards {
		if card.Revealed {
			t.Fatalf("card %d revealed without a staged player", card.ID)
		}
	}
}

func TestOpenCardWhileAnotherActiveIsNoop(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	first := findCard(o, CardTask)
	second := findCard(o, CardPunishment)
	o.SetPlayerOnStage(p1)
	o.OpenCard(first)
	o.OpenCard(second)
	snap := o.Snapshot()
	if snap.ActiveCard == nil || snap.ActiveCard.ID != first {
		t.Fatalf("active card should stay %d", first)
	}
	for _, card := range snap.Cards {
		if card.ID == second && card.Revealed {
			t.Fatalf("card %d revealed while card %d was mid-resolution", second, first)
		}
	}
}

func TestOpenCompletedCardIsNoop(t *testing.T) {
	o, p1, p2 := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "task content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
	})
	o.JudgeActivePlayer(true)
	o.SetPlayerOnStage(p2)
	o.OpenCard(cardID)
	snap := o.Snapshot()
	if snap.ActiveCard != nil {
		t.Fatalf("completed card %d should not reopen", cardID)
	}
	if snap.TimerRunning {
		t.Fatal("no timer should start on a completed card")
	}
	if findPlayer(t, o, p2).Score != 0 {
		t.Fatal("reopening must not touch the staged player's score")
	}
}

func TestTaskCardJudgedSuccess(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "task content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
	})
	if !o.Snapshot().TimerRunning {
		t.Fatal("timer should run once the task is revealed")
	}
	o.JudgeActivePlayer(true)
	player := findPlayer(t, o, p1)
	if player.Score != 15 {
		t.Fatalf("expected +15, got %d", player.Score)
	}
	if !player.HasPlayedInRound {
		t.Fatal("turn should be spent")
	}
	snap := o.Snapshot()
	if snap.ActivePlayerID != "" || snap.TimerRunning {
		t.Fatal("stage and timer should be cleared after judgment")
	}
	for _, card := range snap.Cards {
		if card.ID == cardID && !card.Completed {
			t.Fatal("judged card should be completed")
		}
	}
}

func TestPunishmentFailureCostsFifteen(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardPunishment)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "punishment content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
	})
	o.JudgeActivePlayer(false)
	if score := findPlayer(t, o, p1).Score; score != -15 {
		t.Fatalf("expected -15, got %d", score)
	}
}

func TestTaskFailureCostsFive(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "task content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
	})
	o.JudgeActivePlayer(false)
	if score := findPlayer(t, o, p1).Score; score != -5 {
		t.Fatalf("expected -5, got %d", score)
	}
}

func TestLuckCardAppliesImmediately(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardLuck)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)

	player := findPlayer(t, o, p1)
	if !player.HasPlayedInRound {
		t.Fatal("luck card should spend the turn immediately")
	}
	valid := map[int]bool{50: true, 20: true, 10: true, 0: true}
	if !valid[player.Score] {
		t.Fatalf("unexpected luck score %d", player.Score)
	}
	if player.Score == 0 && !player.HasJoker {
		t.Fatal("zero-point luck must be the joker outcome")
	}
	waitFor(t, "luck card completion", func() bool {
		for _, card := range o.Snapshot().Cards {
			if card.ID == cardID {
				return card.Completed
			}
		}
		return false
	})
}

func TestFetchFailureShowsErrorWithoutTimer(t *testing.T) {
	o := New(stubGenerator{err: errors.New("provider down")}, NopSink{}, testTiming())
	o.CreateRoom(Settings{}, "", "Sunucu")
	p1 := o.AddPlayer("Ada", false, "")
	o.AddPlayer("Baran", false, "")
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1.ID)
	o.OpenCard(cardID)
	waitFor(t, "error content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content == contentError
	})
	if o.Snapshot().TimerRunning {
		t.Fatal("timer must not start on a failed fetch")
	}
}

func TestTimeoutEliminatesPlayer(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "timer start", func() bool { return o.Snapshot().TimerRunning })
	waitFor(t, "timeout", func() bool {
		return findPlayer(t, o, p1).Status == StatusEliminated
	})
	player := findPlayer(t, o, p1)
	if player.LastDelta != -10 {
		t.Fatalf("expected -10 timeout penalty, got %d", player.LastDelta)
	}
	logged := false
	for _, line := range o.Snapshot().Log {
		if strings.Contains(line, "elendi") {
			logged = true
		}
	}
	if !logged {
		t.Fatal("timeout elimination should be logged")
	}
	waitFor(t, "card drop", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard == nil && snap.ActivePlayerID == ""
	})
}

func TestEliminationThresholdCrossing(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.UpdateScore(p1, -45)
	if findPlayer(t, o, p1).Status != StatusActive {
		t.Fatal("player should survive at -45")
	}
	o.UpdateScore(p1, -5)
	if findPlayer(t, o, p1).Status != StatusEliminated {
		t.Fatal("player should be eliminated at -50")
	}
	found := false
	for _, line := range o.Snapshot().Log {
		if strings.Contains(line, "elendi") {
			found = true
		}
	}
	if !found {
		t.Fatal("elimination should be logged")
	}
}

func TestRoundCompletionAdvancesToPreparation(t *testing.T) {
	o, p1, p2 := newLobby(t)
	startRound1(t, o)
	for _, id := range []string{p1, p2} {
		cardID := findCard(o, CardTask)
		if cardID == 0 {
			cardID = findCard(o, CardPunishment)
		}
		o.SetPlayerOnStage(id)
		o.OpenCard(cardID)
		waitFor(t, "card content", func() bool {
			snap := o.Snapshot()
			return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
		})
		o.JudgeActivePlayer(true)
	}
	waitFor(t, "round preparation", func() bool {
		return o.Snapshot().State == StatePrepareRound
	})
	if title := o.Snapshot().NextRoundTitle; !strings.Contains(title, "2. TUR") {
		t.Fatalf("unexpected next round title %q", title)
	}
}

func TestProceedEntersRound2Deck(t *testing.T) {
	o, p1, p2 := newLobby(t)
	startRound1(t, o)
	for _, id := range []string{p1, p2} {
		cardID := findCard(o, CardTask)
		if cardID == 0 {
			cardID = findCard(o, CardPunishment)
		}
		o.SetPlayerOnStage(id)
		o.OpenCard(cardID)
		waitFor(t, "card content", func() bool {
			snap := o.Snapshot()
			return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
		})
		o.JudgeActivePlayer(true)
	}
	waitFor(t, "round preparation", func() bool {
		return o.Snapshot().State == StatePrepareRound
	})
	o.ProceedToNextRound()
	waitFor(t, "round 2", func() bool { return o.Snapshot().State == StateRound2 })
	snap := o.Snapshot()
	if len(snap.Cards) != 15 {
		t.Fatalf("expected 15 round 2 cards, got %d", len(snap.Cards))
	}
	for _, card := range snap.Cards {
		if card.ID < 200 || card.ColorName == "" {
			t.Fatalf("card %d is not a color card", card.ID)
		}
	}
}

func TestStaleTransitionIgnoredAfterRestart(t *testing.T) {
	o, _, _ := newLobby(t)
	o.StartGame()
	o.RestartGame()
	if state := o.Snapshot().State; state != StateLobby {
		t.Fatalf("expected lobby after restart, got %s", state)
	}
	time.Sleep(20 * time.Millisecond)
	if state := o.Snapshot().State; state != StateLobby {
		t.Fatalf("stale transition fired: %s", state)
	}
}

func TestStagedPlayerReplayRefusedOutsideRound3(t *testing.T) {
	o, p1, _ := newLobby(t)
	startRound1(t, o)
	cardID := findCard(o, CardTask)
	o.SetPlayerOnStage(p1)
	o.OpenCard(cardID)
	waitFor(t, "card content", func() bool {
		snap := o.Snapshot()
		return snap.ActiveCard != nil && snap.ActiveCard.Content != contentLoading
	})
	o.JudgeActivePlayer(true)
	o.SetPlayerOnStage(p1)
	snap := o.Snapshot()
	if snap.ActivePlayerID == p1 {
		t.Fatal("spent player staged again outside round 3")
	}
	found := false
	for _, line := range snap.Log {
		if strings.Contains(line, "tamamladı") {
			found = true
		}
	}
	if !found {
		t.Fatal("refused staging should be logged")
	}
}

func TestRound3Flow(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.mu.Lock()
	o.startRound3Locked()
	o.mu.Unlock()

	o.TriggerRound3Stage(StageWrongWord)
	waitFor(t, "stage content", func() bool {
		snap := o.Snapshot()
		return snap.FinalContent != contentFinalPrep && snap.FinalContent != ""
	})
	snap := o.Snapshot()
	if !snap.TimerRunning || snap.TimerMax != wrongWordSeconds {
		t.Fatalf("expected %ds stage timer, got max %d running=%v", wrongWordSeconds, snap.TimerMax, snap.TimerRunning)
	}

	o.JudgeRound3(p1, true)
	if score := findPlayer(t, o, p1).Score; score != 50 {
		t.Fatalf("expected +50, got %d", score)
	}
	o.JudgeRound3(p1, false)
	if score := findPlayer(t, o, p1).Score; score != 30 {
		t.Fatalf("expected 30 after -20, got %d", score)
	}
}

func TestRound3StageFetchFailure(t *testing.T) {
	o := New(stubGenerator{err: errors.New("provider down")}, NopSink{}, testTiming())
	o.CreateRoom(Settings{}, "", "Sunucu")
	o.AddPlayer("Ada", false, "")
	o.AddPlayer("Baran", false, "")
	o.mu.Lock()
	o.startRound3Locked()
	o.mu.Unlock()
	o.TriggerRound3Stage(StageRiddle)
	waitFor(t, "stage error", func() bool {
		return o.Snapshot().FinalContent == contentFinalError
	})
	if o.Snapshot().TimerRunning {
		t.Fatal("timer must not start on a failed stage fetch")
	}
}

func TestTop3ExcludesPatronAndEliminated(t *testing.T) {
	o, p1, _ := newLobby(t)
	p3 := o.AddPlayer("Cem", false, "")
	p4 := o.AddPlayer("Derya", false, "")
	o.UpdateScore(p1, 40)
	o.UpdateScore(p3.ID, 30)
	o.UpdateScore(p4.ID, 20)
	o.UpdateScore(p4.ID, -80)
	top := o.Top3Players()
	if len(top) != 2 {
		t.Fatalf("expected 2 finalists, got %d", len(top))
	}
	for _, p := range top {
		if p.IsPatron || p.Status == StatusEliminated {
			t.Fatalf("finalist %s should not qualify", p.Name)
		}
	}
	if top[0].ID != p1 {
		t.Fatalf("expected %s on top, got %s", p1, top[0].ID)
	}
}

func TestFinalizeRound3TieGoesToFirstMax(t *testing.T) {
	o, p1, p2 := newLobby(t)
	p3 := o.AddPlayer("Cem", false, "")
	o.UpdateScore(p1, 40)
	o.UpdateScore(p2, 65)
	o.UpdateScore(p3.ID, 65)
	o.mu.Lock()
	o.startRound3Locked()
	o.mu.Unlock()
	o.FinalizeRound3()
	snap := o.Snapshot()
	if snap.State != StateWinnerReveal {
		t.Fatalf("expected winner reveal, got %s", snap.State)
	}
	if snap.Winner == nil || snap.Winner.ID != p2 {
		t.Fatalf("tie should go to the earlier finalist %s, got %+v", p2, snap.Winner)
	}
}

func TestUseJokerStartsRiskTimer(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.mu.Lock()
	if idx := o.playerIndexLocked(p1); idx != -1 {
		o.players[idx].HasJoker = true
	}
	o.mu.Unlock()

	o.UseJoker(p1)
	if findPlayer(t, o, p1).HasJoker {
		t.Fatal("joker should be spent")
	}
	waitFor(t, "risk timer", func() bool {
		snap := o.Snapshot()
		return snap.TimerRunning && snap.TimerMax == jokerRiskSeconds
	})
}

func TestUseJokerWithoutJokerIsNoop(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.UseJoker(p1)
	if o.Snapshot().TimerRunning {
		t.Fatal("risk timer started without a joker")
	}
}

func TestKickPatronRefused(t *testing.T) {
	o, _, _ := newLobby(t)
	var patronID string
	for _, p := range o.Players() {
		if p.IsPatron {
			patronID = p.ID
		}
	}
	o.KickPlayer(patronID)
	for _, p := range o.Players() {
		if p.ID == patronID {
			return
		}
	}
	t.Fatal("patron was kicked")
}

func TestStageEliminatedRefused(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.UpdateScore(p1, -60)
	o.SetPlayerOnStage(p1)
	if o.Snapshot().ActivePlayerID == p1 {
		t.Fatal("eliminated player staged")
	}
}

func TestRestartKeepsRosterClearsScores(t *testing.T) {
	o, p1, _ := newLobby(t)
	o.UpdateScore(p1, -60)
	o.RestartGame()
	snap := o.Snapshot()
	if snap.State != StateLobby {
		t.Fatalf("expected lobby, got %s", snap.State)
	}
	if len(snap.Players) != 3 {
		t.Fatalf("roster should survive restart, got %d players", len(snap.Players))
	}
	player := findPlayer(t, o, p1)
	if player.Score != 0 || player.Status != StatusActive {
		t.Fatalf("player not reset: score=%d status=%s", player.Score, player.Status)
	}
}

func TestResetReseedsPatron(t *testing.T) {
	o, _, _ := newLobby(t)
	o.ResetGame()
	snap := o.Snapshot()
	if snap.State != StateMenu {
		t.Fatalf("expected menu, got %s", snap.State)
	}
	if len(snap.Players) != 1 || !snap.Players[0].IsPatron {
		t.Fatalf("expected lone patron, got %d players", len(snap.Players))
	}
}

func TestMuteAllSkipsPatron(t *testing.T) {
	o, _, _ := newLobby(t)
	o.MuteAll(true)
	for _, p := range o.Players() {
		if p.IsPatron && p.Muted {
			t.Fatal("patron muted")
		}
		if !p.IsPatron && !p.Muted {
			t.Fatalf("contestant %s not muted", p.Name)
		}
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	o, _, _ := newLobby(t)
	got := make(chan Snapshot, 8)
	cancel := o.Subscribe(func(snap Snapshot) {
		select {
		case got <- snap:
		default:
		}
	})
	defer cancel()
	o.PublishRoom()
	select {
	case snap := <-got:
		if !snap.Settings.Published {
			t.Fatal("snapshot missing published flag")
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot published")
	}
}
