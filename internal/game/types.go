package game

import "time"

type State string

const (
	StateMenu         State = "MENU"
	StateLobby        State = "LOBBY"
	StateTransition   State = "TRANSITION"
	StatePrepareRound State = "PREPARE_ROUND"
	StateRound1       State = "ROUND_1"
	StateRound2       State = "ROUND_2"
	StateRound3       State = "ROUND_3"
	StateWinnerReveal State = "WINNER_REVEAL"
)

type Round3Stage string

const (
	StageWaiting   Round3Stage = "WAITING"
	StageWrongWord Round3Stage = "WRONG_WORD"
	StageQuery     Round3Stage = "QUERY"
	StageRiddle    Round3Stage = "RIDDLE"
)

type PlayerStatus string

const (
	StatusActive     PlayerStatus = "ACTIVE"
	StatusEliminated PlayerStatus = "ELIMINATED"
	StatusSpectator  PlayerStatus = "SPECTATOR"
)

type CardType string

const (
	CardTask       CardType = "TASK"
	CardPunishment CardType = "PUNISHMENT"
	CardLuck       CardType = "LUCK"
	CardEmpty      CardType = "EMPTY"
)

type Mode string

const (
	ModeIndividual Mode = "INDIVIDUAL"
	ModeTeam       Mode = "TEAM"
)

type Team string

const (
	TeamKing  Team = "KING"
	TeamQueen Team = "QUEEN"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Kolay"
	DifficultyNormal Difficulty = "Orta"
	DifficultyHard   Difficulty = "Zor"
	DifficultyExpert Difficulty = "Expert"
)

// AvailableLanguages are the target languages a room can be configured with.
var AvailableLanguages = []string{
	"İngilizce", "İspanyolca", "Almanca", "Fransızca", "İtalyanca", "Rusça", "Türkçe",
}

type Settings struct {
	RoomID         string     `json:"room_id"`
	RoomName       string     `json:"room_name"`
	TargetLanguage string     `json:"target_language"`
	Difficulty     Difficulty `json:"difficulty"`
	MaxPlayers     int        `json:"max_players"`
	Private        bool       `json:"private"`
	Published      bool       `json:"published"`
	Mode           Mode       `json:"mode"`
}

type Player struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Score            int          `json:"score"`
	Status           PlayerStatus `json:"status"`
	Team             Team         `json:"team,omitempty"`
	IsPatron         bool         `json:"is_patron"`
	Muted            bool         `json:"muted"`
	LastDelta        int          `json:"last_delta"`
	LastDeltaAt      time.Time    `json:"last_delta_at"`
	Badges           []string     `json:"badges"`
	IsBot            bool         `json:"is_bot"`
	HasJoker         bool         `json:"has_joker"`
	HasPlayedInRound bool         `json:"has_played_in_round"`
}

// Card is the UI-visible deck slot. Type stays EMPTY and Content stays a
// placeholder until the card is opened; the true type lives in the
// orchestrator's private deck map.
type Card struct {
	ID        int      `json:"id"`
	Label     string   `json:"label"`
	ColorName string   `json:"color_name,omitempty"`
	Type      CardType `json:"type"`
	Content   string   `json:"content"`
	Revealed  bool     `json:"revealed"`
	Completed bool     `json:"completed"`
}

type LuckKind string

const (
	LuckJackpot LuckKind = "JACKPOT"
	LuckBonus   LuckKind = "BONUS"
	LuckJoker   LuckKind = "JOKER"
	LuckSafe    LuckKind = "SAFE"
)

type luckOutcome struct {
	Kind   LuckKind
	Text   string
	Points int
	Joker  bool
}

var luckOutcomes = []luckOutcome{
	{Kind: LuckJackpot, Text: "🎉 BÜYÜK İKRAMİYE!\n+50 Puan Anında Eklendi!", Points: 50},
	{Kind: LuckBonus, Text: "✨ ŞANSLI GÜNÜNDESİN.\n+20 Puan Kazandın.", Points: 20},
	{Kind: LuckJoker, Text: "🃏 JOKER KARTI ÇIKTI!\nBu kartı zor bir görevde kullanabilirsin.", Joker: true},
	{Kind: LuckSafe, Text: "🛡️ KORUMA KALKANI.\n+10 Puan ve Dokunulmazlık.", Points: 10},
}

// Snapshot is the read model published to subscribers after every mutation.
type Snapshot struct {
	Settings         Settings    `json:"settings"`
	State            State       `json:"state"`
	Round3Stage      Round3Stage `json:"round3_stage"`
	TransitionTitle  string      `json:"transition_title,omitempty"`
	TransitionSub    string      `json:"transition_subtitle,omitempty"`
	NextRoundTitle   string      `json:"next_round_title,omitempty"`
	NextRoundDesc    string      `json:"next_round_desc,omitempty"`
	RoundInstruction string      `json:"round_instruction"`
	Players          []Player    `json:"players"`
	Cards            []Card      `json:"cards"`
	ActiveCard       *Card       `json:"active_card,omitempty"`
	ActivePlayerID   string      `json:"active_player_id,omitempty"`
	Winner           *Player     `json:"winner,omitempty"`
	FinalContent     string      `json:"final_content,omitempty"`
	TimerValue       int         `json:"timer_value"`
	TimerMax         int         `json:"timer_max"`
	TimerRunning     bool        `json:"timer_running"`
	KingScore        int         `json:"king_score"`
	QueenScore       int         `json:"queen_score"`
	Log              []string    `json:"log"`
}

const (
	contentLoading    = "YÜKLENİYOR..."
	contentError      = "Bağlantı hatası."
	contentTimeout    = "🛑 SÜRE DOLDU!\nOyuncu ELENDİ."
	contentRiskMode   = "RİSK MODU..."
	contentRiskLoaded = "YENİ GÖREV YÜKLENDİ."
	contentFinalPrep  = "Sistem Hazırlanıyor..."
	contentFinalError = "Hata: AI yanıt vermedi."
)
