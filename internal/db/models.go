package db

import (
	"time"

	"gorm.io/datatypes"
)

type Room struct {
	ID             uint      `gorm:"primaryKey"`
	RoomCode       string    `gorm:"size:12;uniqueIndex;not null"`
	Name           string    `gorm:"size:64;not null"`
	TargetLanguage string    `gorm:"size:32;not null"`
	Difficulty     string    `gorm:"size:16;not null"`
	Mode           string    `gorm:"size:16;not null"`
	State          string    `gorm:"size:32;not null"`
	MaxPlayers     int       `gorm:"not null;default:12"`
	Published      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Players        []Player
	Rounds         []Round
	Events         []Event
}

type Player struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"index;not null;uniqueIndex:idx_players_room_name"`
	PlayerUID string    `gorm:"size:64;not null"`
	Name      string    `gorm:"size:64;not null;uniqueIndex:idx_players_room_name"`
	IsPatron  bool      `gorm:"not null;default:false"`
	IsBot     bool      `gorm:"not null;default:false"`
	Score     int       `gorm:"not null;default:0"`
	Status    string    `gorm:"size:16;not null"`
	JoinedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Judgments []Judgment
	Events    []Event
}

type Round struct {
	ID        uint      `gorm:"primaryKey"`
	RoomID    uint      `gorm:"index;not null;uniqueIndex:idx_rounds_room_number"`
	Number    int       `gorm:"not null;uniqueIndex:idx_rounds_room_number"`
	State     string    `gorm:"size:32;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Cards     []CardRecord
	Judgments []Judgment
}

// CardRecord stores a revealed card once opened; the type was secret until
// then, so unopened cards never reach the database.
type CardRecord struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   uint      `gorm:"index;not null;uniqueIndex:idx_cards_round_card"`
	CardID    int       `gorm:"not null;uniqueIndex:idx_cards_round_card"`
	CardType  string    `gorm:"size:16;not null"`
	ColorName string    `gorm:"size:32"`
	Content   string    `gorm:"size:1024"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Judgment struct {
	ID        uint      `gorm:"primaryKey"`
	RoundID   *uint     `gorm:"index"`
	PlayerID  uint      `gorm:"index;not null"`
	Points    int       `gorm:"not null"`
	Success   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Event struct {
	ID        uint           `gorm:"primaryKey"`
	RoomID    uint           `gorm:"index;not null"`
	RoundID   *uint          `gorm:"index"`
	PlayerID  *uint          `gorm:"index"`
	Type      string         `gorm:"size:64;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}
