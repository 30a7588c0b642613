package social

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// User is one social record: a bot or a befriended profile.
type User struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email"`
	Bio             string   `json:"bio"`
	Gender          string   `json:"gender"`
	TargetLanguages []string `json:"target_languages"`
	Hobbies         []string `json:"hobbies"`
	Level           int      `json:"level"`
	KingCrowns      int      `json:"king_crowns"`
	QueenCrowns     int      `json:"queen_crowns"`
	Achievements    []string `json:"achievements"`
	Online          bool     `json:"online"`
	IsBot           bool     `json:"is_bot"`
	IsFriend        bool     `json:"is_friend"`
}

type Message struct {
	SenderID string    `json:"sender_id"`
	Text     string    `json:"text"`
	SentAt   time.Time `json:"sent_at"`
	IsMe     bool      `json:"is_me"`
}

var (
	femaleNames   = []string{"Aylin", "Zeynep", "Elif", "Selin", "Defne", "Mira", "Esra"}
	maleNames     = []string{"Can", "Mert", "Emre", "Burak", "Kerem"}
	hobbies       = []string{"Fotoğrafçılık", "Kodlama", "Manga", "Jazz", "Seyahat", "Yemek", "Dans", "Tarih", "Futbol", "Yoga"}
	badges        = []string{"Hızlı Düşünür", "Kelime Cambazı", "Kral Katili", "Gece Kuşu", "Polyglot", "Yardımsever"}
	cannedReplies = []string{
		"Harika fikir! Kesinlikle katılıyorum.",
		"Bu konuda ne düşünüyorsun peki?",
		"Hahaha, çok iyi yakaladın! 😂",
		"Şu an 2. Tur için çalışıyorum, sen nasılsın?",
		"Sıradaki oyunda aynı takımda olalım mı?",
		"İngilizcemi geliştirmem lazım, kelime avında zorlanıyorum.",
		"Vay canına! Profilin çok havalı görünüyor.",
	}
)

// Store holds the social roster, mirrored to a JSON file after every
// mutation. A missing or malformed file regenerates the fixed bot roster.
type Store struct {
	mu    sync.Mutex
	path  string
	users []User
	chats map[string][]Message
}

func NewStore(path string) *Store {
	s := &Store{
		path:  path,
		chats: make(map[string][]Message),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err == nil {
		var users []User
		if jsonErr := json.Unmarshal(data, &users); jsonErr == nil && len(users) > 0 {
			s.users = users
			return
		}
		log.Printf("social roster corrupt, regenerating path=%s", s.path)
	}
	s.users = generateInitialBots()
	s.saveLocked()
}

func (s *Store) saveLocked() {
	data, err := json.Marshal(s.users)
	if err != nil {
		return
	}
	if dir := filepath.Dir(s.path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("social roster save failed path=%s error=%v", s.path, err)
	}
}

func generateInitialBots() []User {
	bots := make([]User, 0, len(femaleNames)+len(maleNames))
	for _, name := range femaleNames {
		bots = append(bots, newBot(name, "Kadın"))
	}
	for _, name := range maleNames {
		bots = append(bots, newBot(name, "Erkek"))
	}
	return bots
}

func newBot(name, gender string) User {
	picked := make([]string, 0, 3)
	seen := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		hobby := hobbies[rand.IntN(len(hobbies))]
		if _, dup := seen[hobby]; dup {
			continue
		}
		seen[hobby] = struct{}{}
		picked = append(picked, hobby)
	}
	achievements := []string{}
	if rand.IntN(10) >= 3 {
		achievements = append(achievements, badges[rand.IntN(len(badges))])
	}
	if rand.IntN(10) >= 7 {
		achievements = append(achievements, "Efsanevi Avcı 🏆")
	}
	languages := []string{"İngilizce"}
	if rand.IntN(2) == 0 {
		languages = append(languages, "İspanyolca")
	}
	return User{
		ID:              "bot-" + strings.ToLower(name),
		Username:        name,
		Email:           strings.ToLower(name) + "@dilavcilar.bot",
		Bio:             fmt.Sprintf("Merhaba! Ben %s. Dil öğrenmeyi ve %s ile ilgilenmeyi seviyorum. Yarışmaya hazırım!", name, strings.ToLower(picked[0])),
		Gender:          gender,
		TargetLanguages: languages,
		Hobbies:         picked,
		Level:           rand.IntN(20) + 1,
		KingCrowns:      rand.IntN(5),
		QueenCrowns:     rand.IntN(5),
		Achievements:    achievements,
		Online:          true,
		IsBot:           true,
	}
}

func (s *Store) All() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.users...)
}

func (s *Store) GetByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) ToggleFriend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].IsFriend = !s.users[i].IsFriend
			s.saveLocked()
			return nil
		}
	}
	return errors.New("user not found")
}

// RandomBots returns up to count users in shuffled order.
func (s *Store) RandomBots(count int) []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	shuffled := append([]User(nil), s.users...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// SendMessage records an outgoing chat line and the bot's canned reply.
func (s *Store) SendMessage(userID, text string) ([]Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("empty message")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	var username string
	for _, u := range s.users {
		if u.ID == userID {
			found = true
			username = u.Username
			break
		}
	}
	if !found {
		return nil, errors.New("user not found")
	}
	history := s.chats[userID]
	if len(history) == 0 {
		history = append(history, Message{
			SenderID: userID,
			Text:     fmt.Sprintf("Selam! Ben %s. Birlikte pratik yapabiliriz! 👋", username),
			SentAt:   time.Now(),
		})
	}
	history = append(history, Message{SenderID: "me", Text: text, SentAt: time.Now(), IsMe: true})
	history = append(history, Message{
		SenderID: userID,
		Text:     cannedReplies[rand.IntN(len(cannedReplies))],
		SentAt:   time.Now(),
	})
	s.chats[userID] = history
	return append([]Message(nil), history...), nil
}

func (s *Store) ChatHistory(userID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.chats[userID]...)
}
