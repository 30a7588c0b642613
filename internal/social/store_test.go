package social

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return NewStore(path), path
}

func TestNewStoreGeneratesRoster(t *testing.T) {
	store, path := newTestStore(t)
	users := store.All()
	if len(users) != len(femaleNames)+len(maleNames) {
		t.Fatalf("expected %d bots, got %d", len(femaleNames)+len(maleNames), len(users))
	}
	for _, user := range users {
		if !user.IsBot || user.ID == "" || user.Username == "" {
			t.Fatalf("malformed bot %+v", user)
		}
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("roster not persisted: %v", err)
	}
}

func TestNewStoreRegeneratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := NewStore(path)
	if len(store.All()) == 0 {
		t.Fatal("corrupt roster should regenerate")
	}
}

func TestToggleFriendPersists(t *testing.T) {
	store, path := newTestStore(t)
	id := store.All()[0].ID
	if err := store.ToggleFriend(id); err != nil {
		t.Fatalf("toggle friend: %v", err)
	}
	user, ok := store.GetByID(id)
	if !ok || !user.IsFriend {
		t.Fatal("friend flag not set")
	}

	reloaded := NewStore(path)
	user, ok = reloaded.GetByID(id)
	if !ok || !user.IsFriend {
		t.Fatal("friend flag not persisted")
	}

	if err := store.ToggleFriend("missing"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestRandomBotsBounded(t *testing.T) {
	store, _ := newTestStore(t)
	if got := len(store.RandomBots(3)); got != 3 {
		t.Fatalf("expected 3 bots, got %d", got)
	}
	if got := len(store.RandomBots(100)); got != len(store.All()) {
		t.Fatalf("expected full roster, got %d", got)
	}
}

func TestSendMessageGreetsThenReplies(t *testing.T) {
	store, _ := newTestStore(t)
	id := store.All()[0].ID

	history, err := store.SendMessage(id, "Merhaba!")
	if err != nil {
		t.Fatalf("send message: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected greeting, message and reply, got %d entries", len(history))
	}
	if history[0].IsMe || !history[1].IsMe || history[2].IsMe {
		t.Fatalf("unexpected sender layout: %+v", history)
	}

	history, err = store.SendMessage(id, "Nasılsın?")
	if err != nil {
		t.Fatalf("second message: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("greeting should not repeat, got %d entries", len(history))
	}

	if _, err := store.SendMessage(id, "   "); err == nil {
		t.Fatal("expected error for empty message")
	}
	if _, err := store.SendMessage("missing", "selam"); err == nil {
		t.Fatal("expected error for unknown user")
	}

	if got := store.ChatHistory(id); len(got) != 5 {
		t.Fatalf("history mismatch: %d", len(got))
	}
}
