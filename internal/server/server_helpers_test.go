package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dil-avcilari/internal/config"
	"dil-avcilari/internal/game"
	"dil-avcilari/internal/social"
)

type stubGenerator struct{}

func (stubGenerator) RoundTask(context.Context, string, game.Difficulty) (string, error) {
	return "GÖREV: Üç eşyayı hedef dilde say.", nil
}

func (stubGenerator) ColorTask(context.Context, string, string, game.Difficulty) (string, error) {
	return "GÖREV: Bu rengi anlat.", nil
}

func (stubGenerator) Penalty(context.Context, string) (string, error) {
	return "CEZA: Şarkı söyleyerek kendini tanıt.", nil
}

func (stubGenerator) LuckFlavor(context.Context, game.LuckKind) (string, error) {
	return "Kader bugün senden yana.", nil
}

func (stubGenerator) WrongWordPuzzle(context.Context, string, game.Difficulty) (string, error) {
	return "CÜMLE: I goed to school.", nil
}

func (stubGenerator) InterviewQuestion(context.Context, string, game.Difficulty) (string, error) {
	return "SORU: Describe your weekend.", nil
}

func (stubGenerator) Riddle(context.Context, string) (string, error) {
	return "BİLMECE: Gündüz kaybolur, gece parlar.", nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.TransitionMillis = 5
	cfg.RevealMillis = 5
	cfg.GraceMillis = 5
	cfg.TimeoutDropMillis = 5
	cfg.JokerRiskMillis = 5
	cfg.TickMillis = 2
	cfg.FetchTimeoutSeconds = 1
	return cfg
}

func newServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	roster := social.NewStore(filepath.Join(t.TempDir(), "users.json"))
	srv := New(nil, testConfig(), stubGenerator{}, roster)
	ts := newTestServer(t, srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func createRoom(t *testing.T, ts *httptest.Server) (string, string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", map[string]any{
		"name":      "Test Odası",
		"host_name": "Sunucu",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["room_id"].(string), body["join_code"].(string)
}

func joinPlayer(t *testing.T, ts *httptest.Server, roomID, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+roomID+"/join", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["player_id"].(string)
}

func fetchSnapshot(t *testing.T, ts *httptest.Server, roomID string) map[string]any {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+roomID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["snapshot"].(map[string]any)
}

func waitForState(t *testing.T, ts *httptest.Server, roomID, state string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fetchSnapshot(t, ts, roomID)["state"] == state {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %s", state)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
