package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"kasino/internal/config"
)

func testServer(t *testing.T) *FiberServer {
	t.Helper()

	cfg := config.Config{
		StoreBackend:   "file",
		SnapshotPath:   filepath.Join(t.TempDir(), "players.json"),
		AdminID:        "admin1",
		InputTimeout:   time.Second,
		SlotFrameDelay: 0,
	}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	srv.RegisterFiberRoutes()
	t.Cleanup(func() { srv.hub.Stop() })
	return srv
}

func doJSON(t *testing.T, srv *FiberServer, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("could not create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Test(req)
	if err != nil {
		t.Fatalf("could not perform request: %v", err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("could not read response body: %v", err)
	}
	var result map[string]any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("could not unmarshal response %q: %v", data, err)
		}
	}
	return resp, result
}

func TestHealthHandler(t *testing.T) {
	srv := testServer(t)

	resp, result := doJSON(t, srv, "GET", "/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", resp.Status)
	}

	store, ok := result["store"].(map[string]any)
	if !ok {
		t.Fatalf("health response has no store section: %v", result)
	}
	if store["status"] != "up" {
		t.Errorf("store status = %v, want up", store["status"])
	}
}

func TestBalanceHandler_CreatesPlayer(t *testing.T) {
	srv := testServer(t)

	resp, result := doJSON(t, srv, "GET", "/api/v1/players/u1/balance?nick=alice", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", resp.Status)
	}
	if result["balance"] != float64(1000) {
		t.Errorf("balance = %v, want 1000", result["balance"])
	}
	if result["nick"] != "alice" {
		t.Errorf("nick = %v, want alice", result["nick"])
	}
}

func TestLeaderboardHandler(t *testing.T) {
	srv := testServer(t)
	for i := 0; i < 12; i++ {
		doJSON(t, srv, "GET", fmt.Sprintf("/api/v1/players/u%d/balance", i), nil)
	}

	resp, result := doJSON(t, srv, "GET", "/api/v1/leaderboard", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", resp.Status)
	}
	players, ok := result["players"].([]any)
	if !ok {
		t.Fatalf("leaderboard response has no players: %v", result)
	}
	if len(players) != 10 {
		t.Errorf("leaderboard returned %d entries, want 10", len(players))
	}
}

func TestPayHandler(t *testing.T) {
	srv := testServer(t)

	resp, _ := doJSON(t, srv, "POST", "/api/v1/pay", payRequest{
		FromID: "u1", FromNick: "alice", ToID: "u2", ToNick: "bob", Amount: 300,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK; got %v", resp.Status)
	}

	_, result := doJSON(t, srv, "GET", "/api/v1/players/u2/balance", nil)
	if result["balance"] != float64(1300) {
		t.Errorf("recipient balance = %v, want 1300", result["balance"])
	}

	t.Run("insufficient balance", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/pay", payRequest{
			FromID: "u1", ToID: "u2", Amount: 100000,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400; got %v", resp.Status)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/pay", payRequest{
			FromID: "u1", ToID: "u2", Amount: 0,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400; got %v", resp.Status)
		}
	})

	t.Run("missing ids", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/pay", payRequest{Amount: 10})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400; got %v", resp.Status)
		}
	})

	t.Run("self payment", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/pay", payRequest{
			FromID: "u1", FromNick: "alice", ToID: "u1", ToNick: "alice", Amount: 100,
		})
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400; got %v", resp.Status)
		}
		_, result := doJSON(t, srv, "GET", "/api/v1/players/u1/balance", nil)
		if result["balance"] != float64(700) {
			t.Errorf("payer balance after self payment = %v, want 700", result["balance"])
		}
	})
}

func TestResetHandler(t *testing.T) {
	srv := testServer(t)
	doJSON(t, srv, "GET", "/api/v1/players/u1/balance?nick=alice", nil)

	t.Run("unauthorized", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/admin/reset", resetRequest{
			ActorID: "mallory", TargetID: "u1", TargetNick: "alice",
		})
		if resp.StatusCode != http.StatusForbidden {
			t.Errorf("expected 403; got %v", resp.Status)
		}

		_, result := doJSON(t, srv, "GET", "/api/v1/players/u1/balance", nil)
		if result["balance"] != float64(1000) {
			t.Errorf("unauthorized reset changed balance to %v", result["balance"])
		}
	})

	t.Run("admin", func(t *testing.T) {
		resp, _ := doJSON(t, srv, "POST", "/api/v1/admin/reset", resetRequest{
			ActorID: "admin1", TargetID: "u1", TargetNick: "alice",
		})
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200; got %v", resp.Status)
		}

		_, result := doJSON(t, srv, "GET", "/api/v1/players/u1/balance", nil)
		if result["balance"] != float64(10) {
			t.Errorf("balance after reset = %v, want 10", result["balance"])
		}
	})
}
