package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

func newTestServer(t *testing.T, store *storage.Store) *httptest.Server {
	t.Helper()
	cfg := DefaultServerConfig()
	cfg.SnapshotRate = 60
	srv := NewServer(cfg, store, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		//nolint:errcheck // httptest owns the listener
		srv.Shutdown(ctx)
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	//nolint:errcheck // Deadline errors surface on read
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	var f Frame
	switch mt {
	case websocket.TextMessage:
		err = json.Unmarshal(data, &f)
	case websocket.BinaryMessage:
		err = msgpack.Unmarshal(data, &f)
	}
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

// waitFor reads frames until match returns true, collecting every event seen.
func waitFor(t *testing.T, conn *websocket.Conn, match func(Frame) bool) (Frame, []EventMsg) {
	t.Helper()
	var events []EventMsg
	for range 200 {
		f := readFrame(t, conn)
		events = append(events, f.Events...)
		if match(f) {
			return f, events
		}
	}
	t.Fatal("condition not reached")
	return Frame{}, nil
}

func sendJSON(t *testing.T, conn *websocket.Conn, cmd Command) {
	t.Helper()
	if err := conn.WriteJSON(cmd); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
}

func hasEvent(events []EventMsg, typ string) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestInitialFrame(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?seed=1&skin=robot")

	f := readFrame(t, conn)
	if f.Phase != "notStarted" {
		t.Errorf("phase = %q, want notStarted", f.Phase)
	}
	if f.Lives != 3 || f.Lane != int(rush.LaneCenter) || f.Score != 0 {
		t.Errorf("frame = %+v, want the starting baseline", f)
	}
	if f.Skin != "robot" {
		t.Errorf("skin = %q, want robot", f.Skin)
	}
}

func TestStartMoveAndEnd(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?seed=1")
	readFrame(t, conn)

	sendJSON(t, conn, Command{Type: CmdStart})
	_, events := waitFor(t, conn, func(f Frame) bool { return f.Phase == "running" })
	if !hasEvent(events, "gameStarted") {
		t.Error("missing gameStarted event")
	}

	sendJSON(t, conn, Command{Type: CmdLeft})
	waitFor(t, conn, func(f Frame) bool { return f.Lane == int(rush.LaneLeft) })

	sendJSON(t, conn, Command{Type: CmdSwipe, DX: 120})
	waitFor(t, conn, func(f Frame) bool { return f.Lane == int(rush.LaneCenter) })

	sendJSON(t, conn, Command{Type: CmdEnd})
	f, events := waitFor(t, conn, func(f Frame) bool { return f.Phase == "over" })
	if f.FinalScore != f.Score {
		t.Errorf("final score = %d, want %d", f.FinalScore, f.Score)
	}
	for _, e := range events {
		if e.Type == "gameOver" {
			if e.FinalScore == nil || *e.FinalScore != f.FinalScore {
				t.Errorf("gameOver payload = %v, want %d", e.FinalScore, f.FinalScore)
			}
			return
		}
	}
	t.Error("missing gameOver event")
}

func TestPauseFreezesGameTime(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?seed=2")
	readFrame(t, conn)

	sendJSON(t, conn, Command{Type: CmdStart})
	waitFor(t, conn, func(f Frame) bool { return f.Phase == "running" && f.GameTimeMS > 0 })

	sendJSON(t, conn, Command{Type: CmdPause})
	paused, _ := waitFor(t, conn, func(f Frame) bool { return f.Phase == "paused" })

	readFrame(t, conn)
	later := readFrame(t, conn)
	if later.GameTimeMS != paused.GameTimeMS {
		t.Errorf("game time moved while paused: %d -> %d", paused.GameTimeMS, later.GameTimeMS)
	}
}

func TestMsgpackCodec(t *testing.T) {
	ts := newTestServer(t, nil)
	conn := dial(t, ts, "?seed=3&codec=msgpack")

	//nolint:errcheck // Deadline errors surface on read
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, _, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if mt != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", mt)
	}

	data, err := msgpack.Marshal(Command{Type: CmdStart})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	waitFor(t, conn, func(f Frame) bool { return f.Phase == "running" })
}

func TestInvalidSeedRejected(t *testing.T) {
	ts := newTestServer(t, nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?seed=abc"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected handshake failure")
	}
	if resp != nil {
		resp.Body.Close()
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("response = %v, want 400", resp)
	}
}

func TestOriginCheck(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.AllowedOrigins = []string{"https://play.example.com/"}
	srv := NewServer(cfg, nil, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		//nolint:errcheck // httptest owns the listener
		srv.Shutdown(ctx)
	})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	tests := []struct {
		name   string
		origin string
		ok     bool
	}{
		{"no origin", "", true},
		{"same origin", ts.URL, true},
		{"allowed origin", "https://play.example.com", true},
		{"foreign origin", "https://evil.example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.origin != "" {
				header.Set("Origin", tt.origin)
			}
			conn, resp, err := websocket.DefaultDialer.Dial(url, header)
			if resp != nil {
				resp.Body.Close()
			}
			if tt.ok {
				if err != nil {
					t.Fatalf("Dial: %v", err)
				}
				conn.Close()
				return
			}
			if err == nil {
				conn.Close()
				t.Fatal("expected handshake failure")
			}
			if resp == nil || resp.StatusCode != http.StatusForbidden {
				t.Errorf("response = %v, want 403", resp)
			}
		})
	}
}

func TestScoresEndpoint(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, score := range []int{30, 70, 50} {
		if _, err := store.SaveRun(storage.RunRecord{GameID: rush.GameID, Score: score}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	ts := newTestServer(t, store)
	resp, err := http.Get(ts.URL + "/scores?limit=2")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var runs []storage.RunRecord
	if err := json.NewDecoder(resp.Body).Decode(&runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 70 || runs[1].Score != 50 {
		t.Errorf("runs = %+v, want 70 then 50", runs)
	}

	bad, err := http.Get(ts.URL + "/scores?limit=-1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", bad.StatusCode)
	}
}

func TestIndexServed(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Lane Rush") {
		t.Errorf("index: status %d", resp.StatusCode)
	}
}
