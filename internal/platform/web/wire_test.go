package web

import (
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
)

func TestDecodeCommand(t *testing.T) {
	packed, err := msgpack.Marshal(Command{Type: CmdSwipe, DX: -80})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	tests := []struct {
		name    string
		mt      int
		data    []byte
		want    Command
		wantErr bool
	}{
		{"json", websocket.TextMessage, []byte(`{"type":"jump"}`), Command{Type: CmdJump}, false},
		{"json skin", websocket.TextMessage, []byte(`{"type":"skin","skin":"alien"}`), Command{Type: CmdSkin, Skin: "alien"}, false},
		{"msgpack", websocket.BinaryMessage, packed, Command{Type: CmdSwipe, DX: -80}, false},
		{"bad json", websocket.TextMessage, []byte(`{"type":`), Command{}, true},
		{"missing type", websocket.TextMessage, []byte(`{"dx":3}`), Command{}, true},
		{"ping frame", websocket.PingMessage, nil, Command{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand(tt.mt, tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewFrame(t *testing.T) {
	snap := rush.Snapshot{
		Phase:     rush.PhaseRunning,
		Score:     40,
		Lives:     2,
		Lane:      rush.LaneRight,
		Action:    rush.ActionJumping,
		Skin:      "girl",
		Obstacles: []rush.Entity{{ID: 1, Lane: rush.LaneLeft, Kind: rush.KindLowBarrier, Position: 55}},
		Coins:     []rush.Entity{{ID: 2, Lane: rush.LaneRight, Kind: rush.KindAirborneCoin, Position: 20}},
		Active:    &rush.PowerUpStatus{Kind: rush.KindShield, Remaining: 1500 * time.Millisecond},
		Speed:     1.5,
		GameTime:  3 * time.Second,
	}
	events := []rush.Event{rush.Hit{LivesRemaining: 0}, rush.PowerUpExpired{Kind: rush.KindMagnet}}

	f := NewFrame(snap, events)
	if f.Phase != "running" || f.Action != "jumping" || f.Lane != 2 {
		t.Errorf("frame header = %+v", f)
	}
	if len(f.Obstacles) != 1 || f.Obstacles[0].Kind != "lowBarrier" {
		t.Errorf("obstacles = %+v", f.Obstacles)
	}
	if f.PowerUps == nil || len(f.PowerUps) != 0 {
		t.Errorf("power-ups = %#v, want empty list", f.PowerUps)
	}
	if f.Active == nil || f.Active.Kind != "shield" || f.Active.RemainingMS != 1500 {
		t.Errorf("active = %+v", f.Active)
	}
	if f.GameTimeMS != 3000 {
		t.Errorf("game time = %d", f.GameTimeMS)
	}

	// A hit on the last life still carries its zero payload
	if f.Events[0].Type != "hit" || f.Events[0].LivesRemaining == nil || *f.Events[0].LivesRemaining != 0 {
		t.Errorf("hit event = %+v", f.Events[0])
	}
	if f.Events[1].Kind != "magnet" {
		t.Errorf("expiry event = %+v", f.Events[1])
	}
}
