package web

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/lane-rush/internal/games/rush"
)

// Frame is one server-to-client message: the state after a simulation
// step plus the events emitted since the previous frame.
type Frame struct {
	Phase      string      `json:"phase" msgpack:"phase"`
	Score      int         `json:"score" msgpack:"score"`
	FinalScore int         `json:"finalScore" msgpack:"finalScore"`
	Lives      int         `json:"lives" msgpack:"lives"`
	Lane       int         `json:"lane" msgpack:"lane"`
	Action     string      `json:"action" msgpack:"action"`
	Skin       string      `json:"skin" msgpack:"skin"`
	Obstacles  []EntityMsg `json:"obstacles" msgpack:"obstacles"`
	Coins      []EntityMsg `json:"coins" msgpack:"coins"`
	PowerUps   []EntityMsg `json:"powerUps" msgpack:"powerUps"`
	Active     *ActiveMsg  `json:"active,omitempty" msgpack:"active,omitempty"`
	Speed      float64     `json:"speed" msgpack:"speed"`
	GameTimeMS int64       `json:"gameTimeMs" msgpack:"gameTimeMs"`
	Stats      StatsMsg    `json:"stats" msgpack:"stats"`
	Events     []EventMsg  `json:"events,omitempty" msgpack:"events,omitempty"`
}

// EntityMsg is an obstacle, coin or power-up on the track.
type EntityMsg struct {
	ID       uint64  `json:"id" msgpack:"id"`
	Lane     int     `json:"lane" msgpack:"lane"`
	Kind     string  `json:"kind" msgpack:"kind"`
	Position float64 `json:"position" msgpack:"position"`
}

// ActiveMsg is the active power-up and its remaining game time.
type ActiveMsg struct {
	Kind        string `json:"kind" msgpack:"kind"`
	RemainingMS int64  `json:"remainingMs" msgpack:"remainingMs"`
}

// StatsMsg carries the run counters.
type StatsMsg struct {
	Coins    int `json:"coins" msgpack:"coins"`
	PowerUps int `json:"powerUps" msgpack:"powerUps"`
	Hits     int `json:"hits" msgpack:"hits"`
}

// EventMsg is an engine notification. Only the payload field of the event
// type is set.
type EventMsg struct {
	Type           string `json:"type" msgpack:"type"`
	Score          *int   `json:"score,omitempty" msgpack:"score,omitempty"`
	FinalScore     *int   `json:"finalScore,omitempty" msgpack:"finalScore,omitempty"`
	LivesRemaining *int   `json:"livesRemaining,omitempty" msgpack:"livesRemaining,omitempty"`
	Kind           string `json:"kind,omitempty" msgpack:"kind,omitempty"`
}

// Command is one client-to-server message.
type Command struct {
	Type string  `json:"type" msgpack:"type"`
	DX   float64 `json:"dx,omitempty" msgpack:"dx,omitempty"`
	DY   float64 `json:"dy,omitempty" msgpack:"dy,omitempty"`
	Skin string  `json:"skin,omitempty" msgpack:"skin,omitempty"`
}

// Command types
const (
	CmdStart       = "start"
	CmdPause       = "pause"
	CmdResume      = "resume"
	CmdTogglePause = "togglePause"
	CmdReset       = "reset"
	CmdEnd         = "end"
	CmdLeft        = "left"
	CmdRight       = "right"
	CmdJump        = "jump"
	CmdSlide       = "slide"
	CmdSwipe       = "swipe"
	CmdSkin        = "skin"
)

// Codec selects the wire encoding of a connection.
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgpack
)

// ParseCodec maps the codec query parameter. Anything but "msgpack" is JSON.
func ParseCodec(s string) Codec {
	if s == "msgpack" {
		return CodecMsgpack
	}
	return CodecJSON
}

func (c Codec) String() string {
	if c == CodecMsgpack {
		return "msgpack"
	}
	return "json"
}

// MessageType is the websocket frame type the codec writes.
func (c Codec) MessageType() int {
	if c == CodecMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// Marshal encodes v with the codec.
func (c Codec) Marshal(v any) ([]byte, error) {
	if c == CodecMsgpack {
		return msgpack.Marshal(v)
	}
	return json.Marshal(v)
}

// DecodeCommand parses a client message. Binary frames are msgpack and text
// frames JSON, whatever codec the connection uses for output.
func DecodeCommand(messageType int, data []byte) (Command, error) {
	var cmd Command
	var err error
	switch messageType {
	case websocket.BinaryMessage:
		err = msgpack.Unmarshal(data, &cmd)
	case websocket.TextMessage:
		err = json.Unmarshal(data, &cmd)
	default:
		return cmd, fmt.Errorf("web: unsupported message type %d", messageType)
	}
	if err != nil {
		return cmd, fmt.Errorf("web: decode command: %w", err)
	}
	if cmd.Type == "" {
		return cmd, fmt.Errorf("web: command without type")
	}
	return cmd, nil
}

// NewFrame converts a snapshot and pending events to the wire form.
func NewFrame(s rush.Snapshot, events []rush.Event) Frame {
	f := Frame{
		Phase:      s.Phase.String(),
		Score:      s.Score,
		FinalScore: s.FinalScore,
		Lives:      s.Lives,
		Lane:       int(s.Lane),
		Action:     s.Action.String(),
		Skin:       s.Skin,
		Obstacles:  entities(s.Obstacles),
		Coins:      entities(s.Coins),
		PowerUps:   entities(s.PowerUps),
		Speed:      s.Speed,
		GameTimeMS: s.GameTime.Milliseconds(),
		Stats: StatsMsg{
			Coins:    s.Stats.CoinsCollected,
			PowerUps: s.Stats.PowerUpsCollected,
			Hits:     s.Stats.Hits,
		},
	}
	if s.Active != nil {
		f.Active = &ActiveMsg{Kind: s.Active.Kind.String(), RemainingMS: s.Active.Remaining.Milliseconds()}
	}
	for _, ev := range events {
		f.Events = append(f.Events, NewEventMsg(ev))
	}
	return f
}

func entities(in []rush.Entity) []EntityMsg {
	out := make([]EntityMsg, len(in))
	for i, e := range in {
		out[i] = EntityMsg{ID: e.ID, Lane: int(e.Lane), Kind: e.Kind.String(), Position: e.Position}
	}
	return out
}

// NewEventMsg converts an engine event to the wire form.
func NewEventMsg(ev rush.Event) EventMsg {
	msg := EventMsg{Type: rush.EventName(ev)}
	switch ev := ev.(type) {
	case rush.GameOver:
		msg.FinalScore = &ev.FinalScore
	case rush.Hit:
		msg.LivesRemaining = &ev.LivesRemaining
	case rush.CoinCollected:
		msg.Score = &ev.Score
	case rush.MilestoneReached:
		msg.Score = &ev.Score
	case rush.PowerUpActivated:
		msg.Kind = ev.Kind.String()
	case rush.PowerUpExpired:
		msg.Kind = ev.Kind.String()
	}
	return msg
}
