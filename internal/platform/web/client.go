package web

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/games/rush"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

// Connection timing
const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1024
	commandBuffer  = 32
)

// client is one websocket player with its own game. Only the run goroutine
// touches the game; the reader hands commands over through a channel.
type client struct {
	conn     *websocket.Conn
	codec    Codec
	game     *rush.Game
	store    *storage.Store
	logger   *log.Logger
	commands chan Command

	tickRate      int
	snapshotEvery int
	ticks         int
	events        []rush.Event
	saved         bool
}

func newClient(conn *websocket.Conn, codec Codec, game *rush.Game, rt core.RuntimeConfig, snapshotRate int, store *storage.Store, logger *log.Logger) *client {
	every := 1
	if snapshotRate > 0 && snapshotRate < rt.TickRate {
		every = rt.TickRate / snapshotRate
	}
	c := &client{
		conn:          conn,
		codec:         codec,
		game:          game,
		store:         store,
		logger:        logger,
		commands:      make(chan Command, commandBuffer),
		tickRate:      rt.TickRate,
		snapshotEvery: every,
	}
	game.Reset(rt)
	game.Engine().Subscribe(func(ev rush.Event) {
		c.events = append(c.events, ev)
	})
	return c
}

// readLoop decodes client commands until the connection fails, then
// cancels the session.
func (c *client) readLoop(cancel context.CancelFunc) {
	defer cancel()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // A failed deadline surfaces on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}
		cmd, err := DecodeCommand(messageType, data)
		if err != nil {
			c.logger.Debug("bad command", "error", err)
			continue
		}
		select {
		case c.commands <- cmd:
		default:
			c.logger.Warn("dropping command", "type", cmd.Type, "buffer", commandBuffer)
		}
	}
}

// run drives the game until ctx is cancelled or a write fails.
func (c *client) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(c.tickRate))
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := c.send(); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-c.commands:
			c.apply(cmd)

		case <-ticker.C:
			c.game.Step(core.InputFrame{})
			c.saveIfOver()
			c.ticks++
			if c.ticks%c.snapshotEvery != 0 {
				continue
			}
			if err := c.send(); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}

		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// apply executes a command against the engine. Commands that make no sense
// in the current phase are ignored by the engine.
func (c *client) apply(cmd Command) {
	e := c.game.Engine()
	switch cmd.Type {
	case CmdStart:
		e.Start()
	case CmdPause:
		e.Pause()
	case CmdResume:
		e.Resume()
	case CmdTogglePause:
		e.TogglePause()
	case CmdReset:
		e.Reset()
	case CmdEnd:
		e.EndGame()
	case CmdLeft:
		e.MoveLeft()
	case CmdRight:
		e.MoveRight()
	case CmdJump:
		e.Jump()
	case CmdSlide:
		e.Slide()
	case CmdSwipe:
		e.Swipe(cmd.DX, cmd.DY)
	case CmdSkin:
		e.SelectCharacter(cmd.Skin)
	default:
		c.logger.Debug("unknown command", "type", cmd.Type)
	}
}

// saveIfOver stores the run once per game over.
func (c *client) saveIfOver() {
	if c.game.Engine().Phase() != rush.PhaseOver {
		c.saved = false
		return
	}
	if c.saved {
		return
	}
	c.saved = true

	rec := c.game.RunRecord()
	c.logger.Info("run over", "score", rec.Score, "coins", rec.Coins, "duration", rec.Duration)
	if c.store == nil || rec.Score <= 0 {
		return
	}
	if _, err := c.store.SaveRun(rec); err != nil {
		c.logger.Warn("could not save run", "error", err)
	}
}

// send writes the current frame with the events gathered since the last one.
func (c *client) send() error {
	frame := NewFrame(c.game.Engine().Snapshot(), c.events)
	c.events = c.events[:0]

	data, err := c.codec.Marshal(frame)
	if err != nil {
		return err
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(c.codec.MessageType(), data)
}
