package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
)

const (
	writeWait = 5 * time.Second
	pongWait  = 60 * time.Second
)

func (ctl *ChatWSController) writePump(ctx context.Context, c *wsChatConn) {
	ticker := time.NewTicker(ctl.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

func (ctl *ChatWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid core.ClientID, c *wsChatConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("readPump closing")
		ctl.Coord.OnDisconnect(cid)
		cancel()
		c.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("readPump read error")
				return
			}
			ctl.handleFrame(cid, c, data)
		}
	}
}

// handleFrame routes one inbound event by its type envelope. Events that
// need an identity are gated inside the coordinator; unknown types are
// ignored at this boundary.
func (ctl *ChatWSController) handleFrame(cid core.ClientID, conn core.SignalConnection, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "claim-identity":
		ctl.handleClaim(cid, conn, data)
	case "explicit-leave":
		ctl.handleExplicitLeave(cid, data)
	case "request-presence":
		ctl.Coord.Presence(cid)
	case "post-world-message":
		ctl.handlePostWorld(cid, data)
	case "request-world-history":
		ctl.Coord.WorldHistory(cid)
	case "post-direct-message":
		ctl.handlePostDirect(cid, data)
	case "request-direct-history":
		ctl.handleDirectHistory(cid, data)
	case "create-group":
		ctl.handleCreateGroup(cid, data)
	case "request-group-list":
		ctl.Coord.GroupList(cid)
	case "join-group":
		ctl.handleJoinGroup(cid, data)
	case "leave-group":
		ctl.handleLeaveGroup(cid, data)
	case "post-group-message":
		ctl.handlePostGroup(cid, data)
	case "request-group-history":
		ctl.handleGroupHistory(cid, data)
	case "ring":
		ctl.handleRing(cid, data)
	case "offer":
		ctl.handleOffer(cid, data)
	case "answer":
		ctl.handleAnswer(cid, data)
	case "ice-candidate":
		ctl.handleICECandidate(cid, data)
	case "call-ended":
		ctl.handleCallEnded(cid, data)
	case "call-declined":
		ctl.handleCallDeclined(cid, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown event")
	}
}
