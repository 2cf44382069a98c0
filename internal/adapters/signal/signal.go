package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/app"
	"github.com/dkeye/Parley/internal/config"
	"github.com/dkeye/Parley/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

type ChatWSController struct {
	Coord      *app.Coordinator
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewChatWSController(coord *app.Coordinator, cfg *config.Config) *ChatWSController {
	return &ChatWSController{
		Coord:      coord,
		ReadLimit:  cfg.ReadLimit,
		PingPeriod: cfg.PingPeriod,
	}
}

type wsChatConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsChatConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsChatConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleChat upgrades the request and starts the connection pumps. Every
// upgrade gets a fresh ClientID; identity is attached later by the
// claim-identity event.
func (ctl *ChatWSController) HandleChat(ctx context.Context, c *gin.Context) {
	cid := core.ClientID(uuid.NewString())
	log.Info().Str("module", "signal").Str("cid", string(cid)).
		Str("ct", c.GetString("client_token")).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsChatConn{
		conn: ws,
		send: make(chan core.Frame, 64),
	}

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}
