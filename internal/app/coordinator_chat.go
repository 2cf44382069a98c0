package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

type worldHistoryEvent struct {
	Type     string                `json:"type"`
	Messages []domain.WorldMessage `json:"messages"`
}

type worldMessageEvent struct {
	Type    string              `json:"type"`
	Message domain.WorldMessage `json:"message"`
}

// PostWorld appends to the world log and broadcasts to everyone online.
// The author's id and avatar come from the resolved identity, never from
// the payload.
func (c *Coordinator) PostWorld(client core.ClientID, displayName, text string, att *domain.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("client", string(client)).Msg("world post from unresolved connection")
		return
	}
	name := displayName
	if name == "" {
		name = entry.Identity.DisplayName
	}
	msg := domain.WorldMessage{
		ID:         domain.NewMessageID(),
		AuthorID:   entry.Identity.ID,
		AuthorName: name,
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
		Avatar:     entry.Identity.Avatar,
		Attachment: att,
	}
	c.channels.AppendWorld(msg)
	c.broadcast(worldMessageEvent{"world-message", msg})
}

// WorldHistory replies with the current world log, privately.
func (c *Coordinator) WorldHistory(client core.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	c.send(entry.Conn, worldHistoryEvent{"world-history", c.channels.World()})
}

type directMessageEvent struct {
	Type    string               `json:"type"`
	Message domain.DirectMessage `json:"message"`
}

// PostDirect appends to the pair's conversation log and delivers to both
// endpoints. An unresolvable sender or a recipient that is not online
// makes the whole event a no-op.
func (c *Coordinator) PostDirect(client core.ClientID, toID domain.UserID, text string, att *domain.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, ok := c.registry.Resolve(client)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("client", string(client)).Msg("direct post from unresolved connection")
		return
	}
	to, ok := c.registry.Get(toID)
	if !ok {
		log.Debug().Str("module", "app.coordinator").Str("to", string(toID)).Msg("direct post to unknown recipient")
		return
	}

	msg := domain.DirectMessage{
		ID:         domain.NewMessageID(),
		FromID:     from.Identity.ID,
		FromName:   from.Identity.DisplayName,
		ToID:       to.Identity.ID,
		ToName:     to.Identity.DisplayName,
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
		Avatar:     from.Identity.Avatar,
		Attachment: att,
	}
	c.channels.AppendDirect(ConversationKey(from.Identity.ID, to.Identity.ID), msg)

	ev := directMessageEvent{"direct-message", msg}
	c.send(from.Conn, ev)
	c.send(to.Conn, ev)
}

// DirectHistory replies with the conversation log shared with withID.
func (c *Coordinator) DirectHistory(client core.ClientID, withID domain.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	c.send(entry.Conn, struct {
		Type     string                 `json:"type"`
		WithID   domain.UserID          `json:"withId"`
		Messages []domain.DirectMessage `json:"messages"`
	}{"direct-history", withID, c.channels.Direct(ConversationKey(entry.Identity.ID, withID))})
}

// DirectDebug summarizes every direct conversation for the debug endpoint.
func (c *Coordinator) DirectDebug() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	type digest struct {
		From      string `json:"from"`
		To        string `json:"to"`
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
	}
	rooms := make(map[string]any)
	dump := c.channels.DirectDump()
	for key, msgs := range dump {
		digests := make([]digest, 0, len(msgs))
		for _, m := range msgs {
			digests = append(digests, digest{
				From:      m.FromName,
				To:        m.ToName,
				Text:      m.Text,
				Timestamp: time.UnixMilli(m.Timestamp).UTC().Format(time.RFC3339),
			})
		}
		rooms[key] = map[string]any{"count": len(msgs), "messages": digests}
	}
	return map[string]any{"totalRooms": len(dump), "rooms": rooms}
}
