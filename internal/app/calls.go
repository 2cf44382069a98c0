package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// Call signaling is a pure relay: the server resolves the two endpoints
// and forwards payloads verbatim, keeping no call state. If either
// endpoint fails to resolve the event is dropped; the caller only ever
// observes a timeout.

// Ring delivers an incoming-call notice naming the caller.
func (c *Coordinator) Ring(client core.ClientID, toID domain.UserID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	to, ok := c.registry.Get(toID)
	if !ok {
		log.Debug().Str("module", "app.calls").Str("to", string(toID)).Msg("ring target not online")
		return
	}
	c.send(to.Conn, struct {
		Type     string        `json:"type"`
		FromID   domain.UserID `json:"fromId"`
		FromName string        `json:"fromDisplayName"`
	}{"incoming-call", from.Identity.ID, from.Identity.DisplayName})
}

func (c *Coordinator) RelayOffer(client core.ClientID, toID domain.UserID, payload json.RawMessage) {
	c.relaySignal(client, toID, "call-offer", payload)
}

func (c *Coordinator) RelayAnswer(client core.ClientID, toID domain.UserID, payload json.RawMessage) {
	c.relaySignal(client, toID, "call-answer", payload)
}

func (c *Coordinator) RelayICECandidate(client core.ClientID, toID domain.UserID, payload json.RawMessage) {
	c.relaySignal(client, toID, "call-ice-candidate", payload)
}

// relaySignal forwards an opaque negotiation payload to the target, tagged
// with the sender's identity. The payload is never parsed.
func (c *Coordinator) relaySignal(client core.ClientID, toID domain.UserID, event string, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	to, ok := c.registry.Get(toID)
	if !ok {
		log.Debug().Str("module", "app.calls").Str("event", event).Str("to", string(toID)).Msg("relay target not online")
		return
	}
	c.send(to.Conn, struct {
		Type    string          `json:"type"`
		FromID  domain.UserID   `json:"fromId"`
		Payload json.RawMessage `json:"payload"`
	}{event, from.Identity.ID, payload})
}

func (c *Coordinator) CallEnded(client core.ClientID, toID domain.UserID) {
	c.callNotice(client, toID, "call-ended")
}

func (c *Coordinator) CallDeclined(client core.ClientID, toID domain.UserID) {
	c.callNotice(client, toID, "call-declined")
}

func (c *Coordinator) callNotice(client core.ClientID, toID domain.UserID, event string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	from, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	to, ok := c.registry.Get(toID)
	if !ok {
		return
	}
	c.send(to.Conn, struct {
		Type   string        `json:"type"`
		FromID domain.UserID `json:"fromId"`
	}{event, from.Identity.ID})
}
