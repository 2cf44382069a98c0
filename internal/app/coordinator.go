package app

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// Coordinator aggregates the registry, channel store and group manager and
// performs all event handling and fan-out. One mutex covers every mutation
// sequence, so no handler ever observes another handler's half-applied
// state. Delivery is fire-and-forget: a stale or slow connection drops the
// frame, it is never retried.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	channels *ChannelStore
	groups   *GroupManager
}

func NewCoordinator(historyLimit int) *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		channels: NewChannelStore(historyLimit),
		groups:   NewGroupManager(),
	}
}

// send marshals and delivers one event to one connection.
func (c *Coordinator) send(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("marshal outbound event")
		return
	}
	if err := conn.TrySend(core.Frame(b)); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Msg("dropped outbound event")
	}
}

// broadcast delivers one event to every live connection.
func (c *Coordinator) broadcast(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("marshal broadcast event")
		return
	}
	for _, conn := range c.registry.Conns() {
		if err := conn.TrySend(core.Frame(b)); err != nil {
			log.Debug().Err(err).Str("module", "app.coordinator").Msg("dropped broadcast frame")
		}
	}
}

type presenceChangedEvent struct {
	Type        string            `json:"type"`
	DisplayName string            `json:"displayName"`
	Users       []domain.Identity `json:"users"`
}

type presenceSnapshotEvent struct {
	Type  string            `json:"type"`
	Users []domain.Identity `json:"users"`
}

// Claim handles claim-identity: the only inbound event that needs no prior
// identity. On success the requester privately receives the presence
// snapshot and the world history, and everyone sees the updated presence.
func (c *Coordinator) Claim(client core.ClientID, conn core.SignalConnection, rawName, avatar string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := domain.NormalizeName(rawName)
	if err := domain.ValidateDisplayName(name); err != nil {
		log.Warn().Err(err).Str("module", "app.coordinator").Str("client", string(client)).Msg("rejected claim")
		return
	}
	if holder, ok := c.registry.LiveNameHolder(name); ok && holder.Client != client {
		log.Info().Str("module", "app.coordinator").Str("name", rawName).Msg("name already in use by another connection")
		c.send(conn, struct {
			Type  string `json:"type"`
			Error string `json:"error"`
		}{"name-in-use-error", "Name already in use. Please choose a different name."})
		return
	}

	id, _ := c.registry.ResolveOrCreate(name)
	entry := c.registry.Claim(id, client, conn, strings.TrimSpace(rawName), avatar)

	snapshot := c.registry.Snapshot()
	c.broadcast(presenceChangedEvent{"presence-changed", entry.Identity.DisplayName, snapshot})
	c.send(conn, presenceSnapshotEvent{"presence-snapshot", snapshot})
	c.send(conn, worldHistoryEvent{"world-history", c.channels.World()})
}

// Presence replies with the current snapshot, privately.
func (c *Coordinator) Presence(client core.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	c.send(entry.Conn, presenceSnapshotEvent{"presence-snapshot", c.registry.Snapshot()})
}

// ExplicitLeave removes the identity immediately rather than waiting for
// the transport-level disconnect, so a graceful close does not linger in
// the online list. The connection itself stays open.
func (c *Coordinator) ExplicitLeave(client core.ClientID, displayName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Remove(client)
	if !ok {
		return
	}
	name := displayName
	if name == "" {
		name = entry.Identity.DisplayName
	}
	c.broadcast(presenceChangedEvent{"presence-changed", name, c.registry.Snapshot()})
	c.maybeResetLocked()
}

// OnDisconnect handles the transport-level disconnect signal. A connection
// that never claimed an identity leaves no trace.
func (c *Coordinator) OnDisconnect(client core.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Remove(client)
	if !ok {
		return
	}
	c.broadcast(presenceChangedEvent{"presence-changed", entry.Identity.DisplayName, c.registry.Snapshot()})
	c.maybeResetLocked()
}

// maybeResetLocked implements the zero-occupancy rule: when the last
// identity disconnects, all history, groups and name reservations are
// wiped. This room is ephemeral; an unrelated later first user must not
// see stale state.
func (c *Coordinator) maybeResetLocked() {
	if c.registry.Count() > 0 {
		return
	}
	c.channels.Reset()
	c.groups.Reset()
	c.registry.Reset()
	log.Info().Str("module", "app.coordinator").Msg("no identities online, cleared all state")
}

// Stats feeds the liveness endpoint.
func (c *Coordinator) Stats() (users, messages, groups int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Count(), c.channels.WorldCount(), c.groups.Count()
}
