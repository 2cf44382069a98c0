package app

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// LiveEntry binds an identity to the one connection currently representing it.
type LiveEntry struct {
	Identity domain.Identity
	Client   core.ClientID
	Conn     core.SignalConnection
}

// Registry owns identity continuity and presence: the normalized-name to id
// reservation that survives reconnects, the live identities, and the reverse
// connection index used to route inbound events.
//
// Methods are not synchronized; the Coordinator holds its lock across every
// mutation sequence.
type Registry struct {
	names    map[string]domain.UserID
	live     map[domain.UserID]*LiveEntry
	byClient map[core.ClientID]domain.UserID
}

func NewRegistry() *Registry {
	return &Registry{
		names:    make(map[string]domain.UserID),
		live:     make(map[domain.UserID]*LiveEntry),
		byClient: make(map[core.ClientID]domain.UserID),
	}
}

// ResolveOrCreate returns the stable id reserved for a normalized name,
// minting one on first sight. Never fails.
func (r *Registry) ResolveOrCreate(normalized string) (domain.UserID, bool) {
	if id, ok := r.names[normalized]; ok {
		return id, false
	}
	id := domain.NewUserID()
	r.names[normalized] = id
	log.Info().Str("module", "app.registry").Str("name", normalized).Str("id", string(id)).Msg("created new identity")
	return id, true
}

// LiveNameHolder finds the live identity whose normalized display name
// matches. Disconnected names hold no claim.
func (r *Registry) LiveNameHolder(normalized string) (*LiveEntry, bool) {
	for _, e := range r.live {
		if domain.NormalizeName(e.Identity.DisplayName) == normalized {
			return e, true
		}
	}
	return nil, false
}

// Claim stores or overwrites the live record for id, binding it to client.
// A stale connection previously representing this id loses its index entry
// without being notified (same name, new tab). If client was bound to a
// different id, that old identity goes offline too, keeping the
// connection↔identity index one-to-one both ways.
func (r *Registry) Claim(id domain.UserID, client core.ClientID, conn core.SignalConnection, displayName, avatar string) *LiveEntry {
	if prev, ok := r.live[id]; ok && prev.Client != client {
		delete(r.byClient, prev.Client)
		log.Info().Str("module", "app.registry").Str("id", string(id)).
			Str("old_client", string(prev.Client)).Str("client", string(client)).
			Msg("rebound identity to new connection")
	}
	if oldID, ok := r.byClient[client]; ok && oldID != id {
		delete(r.live, oldID)
	}
	e := &LiveEntry{
		Identity: domain.Identity{
			ID:          id,
			DisplayName: displayName,
			Avatar:      avatar,
			JoinedAt:    time.Now().UnixMilli(),
		},
		Client: client,
		Conn:   conn,
	}
	r.live[id] = e
	r.byClient[client] = id
	return e
}

// Resolve maps an inbound connection to its live identity.
func (r *Registry) Resolve(client core.ClientID) (*LiveEntry, bool) {
	id, ok := r.byClient[client]
	if !ok {
		return nil, false
	}
	e, ok := r.live[id]
	return e, ok
}

// Get looks up a live identity by id.
func (r *Registry) Get(id domain.UserID) (*LiveEntry, bool) {
	e, ok := r.live[id]
	return e, ok
}

// Remove tears down the live record and index entry for client. The name
// reservation stays so the same id can be reclaimed.
func (r *Registry) Remove(client core.ClientID) (*LiveEntry, bool) {
	id, ok := r.byClient[client]
	if !ok {
		return nil, false
	}
	delete(r.byClient, client)
	e, ok := r.live[id]
	if !ok {
		return nil, false
	}
	delete(r.live, id)
	log.Info().Str("module", "app.registry").Str("id", string(id)).Str("name", e.Identity.DisplayName).Msg("identity went offline")
	return e, true
}

// Snapshot lists currently connected identities. Consumers must not rely
// on ordering.
func (r *Registry) Snapshot() []domain.Identity {
	out := make([]domain.Identity, 0, len(r.live))
	for _, e := range r.live {
		out = append(out, e.Identity)
	}
	return out
}

func (r *Registry) Conns() []core.SignalConnection {
	out := make([]core.SignalConnection, 0, len(r.live))
	for _, e := range r.live {
		out = append(out, e.Conn)
	}
	return out
}

func (r *Registry) Count() int {
	return len(r.live)
}

// Reset drops everything, name reservations included. Ids minted after a
// reset are unrelated to those before it.
func (r *Registry) Reset() {
	r.names = make(map[string]domain.UserID)
	r.live = make(map[domain.UserID]*LiveEntry)
	r.byClient = make(map[core.ClientID]domain.UserID)
}
