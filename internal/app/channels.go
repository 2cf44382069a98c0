package app

import (
	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// ChannelStore holds the three bounded message logs: one world log, one
// per direct conversation, one per group. Logs are created on first append
// and reading an absent key yields an empty sequence, never an error.
type ChannelStore struct {
	limit  int
	world  *core.History[domain.WorldMessage]
	direct map[string]*core.History[domain.DirectMessage]
	groups map[domain.GroupID]*core.History[domain.GroupMessage]
}

func NewChannelStore(limit int) *ChannelStore {
	return &ChannelStore{
		limit:  limit,
		world:  core.NewHistory[domain.WorldMessage](limit),
		direct: make(map[string]*core.History[domain.DirectMessage]),
		groups: make(map[domain.GroupID]*core.History[domain.GroupMessage]),
	}
}

// ConversationKey is commutative: both participants resolve to the same
// direct log regardless of who is sending.
func ConversationKey(a, b domain.UserID) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "-" + string(b)
}

func (s *ChannelStore) AppendWorld(m domain.WorldMessage) {
	s.world.Append(m)
}

func (s *ChannelStore) World() []domain.WorldMessage {
	return s.world.Items()
}

func (s *ChannelStore) WorldCount() int {
	return s.world.Len()
}

func (s *ChannelStore) AppendDirect(key string, m domain.DirectMessage) {
	h, ok := s.direct[key]
	if !ok {
		h = core.NewHistory[domain.DirectMessage](s.limit)
		s.direct[key] = h
	}
	h.Append(m)
}

func (s *ChannelStore) Direct(key string) []domain.DirectMessage {
	if h, ok := s.direct[key]; ok {
		return h.Items()
	}
	return []domain.DirectMessage{}
}

// DirectDump exposes every direct conversation, keyed by conversation key.
// Serves the debug endpoint only.
func (s *ChannelStore) DirectDump() map[string][]domain.DirectMessage {
	out := make(map[string][]domain.DirectMessage, len(s.direct))
	for key, h := range s.direct {
		out[key] = h.Items()
	}
	return out
}

func (s *ChannelStore) AppendGroup(id domain.GroupID, m domain.GroupMessage) {
	h, ok := s.groups[id]
	if !ok {
		h = core.NewHistory[domain.GroupMessage](s.limit)
		s.groups[id] = h
	}
	h.Append(m)
}

func (s *ChannelStore) Group(id domain.GroupID) []domain.GroupMessage {
	if h, ok := s.groups[id]; ok {
		return h.Items()
	}
	return []domain.GroupMessage{}
}

// DropGroup deletes a group's log together with the group itself.
func (s *ChannelStore) DropGroup(id domain.GroupID) {
	delete(s.groups, id)
}

func (s *ChannelStore) Reset() {
	s.world = core.NewHistory[domain.WorldMessage](s.limit)
	s.direct = make(map[string]*core.History[domain.DirectMessage])
	s.groups = make(map[domain.GroupID]*core.History[domain.GroupMessage])
}
