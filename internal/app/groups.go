package app

import (
	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/domain"
)

// GroupManager owns group lifecycle. A group is either present with at
// least one member or gone; there is no empty or flagged-deleted state.
type GroupManager struct {
	groups map[domain.GroupID]*domain.Group
}

func NewGroupManager() *GroupManager {
	return &GroupManager{groups: make(map[domain.GroupID]*domain.Group)}
}

func (m *GroupManager) Create(name string, creator domain.Identity) *domain.Group {
	g := domain.NewGroup(name, creator)
	m.groups[g.ID] = g
	log.Info().Str("module", "app.groups").Str("group", string(g.ID)).Str("name", name).
		Str("creator", creator.DisplayName).Msg("group created")
	return g
}

func (m *GroupManager) Get(id domain.GroupID) (*domain.Group, bool) {
	g, ok := m.groups[id]
	return g, ok
}

func (m *GroupManager) List() []*domain.Group {
	out := make([]*domain.Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g)
	}
	return out
}

func (m *GroupManager) Remove(id domain.GroupID) {
	delete(m.groups, id)
	log.Info().Str("module", "app.groups").Str("group", string(id)).Msg("group deleted")
}

func (m *GroupManager) Count() int {
	return len(m.groups)
}

func (m *GroupManager) Reset() {
	m.groups = make(map[domain.GroupID]*domain.Group)
}
