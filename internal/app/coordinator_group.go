package app

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

type groupEvent struct {
	Type  string        `json:"type"`
	Group *domain.Group `json:"group"`
}

type groupMessageEvent struct {
	Type    string              `json:"type"`
	Message domain.GroupMessage `json:"message"`
}

// CreateGroup makes a new group with the creator as its only member and
// announces it to everyone.
func (c *Coordinator) CreateGroup(client core.ClientID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		log.Debug().Str("module", "app.coordinator").Str("client", string(client)).Msg("ignored empty group name")
		return
	}
	g := c.groups.Create(name, entry.Identity)
	c.broadcast(groupEvent{"group-created", g})
}

// GroupList replies with all groups, privately.
func (c *Coordinator) GroupList(client core.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	c.send(entry.Conn, struct {
		Type   string          `json:"type"`
		Groups []*domain.Group `json:"groups"`
	}{"group-list", c.groups.List()})
}

// JoinGroup appends the member, records a system notice in the group log
// and announces both the notice and the updated group to all connections.
// Joining an absent group or one you are already in is a no-op.
func (c *Coordinator) JoinGroup(client core.ClientID, groupID domain.GroupID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	g, ok := c.groups.Get(groupID)
	if !ok {
		return
	}
	if !g.AddMember(entry.Identity.ID) {
		log.Debug().Str("module", "app.coordinator").Str("group", string(groupID)).
			Str("user", entry.Identity.DisplayName).Msg("already a member")
		return
	}
	notice := c.systemNotice(groupID, entry.Identity.DisplayName+" joined the group")
	c.broadcast(groupMessageEvent{"group-message", notice})
	c.broadcast(groupEvent{"group-updated", g})
	log.Info().Str("module", "app.coordinator").Str("group", string(groupID)).
		Str("user", entry.Identity.DisplayName).Msg("joined group")
}

// LeaveGroup removes the member. The last member leaving destroys the
// group and its log.
func (c *Coordinator) LeaveGroup(client core.ClientID, groupID domain.GroupID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	g, ok := c.groups.Get(groupID)
	if !ok {
		return
	}
	if !g.RemoveMember(entry.Identity.ID) {
		log.Debug().Str("module", "app.coordinator").Str("group", string(groupID)).
			Str("user", entry.Identity.DisplayName).Msg("leave from non-member")
		return
	}
	if len(g.Members) == 0 {
		c.groups.Remove(groupID)
		c.channels.DropGroup(groupID)
		c.broadcast(struct {
			Type    string         `json:"type"`
			GroupID domain.GroupID `json:"groupId"`
		}{"group-deleted", groupID})
		return
	}
	notice := c.systemNotice(groupID, entry.Identity.DisplayName+" left the group")
	c.broadcast(groupMessageEvent{"group-message", notice})
	c.broadcast(groupEvent{"group-updated", g})
	log.Info().Str("module", "app.coordinator").Str("group", string(groupID)).
		Str("user", entry.Identity.DisplayName).Msg("left group")
}

// PostGroup appends to the group log and delivers the message to the live
// connection of each current member. Non-members are silently ignored.
func (c *Coordinator) PostGroup(client core.ClientID, groupID domain.GroupID, text string, att *domain.Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	g, ok := c.groups.Get(groupID)
	if !ok {
		return
	}
	if !g.IsMember(entry.Identity.ID) {
		log.Info().Str("module", "app.coordinator").Str("group", string(groupID)).
			Str("user", entry.Identity.DisplayName).Msg("post from non-member ignored")
		return
	}

	msg := domain.GroupMessage{
		ID:         domain.NewMessageID(),
		GroupID:    groupID,
		Sender:     domain.UserSender(entry.Identity.ID, entry.Identity.DisplayName),
		Text:       text,
		Timestamp:  time.Now().UnixMilli(),
		Avatar:     entry.Identity.Avatar,
		Attachment: att,
	}
	c.channels.AppendGroup(groupID, msg)

	// Membership-scoped fan-out, one delivery per online member.
	ev := groupMessageEvent{"group-message", msg}
	for _, member := range g.Members {
		if e, ok := c.registry.Get(member); ok {
			c.send(e.Conn, ev)
		}
	}
}

// GroupHistory replies with the group's log, gated on membership. An
// absent group yields an empty log rather than silence, so a client whose
// group was deleted underneath it settles on empty state.
func (c *Coordinator) GroupHistory(client core.ClientID, groupID domain.GroupID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.registry.Resolve(client)
	if !ok {
		return
	}
	if g, ok := c.groups.Get(groupID); ok && !g.IsMember(entry.Identity.ID) {
		log.Debug().Str("module", "app.coordinator").Str("group", string(groupID)).
			Str("user", entry.Identity.DisplayName).Msg("history request from non-member")
		return
	}
	c.send(entry.Conn, struct {
		Type     string                `json:"type"`
		GroupID  domain.GroupID        `json:"groupId"`
		Messages []domain.GroupMessage `json:"messages"`
	}{"group-history", groupID, c.channels.Group(groupID)})
}

func (c *Coordinator) systemNotice(groupID domain.GroupID, text string) domain.GroupMessage {
	msg := domain.GroupMessage{
		ID:        domain.NewMessageID(),
		GroupID:   groupID,
		Sender:    domain.SystemSender(),
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
	c.channels.AppendGroup(groupID, msg)
	return msg
}
