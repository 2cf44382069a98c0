package domain

import (
	"time"

	"github.com/google/uuid"
)

type GroupID string

// Group keeps its members in insertion order. The creator is always the
// first member; a group never exists with zero members.
type Group struct {
	ID          GroupID  `json:"id"`
	Name        string   `json:"name"`
	CreatorID   UserID   `json:"creatorId"`
	CreatorName string   `json:"creatorDisplayName"`
	Members     []UserID `json:"members"`
	CreatedAt   int64    `json:"createdAt"`
}

func NewGroup(name string, creator Identity) *Group {
	return &Group{
		ID:          GroupID(uuid.NewString()),
		Name:        name,
		CreatorID:   creator.ID,
		CreatorName: creator.DisplayName,
		Members:     []UserID{creator.ID},
		CreatedAt:   time.Now().UnixMilli(),
	}
}

func (g *Group) IsMember(id UserID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}

// AddMember appends id unless it is already present.
func (g *Group) AddMember(id UserID) bool {
	if g.IsMember(id) {
		return false
	}
	g.Members = append(g.Members, id)
	return true
}

// RemoveMember drops id, keeping the order of the remaining members.
func (g *Group) RemoveMember(id UserID) bool {
	for i, m := range g.Members {
		if m == id {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}
