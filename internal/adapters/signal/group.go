package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

func (ctl *ChatWSController) handleCreateGroup(cid core.ClientID, data []byte) {
	var p struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad create group payload")
		return
	}
	ctl.Coord.CreateGroup(cid, p.Name)
}

func (ctl *ChatWSController) handleJoinGroup(cid core.ClientID, data []byte) {
	if gid, ok := groupIDPayload(data); ok {
		ctl.Coord.JoinGroup(cid, gid)
	}
}

func (ctl *ChatWSController) handleLeaveGroup(cid core.ClientID, data []byte) {
	if gid, ok := groupIDPayload(data); ok {
		ctl.Coord.LeaveGroup(cid, gid)
	}
}

func (ctl *ChatWSController) handleGroupHistory(cid core.ClientID, data []byte) {
	if gid, ok := groupIDPayload(data); ok {
		ctl.Coord.GroupHistory(cid, gid)
	}
}

func (ctl *ChatWSController) handlePostGroup(cid core.ClientID, data []byte) {
	var p struct {
		Type       string             `json:"type"`
		GroupID    domain.GroupID     `json:"groupId"`
		Text       string             `json:"text"`
		Attachment *domain.Attachment `json:"attachment"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad group message payload")
		return
	}
	ctl.Coord.PostGroup(cid, p.GroupID, p.Text, p.Attachment)
}

func groupIDPayload(data []byte) (domain.GroupID, bool) {
	var p struct {
		Type    string         `json:"type"`
		GroupID domain.GroupID `json:"groupId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad group payload")
		return "", false
	}
	return p.GroupID, true
}
