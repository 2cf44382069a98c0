package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

func (ctl *ChatWSController) handlePostWorld(cid core.ClientID, data []byte) {
	var p struct {
		Type        string             `json:"type"`
		DisplayName string             `json:"displayName"`
		Text        string             `json:"text"`
		Attachment  *domain.Attachment `json:"attachment"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad world message payload")
		return
	}
	ctl.Coord.PostWorld(cid, p.DisplayName, p.Text, p.Attachment)
}

func (ctl *ChatWSController) handlePostDirect(cid core.ClientID, data []byte) {
	var p struct {
		Type       string             `json:"type"`
		ToID       domain.UserID      `json:"toId"`
		Text       string             `json:"text"`
		Attachment *domain.Attachment `json:"attachment"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad direct message payload")
		return
	}
	ctl.Coord.PostDirect(cid, p.ToID, p.Text, p.Attachment)
}

func (ctl *ChatWSController) handleDirectHistory(cid core.ClientID, data []byte) {
	var p struct {
		Type   string        `json:"type"`
		WithID domain.UserID `json:"withId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad direct history payload")
		return
	}
	ctl.Coord.DirectHistory(cid, p.WithID)
}
