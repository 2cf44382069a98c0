package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
)

// handleClaim normalizes the claim payload before anything else sees it:
// some clients send {displayName, avatar}, older ones send the name as a
// bare string under payload. Only the structured form leaves this boundary.
func (ctl *ChatWSController) handleClaim(cid core.ClientID, conn core.SignalConnection, data []byte) {
	var p struct {
		Type        string          `json:"type"`
		DisplayName string          `json:"displayName"`
		Avatar      string          `json:"avatar"`
		Payload     json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad claim payload")
		return
	}
	if p.DisplayName == "" && len(p.Payload) > 0 {
		var name string
		if err := json.Unmarshal(p.Payload, &name); err == nil {
			p.DisplayName = name
		} else {
			var obj struct {
				DisplayName string `json:"displayName"`
				Avatar      string `json:"avatar"`
			}
			if err := json.Unmarshal(p.Payload, &obj); err == nil {
				p.DisplayName = obj.DisplayName
				p.Avatar = obj.Avatar
			}
		}
	}
	ctl.Coord.Claim(cid, conn, p.DisplayName, p.Avatar)
}

func (ctl *ChatWSController) handleExplicitLeave(cid core.ClientID, data []byte) {
	var p struct {
		Type        string `json:"type"`
		DisplayName string `json:"displayName"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		return
	}
	ctl.Coord.ExplicitLeave(cid, p.DisplayName)
}
