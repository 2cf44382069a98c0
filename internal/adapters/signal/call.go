package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

// Call events carry a target and, for the negotiation kinds, an opaque
// payload. The payload stays a raw blob from here to the target.

type callPayload struct {
	Type    string          `json:"type"`
	ToID    domain.UserID   `json:"toId"`
	Payload json.RawMessage `json:"payload"`
}

func decodeCall(data []byte) (callPayload, bool) {
	var p callPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad call payload")
		return p, false
	}
	return p, true
}

func (ctl *ChatWSController) handleRing(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.Ring(cid, p.ToID)
	}
}

func (ctl *ChatWSController) handleOffer(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.RelayOffer(cid, p.ToID, p.Payload)
	}
}

func (ctl *ChatWSController) handleAnswer(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.RelayAnswer(cid, p.ToID, p.Payload)
	}
}

func (ctl *ChatWSController) handleICECandidate(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.RelayICECandidate(cid, p.ToID, p.Payload)
	}
}

func (ctl *ChatWSController) handleCallEnded(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.CallEnded(cid, p.ToID)
	}
}

func (ctl *ChatWSController) handleCallDeclined(cid core.ClientID, data []byte) {
	if p, ok := decodeCall(data); ok {
		ctl.Coord.CallDeclined(cid, p.ToID)
	}
}
