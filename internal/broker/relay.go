package broker

import (
	"encoding/json"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

// RelayEvent - forwards a game event to every other member of its room as a
// game_update. Fire and forget: no acknowledgment, no retry, and an unknown
// or foreign room id is a silent no-op. The payload passes through opaque;
// membership of the sender is deliberately not verified.
func (that *Broker) RelayEvent(senderID string, event *entity.Event) {
	log := that.logger.With("method", "RelayEvent", "participantID", senderID, "roomID", event.RoomID)

	payload := GameUpdatePayload{
		Type:    event.Type,
		Payload: event.Payload,
	}

	data, err := EncodeMessage(ActionGameUpdate, payload)
	if err != nil {
		log.Error("failed to encode game update", "error", err)
		return
	}

	if delivered := that.rooms.Broadcast(event.RoomID, senderID, data); delivered == 0 {
		log.Debug("game event dropped", "type", event.Type)
	}
}

// RelayMove - the legacy single-purpose relay: forwards the raw move to the
// other room members as a receive_move. Same delivery semantics as RelayEvent.
func (that *Broker) RelayMove(senderID, roomID string, move json.RawMessage) {
	log := that.logger.With("method", "RelayMove", "participantID", senderID, "roomID", roomID)

	message := Message{
		Action:  ActionReceiveMove,
		Payload: move,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Error("failed to marshal receive_move message", "error", err)
		return
	}

	if delivered := that.rooms.Broadcast(roomID, senderID, data); delivered == 0 {
		log.Debug("move dropped")
	}
}
