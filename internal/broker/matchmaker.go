package broker

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

// opponentLabel is what each side is told about the other. Participants are
// anonymous, so there is no real name to resolve.
const opponentLabel = "Player"

// JoinLobby - runs the two-state lobby handshake for one participant.
//
// If another participant is waiting, both are joined to a freshly minted
// room and notified symmetrically. If the caller is already the waiter, the
// duplicate request is a no-op. Otherwise the caller occupies the waiting
// slot. The slot is single-capacity: joins are serialized under the broker
// mutex, so a third seeker queues for the next round rather than displacing
// anyone.
func (that *Broker) JoinLobby(ctx context.Context, conn Conn) error {
	log := that.logger.With("method", "JoinLobby", "participantID", conn.ID())

	that.mu.Lock()

	if that.waiting != nil && that.waiting.ID() == conn.ID() {
		that.mu.Unlock()
		log.Debug("duplicate join while queued")
		return nil
	}

	if that.waiting == nil {
		that.waiting = conn
		that.mu.Unlock()

		if err := that.send(conn, ActionWaitingForMatch, nil); err != nil {
			return fmt.Errorf("failed to notify queued participant: %w", err)
		}

		log.Info("participant queued")
		return nil
	}

	waiter := that.waiting
	that.waiting = nil
	that.mu.Unlock()

	roomID := entity.NewRoomID(waiter.ID(), conn.ID())

	that.rooms.Join(roomID, waiter)
	that.rooms.Join(roomID, conn)

	payload := MatchFoundPayload{
		RoomID:        roomID,
		OpponentLabel: opponentLabel,
	}

	for _, member := range []Conn{waiter, conn} {
		if err := that.send(member, ActionMatchFound, payload); err != nil {
			log.Error("failed to send match notification", "roomID", roomID, "memberID", member.ID(), "error", err)
		}
	}

	that.recordMatch(ctx, entity.NewMatch(roomID, waiter.ID(), conn.ID()))

	log.Info("match found", "roomID", roomID, "waiterID", waiter.ID())

	return nil
}

// recordMatch - writes the operational match record; never affects the match.
func (that *Broker) recordMatch(ctx context.Context, match *entity.Match) {
	if err := that.matchRepo.Record(ctx, match); err != nil {
		that.logger.Warn("failed to record match", "method", "recordMatch", "roomID", match.RoomID, "error", err)
	}
}
