package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

func (that *Server) handleJoinLobby(ctx context.Context, conn *Conn, _ json.RawMessage) error {
	if err := that.broker.JoinLobby(ctx, conn); err != nil {
		return fmt.Errorf("failed to join lobby: %w", err)
	}

	return nil
}

// Protocol misuse is handled by dropping the request: the returned error is
// logged by the read pump, nothing is surfaced to the sender.
func (that *Server) handleGameEvent(_ context.Context, conn *Conn, payload json.RawMessage) error {
	var event entity.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal game event: %w", err)
	}

	if event.RoomID == "" {
		return apperror.ErrEmptyRoomID
	}

	that.broker.RelayEvent(conn.ID(), &event)

	return nil
}

func (that *Server) handleSendMove(_ context.Context, conn *Conn, payload json.RawMessage) error {
	var move movePayload
	if err := json.Unmarshal(payload, &move); err != nil {
		return fmt.Errorf("failed to unmarshal move: %w", err)
	}

	if move.RoomID == "" {
		return apperror.ErrEmptyRoomID
	}

	that.broker.RelayMove(conn.ID(), move.RoomID, move.Move)

	return nil
}
