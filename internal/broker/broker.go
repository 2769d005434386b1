package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

// Message actions that make up the wire contract. The inbound half is
// dispatched by the websocket transport, the outbound half is emitted here.
const (
	ActionJoinLobby       = "join_lobby"
	ActionWaitingForMatch = "waiting_for_match"
	ActionMatchFound      = "match_found"
	ActionGameEvent       = "game_event"
	ActionGameUpdate      = "game_update"
	ActionSendMove        = "send_move"
	ActionReceiveMove     = "receive_move"
)

// Conn is one participant's transport connection. The broker holds the
// reference only between Register and Disconnect; the transport owns it.
type Conn interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Message is the wire envelope shared with the websocket transport.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MatchFoundPayload struct {
	RoomID        string `json:"room_id"`
	OpponentLabel string `json:"opponent_label"`
}

type GameUpdatePayload struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type presenceRepo interface {
	MarkOnline(ctx context.Context, participantID string) error
	MarkOffline(ctx context.Context, participantID string) error
}

type matchRepo interface {
	Record(ctx context.Context, match *entity.Match) error
}

// Broker pairs anonymous connections into two-member rooms and relays
// opaque game events between room members. All protocol state (registry,
// waiting slot, room membership) lives in memory; the repositories are an
// operational log only and never gate matchmaking or relay.
type Broker struct {
	logger *slog.Logger

	registry *Registry
	rooms    *Rooms

	presenceRepo presenceRepo
	matchRepo    matchRepo

	// mu guards the waiting slot: at most one occupant, and the
	// match-then-clear transition is atomic.
	mu      sync.Mutex
	waiting Conn
}

func New(logger *slog.Logger, presenceRepo presenceRepo, matchRepo matchRepo) *Broker {
	return &Broker{
		logger:       logger.With("component", "broker"),
		registry:     NewRegistry(),
		rooms:        NewRooms(),
		presenceRepo: presenceRepo,
		matchRepo:    matchRepo,
	}
}

// Register - records a new connection. Never fails; the presence mark is
// best effort.
func (that *Broker) Register(ctx context.Context, conn Conn) {
	log := that.logger.With("method", "Register", "participantID", conn.ID())

	that.registry.Register(conn)

	if err := that.presenceRepo.MarkOnline(ctx, conn.ID()); err != nil {
		log.Warn("failed to mark participant online", "error", err)
	}

	log.Info("participant registered")
}

// Disconnect - cleans up after a connection teardown. Idempotent: the
// transport calls it once per connection, but a repeated call is harmless.
// The remaining room member is not notified; relay simply goes silent.
func (that *Broker) Disconnect(ctx context.Context, participantID string) {
	log := that.logger.With("method", "Disconnect", "participantID", participantID)

	that.mu.Lock()
	if that.waiting != nil && that.waiting.ID() == participantID {
		that.waiting = nil
		log.Info("waiting slot vacated")
	}
	that.mu.Unlock()

	that.rooms.LeaveAll(participantID)
	that.registry.Remove(participantID)

	if err := that.presenceRepo.MarkOffline(ctx, participantID); err != nil {
		log.Warn("failed to mark participant offline", "error", err)
	}

	log.Info("participant disconnected")
}

// Stats - reports the current number of rooms and registered connections.
func (that *Broker) Stats() (rooms, clients int) {
	rooms, _ = that.rooms.Stats()
	return rooms, that.registry.Count()
}

func (that *Broker) send(conn Conn, action string, payload any) error {
	data, err := EncodeMessage(action, payload)
	if err != nil {
		return err
	}

	if err = conn.Send(data); err != nil {
		return fmt.Errorf("failed to send %s message: %w", action, err)
	}

	return nil
}

// EncodeMessage - builds the wire envelope for an outbound message.
func EncodeMessage(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", action, err)
		}
		message.Payload = raw
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s message: %w", action, err)
	}

	return data, nil
}
