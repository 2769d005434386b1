package broker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matchPair registers two connections and pairs them, returning the room id.
func matchPair(t *testing.T, gameBroker *Broker, connA, connB *fakeConn) string {
	t.Helper()

	ctx := context.Background()
	gameBroker.Register(ctx, connA)
	gameBroker.Register(ctx, connB)
	require.NoError(t, gameBroker.JoinLobby(ctx, connA))
	require.NoError(t, gameBroker.JoinLobby(ctx, connB))

	for _, msg := range connA.messages(t) {
		if msg.Action == ActionMatchFound {
			var payload MatchFoundPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			return payload.RoomID
		}
	}

	t.Fatal("no match_found received")
	return ""
}

func TestBroker_RelayEvent(t *testing.T) {
	t.Run("Delivers exactly one game_update to the other member", func(t *testing.T) {
		// Given: a matched pair
		gameBroker, _, _ := newTestBroker()
		connA, connB := newFakeConn("a"), newFakeConn("b")
		roomID := matchPair(t, gameBroker, connA, connB)

		// When: one member relays a move event
		gameBroker.RelayEvent("a", &entity.Event{
			RoomID:  roomID,
			Type:    "move",
			Payload: json.RawMessage(`{"index":4,"symbol":"O"}`),
		})

		// Then: the other member receives it exactly once, verbatim
		require.Equal(t, 1, connB.countAction(t, ActionGameUpdate))

		for _, msg := range connB.messages(t) {
			if msg.Action != ActionGameUpdate {
				continue
			}
			var payload GameUpdatePayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, "move", payload.Type)
			assert.JSONEq(t, `{"index":4,"symbol":"O"}`, string(payload.Payload))
		}

		// Then: the sender never receives its own event back
		assert.Equal(t, 0, connA.countAction(t, ActionGameUpdate))
	})

	t.Run("Unknown room id is a silent no-op", func(t *testing.T) {
		// Given: a matched pair
		gameBroker, _, _ := newTestBroker()
		connA, connB := newFakeConn("a"), newFakeConn("b")
		matchPair(t, gameBroker, connA, connB)

		// When: an event targets a room that does not exist
		gameBroker.RelayEvent("a", &entity.Event{RoomID: "no-such-room", Type: "move"})

		// Then: nobody receives anything
		assert.Equal(t, 0, connA.countAction(t, ActionGameUpdate))
		assert.Equal(t, 0, connB.countAction(t, ActionGameUpdate))
	})

	t.Run("Sender membership is not verified", func(t *testing.T) {
		// Given: a matched pair and an outside connection that knows the room id
		gameBroker, _, _ := newTestBroker()
		connA, connB := newFakeConn("a"), newFakeConn("b")
		roomID := matchPair(t, gameBroker, connA, connB)

		outsider := newFakeConn("c")
		gameBroker.Register(context.Background(), outsider)

		// When: the outsider injects an event into the room
		gameBroker.RelayEvent("c", &entity.Event{RoomID: roomID, Type: "move"})

		// Then: both members receive it; the relay is trust-unchecked by design
		assert.Equal(t, 1, connA.countAction(t, ActionGameUpdate))
		assert.Equal(t, 1, connB.countAction(t, ActionGameUpdate))
	})

	t.Run("Relay after opponent disconnect goes silent", func(t *testing.T) {
		// Given: a matched pair whose second member disconnected
		gameBroker, _, _ := newTestBroker()
		connA, connB := newFakeConn("a"), newFakeConn("b")
		roomID := matchPair(t, gameBroker, connA, connB)
		gameBroker.Disconnect(context.Background(), "b")

		// When: the remaining member keeps relaying
		gameBroker.RelayEvent("a", &entity.Event{RoomID: roomID, Type: "move"})

		// Then: nothing is delivered and nothing blows up
		assert.Equal(t, 0, connA.countAction(t, ActionGameUpdate))
		assert.Equal(t, 0, connB.countAction(t, ActionGameUpdate))
	})
}

func TestBroker_RelayMove(t *testing.T) {
	// Given: a matched pair
	gameBroker, _, _ := newTestBroker()
	connA, connB := newFakeConn("a"), newFakeConn("b")
	roomID := matchPair(t, gameBroker, connA, connB)

	// When: the legacy move relay is used
	gameBroker.RelayMove("b", roomID, json.RawMessage(`{"index":8,"symbol":"X"}`))

	// Then: the other member receives the raw move as receive_move
	require.Equal(t, 1, connA.countAction(t, ActionReceiveMove))
	assert.Equal(t, 0, connB.countAction(t, ActionReceiveMove))

	for _, msg := range connA.messages(t) {
		if msg.Action != ActionReceiveMove {
			continue
		}
		assert.JSONEq(t, `{"index":8,"symbol":"X"}`, string(msg.Payload))
	}
}
