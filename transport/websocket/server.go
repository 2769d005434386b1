package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gamehub-backend/internal/apperror"
	"github.com/rocketscienceinc/gamehub-backend/internal/broker"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
	"github.com/rocketscienceinc/gamehub-backend/internal/pkg"
)

type gameBroker interface {
	Register(ctx context.Context, conn broker.Conn)
	Disconnect(ctx context.Context, participantID string)

	JoinLobby(ctx context.Context, conn broker.Conn) error

	RelayEvent(senderID string, event *entity.Event)
	RelayMove(senderID, roomID string, move json.RawMessage)
}

type Server struct {
	logger *slog.Logger
	broker gameBroker

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, conn *Conn, payload json.RawMessage) error
}

func New(logger *slog.Logger, gameBroker gameBroker) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		broker: gameBroker,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// cross-origin connections are accepted unconditionally;
			// the broker serves a trusted local network only.
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]func(context.Context, *Conn, json.RawMessage) error),
	}

	server.handlers[broker.ActionJoinLobby] = server.handleJoinLobby
	server.handlers[broker.ActionGameEvent] = server.handleGameEvent
	server.handlers[broker.ActionSendMove] = server.handleSendMove

	return server
}

// Start - starts the WebSocket server and blocks until the context is
// canceled or the listener fails.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until disconnect.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	wsConn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConn(pkg.GenerateParticipantID(), wsConn)

	that.broker.Register(ctx, conn)
	log.Info("WebSocket connection established", "participantID", conn.ID())

	go conn.writePump()
	that.readPump(ctx, conn)
}

// readPump - processes messages from the client; returns on disconnect and
// triggers the broker cleanup exactly once per connection.
func (that *Server) readPump(ctx context.Context, conn *Conn) {
	log := that.logger.With("method", "readPump", "participantID", conn.ID())

	defer func() {
		that.broker.Disconnect(ctx, conn.ID())
		_ = conn.Close()
	}()

	conn.ws.SetReadLimit(maxMessageSize)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		var message broker.Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("error processing message", "error", apperror.ErrUnknownAction, "action", message.Action)
			continue
		}

		if err = handler(ctx, conn, message.Payload); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
