package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	rooms, clients int
}

func (that fakeStats) Stats() (int, int) { return that.rooms, that.clients }

type fakePresenceRepo struct {
	online int64
	err    error
}

func (that fakePresenceRepo) CountOnline(context.Context) (int64, error) {
	return that.online, that.err
}

type fakeMatchRepo struct {
	matches int64
	err     error
}

func (that fakeMatchRepo) TotalMatches(context.Context) (int64, error) {
	return that.matches, that.err
}

func newTestRoutes(stats statsProvider, presence presenceRepo, matches matchRepo) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, stats, presence, matches).routes()
}

func TestServer_PingHandler(t *testing.T) {
	routes := newTestRoutes(fakeStats{}, fakePresenceRepo{}, fakeMatchRepo{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_HealthHandler(t *testing.T) {
	routes := newTestRoutes(fakeStats{}, fakePresenceRepo{}, fakeMatchRepo{})

	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_StatsHandler(t *testing.T) {
	t.Run("Reports broker and storage counters", func(t *testing.T) {
		// Given: a broker with two rooms and five clients, plus storage counters
		routes := newTestRoutes(
			fakeStats{rooms: 2, clients: 5},
			fakePresenceRepo{online: 5},
			fakeMatchRepo{matches: 42},
		)

		// When: stats are requested
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		// Then: all counters appear in the response
		require.Equal(t, http.StatusOK, rec.Code)

		var got statsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 2, got.Rooms)
		assert.Equal(t, 5, got.Clients)
		assert.Equal(t, int64(5), got.Online)
		assert.Equal(t, int64(42), got.Matches)
	})

	t.Run("Storage failure yields internal server error", func(t *testing.T) {
		// Given: a presence repository that cannot be reached
		routes := newTestRoutes(
			fakeStats{},
			fakePresenceRepo{err: errors.New("connection refused")},
			fakeMatchRepo{},
		)

		// When: stats are requested
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		// Then: the handler reports failure instead of partial numbers
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
