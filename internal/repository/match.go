package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/gamehub-backend/internal/entity"
)

var ErrMatchNotFound = errors.New("match not found")

const (
	matchKeyPrefix    = "match:"
	matchesCounterKey = "stats:matches"

	// match records are an operational trail, not state; let them expire.
	matchRecordTTL = 24 * time.Hour
)

type MatchRepository interface {
	Record(ctx context.Context, match *entity.Match) error
	GetByRoomID(ctx context.Context, roomID string) (*entity.Match, error)
	TotalMatches(ctx context.Context) (int64, error)
}

type dbMatch struct {
	client *redis.Client
}

func NewMatchRepository(client *redis.Client) MatchRepository {
	return &dbMatch{
		client: client,
	}
}

func (that *dbMatch) Record(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	matchKey := matchKeyPrefix + match.RoomID
	if err = that.client.Set(ctx, matchKey, matchJSON, matchRecordTTL).Err(); err != nil {
		return fmt.Errorf("failed to set match: %w", err)
	}

	if err = that.client.Incr(ctx, matchesCounterKey).Err(); err != nil {
		return fmt.Errorf("failed to increment matches counter: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByRoomID(ctx context.Context, roomID string) (*entity.Match, error) {
	matchKey := matchKeyPrefix + roomID

	response, err := that.client.Get(ctx, matchKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by room ID: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

func (that *dbMatch) TotalMatches(ctx context.Context) (int64, error) {
	total, err := that.client.Get(ctx, matchesCounterKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get matches counter: %w", err)
	}

	return total, nil
}
