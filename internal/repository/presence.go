package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	onlineSetKey       = "participants:online"
	connectsCounterKey = "stats:connects"
)

// PresenceRepository tracks which participants are currently connected.
// It is operational visibility only; the broker never reads it on the
// matchmaking or relay paths.
type PresenceRepository interface {
	MarkOnline(ctx context.Context, participantID string) error
	MarkOffline(ctx context.Context, participantID string) error
	IsOnline(ctx context.Context, participantID string) (bool, error)
	CountOnline(ctx context.Context) (int64, error)
	TotalConnects(ctx context.Context) (int64, error)
}

type dbPresence struct {
	client *redis.Client
}

func NewPresenceRepository(client *redis.Client) PresenceRepository {
	return &dbPresence{
		client: client,
	}
}

func (that *dbPresence) MarkOnline(ctx context.Context, participantID string) error {
	if err := that.client.SAdd(ctx, onlineSetKey, participantID).Err(); err != nil {
		return fmt.Errorf("failed to add participant to online set: %w", err)
	}

	if err := that.client.Incr(ctx, connectsCounterKey).Err(); err != nil {
		return fmt.Errorf("failed to increment connects counter: %w", err)
	}

	return nil
}

func (that *dbPresence) MarkOffline(ctx context.Context, participantID string) error {
	if err := that.client.SRem(ctx, onlineSetKey, participantID).Err(); err != nil {
		return fmt.Errorf("failed to remove participant from online set: %w", err)
	}

	return nil
}

func (that *dbPresence) IsOnline(ctx context.Context, participantID string) (bool, error) {
	online, err := that.client.SIsMember(ctx, onlineSetKey, participantID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check online set membership: %w", err)
	}

	return online, nil
}

func (that *dbPresence) CountOnline(ctx context.Context) (int64, error) {
	count, err := that.client.SCard(ctx, onlineSetKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count online participants: %w", err)
	}

	return count, nil
}

func (that *dbPresence) TotalConnects(ctx context.Context) (int64, error) {
	total, err := that.client.Get(ctx, connectsCounterKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get connects counter: %w", err)
	}

	return total, nil
}
