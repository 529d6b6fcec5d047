package bookings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SeatGuard is the fast reservation layer in front of the durable store.
// TryClaim is test-and-set per seat: the claim succeeds only if no one
// holds the seat yet
type SeatGuard interface {
	TryClaim(ctx context.Context, showID uuid.UUID, seat string) (bool, error)
	Release(ctx context.Context, showID uuid.UUID, seats []string) error
	ListClaimed(ctx context.Context, showID uuid.UUID) ([]string, error)
	Seed(ctx context.Context, showID uuid.UUID, seats []string) error
}

// RedisSeatGuard keeps one set per show. SADD's return value doubles as
// the test-and-set answer
type RedisSeatGuard struct {
	client *redis.Client
}

func NewRedisSeatGuard(client *redis.Client) *RedisSeatGuard {
	return &RedisSeatGuard{client: client}
}

func guardKey(showID uuid.UUID) string {
	return fmt.Sprintf("show:%s:booked_seats", showID)
}

func (g *RedisSeatGuard) TryClaim(ctx context.Context, showID uuid.UUID, seat string) (bool, error) {
	added, err := g.client.SAdd(ctx, guardKey(showID), seat).Result()
	if err != nil {
		return false, err
	}
	return added == 1, nil
}

func (g *RedisSeatGuard) Release(ctx context.Context, showID uuid.UUID, seats []string) error {
	if len(seats) == 0 {
		return nil
	}
	members := make([]interface{}, len(seats))
	for i, s := range seats {
		members[i] = s
	}
	return g.client.SRem(ctx, guardKey(showID), members...).Err()
}

func (g *RedisSeatGuard) ListClaimed(ctx context.Context, showID uuid.UUID) ([]string, error) {
	return g.client.SMembers(ctx, guardKey(showID)).Result()
}

// Seed backfills claims from the durable store, e.g. after a Redis restart.
// Existing members are unaffected
func (g *RedisSeatGuard) Seed(ctx context.Context, showID uuid.UUID, seats []string) error {
	if len(seats) == 0 {
		return nil
	}
	members := make([]interface{}, len(seats))
	for i, s := range seats {
		members[i] = s
	}
	return g.client.SAdd(ctx, guardKey(showID), members...).Err()
}
