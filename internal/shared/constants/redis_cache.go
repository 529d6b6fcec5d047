package constants

import (
	"fmt"
	"time"
)

// Centralized Redis cache keys and TTLs.
// Pattern: ticketly:{module}:{operation}:{identifier}

const (
	CACHE_PREFIX = "ticketly"
)

// TTL tiers
const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_DYNAMIC_MEDIUM     = 10 * time.Minute // show listings
)

// Events module
const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id

	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// Shows module
const (
	CACHE_KEY_SHOWS_BY_EVENT = CACHE_PREFIX + ":shows:by_event:uuid:" // + event-id

	TTL_SHOWS_BY_EVENT = TTL_DYNAMIC_MEDIUM
)

// Invalidation patterns
const (
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_SHOWS_ALL  = CACHE_PREFIX + ":shows:*"
)

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildShowsByEventKey(eventID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_SHOWS_BY_EVENT, eventID)
}
