package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTL values for the Ticketly application.
// Pattern: ticketly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static data (rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
)

// Semi-static data (changes occasionally)
const (
	TTL_SEMI_STATIC_LONG   = 4 * time.Hour    // venue layouts
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // event details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // event listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // upcoming events
)

// Dynamic data (changes frequently)
const (
	TTL_DYNAMIC_SHORT = 5 * time.Minute  // seat availability
	TTL_REALTIME      = 30 * time.Second // live held-seat sets
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "ticketly"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"         // + :page:X:limit:Y:status:Z
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
	CACHE_KEY_EVENT_TIERS  = CACHE_PREFIX + ":events:tiers:uuid:"  // + event-id
)

const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM
	TTL_EVENT_TIERS  = TTL_SEMI_STATIC_MEDIUM
)

// ================== SEAT MAP MODULE ==================

const (
	CACHE_KEY_SEATMAP_LAYOUT = CACHE_PREFIX + ":seatmap:layout:event:" // + event-id
	CACHE_KEY_SEATMAP_LIVE   = CACHE_PREFIX + ":seatmap:live:event:"   // + event-id
)

const (
	TTL_SEATMAP_LAYOUT = TTL_SEMI_STATIC_LONG
	TTL_SEATMAP_LIVE   = TTL_REALTIME
)

// ================== PROMOS MODULE ==================

const (
	CACHE_KEY_PROMO_BY_CODE = CACHE_PREFIX + ":promos:detail:code:" // + canonical code
	CACHE_KEY_PROMOS_LIST   = CACHE_PREFIX + ":promos:list"         // + :page:X:limit:Y
)

const (
	TTL_PROMO_DETAIL = TTL_SEMI_STATIC_SHORT
	TTL_PROMOS_LIST  = TTL_SEMI_STATIC_QUICK
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENTS_ALL = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_PROMOS_ALL = CACHE_PREFIX + ":promos:*"
)

// ================== KEY BUILDERS ==================

// BuildEventsListKey builds a paginated events list cache key.
func BuildEventsListKey(page, limit int, status string) string {
	return fmt.Sprintf("%s:page:%d:limit:%d:status:%s", CACHE_KEY_EVENTS_LIST, page, limit, status)
}

// BuildSeatMapLayoutKey builds the generated-layout cache key for an event.
func BuildSeatMapLayoutKey(eventID string) string {
	return CACHE_KEY_SEATMAP_LAYOUT + eventID
}

// BuildSeatMapLiveKey builds the live availability cache key for an event.
func BuildSeatMapLiveKey(eventID string) string {
	return CACHE_KEY_SEATMAP_LIVE + eventID
}

// BuildPromoKey builds the cache key for a canonical promo code.
func BuildPromoKey(code string) string {
	return CACHE_KEY_PROMO_BY_CODE + code
}
