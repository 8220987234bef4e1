package holds

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrHoldNotFound     = errors.New("hold not found or expired")
	ErrHoldMismatch     = errors.New("hold does not match this order")
	ErrRedisUnavailable = errors.New("redis client not available")
)

// SeatConflictError reports the first seat that blocked an all-or-nothing
// hold attempt.
type SeatConflictError struct {
	SeatID string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat already held: %s", e.SeatID)
}

// SeatHold is an active temporary reservation of seats for one user.
type SeatHold struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	SeatIDs   []string  `json:"seat_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Engine places and releases seat holds in Redis. All multi-seat
// operations are Lua scripts so a hold is all-or-nothing even under
// concurrent attempts on the same seats.
type Engine struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewEngine(redisClient *redis.Client, ttl time.Duration) *Engine {
	return &Engine{redis: redisClient, ttl: ttl}
}

// Key layout, all seat ids scoped per event:
//   ticketly:seat_hold:{event}:{seat} -> "user:holdID", expires with the hold
//   ticketly:hold:{holdID}            -> hash of hold metadata
//   ticketly:hold_seats:{holdID}      -> set of seat ids in the hold
//   ticketly:event_holds:{event}      -> set of active hold ids for the event

const luaHoldSeats = `
-- KEYS[1] = hold key
-- KEYS[2] = hold seats key
-- KEYS[3] = event holds key
-- ARGV[1] = hold_id
-- ARGV[2] = user_id
-- ARGV[3] = event_id
-- ARGV[4] = ttl_seconds
-- ARGV[5..N] = seat_ids

local hold_id = ARGV[1]
local user_id = ARGV[2]
local event_id = ARGV[3]
local ttl = tonumber(ARGV[4])

for i = 5, #ARGV do
    local seat_key = "ticketly:seat_hold:" .. event_id .. ":" .. ARGV[i]
    if redis.call("EXISTS", seat_key) == 1 then
        return {0, ARGV[i]}
    end
end

redis.call("HMSET", KEYS[1],
    "user_id", user_id,
    "event_id", event_id,
    "seat_count", #ARGV - 4
)
redis.call("EXPIRE", KEYS[1], ttl)

for i = 5, #ARGV do
    local seat_key = "ticketly:seat_hold:" .. event_id .. ":" .. ARGV[i]
    redis.call("SETEX", seat_key, ttl, user_id .. ":" .. hold_id)
    redis.call("SADD", KEYS[2], ARGV[i])
end
redis.call("EXPIRE", KEYS[2], ttl)

redis.call("SADD", KEYS[3], hold_id)
-- Event index outlives individual holds; stale members are pruned on read.
redis.call("EXPIRE", KEYS[3], ttl * 2)

return {1, "ok"}
`

const luaReleaseHold = `
-- KEYS[1] = hold key
-- KEYS[2] = hold seats key
-- ARGV[1] = hold_id

local event_id = redis.call("HGET", KEYS[1], "event_id")
if not event_id then
    return {0, "hold_not_found"}
end

local seat_ids = redis.call("SMEMBERS", KEYS[2])
for i = 1, #seat_ids do
    redis.call("DEL", "ticketly:seat_hold:" .. event_id .. ":" .. seat_ids[i])
end

redis.call("SREM", "ticketly:event_holds:" .. event_id, ARGV[1])
redis.call("DEL", KEYS[1])
redis.call("DEL", KEYS[2])

return {1, #seat_ids}
`

func holdKey(holdID string) string      { return "ticketly:hold:" + holdID }
func holdSeatsKey(holdID string) string { return "ticketly:hold_seats:" + holdID }
func eventHoldsKey(eventID string) string {
	return "ticketly:event_holds:" + eventID
}

// Hold places an all-or-nothing hold on the given seats and returns it.
// If any seat is already held by anyone, no seat is held and the conflict
// is reported.
func (e *Engine) Hold(ctx context.Context, eventID, userID string, seatIDs []string) (*SeatHold, error) {
	if e.redis == nil {
		return nil, ErrRedisUnavailable
	}
	if len(seatIDs) == 0 {
		return nil, fmt.Errorf("no seats to hold")
	}

	holdID := uuid.New().String()
	keys := []string{holdKey(holdID), holdSeatsKey(holdID), eventHoldsKey(eventID)}
	args := []interface{}{holdID, userID, eventID, strconv.Itoa(int(e.ttl.Seconds()))}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := e.eval(ctx, luaHoldSeats, keys, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute atomic seat hold: %w", err)
	}

	success, detail, err := parseScriptResult(result)
	if err != nil {
		return nil, err
	}
	if !success {
		return nil, &SeatConflictError{SeatID: detail}
	}

	return &SeatHold{
		ID:        holdID,
		EventID:   eventID,
		UserID:    userID,
		SeatIDs:   seatIDs,
		ExpiresAt: time.Now().Add(e.ttl),
	}, nil
}

// Release frees every seat in a hold and returns how many were freed.
func (e *Engine) Release(ctx context.Context, holdID string) (int, error) {
	if e.redis == nil {
		return 0, ErrRedisUnavailable
	}

	result, err := e.eval(ctx, luaReleaseHold, []string{holdKey(holdID), holdSeatsKey(holdID)}, holdID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute atomic seat release: %w", err)
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from release script")
	}
	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in release script result")
	}
	if success == 0 {
		return 0, ErrHoldNotFound
	}
	released, _ := resultArray[1].(int64)
	return int(released), nil
}

// Get loads an active hold.
func (e *Engine) Get(ctx context.Context, holdID string) (*SeatHold, error) {
	if e.redis == nil {
		return nil, ErrRedisUnavailable
	}

	meta, err := e.redis.HGetAll(ctx, holdKey(holdID)).Result()
	if err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, ErrHoldNotFound
	}

	seatIDs, err := e.redis.SMembers(ctx, holdSeatsKey(holdID)).Result()
	if err != nil {
		return nil, err
	}

	ttl, err := e.redis.TTL(ctx, holdKey(holdID)).Result()
	if err != nil {
		return nil, err
	}

	return &SeatHold{
		ID:        holdID,
		EventID:   meta["event_id"],
		UserID:    meta["user_id"],
		SeatIDs:   seatIDs,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// Validate checks that a hold is alive, belongs to the given user and
// event, and still covers all the requested seats.
func (e *Engine) Validate(ctx context.Context, holdID, userID, eventID string, seatIDs []string) error {
	hold, err := e.Get(ctx, holdID)
	if err != nil {
		return err
	}
	if hold.UserID != userID || hold.EventID != eventID {
		return ErrHoldMismatch
	}

	held := make(map[string]struct{}, len(hold.SeatIDs))
	for _, id := range hold.SeatIDs {
		held[id] = struct{}{}
	}
	for _, id := range seatIDs {
		if _, ok := held[id]; !ok {
			return ErrHoldMismatch
		}
	}
	return nil
}

// HeldSeats returns every seat under an active hold for an event,
// pruning hold ids whose holds have since expired.
func (e *Engine) HeldSeats(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	if e.redis == nil {
		return nil, ErrRedisUnavailable
	}

	eventKey := eventHoldsKey(eventID.String())
	holdIDs, err := e.redis.SMembers(ctx, eventKey).Result()
	if err != nil {
		return nil, err
	}

	var seats []string
	for _, holdID := range holdIDs {
		seatIDs, err := e.redis.SMembers(ctx, holdSeatsKey(holdID)).Result()
		if err != nil {
			return nil, err
		}
		if len(seatIDs) == 0 {
			e.redis.SRem(ctx, eventKey, holdID)
			continue
		}
		seats = append(seats, seatIDs...)
	}
	return seats, nil
}

// PreloadScripts loads the Lua scripts so later calls hit the script cache.
func (e *Engine) PreloadScripts(ctx context.Context) error {
	if e.redis == nil {
		return ErrRedisUnavailable
	}
	for _, script := range []string{luaHoldSeats, luaReleaseHold} {
		if _, err := e.redis.ScriptLoad(ctx, script).Result(); err != nil {
			return fmt.Errorf("failed to load hold script: %w", err)
		}
	}
	return nil
}

func (e *Engine) eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	result, err := e.redis.EvalSha(ctx, script, keys, args...).Result()
	if err != nil {
		// Script not cached yet, fall back to a full eval.
		result, err = e.redis.Eval(ctx, script, keys, args...).Result()
	}
	return result, err
}

func parseScriptResult(result interface{}) (bool, string, error) {
	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return false, "", fmt.Errorf("unexpected result format from hold script")
	}
	success, ok := resultArray[0].(int64)
	if !ok {
		return false, "", fmt.Errorf("invalid success flag in hold script result")
	}
	detail, _ := resultArray[1].(string)
	return success == 1, detail, nil
}
