package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// Window counter and expiry are set in one script so a crash between
// INCR and EXPIRE cannot leave an immortal key.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local current = redis.call('INCR', key)
if current == 1 then
	redis.call('EXPIRE', key, window)
end

if current <= limit then
	return 1
end
return 0
`)

// FixedWindow admits at most limit requests per key per window.
type FixedWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewFixedWindow(client *redis.Client, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, limit: limit, window: window}
}

func (f *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	windowSecs := int(f.window / time.Second)
	if windowSecs < 1 {
		windowSecs = 1
	}

	result, err := fixedWindowScript.Run(ctx, f.client,
		[]string{keyPrefix + key}, f.limit, windowSecs).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
