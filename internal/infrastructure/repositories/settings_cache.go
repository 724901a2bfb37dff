package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/pomodorosvc/domain"
)

// fillScript stores the entry only while the generation still equals the caller's ticket.
// KEYS[1] generation, KEYS[2] entry; ARGV[1] ticket, ARGV[2] payload, ARGV[3] ttl in ms.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[1]) or ''
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// SettingsCacheImpl implements domain.SettingsCache using Redis.
// Each user has an entry key and a generation counter bumped by every invalidation.
type SettingsCacheImpl struct {
	client    *redis.Client
	prefix    string
	genPrefix string
	ttl       time.Duration
}

// NewSettingsCache creates a Redis settings cache whose entries live for ttl
func NewSettingsCache(client *redis.Client, ttl time.Duration) domain.SettingsCache {
	return &SettingsCacheImpl{
		client:    client,
		prefix:    "pomodoro:settings:",
		genPrefix: "pomodoro:settings-gen:",
		ttl:       ttl,
	}
}

// Lookup implements domain.SettingsCache. A miss returns a nil entry and the ticket to fill it with.
func (c *SettingsCacheImpl) Lookup(ctx context.Context, userID string) (*domain.PomodoroSettings, string, error) {
	vals, err := c.client.MGet(ctx, c.prefix+userID, c.genPrefix+userID).Result()
	if err != nil {
		return nil, "", err
	}

	ticket, _ := vals[1].(string)
	raw, ok := vals[0].(string)
	if !ok {
		return nil, ticket, nil
	}

	var settings domain.PomodoroSettings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, ticket, fmt.Errorf("failed to unmarshal cached settings: %w", err)
	}
	return &settings, ticket, nil
}

// Fill implements domain.SettingsCache. It reports false when an invalidation happened after the ticket was issued.
func (c *SettingsCacheImpl) Fill(ctx context.Context, settings *domain.PomodoroSettings, ticket string) (bool, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return false, fmt.Errorf("failed to marshal settings: %w", err)
	}

	keys := []string{c.genPrefix + settings.UserID, c.prefix + settings.UserID}
	stored, err := fillScript.Run(ctx, c.client, keys, ticket, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

// Invalidate implements domain.SettingsCache
func (c *SettingsCacheImpl) Invalidate(ctx context.Context, userID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genPrefix+userID)
		pipe.Del(ctx, c.prefix+userID)
		return nil
	})
	return err
}
