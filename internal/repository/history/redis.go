package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisConfig holds connection parameters for the history store.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	DB       int

	// TTL is how long an idle session survives. Zero means no expiry.
	TTL time.Duration
	// MaxMessages bounds the list length per session.
	// Zero falls back to DefaultMaxMessages.
	MaxMessages int
}

// RedisStore keeps session transcripts in Redis lists, one list per
// session. Entries are JSON-encoded messages appended with RPUSH and
// trimmed to the configured bound.
type RedisStore struct {
	client rueidis.Client
	ttl    time.Duration
	max    int
}

// NewRedisStore creates a Redis-backed history store via rueidis.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	max := cfg.MaxMessages
	if max <= 0 {
		max = DefaultMaxMessages
	}

	return &RedisStore{client: client, ttl: cfg.TTL, max: max}, nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *RedisStore) Close() {
	s.client.Close()
}

// Append adds messages to the session transcript, trims the list to the
// configured bound and refreshes the session TTL.
func (s *RedisStore) Append(ctx context.Context, sessionID string, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	key := s.key(sessionID)
	values := make([]string, 0, len(msgs))
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("history marshal: %w", err)
		}
		values = append(values, string(data))
	}

	push := s.client.B().Rpush().Key(key).Element(values...).Build()
	if err := s.client.Do(ctx, push).Error(); err != nil {
		return fmt.Errorf("history RPUSH %s: %w", key, err)
	}

	trim := s.client.B().Ltrim().Key(key).Start(int64(-s.max)).Stop(-1).Build()
	if err := s.client.Do(ctx, trim).Error(); err != nil {
		return fmt.Errorf("history LTRIM %s: %w", key, err)
	}

	if s.ttl > 0 {
		expire := s.client.B().Expire().Key(key).Seconds(int64(s.ttl.Seconds())).Build()
		if err := s.client.Do(ctx, expire).Error(); err != nil {
			return fmt.Errorf("history EXPIRE %s: %w", key, err)
		}
	}

	return nil
}

// Messages returns the session transcript in order. A missing session
// yields an empty slice, not an error.
func (s *RedisStore) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	key := s.key(sessionID)
	cmd := s.client.B().Lrange().Key(key).Start(0).Stop(-1).Build()
	raw, err := s.client.Do(ctx, cmd).AsStrSlice()
	if err != nil {
		return nil, fmt.Errorf("history LRANGE %s: %w", key, err)
	}

	msgs := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			// Skip entries we cannot decode rather than failing the session.
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

// Clear removes the session transcript.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	key := s.key(sessionID)
	cmd := s.client.B().Del().Key(key).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("history DEL %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return "stylist:chat:" + sessionID
}
