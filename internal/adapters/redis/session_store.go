package redis

// Package redis provides Redis-based adapters for the penuel portal.

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	domainauth "github.com/target/penuel-portal/internal/domain/auth"
	"github.com/target/penuel-portal/internal/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// ErrIncompleteSession is returned when asked to persist a session that is not complete.
var ErrIncompleteSession = errors.New("refusing to write incomplete session")

// SessionStore keeps one Redis hash per session handle, holding the persisted
// session fields. Keys carry no TTL: sessions live until cleared.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, "session:")
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

func (s *SessionStore) key(handle string) string { return s.prefix + handle }

// Read returns the stored fields for handle as-is; an unknown handle is the empty session.
func (s *SessionStore) Read(ctx context.Context, handle string) (domainauth.Session, error) {
	if handle == "" {
		return domainauth.Session{}, nil
	}
	fields, err := s.client.HGetAll(ctx, s.key(handle)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, nil
		}
		return domainauth.Session{}, fmt.Errorf("redis hgetall: %w", err)
	}
	return domainauth.DecodeFields(fields), nil
}

// Write replaces the record for handle. The delete and the field set run in a
// single MULTI/EXEC so no reader observes a mix of old and new fields.
func (s *SessionStore) Write(ctx context.Context, handle string, sess domainauth.Session) error {
	if handle == "" {
		return errors.New("session handle cannot be empty")
	}
	if !sess.IsComplete() {
		return ErrIncompleteSession
	}

	key := s.key(handle)
	fields := make(map[string]interface{}, 4)
	for k, v := range domainauth.EncodeFields(sess) {
		fields[k] = v
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write session: %w", err)
	}
	return nil
}

// Clear deletes the whole record, removing every field at once.
func (s *SessionStore) Clear(ctx context.Context, handle string) error {
	if handle == "" {
		return nil // Nothing to clear
	}
	if err := s.client.Del(ctx, s.key(handle)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
