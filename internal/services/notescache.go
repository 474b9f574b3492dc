package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NotesCache hands generated notes from the generation request to the
// later download request. Entries are keyed by an opaque token returned
// to the client and expire after the configured TTL.
type NotesCache struct {
	redis *redis.Client
	ttl   time.Duration
}

type notesPayload struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
}

func NewNotesCache(redisClient *redis.Client, ttl time.Duration) *NotesCache {
	return &NotesCache{redis: redisClient, ttl: ttl}
}

func notesKey(token string) string {
	return "notes:" + token
}

// Put stores the notes and returns the download token.
func (c *NotesCache) Put(ctx context.Context, title, notes string) (string, error) {
	token := uuid.New().String()

	data, err := json.Marshal(notesPayload{Title: title, Notes: notes})
	if err != nil {
		return "", err
	}

	if err := c.redis.Set(ctx, notesKey(token), data, c.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to cache notes: %w", err)
	}

	return token, nil
}

// Get returns the stored notes, or ErrNotesNotFound when the token is
// unknown or has expired.
func (c *NotesCache) Get(ctx context.Context, token string) (title, notes string, err error) {
	data, err := c.redis.Get(ctx, notesKey(token)).Bytes()
	if err == redis.Nil {
		return "", "", ErrNotesNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read cached notes: %w", err)
	}

	var p notesPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", "", fmt.Errorf("corrupt cached notes: %w", err)
	}

	return p.Title, p.Notes, nil
}
