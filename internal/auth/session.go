package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionCookie is the name of the browser cookie carrying the session id.
const SessionCookie = "session_id"

// SessionTTL bounds how long an idle browser session survives in redis.
const SessionTTL = 24 * time.Hour

var ErrNoSession = errors.New("no such session")

// SessionData is the server-side state bound to one logged-in browser.
// Token is the access token minted at login; it rides in the session so the
// JSON API can be reached from the same browser without extra headers.
type SessionData struct {
	UserID uuid.UUID
	Token  string
}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
}

// SessionStore is the minimal session surface the handlers need. The redis
// implementation below is used in production; tests substitute a map-backed
// fake.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, token string) (string, error)
	Get(ctx context.Context, sessionID string) (*SessionData, error)
	Delete(ctx context.Context, sessionID string) error
	SetFlash(ctx context.Context, sessionID, kind, message string) error
	PopFlash(ctx context.Context, sessionID string) (*Flash, error)
}

const sessionKeyFmt = "session:%s"

var _ SessionStore = (*RedisSessionStore)(nil)

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

// Create opens a new session and returns its id. A uuid.Nil userID creates an
// anonymous session, which exists only to carry flash messages between
// requests before login.
func (s *RedisSessionStore) Create(ctx context.Context, userID uuid.UUID, token string) (string, error) {
	sessionID := uuid.NewString()
	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	storedID := ""
	if userID != uuid.Nil {
		storedID = userID.String()
	}
	if err := s.rdb.HSet(ctx, key, "user_id", storedID, "token", token).Err(); err != nil {
		return "", err
	}
	if err := s.rdb.Expire(ctx, key, SessionTTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNoSession
	}
	data := &SessionData{Token: fields["token"]}
	if raw := fields["user_id"]; raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt session %s: %w", sessionID, err)
		}
		data.UserID = userID
	}
	return data, nil
}

// Delete removes the session. The access token carried inside it is NOT
// revoked: it stays verifiable until its own expiry. See DESIGN.md for the
// reasoning behind keeping the two lifetimes independent.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, fmt.Sprintf(sessionKeyFmt, sessionID)).Err()
}

func (s *RedisSessionStore) SetFlash(ctx context.Context, sessionID, kind, message string) error {
	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	return s.rdb.HSet(ctx, key, "flash_kind", kind, "flash", message).Err()
}

func (s *RedisSessionStore) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	key := fmt.Sprintf(sessionKeyFmt, sessionID)
	fields, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	msg, ok := fields["flash"]
	if !ok || msg == "" {
		return nil, nil
	}
	if err := s.rdb.HDel(ctx, key, "flash", "flash_kind").Err(); err != nil {
		return nil, err
	}
	return &Flash{Kind: fields["flash_kind"], Message: msg}, nil
}
