package auth

import (
	"context"

	"github.com/google/uuid"
)

// fakeSessionStore is a map-backed SessionStore for tests.
type fakeSessionStore struct {
	sessions map[string]*SessionData
	flashes  map[string]*Flash
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*SessionData),
		flashes:  make(map[string]*Flash),
	}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID uuid.UUID, token string) (string, error) {
	id := uuid.NewString()
	f.sessions[id] = &SessionData{UserID: userID, Token: token}
	return id, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (*SessionData, error) {
	data, ok := f.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	return data, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	delete(f.flashes, sessionID)
	return nil
}

func (f *fakeSessionStore) SetFlash(ctx context.Context, sessionID, kind, message string) error {
	f.flashes[sessionID] = &Flash{Kind: kind, Message: message}
	return nil
}

func (f *fakeSessionStore) PopFlash(ctx context.Context, sessionID string) (*Flash, error) {
	fl := f.flashes[sessionID]
	delete(f.flashes, sessionID)
	return fl, nil
}
