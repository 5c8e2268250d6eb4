package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
)

// ErrNoIdentity session has no signed-in identity
var ErrNoIdentity = errors.New("no identity in session")

// KV key/value storage behind the session store; implemented by pkg/redis.Client and MemoryKV
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Per-session fields
const (
	FieldUsername       = "username"
	FieldUserType       = "user_type"
	FieldAdminView      = "adminView"
	FieldViewState      = "view_state"
	FieldBackendCookies = "backend_cookies"
	FieldUploadDraft    = "upload_draft"
	FieldUploadFile     = "upload_file"
	FieldChatSelection  = "chat_selection"
	FieldChat           = "chat"
)

// allFields every key SignOut clears
var allFields = []string{
	FieldUsername,
	FieldUserType,
	FieldAdminView,
	FieldViewState,
	FieldBackendCookies,
	FieldUploadDraft,
	FieldUploadFile,
	FieldChatSelection,
	FieldChat,
}

// Store server-side session state keyed by session id
type Store struct {
	kv  KV
	ttl time.Duration

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates a Store; ttl bounds every key's lifetime
func NewStore(kv KV, ttl time.Duration) *Store {
	return &Store{
		kv:    kv,
		ttl:   ttl,
		locks: make(map[string]*sessionLock),
	}
}

// Key storage key of a session field
func Key(sessionID, field string) string {
	return "portal:session:" + sessionID + ":" + field
}

func blacklistKey(tokenID string) string {
	return "portal:blacklist:" + tokenID
}

// Lock serializes read-modify-write sequences on one session; call the returned func to release
func (s *Store) Lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}

// ── identity ──

// SignIn stores the identity and the backend cookies of a new session
func (s *Store) SignIn(ctx context.Context, sessionID string, id model.Identity, creds backend.Credentials) error {
	if err := s.kv.Set(ctx, Key(sessionID, FieldUsername), []byte(id.Username), s.ttl); err != nil {
		return fmt.Errorf("store username: %w", err)
	}
	if err := s.kv.Set(ctx, Key(sessionID, FieldUserType), []byte(id.Role), s.ttl); err != nil {
		return fmt.Errorf("store user_type: %w", err)
	}
	if len(creds) > 0 {
		if err := s.Put(ctx, sessionID, FieldBackendCookies, creds, 0); err != nil {
			return fmt.Errorf("store backend cookies: %w", err)
		}
	}
	return nil
}

// Identity returns the signed-in identity or ErrNoIdentity
func (s *Store) Identity(ctx context.Context, sessionID string) (*model.Identity, error) {
	username, ok, err := s.kv.Get(ctx, Key(sessionID, FieldUsername))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoIdentity
	}
	userType, ok, err := s.kv.Get(ctx, Key(sessionID, FieldUserType))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoIdentity
	}
	return &model.Identity{Username: string(username), Role: model.ParseRole(string(userType))}, nil
}

// SignOut deletes every key of the session in one call and revokes the token until it expires
func (s *Store) SignOut(ctx context.Context, sessionID, tokenID string, expiresAt time.Time) error {
	keys := make([]string, 0, len(allFields))
	for _, f := range allFields {
		keys = append(keys, Key(sessionID, f))
	}
	if err := s.kv.Del(ctx, keys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	if tokenID == "" {
		return nil
	}
	remaining := time.Until(expiresAt)
	if remaining <= 0 {
		return nil
	}
	return s.kv.Set(ctx, blacklistKey(tokenID), []byte("1"), remaining)
}

// IsRevoked reports whether the token was signed out
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.kv.Exists(ctx, blacklistKey(tokenID))
}

// Credentials backend cookies captured at login; guests have none
func (s *Store) Credentials(ctx context.Context, sessionID string) (backend.Credentials, error) {
	var creds backend.Credentials
	if _, err := s.Get(ctx, sessionID, FieldBackendCookies, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// ── view state ──

// ViewState returns the stored view state, zero value when unset
func (s *Store) ViewState(ctx context.Context, sessionID string) (*model.ViewState, error) {
	var vs model.ViewState
	if _, err := s.Get(ctx, sessionID, FieldViewState, &vs); err != nil {
		return nil, err
	}
	return &vs, nil
}

// SaveViewState stores the view state
func (s *Store) SaveViewState(ctx context.Context, sessionID string, vs *model.ViewState) error {
	return s.Put(ctx, sessionID, FieldViewState, vs, 0)
}

// AdminView returns the persisted admin dashboard mode
func (s *Store) AdminView(ctx context.Context, sessionID string) (model.DashboardMode, error) {
	raw, ok, err := s.kv.Get(ctx, Key(sessionID, FieldAdminView))
	if err != nil || !ok {
		return model.ModeNone, err
	}
	mode := model.DashboardMode(raw)
	if !mode.Valid() {
		return model.ModeNone, nil
	}
	return mode, nil
}

// SetAdminView persists mode; ModeNone removes the key
func (s *Store) SetAdminView(ctx context.Context, sessionID string, mode model.DashboardMode) error {
	if mode == model.ModeNone {
		return s.kv.Del(ctx, Key(sessionID, FieldAdminView))
	}
	return s.kv.Set(ctx, Key(sessionID, FieldAdminView), []byte(mode), s.ttl)
}

// ── generic fields ──

// Get decodes a JSON field into v; found is false when unset
func (s *Store) Get(ctx context.Context, sessionID, field string, v interface{}) (bool, error) {
	raw, ok, err := s.kv.Get(ctx, Key(sessionID, field))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode session field %s: %w", field, err)
	}
	return true, nil
}

// Put stores v as JSON; ttl <= 0 uses the session lifetime
func (s *Store) Put(ctx context.Context, sessionID, field string, v interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode session field %s: %w", field, err)
	}
	if ttl <= 0 || ttl > s.ttl {
		ttl = s.ttl
	}
	return s.kv.Set(ctx, Key(sessionID, field), raw, ttl)
}

// Drop deletes fields of a session
func (s *Store) Drop(ctx context.Context, sessionID string, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		keys = append(keys, Key(sessionID, f))
	}
	return s.kv.Del(ctx, keys...)
}
