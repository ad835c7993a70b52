package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"hotel-frontend/models"
	"hotel-frontend/utils"
)

// Local storage keys of the guest session. "user" is the key older builds of
// the site wrote; it is migrated to UserKey on restore.
const (
	TokenKey      = "eurotel_token"
	UserKey       = "eurotel_user"
	LegacyUserKey = "user"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotAuthenticated = errors.New("authentication required")
)

// AuthService hands out the auth session of a browser session. The loading
// flag is shared by every handle on the same browser session.
type AuthService struct {
	API     *APIClient
	Storage *StorageService

	loading *loadingTracker
}

func NewAuthService(api *APIClient, storage *StorageService) *AuthService {
	return &AuthService{API: api, Storage: storage, loading: newLoadingTracker()}
}

func (s *AuthService) Session(sessionID string) *AuthSession {
	a := NewAuthSession(s.API, s.Storage.Local(sessionID))
	a.sessionID = sessionID
	a.loading = s.loading
	return a
}

// CurrentUser returns the signed-in user of a browser session, or
// ErrNotAuthenticated.
func (s *AuthService) CurrentUser(sessionID string) (*models.User, error) {
	if u := s.Session(sessionID).User(); u != nil {
		return u, nil
	}
	return nil, ErrNotAuthenticated
}

// loadingTracker counts the auth calls in flight per browser session.
type loadingTracker struct {
	mu       sync.Mutex
	inflight map[string]int
}

func newLoadingTracker() *loadingTracker {
	return &loadingTracker{inflight: map[string]int{}}
}

func (t *loadingTracker) begin(id string) {
	t.mu.Lock()
	t.inflight[id]++
	t.mu.Unlock()
}

func (t *loadingTracker) end(id string) {
	t.mu.Lock()
	if t.inflight[id] <= 1 {
		delete(t.inflight, id)
	} else {
		t.inflight[id]--
	}
	t.mu.Unlock()
}

func (t *loadingTracker) active(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight[id] > 0
}

// AuthSession holds the signed-in user of one browser session.
// Login and Logout never return errors: failures are reported as false or
// only logged, and the caller decides what to tell the user.
type AuthSession struct {
	api   *APIClient
	store KeyValueStore

	sessionID string
	loading   *loadingTracker

	mu   sync.RWMutex
	user *models.User
}

// NewAuthSession builds a standalone session; its loading flag is not shared.
func NewAuthSession(api *APIClient, store KeyValueStore) *AuthSession {
	a := &AuthSession{api: api, store: store, loading: newLoadingTracker()}
	var u models.User
	if ok, err := GetJSON(store, UserKey, &u); err != nil {
		log.Printf("auth: ignoring stored user: %v", err)
	} else if ok {
		a.user = &u
	}
	return a
}

func (a *AuthSession) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

// IsLoading reports whether a login, logout or restore is in flight for
// this browser session, from any handle.
func (a *AuthSession) IsLoading() bool {
	return a.loading.active(a.sessionID)
}

// Token returns the persisted bearer token, or "" when signed out.
func (a *AuthSession) Token() string {
	token, _, err := a.store.Get(TokenKey)
	if err != nil {
		log.Printf("auth: read token: %v", err)
		return ""
	}
	return token
}

// SetUser replaces the cached user; nil forgets it.
func (a *AuthSession) SetUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setUserLocked(u)
}

func (a *AuthSession) setUserLocked(u *models.User) {
	if u == nil {
		a.user = nil
		if err := a.store.Remove(UserKey); err != nil {
			log.Printf("auth: %v", err)
		}
		return
	}
	cp := *u
	a.user = &cp
	if err := SetJSON(a.store, UserKey, cp); err != nil {
		log.Printf("auth: %v", err)
	}
}

func (a *AuthSession) track() func() {
	a.loading.begin(a.sessionID)
	return func() { a.loading.end(a.sessionID) }
}

type loginResponse struct {
	Success *bool        `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Login exchanges credentials for a token and user record. It reports false on
// any failure and leaves the session untouched in that case.
func (a *AuthSession) Login(ctx context.Context, identifier, password string) bool {
	defer a.track()()

	raw, err := a.api.Clone().Post(ctx, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	})
	if err != nil {
		log.Printf("Login error: %v", err)
		return false
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		log.Printf("Login error: decode response: %v", err)
		return false
	}
	if resp.Success != nil && !*resp.Success {
		log.Printf("Login rejected: %s", resp.Message)
		return false
	}
	if resp.Token == "" || resp.User == nil {
		log.Printf("Login error: response without token or user")
		return false
	}

	if err := a.store.Set(TokenKey, resp.Token); err != nil {
		log.Printf("Login error: %v", err)
		return false
	}
	a.SetUser(resp.User)
	return true
}

// Logout tells the backend, then clears local state whatever the backend said.
func (a *AuthSession) Logout(ctx context.Context) {
	defer a.track()()

	if token := a.Token(); token != "" {
		client := a.api.Clone()
		client.SetAuthToken(token)
		if _, err := client.Post(ctx, "/api/auth/logout", nil); err != nil {
			log.Printf("Logout error: %v", err)
		}
	}
	a.clear()
}

func (a *AuthSession) clear() {
	for _, key := range []string{TokenKey, LegacyUserKey} {
		if err := a.store.Remove(key); err != nil {
			log.Printf("auth: %v", err)
		}
	}
	a.SetUser(nil)
}

// Restore re-validates the persisted token against /api/auth/me. An invalid
// token, or a backend that cannot be reached, clears the session.
func (a *AuthSession) Restore(ctx context.Context) *models.User {
	defer a.track()()

	a.migrateLegacyUser()

	token := a.Token()
	if token == "" {
		if a.User() != nil {
			a.SetUser(nil)
		}
		return nil
	}

	client := a.api.Clone()
	client.SetAuthToken(token)
	raw, err := client.Get(ctx, "/api/auth/me")
	if err != nil {
		log.Printf("auth: session restore failed, clearing: %v", err)
		a.clear()
		return nil
	}

	u, err := decodeMe(raw)
	if err != nil {
		log.Printf("auth: session restore failed, clearing: %v", err)
		a.clear()
		return nil
	}
	a.SetUser(u)
	return a.User()
}

// decodeMe accepts both a bare user and {"user": {...}}.
func decodeMe(raw json.RawMessage) (*models.User, error) {
	var wrapped struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	if u.ID == "" && u.Email == "" {
		return nil, fmt.Errorf("decode current user: empty user")
	}
	return &u, nil
}

func (a *AuthSession) migrateLegacyUser() {
	legacy, ok, err := a.store.Get(LegacyUserKey)
	if err != nil || !ok {
		return
	}
	if _, exists, _ := a.store.Get(UserKey); !exists {
		var u models.User
		if err := json.Unmarshal([]byte(legacy), &u); err == nil {
			a.SetUser(&u)
		} else {
			log.Printf("auth: dropping unreadable legacy user: %v", err)
		}
	}
	if err := a.store.Remove(LegacyUserKey); err != nil {
		log.Printf("auth: %v", err)
	}
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register checks the form locally and forwards it to the backend. A password
// mismatch never reaches the backend.
func (a *AuthSession) Register(ctx context.Context, req RegisterRequest) error {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return &ValidationError{Field: "username", Message: "Username is required"}
	case !utils.IsValidEmail(req.Email):
		return &ValidationError{Field: "email", Message: "A valid email is required"}
	case req.Password == "":
		return &ValidationError{Field: "password", Message: "Password is required"}
	case req.Password != req.ConfirmPassword:
		return ErrPasswordMismatch
	}

	_, err := a.api.Clone().Post(ctx, "/api/auth/register", map[string]string{
		"username": strings.TrimSpace(req.Username),
		"email":    strings.TrimSpace(req.Email),
		"password": req.Password,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}
