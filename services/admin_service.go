package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"hotel-frontend/models"
)

// AdminTokenKey is the local storage key of the admin bearer token.
const AdminTokenKey = "admin_token"

var (
	ErrMissingAdminToken = errors.New("Login failed: missing token")
	ErrAdminSignedOut    = errors.New("admin authentication required")
)

// AdminService wraps the admin namespace of the backend. The data calls hand
// back the response body exactly as received.
type AdminService struct {
	API *APIClient
}

func NewAdminService(api *APIClient) *AdminService {
	return &AdminService{API: api}
}

// WithToken returns an admin service whose client carries token.
func (s *AdminService) WithToken(token string) *AdminService {
	client := s.API.Clone()
	client.SetAuthToken(token)
	return &AdminService{API: client}
}

func (s *AdminService) Login(ctx context.Context, username, password string) (models.AdminLogin, error) {
	raw, err := s.API.Post(ctx, "/admin/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return models.AdminLogin{}, err
	}
	var login models.AdminLogin
	if err := json.Unmarshal(raw, &login); err != nil {
		return models.AdminLogin{}, fmt.Errorf("decode admin login: %w", err)
	}
	login.Raw = raw
	return login, nil
}

func (s *AdminService) Dashboard(ctx context.Context) (json.RawMessage, error) {
	return s.API.Get(ctx, "/admin/dashboard")
}

func (s *AdminService) Bookings(ctx context.Context) (json.RawMessage, error) {
	return s.API.Get(ctx, "/admin/bookings")
}

func (s *AdminService) Rooms(ctx context.Context) (json.RawMessage, error) {
	return s.API.Get(ctx, "/admin/rooms")
}

func (s *AdminService) Users(ctx context.Context) (json.RawMessage, error) {
	return s.API.Get(ctx, "/admin/users")
}

// SignIn logs in and keeps the token in the session's local storage.
func (s *AdminService) SignIn(ctx context.Context, store KeyValueStore, username, password string) (models.AdminLogin, error) {
	login, err := s.Login(ctx, username, password)
	if err != nil {
		return models.AdminLogin{}, err
	}
	if login.Token == "" {
		return models.AdminLogin{}, ErrMissingAdminToken
	}
	if err := store.Set(AdminTokenKey, login.Token); err != nil {
		return models.AdminLogin{}, err
	}
	return login, nil
}

// ForSession returns the admin service bound to the stored token.
func (s *AdminService) ForSession(store KeyValueStore) (*AdminService, error) {
	token, ok, err := store.Get(AdminTokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		return nil, ErrAdminSignedOut
	}
	return s.WithToken(token), nil
}

// SignOut forgets the admin token. There is no backend call for it.
func (s *AdminService) SignOut(store KeyValueStore) {
	if err := store.Remove(AdminTokenKey); err != nil {
		log.Printf("admin: %v", err)
	}
}
