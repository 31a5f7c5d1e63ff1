// Package session holds the authenticated user and the bearer token pair.
// Lifecycle: Login (or Resume from the token store) -> Refresh on demand ->
// Logout. The session is handed to the API client as its token source; it is
// the only process-wide shared state in the client.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"cravings-client/internal/config"
	"cravings-client/internal/logger"

	"go.uber.org/zap"
)

const (
	createTokenPath  = "/auth/jwt/create/"
	refreshTokenPath = "/auth/jwt/refresh/"
	registerPath     = "/auth/users/"
	mePath           = "/auth/users/me/"
	userRolePath     = "/api/user-role/"
	profilePath      = "/api/profile/"
)

type Session struct {
	baseURL    string
	httpClient *http.Client
	store      *Store

	mu      sync.RWMutex
	access  string
	refresh string
	user    *User
}

func New(cfg *config.Config, store *Store) *Session {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Session{
		baseURL:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
	}
}

// Resume restores a persisted token pair from the store. Identity is not
// re-fetched here; the first authenticated call either works or walks the
// refresh-then-logout path.
func (s *Session) Resume() error {
	tokens, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.access = tokens.Access
	s.refresh = tokens.Refresh
	s.mu.Unlock()

	return nil
}

// Login exchanges credentials for a token pair and loads the user's identity,
// role and profile.
func (s *Session) Login(ctx context.Context, username, password string) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Login"),
		zap.String("username", username),
	)

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	log.Info("login started")

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	err := s.doJSON(ctx, http.MethodPost, createTokenPath,
		map[string]string{"username": username, "password": password},
		&tokens, false)
	if err != nil {
		log.Warn("login rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.mu.Lock()
	s.access = tokens.Access
	s.refresh = tokens.Refresh
	s.mu.Unlock()

	if err := s.store.Save(StoredTokens{Access: tokens.Access, Refresh: tokens.Refresh}); err != nil {
		log.Warn("failed to persist tokens", zap.Error(err))
	}

	user, err := s.fetchIdentity(ctx)
	if err != nil {
		log.Error("failed to load identity", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	log.Info("login success", zap.Int("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Register creates a new account. The role is fixed at creation server-side;
// a fresh account starts as a customer.
func (s *Session) Register(ctx context.Context, params RegisterParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Register"),
		zap.String("username", params.Username),
	)
	log.Info("registration started")

	if err := s.doJSON(ctx, http.MethodPost, registerPath, params, nil, false); err != nil {
		log.Warn("registration rejected", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	log.Info("registration success")
	return nil
}

// Refresh exchanges the long-lived refresh token for a fresh access token.
// A failed refresh ends the session.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.refresh
	s.mu.RUnlock()

	if refresh == "" {
		return ErrNotLoggedIn
	}

	var tokens struct {
		Access string `json:"access"`
	}
	err := s.doJSON(ctx, http.MethodPost, refreshTokenPath,
		map[string]string{"refresh": refresh}, &tokens, false)
	if err != nil {
		s.Logout()
		return fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	s.mu.Lock()
	s.access = tokens.Access
	s.mu.Unlock()

	if err := s.store.Save(StoredTokens{Access: tokens.Access, Refresh: refresh}); err != nil {
		logger.L().Warn("failed to persist refreshed token", zap.Error(err))
	}

	return nil
}

// Logout clears the in-memory session and the persisted token pair.
func (s *Session) Logout() {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		logger.L().Warn("failed to clear token store", zap.Error(err))
	}
}

// Invalidate implements api.TokenSource: a session the backend no longer
// accepts is torn down the same way an explicit logout is.
func (s *Session) Invalidate() {
	s.Logout()
}

// AccessToken implements api.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// UpdateProfile changes name and email. The username is immutable.
func (s *Session) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "UpdateProfile"),
	)

	if !s.IsAuthenticated() {
		return nil, ErrNotLoggedIn
	}

	var updated User
	if err := s.doJSON(ctx, http.MethodPatch, profilePath, params, &updated, true); err != nil {
		log.Error("profile update failed", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.FirstName = updated.FirstName
		s.user.LastName = updated.LastName
		s.user.Email = updated.Email
		updated = *s.user
	}
	s.mu.Unlock()

	log.Info("profile update success")
	return &updated, nil
}

// fetchIdentity merges the account record, the role endpoint and the profile
// into one User, the way the web client assembles it after login.
func (s *Session) fetchIdentity(ctx context.Context) (*User, error) {
	var user User
	if err := s.doJSON(ctx, http.MethodGet, mePath, nil, &user, true); err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}

	var role struct {
		Role Role `json:"role"`
	}
	if err := s.doJSON(ctx, http.MethodGet, userRolePath, nil, &role, true); err != nil {
		return nil, fmt.Errorf("fetching role: %w", err)
	}
	user.Role = role.Role

	var profile User
	if err := s.doJSON(ctx, http.MethodGet, profilePath, nil, &profile, true); err != nil {
		return nil, fmt.Errorf("fetching profile: %w", err)
	}
	if profile.FirstName != "" {
		user.FirstName = profile.FirstName
	}
	if profile.LastName != "" {
		user.LastName = profile.LastName
	}
	if profile.Email != "" {
		user.Email = profile.Email
	}

	return &user, nil
}

// doJSON is the session's own little HTTP runner. Auth endpoints cannot go
// through the main API client: that client asks this session for tokens.
func (s *Session) doJSON(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if authed {
		s.mu.RLock()
		access := s.access
		s.mu.RUnlock()
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
