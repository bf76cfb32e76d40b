// Package session holds the signed-in state of the client: bearer token, user id and the cached profile.
//
// A [State] is created once at startup with [Bootstrap] and passed to whatever needs it.
// Mutations go through [State.Login], [State.Logout] and [State.UpdateProfile] only, and each
// one is mirrored to [Storage] before it returns.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/evloca/internal/models"
	"github.com/desertthunder/evloca/internal/shared"
)

// Storage keys, matching the browser client's localStorage entries.
const (
	KeyToken   = "token"
	KeyUser    = "user"
	KeyProfile = "userProfile"
)

// Storage is a persistent string key/value store.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(keys ...string) error
}

// Snapshot is an immutable copy of the session.
type Snapshot struct {
	Token   string
	User    string
	Profile *models.Profile
}

// State is the session record. The zero value is not usable; see [Bootstrap].
//
// Invariant: profile is nil whenever token is empty.
type State struct {
	mu      sync.RWMutex
	token   string
	user    string
	profile *models.Profile
	store   Storage
	logger  *log.Logger
}

// Bootstrap loads a State from store. A cached profile without a token is discarded.
func Bootstrap(store Storage, logger *log.Logger) (*State, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	s := &State{store: store, logger: logger}

	token, _, err := store.Get(KeyToken)
	if err != nil {
		return nil, err
	}
	user, _, err := store.Get(KeyUser)
	if err != nil {
		return nil, err
	}
	s.token, s.user = token, user

	raw, ok, err := store.Get(KeyProfile)
	if err != nil {
		return nil, err
	}
	switch {
	case ok && token == "":
		logger.Debug("dropping cached profile without token")
		if err := store.Remove(KeyProfile); err != nil {
			return nil, err
		}
	case ok:
		var p models.Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			logger.Warn("ignoring unreadable cached profile", "error", err)
		} else {
			s.profile = &p
		}
	}

	return s, nil
}

// Token returns the bearer token, empty when signed out.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in user id.
func (s *State) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Profile returns a copy of the cached profile, or nil.
func (s *State) Profile() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// LoggedIn reports whether a token is present.
func (s *State) LoggedIn() bool {
	return s.Token() != ""
}

// Snapshot returns the whole session at once.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Token: s.token, User: s.user}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// Login stores the token and user id. A profile cached for a previous user is dropped.
func (s *State) Login(token, user string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrAuthFailed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staleProfile := s.profile != nil && s.profile.UserID != user

	if err := s.persistLogin(token, user, staleProfile); err != nil {
		s.restoreStored()
		return err
	}

	s.token, s.user = token, user
	if staleProfile {
		s.profile = nil
	}

	s.logger.Info("session started", "user", user)
	return nil
}

func (s *State) persistLogin(token, user string, dropProfile bool) error {
	if err := s.store.Set(KeyToken, token); err != nil {
		return err
	}
	if err := s.store.Set(KeyUser, user); err != nil {
		return err
	}
	if dropProfile {
		return s.store.Remove(KeyProfile)
	}
	return nil
}

// restoreStored puts storage back in line with memory after a partial write. Callers hold s.mu.
func (s *State) restoreStored() {
	var err error
	if s.token == "" {
		err = s.store.Remove(KeyToken, KeyUser)
	} else if err = s.store.Set(KeyToken, s.token); err == nil {
		err = s.store.Set(KeyUser, s.user)
	}
	if err != nil {
		s.logger.Warn("failed to restore session storage", "error", err)
	}
}

// Logout clears token, user and profile from memory, then from storage.
func (s *State) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token, s.user, s.profile = "", "", nil

	if err := s.store.Remove(KeyToken, KeyUser, KeyProfile); err != nil {
		return err
	}
	s.logger.Info("session ended")
	return nil
}

// UpdateProfile caches p in memory and storage. It fails when signed out.
func (s *State) UpdateProfile(p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", shared.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return shared.ErrNotAuthenticated
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := s.store.Set(KeyProfile, string(data)); err != nil {
		return err
	}
	cp := *p
	s.profile = &cp
	return nil
}
