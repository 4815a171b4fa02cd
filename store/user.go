package store

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"memeverse/domain"
	"memeverse/infra/storage"
)

// DefaultProfile is the compiled-in profile used when storage holds
// nothing. JoinDate is stamped at load time.
func DefaultProfile(joined time.Time) domain.Profile {
	return domain.Profile{
		Name:       "User",
		Username:   "meme_lover",
		Bio:        "Just someone who loves memes!",
		ProfilePic: "https://images.unsplash.com/photo-1511367461989-f85a21fda167?w=200",
		LikedMemes: []string{},
		JoinDate:   joined,
		Followers:  42,
		Following:  69,
	}
}

// User holds the single local profile. One profile exists per data
// directory: created with defaults on first load, mutated in place, never
// deleted except by clearing storage. The authenticated flag is a
// stand-in boundary for a future auth system and gates nothing.
type User struct {
	kv  storage.KV
	log *zap.Logger
	now func() time.Time

	mu            sync.Mutex
	profile       domain.Profile
	authenticated bool
	darkTheme     bool
}

// NewUser creates a user store. Call Load before use.
func NewUser(kv storage.KV, log *zap.Logger) *User {
	return &User{kv: kv, log: log, now: time.Now}
}

// Load restores the profile and theme preference from storage, falling
// back to the defaults on absent or malformed records.
func (s *User) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = DefaultProfile(s.now().UTC())
	if raw, err := s.kv.Get(keyProfile); err == nil {
		var p domain.Profile
		if derr := storage.DecodeRecord(raw, &p); derr == nil {
			if p.LikedMemes == nil {
				p.LikedMemes = []string{}
			}
			s.profile = p
		} else {
			s.log.Warn("corrupt profile record, using default", zap.Error(derr))
		}
	} else if err != storage.ErrKeyNotFound {
		s.log.Warn("reading profile record", zap.Error(err))
	}

	// Theme is stored as a bare value, not a record envelope.
	if raw, err := s.kv.Get(keyTheme); err == nil {
		s.darkTheme = string(raw) == "dark"
	}
}

// persistProfile writes the profile, fire-and-forget. Must be called
// with the lock held.
func (s *User) persistProfile() {
	raw, err := storage.EncodeRecord(s.profile)
	if err != nil {
		s.log.Warn("encoding profile", zap.Error(err))
		return
	}
	if err := s.kv.Set(keyProfile, raw); err != nil {
		s.log.Warn("persisting profile", zap.Error(err))
	}
}

// UpdateProfile shallow-merges the set fields into the profile and
// persists it. Fields are accepted as-is, with no validation.
func (s *User) UpdateProfile(patch domain.ProfileUpdate) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.profile.Name = *patch.Name
	}
	if patch.Username != nil {
		s.profile.Username = *patch.Username
	}
	if patch.Bio != nil {
		s.profile.Bio = *patch.Bio
	}
	if patch.ProfilePic != nil {
		s.profile.ProfilePic = *patch.ProfilePic
	}
	if patch.Followers != nil {
		s.profile.Followers = *patch.Followers
	}
	if patch.Following != nil {
		s.profile.Following = *patch.Following
	}
	s.persistProfile()
	return s.profile
}

// AddLikedMeme adds the meme ID to the liked set. Adding an ID already
// present is a no-op, so the call is idempotent.
func (s *User) AddLikedMeme(memeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile.HasLiked(memeID) {
		return
	}
	s.profile.LikedMemes = append(s.profile.LikedMemes, memeID)
	s.persistProfile()
}

// RemoveLikedMeme removes the meme ID from the liked set.
func (s *User) RemoveLikedMeme(memeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.profile.LikedMemes[:0]
	for _, id := range s.profile.LikedMemes {
		if id != memeID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(s.profile.LikedMemes) {
		return
	}
	s.profile.LikedMemes = kept
	s.persistProfile()
}

// Login sets the authenticated flag. No credential check happens.
func (s *User) Login() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
}

// Logout clears the authenticated flag.
func (s *User) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// SetDarkTheme records and persists the theme preference.
func (s *User) SetDarkTheme(dark bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkTheme = dark
	value := "light"
	if dark {
		value = "dark"
	}
	if err := s.kv.Set(keyTheme, []byte(value)); err != nil {
		s.log.Warn("persisting theme", zap.Error(err))
	}
}

// UserSnapshot is a read-only copy of the user store's state.
type UserSnapshot struct {
	Profile       domain.Profile
	Authenticated bool
	DarkTheme     bool
}

// Snapshot returns a consistent copy of the current state.
func (s *User) Snapshot() UserSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile
	p.LikedMemes = make([]string, len(s.profile.LikedMemes))
	copy(p.LikedMemes, s.profile.LikedMemes)
	return UserSnapshot{Profile: p, Authenticated: s.authenticated, DarkTheme: s.darkTheme}
}
