// pkg/profile/service.go

package profile

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// Service applies profile edits on top of a Store.
//
// Storage failures never reach the caller: reads fall back to the last profile
// seen in this process and writes are logged and dropped, so the in-memory
// profile stays usable. After a failed write the in-memory profile is
// authoritative until a later write succeeds.
type Service struct {
	mu      sync.Mutex
	store   Store
	log     logrus.FieldLogger
	current Profile
	// dirty is set while current holds changes the store rejected.
	dirty bool
}

// NewService loads the stored profile once, as on startup.
func NewService(ctx context.Context, store Store, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Service{store: store, log: log.WithField("component", "profile")}
	s.mu.Lock()
	s.current = s.load(ctx)
	s.mu.Unlock()
	return s
}

// load must be called with mu held.
func (s *Service) load(ctx context.Context) Profile {
	if s.dirty {
		return s.current
	}
	p, found, err := s.store.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("profile unreadable, using last known profile")
		return s.current
	}
	if !found {
		return Profile{}
	}
	return p
}

// save must be called with mu held.
func (s *Service) save(ctx context.Context, p Profile) {
	s.current = p
	err := s.store.Save(ctx, p)
	s.dirty = err != nil
	if err != nil {
		s.log.WithError(err).Warn("profile not persisted")
	}
}

// Current returns the stored profile, or an empty one when there is none.
func (s *Service) Current(ctx context.Context) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.load(ctx)
	return s.current
}

// SaveDetails merges the identity fields of u onto the stored profile.
// The logo is not part of a details update.
func (s *Service) SaveDetails(ctx context.Context, u Update) Profile {
	u.Logo = nil
	s.mu.Lock()
	defer s.mu.Unlock()
	next := Patch(s.load(ctx), u)
	s.save(ctx, next)
	return next
}

// SetLogo reads r to completion and replaces the logo. Non image content is
// ignored: the profile is returned unchanged with changed=false.
func (s *Service) SetLogo(ctx context.Context, r io.Reader) (p Profile, changed bool, err error) {
	uri, ok, err := LogoDataURI(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		return s.current, false, err
	}
	if !ok {
		s.log.Debug("ignoring non image logo upload")
		return s.current, false, nil
	}
	next := Patch(s.load(ctx), Update{Logo: &uri})
	s.save(ctx, next)
	return next, true, nil
}

// Clear erases the stored profile.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Profile{}
	err := s.store.Clear(ctx)
	s.dirty = err != nil
	if err != nil {
		s.log.WithError(err).Warn("profile not cleared from storage")
	}
}
