package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
)

// ProfileBuilder derives the externally safe projection of a user. The
// derivation includes database round-trips for the ledger tables, so the
// cache invokes it before taking its write lock.
type ProfileBuilder interface {
	BuildPublicProfile(ctx context.Context, user *domain.User) (*dto.PublicProfile, error)
}

// Entry is one cached session: the resolved user and its public view,
// stored under the OAuth state token that doubles as the bearer credential.
type Entry struct {
	User    *domain.User
	Profile *dto.PublicProfile
}

// SessionCache is the in-process mapping from session key to authenticated
// user. It is the single source of truth for whether a bearer token is
// currently authorized. Entries live until removed or process exit; there
// is no TTL or eviction.
type SessionCache interface {
	// Exists reports whether an entry is present for key.
	Exists(key string) bool
	// Get returns the current snapshot for key, or false if absent.
	Get(key string) (*Entry, bool)
	// Put derives the public view of user, stores the pair under key and
	// returns the view. Any prior entry for key is overwritten.
	Put(ctx context.Context, key string, user *domain.User) (*dto.PublicProfile, error)
	// Remove evicts the entry for key. No-op if absent.
	Remove(key string)
}

// sessionCache guards an immutable map value with a readers-writer lock.
// Writers never mutate the current map: they build a replacement with the
// one change applied and swap it in, so a reader can never observe a
// half-written table.
type sessionCache struct {
	builder ProfileBuilder

	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewSessionCache creates an empty session cache deriving public views
// through builder.
func NewSessionCache(builder ProfileBuilder) SessionCache {
	return &sessionCache{
		builder: builder,
		entries: map[string]*Entry{},
	}
}

func (c *sessionCache) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *sessionCache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *sessionCache) Put(ctx context.Context, key string, user *domain.User) (*dto.PublicProfile, error) {
	// The database round-trip happens before the lock; the write section
	// below is pure map replacement.
	profile, err := c.builder.BuildPublicProfile(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("deriving public profile for %s: %w", user.ClientID, err)
	}

	entry := &Entry{User: user, Profile: profile}

	c.mu.Lock()
	next := make(map[string]*Entry, len(c.entries)+1)
	for k, v := range c.entries {
		next[k] = v
	}
	next[key] = entry
	c.entries = next
	c.mu.Unlock()

	return profile, nil
}

func (c *sessionCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return
	}

	next := make(map[string]*Entry, len(c.entries)-1)
	for k, v := range c.entries {
		if k != key {
			next[k] = v
		}
	}
	c.entries = next
}
