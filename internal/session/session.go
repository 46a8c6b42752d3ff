// Package session tracks the one piece of transient UI state the booking
// form has: which catalog service the visitor clicked. The selection
// lives between the card click and the form submission and is cleared once a
// booking succeeds.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ellucho77/HerbaBeauty/internal/catalog"
	"github.com/ellucho77/HerbaBeauty/pkg/logging"
)

// ErrUnknownService is returned when a selection names a service that is not
// in the catalog. Handlers should translate this into an HTTP 404 response.
var ErrUnknownService = errors.New("unknown service")

// selectionTTL keeps stale selections from outliving a workday.
const selectionTTL = 12 * time.Hour

// Store persists the selected service per visitor session. Selections
// go to Redis when a client is available so the state survives restarts and
// is shared across instances; without Redis they fall back to process
// memory.
type Store struct {
	rdb *redis.Client
	log *logging.Logger

	mu    sync.Mutex
	local map[string]string
}

// NewStore builds a session store. rdb may be nil.
func NewStore(rdb *redis.Client, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Default()
	}
	if rdb == nil {
		log.Warn("session: redis unavailable, selections held in process memory")
	}
	return &Store{rdb: rdb, log: log, local: make(map[string]string)}
}

func key(sessionID string) string { return "herba:session:" + sessionID + ":service" }

// Select records a catalog selection for the session. Only names present in
// the catalog are accepted, which is what makes a later submission's
// selection "previously clicked" rather than free text.
func (s *Store) Select(ctx context.Context, sessionID, serviceName string) error {
	if _, ok := catalog.Lookup(serviceName); !ok {
		return ErrUnknownService
	}
	if s.rdb == nil {
		s.mu.Lock()
		s.local[sessionID] = serviceName
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Set(ctx, key(sessionID), serviceName, selectionTTL).Err()
}

// Selected returns the session's current selection, or the empty string when
// nothing is selected.
func (s *Store) Selected(ctx context.Context, sessionID string) (string, error) {
	if s.rdb == nil {
		s.mu.Lock()
		v := s.local[sessionID]
		s.mu.Unlock()
		return v, nil
	}
	v, err := s.rdb.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Clear removes the session's selection, returning the form to its idle
// state. Clearing an empty session is not an error.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if s.rdb == nil {
		s.mu.Lock()
		delete(s.local, sessionID)
		s.mu.Unlock()
		return nil
	}
	return s.rdb.Del(ctx, key(sessionID)).Err()
}
