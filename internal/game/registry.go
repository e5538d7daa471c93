package game

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Registry keeps the sessions that are currently being played. Nothing
// is persisted: a session lives until it is deleted or stays idle for
// longer than the registry's ttl.
type Registry struct {
	log logrus.FieldLogger
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	rnd      *rand.Rand
	sessions map[uuid.UUID]*Session
}

func NewRegistry(log logrus.FieldLogger, ttl time.Duration, rnd *rand.Rand) *Registry {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Registry{
		log:      log,
		ttl:      ttl,
		now:      time.Now,
		rnd:      rnd,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create starts a new width x height game and registers it.
func (r *Registry) Create(width, height int) (*Session, error) {
	r.mu.Lock()
	seed := rand.New(rand.NewPCG(r.rnd.Uint64(), r.rnd.Uint64()))
	r.mu.Unlock()

	s := NewSession(uuid.New(), seed, r.now)
	if _, err := s.Reset(width, height); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{
		"session": s.ID, "width": width, "height": height,
	}).Debug("session created")
	return s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops every session idle for longer than the ttl and returns how
// many were dropped. A non-positive ttl keeps sessions forever.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if s.LastSeen().Before(deadline) {
			delete(r.sessions, id)
			n++
		}
	}
	if n > 0 {
		r.log.WithFields(logrus.Fields{
			"dropped": n, "left": len(r.sessions),
		}).Info("swept idle sessions")
	}
	return n
}

// Run sweeps the registry every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
