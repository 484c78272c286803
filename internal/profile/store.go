package profile

import (
	"context"
	"errors"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned by Snapshot and Flush after Close.
var ErrClosed = errors.New("profile store closed")

// Store is the process-wide profile service. Every read-modify-write of
// the profile runs on a single writer goroutine, in Record call order,
// so concurrent records for different domains never lose an update.
type Store struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex // guards closed against sends on pending
	closed  bool
	pending chan job
	done    chan struct{}
}

type job struct {
	// exactly one of these is set
	record *recordJob
	reply  chan Profile
}

type recordJob struct {
	domain  Domain
	section Section
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock overrides the lastUpdated time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore starts the writer for backend. The profile is loaded once, on
// the writer, before any record is applied.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
		now:     time.Now,
		pending: make(chan job, 32),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.processLoop()
	return s
}

// Record queues section as the new value for domain. lastUpdated is set
// when the write is applied. Unknown domains and records after Close are
// logged and dropped.
func (s *Store) Record(domain Domain, section Section) {
	if !domain.Valid() {
		s.logger.Warn("profile record for unknown domain dropped", zap.String("domain", string(domain)))
		return
	}
	if !s.send(job{record: &recordJob{domain: domain, section: maps.Clone(section)}}) {
		s.logger.Warn("profile record after close dropped", zap.String("domain", string(domain)))
	}
}

// Snapshot returns the profile after every Record queued before it has
// been applied.
func (s *Store) Snapshot(ctx context.Context) (Profile, error) {
	reply := make(chan Profile, 1)
	if !s.send(job{reply: reply}) {
		return nil, ErrClosed
	}
	select {
	case p := <-reply:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Flush waits until every Record queued before it has been applied.
func (s *Store) Flush(ctx context.Context) error {
	_, err := s.Snapshot(ctx)
	return err
}

// Close drains queued records and stops the writer. It is safe to call
// more than once.
func (s *Store) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
	s.mu.Unlock()
	<-s.done
}

func (s *Store) send(j job) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	s.pending <- j
	return true
}

func (s *Store) processLoop() {
	defer close(s.done)

	ctx := context.Background()
	current, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("profile load failed, starting empty", zap.Error(err))
		current = Profile{}
	}
	if current == nil {
		current = Profile{}
	}

	for j := range s.pending {
		if j.reply != nil {
			j.reply <- current.Clone()
			continue
		}

		r := j.record
		section := r.section
		if section == nil {
			section = Section{}
		}
		section[LastUpdatedKey] = s.now().UTC().Format(timestampLayout)
		current[r.domain] = section

		if err := s.backend.Save(ctx, current); err != nil {
			s.logger.Warn("profile save failed",
				zap.String("domain", string(r.domain)),
				zap.Error(err),
			)
		}
	}
}
