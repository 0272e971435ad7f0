// Package counter implements an atomic, crash-safe sequence counter backed by
// a JSON file and guarded by an advisory sidecar lock. It issues formatted,
// monotonically increasing identifiers (invoice numbers) to independent
// short-lived processes.
//
// When the lock cannot be acquired within its bound the counter degrades to a
// timestamp-derived identifier rather than blocking or failing; see
// the Fallback field on ID. Fallback identifiers are unique only to second
// granularity and never rejoin the monotonic sequence.
package counter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aki/seqstate/internal/lockfile"
	"github.com/aki/seqstate/internal/logger"
	"github.com/aki/seqstate/internal/statefile"
)

// Defaults used when the counter file is absent or unparsable.
const (
	DefaultSeed    = 1000
	DefaultPrefix  = "INV-"
	DefaultPadding = 4
)

// State is the persisted counter state. The JSON keys are part of the
// interface with other tooling that reads these files; do not rename them.
type State struct {
	LastValue int64  `json:"last_invoice_number"`
	Prefix    string `json:"prefix"`
	Padding   int    `json:"padding"`
}

// DefaultState returns the seed state for a fresh counter file.
func DefaultState() State {
	return State{
		LastValue: DefaultSeed,
		Prefix:    DefaultPrefix,
		Padding:   DefaultPadding,
	}
}

// ID is an issued identifier. Fallback marks identifiers synthesized from the
// clock under lock contention; those do not participate in the sequence and
// may collide within the same second.
type ID struct {
	Formatted string `json:"invoice_number"`
	Numeric   int64  `json:"numeric"`
	Fallback  bool   `json:"-"`
}

// Format renders a counter value as prefix plus the zero-padded number.
func Format(prefix string, value int64, padding int) string {
	return fmt.Sprintf("%s%0*d", prefix, padding, value)
}

// Store issues identifiers from a single counter file. It holds no state in
// memory between calls; every operation is a full read-modify-write round
// trip against the file, serialized by the sidecar lock.
type Store struct {
	path     string
	locker   lockfile.Locker
	log      logger.Logger
	defaults State
	now      func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLocker overrides the lock implementation.
func WithLocker(l lockfile.Locker) Option {
	return func(s *Store) { s.locker = l }
}

// WithLogger sets the logger for warnings.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithDefaults overrides the seed state used when the file is absent.
func WithDefaults(d State) Option {
	return func(s *Store) { s.defaults = d }
}

// WithClock overrides the time source used for fallback identifiers.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store for the counter file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		locker:   lockfile.New(),
		log:      logger.Default(),
		defaults: DefaultState(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next issues the next identifier: it increments the persisted value by
// exactly one under the lock and writes the full state back atomically.
// On lock timeout it returns a fallback identifier without touching the file.
// Any other I/O failure is returned as an error.
func (s *Store) Next(ctx context.Context) (ID, error) {
	guard, err := s.locker.Acquire(ctx, s.path)
	if err != nil {
		if errors.Is(err, lockfile.ErrTimeout) {
			return s.fallback(), nil
		}
		return ID{}, fmt.Errorf("failed to lock counter file: %w", err)
	}
	defer func() { _ = guard.Release() }()

	state, err := s.load()
	if err != nil {
		return ID{}, err
	}

	state.LastValue++
	if err := statefile.Write(s.path, state); err != nil {
		return ID{}, fmt.Errorf("failed to persist counter: %w", err)
	}

	return ID{
		Formatted: Format(state.Prefix, state.LastValue, state.Padding),
		Numeric:   state.LastValue,
	}, nil
}

// Current reports the last issued identifier without incrementing or writing.
// It takes the same lock as Next and degrades to the same fallback on
// timeout, so concurrent readers and writers see one consistent protocol.
func (s *Store) Current(ctx context.Context) (ID, error) {
	guard, err := s.locker.Acquire(ctx, s.path)
	if err != nil {
		if errors.Is(err, lockfile.ErrTimeout) {
			return s.fallback(), nil
		}
		return ID{}, fmt.Errorf("failed to lock counter file: %w", err)
	}
	defer func() { _ = guard.Release() }()

	state, err := s.load()
	if err != nil {
		return ID{}, err
	}

	return ID{
		Formatted: Format(state.Prefix, state.LastValue, state.Padding),
		Numeric:   state.LastValue,
	}, nil
}

// load reads the counter file. A missing file seeds the defaults in memory
// without writing; an unparsable file does the same with a warning. Other
// read failures are fatal to the call.
func (s *Store) load() (*State, error) {
	state, err := statefile.Read[State](s.path)
	if err == nil {
		return state, nil
	}
	if os.IsNotExist(err) {
		seeded := s.defaults
		return &seeded, nil
	}
	var jsonErr *statefile.UnmarshalError
	if errors.As(err, &jsonErr) {
		s.log.Warn("counter file unparsable, reinitializing from defaults",
			"path", s.path, "error", jsonErr.Err)
		seeded := s.defaults
		return &seeded, nil
	}
	return nil, fmt.Errorf("failed to read counter file: %w", err)
}

// fallback synthesizes a timestamp identifier under lock contention. The
// counter file is left untouched.
func (s *Store) fallback() ID {
	ts := s.now().Unix()
	s.log.Warn("counter lock timed out, issuing timestamp fallback identifier",
		"path", s.path, "timestamp", ts)
	return ID{
		Formatted: s.defaults.Prefix + strconv.FormatInt(ts, 10),
		Numeric:   ts,
		Fallback:  true,
	}
}
