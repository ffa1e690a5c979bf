package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xtding233/forgewheel/internal/cycle"
	"github.com/xtding233/forgewheel/internal/reel"
)

var ErrNotFound = errors.New("session not found")

// Manager owns independent play sessions keyed by id. Each machine
// serializes its own operations; the manager only guards the map.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*cycle.Machine

	cfg    cycle.Config
	newRNG func() reel.RandomSource
	opts   []cycle.Option
	logger *zap.Logger
}

// Option configures the Manager.
type Option func(*Manager)

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRandomSources sets the factory called once per new session.
func WithRandomSources(f func() reel.RandomSource) Option {
	return func(m *Manager) {
		if f != nil {
			m.newRNG = f
		}
	}
}

// WithMachineOptions are passed to every machine the manager creates.
func WithMachineOptions(opts ...cycle.Option) Option {
	return func(m *Manager) { m.opts = append(m.opts, opts...) }
}

// NewManager validates cfg by building a throwaway machine.
func NewManager(cfg cycle.Config, opts ...Option) (*Manager, error) {
	if _, err := cycle.New(cfg); err != nil {
		return nil, err
	}
	m := &Manager{
		sessions: make(map[string]*cycle.Machine),
		cfg:      cfg,
		newRNG:   reel.DefaultRNG,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create starts a new session with the current configuration.
func (m *Manager) Create() (string, *cycle.Machine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	opts := append([]cycle.Option{
		cycle.WithRandomSource(m.newRNG()),
		cycle.WithLogger(m.logger.With(zap.String("session", id))),
	}, m.opts...)
	machine, err := cycle.New(m.cfg, opts...)
	if err != nil {
		return "", nil, err
	}
	m.sessions[id] = machine
	m.logger.Debug("session created", zap.String("session", id))
	return id, machine, nil
}

func (m *Manager) Get(id string) (*cycle.Machine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	machine, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return machine, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	m.logger.Debug("session deleted", zap.String("session", id))
	return nil
}

// List returns session ids in sorted order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// SetConfig replaces the configuration used for sessions created later.
// Existing sessions keep theirs.
func (m *Manager) SetConfig(cfg cycle.Config) error {
	if _, err := cycle.New(cfg); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
	return nil
}
