package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/bridgego/internal/component"
	"github.com/specialistvlad/bridgego/internal/registry"
	"github.com/specialistvlad/bridgego/internal/value"
)

// SleeperName is the registry name used by SleeperModule.
const SleeperName = "sleeper"

// SleeperModule registers a "sleeper" component for concurrency tests. Every
// Process call sleeps for a fixed duration, echoes its input, and records
// when it ran.
type SleeperModule struct {
	sleepDuration time.Duration

	mu      sync.Mutex
	records []ExecutionRecord
	active  int
	overlap bool
}

// NewSleeperModule creates a sleeper module whose Process calls take sleep.
func NewSleeperModule(sleep time.Duration) *SleeperModule {
	return &SleeperModule{sleepDuration: sleep}
}

// Register registers the sleeper constructor.
func (m *SleeperModule) Register(r *registry.Registry) {
	r.Register(SleeperName, func(value.Value) (component.Component, error) {
		return &sleeper{module: m}, nil
	})
}

// Records returns a copy of the execution records collected so far.
func (m *SleeperModule) Records() []ExecutionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutionRecord(nil), m.records...)
}

// Overlapped reports whether two Process calls ever ran at the same time.
func (m *SleeperModule) Overlapped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.overlap
}

func (m *SleeperModule) enter() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active++
	if m.active > 1 {
		m.overlap = true
	}
}

func (m *SleeperModule) leave(rec ExecutionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active--
	m.records = append(m.records, rec)
}

type sleeper struct {
	module *SleeperModule
}

func (s *sleeper) Initialize(context.Context) error { return nil }

func (s *sleeper) Process(_ context.Context, input value.Value) (value.Value, error) {
	s.module.enter()
	rec := ExecutionRecord{Input: input, Start: time.Now()}
	time.Sleep(s.module.sleepDuration)
	rec.End = time.Now()
	s.module.leave(rec)
	return input, nil
}

func (s *sleeper) Cleanup(context.Context) error { return nil }
