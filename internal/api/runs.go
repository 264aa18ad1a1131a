// internal/api/runs.go
package api

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"go-wave-defense/internal/app"
	"go-wave-defense/internal/config"
	"go-wave-defense/internal/event"
)

// ErrRunNotFound is returned for unknown run ids.
var ErrRunNotFound = errors.New("run not found")

// Run pairs one engine with its broadcast hub. The engine itself is
// single-threaded; the mutex serializes all access to it.
type Run struct {
	ID   string
	mu   sync.Mutex
	game *app.Game
	hub  *Hub
}

// WithGame runs fn while holding the run's lock.
func (r *Run) WithGame(fn func(g *app.Game)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.game)
}

// Hub returns the run's broadcast hub.
func (r *Run) Hub() *Hub {
	return r.hub
}

// Manager owns the set of live runs.
type Manager struct {
	mu   sync.RWMutex
	runs map[string]*Run
	bal  config.Balance
}

func NewManager(bal config.Balance) *Manager {
	return &Manager{runs: make(map[string]*Run), bal: bal}
}

// Create builds a run with a fresh engine and starts its hub. Engine events
// are bridged onto the hub so spectators see transitions as they happen.
func (m *Manager) Create(opts ...app.Option) *Run {
	run := &Run{
		ID:   "run_" + uuid.New().String(),
		game: app.NewGame(m.bal, opts...),
		hub:  NewHub(),
	}
	go run.hub.Run()

	bridge := func(msgType string) event.Listener {
		return event.ListenerFunc(func(e event.Event) {
			run.hub.Publish(msgType, e.Data)
		})
	}
	d := run.game.Dispatcher()
	d.Subscribe(event.WaveCompleted, bridge("wave_completed"))
	d.Subscribe(event.GameOver, bridge("game_over"))
	d.Subscribe(event.StateChanged, bridge("state_changed"))
	d.Subscribe(event.AbilityProc, bridge("ability_proc"))

	m.mu.Lock()
	m.runs[run.ID] = run
	m.mu.Unlock()
	return run
}

// Get looks a run up by id.
func (m *Manager) Get(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Delete removes a run and tears down its hub.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	run, ok := m.runs[id]
	if ok {
		delete(m.runs, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrRunNotFound
	}
	run.hub.Close()
	return nil
}
