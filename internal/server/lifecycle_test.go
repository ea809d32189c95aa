package server

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubService blocks in Start until Stop closes its quit channel and
// records the stop in a shared log.
type stubService struct {
	name     string
	startErr error
	log      *stopLog
	quit     chan struct{}
	stopOnce sync.Once
}

func newStubService(name string, log *stopLog) *stubService {
	return &stubService{name: name, log: log, quit: make(chan struct{})}
}

func (s *stubService) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	<-s.quit
	return nil
}

func (s *stubService) Stop() {
	s.log.record(s.name)
	s.stopOnce.Do(func() { close(s.quit) })
}

type stopLog struct {
	mu    sync.Mutex
	names []string
}

func (l *stopLog) record(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *stopLog) order() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

func TestLifecycle_StopsInReverseOrder(t *testing.T) {
	log := &stopLog{}
	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	lc.Add("http", newStubService("http", log))
	lc.Add("db-health", newStubService("db-health", log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("lifecycle did not shut down")
	}
	assert.Equal(t, []string{"db-health", "http"}, log.order())
}

func TestLifecycle_ReturnsFirstStartFailure(t *testing.T) {
	log := &stopLog{}
	broken := newStubService("broken", log)
	broken.startErr = errors.New("bind: address already in use")

	lc := NewLifecycle(zaptest.NewLogger(t), time.Second)
	lc.Add("http", newStubService("http", log))
	lc.Add("broken", broken)

	err := lc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Contains(t, log.order(), "http", "surviving services still stop")
}

func TestLifecycle_BoundsWedgedStops(t *testing.T) {
	log := &stopLog{}
	lc := NewLifecycle(zaptest.NewLogger(t), 50*time.Millisecond)
	lc.Add("wedged", wedgedService{})
	lc.Add("http", newStubService("http", log))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("a wedged Stop must not hang shutdown")
	}
	assert.Equal(t, []string{"http"}, log.order())
}

// wedgedService never starts cleanly and never finishes stopping.
type wedgedService struct{}

func (wedgedService) Start() error { select {} }
func (wedgedService) Stop()        { select {} }
