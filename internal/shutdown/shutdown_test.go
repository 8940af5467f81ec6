package shutdown

import (
	"context"
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"
)

type recordingComponent struct {
	name string
	mu   *sync.Mutex
	log  *[]string
	err  error
	wait time.Duration
}

func (c *recordingComponent) Name() string { return c.name }

func (c *recordingComponent) Shutdown(ctx context.Context) error {
	if c.wait > 0 {
		select {
		case <-time.After(c.wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.mu.Lock()
	*c.log = append(*c.log, c.name)
	c.mu.Unlock()
	return c.err
}

func TestShutdownStopsAllComponents(t *testing.T) {
	var mu sync.Mutex
	var log []string
	c := NewCoordinator(WithTimeout(time.Second))
	c.Register(&recordingComponent{name: "store", mu: &mu, log: &log})
	c.Register(&recordingComponent{name: "http", mu: &mu, log: &log})

	c.Shutdown()
	c.Wait()

	if len(log) != 2 {
		t.Fatalf("expected 2 components stopped, got %v", log)
	}
	if c.ExitCode() != 0 {
		t.Errorf("expected exit code 0, got %d", c.ExitCode())
	}
}

func TestShutdownIsIdempotent(t *testing.T) {
	var mu sync.Mutex
	var log []string
	c := NewCoordinator(WithTimeout(time.Second))
	c.Register(&recordingComponent{name: "http", mu: &mu, log: &log})

	c.Shutdown()
	c.Shutdown()
	c.Wait()

	if len(log) != 1 {
		t.Errorf("expected component stopped once, got %v", log)
	}
}

func TestShutdownTimeoutForcesTermination(t *testing.T) {
	var mu sync.Mutex
	var log []string
	c := NewCoordinator(WithTimeout(20 * time.Millisecond))
	c.Register(&recordingComponent{name: "slow", mu: &mu, log: &log, wait: time.Hour})

	start := time.Now()
	c.Shutdown()
	c.Wait()

	if c.ExitCode() != 1 {
		t.Errorf("expected exit code 1 after timeout, got %d", c.ExitCode())
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("shutdown took %v, expected the timeout to cut it short", elapsed)
	}
}

func TestShutdownComponentErrorStillCompletes(t *testing.T) {
	var mu sync.Mutex
	var log []string
	c := NewCoordinator(WithTimeout(time.Second))
	c.Register(&recordingComponent{name: "broken", mu: &mu, log: &log, err: errors.New("close failed")})
	c.Register(&recordingComponent{name: "healthy", mu: &mu, log: &log})

	c.Shutdown()
	c.Wait()

	if len(log) != 2 {
		t.Errorf("expected both components attempted, got %v", log)
	}
	if c.ExitCode() != 0 {
		t.Errorf("a component error must not force exit code 1, got %d", c.ExitCode())
	}
}

func TestWaitForSignalTriggersShutdown(t *testing.T) {
	var mu sync.Mutex
	var log []string
	sigCh := make(chan os.Signal, 1)
	c := NewCoordinator(WithTimeout(time.Second), WithSignalChannel(sigCh))
	c.Register(&recordingComponent{name: "http", mu: &mu, log: &log})

	done := make(chan struct{})
	go func() {
		c.WaitForSignal()
		close(done)
	}()

	sigCh <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForSignal did not return after SIGTERM")
	}
	if len(log) != 1 {
		t.Errorf("expected component stopped, got %v", log)
	}
}

type fakeCloser struct{ closed bool }

func (f *fakeCloser) Close() error {
	f.closed = true
	return nil
}

func TestCloserComponent(t *testing.T) {
	closer := &fakeCloser{}
	comp := NewCloserComponent("store", closer)
	if comp.Name() != "store" {
		t.Errorf("got name %q", comp.Name())
	}
	if err := comp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !closer.closed {
		t.Error("expected underlying closer to be closed")
	}
}

func TestFuncComponent(t *testing.T) {
	called := false
	comp := NewFuncComponent("poller", func(context.Context) error {
		called = true
		return nil
	})
	if err := comp.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !called {
		t.Error("expected wrapped function to run")
	}
}
