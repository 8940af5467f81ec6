// Package tasks implements the client-side protocol for observing
// long-running hub jobs: submit an operation, receive a task href, poll the
// task at a fixed interval until it reaches a terminal state, then hand the
// outcome back to the caller.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
)

// Phase is the poller's position in the task-waiting protocol.
type Phase string

// Protocol phases. Submitted moves to Polling after the first status read is
// scheduled; Polling repeats until the task reports a terminal state.
const (
	PhaseSubmitted Phase = "submitted"
	PhasePolling   Phase = "polling"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
	PhaseCanceled  Phase = "canceled"
)

// phaseFor maps a terminal task state to its protocol phase.
func phaseFor(state hub.TaskState) Phase {
	switch state {
	case hub.TaskCompleted:
		return PhaseCompleted
	case hub.TaskFailed:
		return PhaseFailed
	case hub.TaskCanceled:
		return PhaseCanceled
	}
	return PhasePolling
}

// TaskReader reads task status from the hub.
type TaskReader interface {
	GetTaskByHref(ctx context.Context, href string) (*hub.Task, error)
}

// ErrTaskFailed is returned by Wait when the task reached the failed state.
var ErrTaskFailed = errors.New("task failed")

// ErrTaskCanceled is returned by Wait when the task reached the canceled state.
var ErrTaskCanceled = errors.New("task canceled")

// Default polling intervals. Modal-blocking waits use the short interval;
// passive detail-page refreshes use the long one.
const (
	ModalInterval   = 500 * time.Millisecond
	PassiveInterval = 10 * time.Second
)

// Poller waits on hub tasks. One Poller may serve many concurrent Waits;
// each Wait owns a single timer and stops it on teardown.
type Poller struct {
	reader   TaskReader
	interval time.Duration
	logger   *slog.Logger
}

// NewPoller creates a poller reading task status at the given interval.
func NewPoller(reader TaskReader, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = ModalInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{reader: reader, interval: interval, logger: logger}
}

// Update is one observed protocol transition, as delivered by Watch.
type Update struct {
	Phase Phase
	Task  *hub.Task
	Err   error
}

// Wait polls the task until it reaches a terminal state or ctx is canceled.
// It returns the final task record; failed and canceled outcomes return the
// record together with ErrTaskFailed or ErrTaskCanceled. A transport error
// during polling ends the wait and is returned as-is.
//
// A task already terminal on the first read returns immediately without
// scheduling a timer.
func (p *Poller) Wait(ctx context.Context, href string) (*hub.Task, error) {
	phase := PhaseSubmitted
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("task wait torn down", "task", href, "phase", string(phase))
			return nil, ctx.Err()
		case <-timer.C:
		}

		task, err := p.reader.GetTaskByHref(ctx, href)
		if err != nil {
			return nil, fmt.Errorf("polling task %s: %w", href, err)
		}

		if task.State.Terminal() {
			phase = phaseFor(task.State)
			p.logger.Debug("task reached terminal state",
				"task", href, "state", string(task.State))
			switch phase {
			case PhaseFailed:
				return task, ErrTaskFailed
			case PhaseCanceled:
				return task, ErrTaskCanceled
			}
			return task, nil
		}

		phase = PhasePolling
		timer.Reset(p.interval)
	}
}

// Watch polls like Wait but delivers every observed transition on a channel,
// closing it after the terminal update. The consumer stops the watch by
// canceling ctx; no update is delivered after that.
func (p *Poller) Watch(ctx context.Context, href string) <-chan Update {
	ch := make(chan Update, 1)
	go func() {
		defer close(ch)

		timer := time.NewTimer(0)
		defer timer.Stop()

		var lastState hub.TaskState
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			task, err := p.reader.GetTaskByHref(ctx, href)
			if err != nil {
				select {
				case ch <- Update{Phase: PhaseFailed, Err: err}:
				case <-ctx.Done():
				}
				return
			}

			if task.State != lastState {
				lastState = task.State
				update := Update{Phase: phaseFor(task.State), Task: task}
				select {
				case ch <- update:
				case <-ctx.Done():
					return
				}
			}

			if task.State.Terminal() {
				return
			}
			timer.Reset(p.interval)
		}
	}()
	return ch
}

// StartedAlert builds the informational "task started" alert for an accepted
// asynchronous operation. The task id rides along so the UI can link the
// alert to the task detail view.
func StartedAlert(taskHref, message string) alerts.Alert {
	a := alerts.Info(message, fmt.Sprintf("See task %s for detailed progress.", hub.PulpIDFromHref(taskHref)))
	return a
}
