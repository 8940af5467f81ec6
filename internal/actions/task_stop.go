package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
)

const stateTaskStop = "taskStopModal"

// TaskStop requests cancellation of a waiting or running task. The hub may
// not stop the task immediately; the success alert is optimistic and the real
// state is confirmed by the next refresh.
var TaskStop = action.Define(action.Params[hub.Task]{
	Title:         "Stop task",
	ButtonVariant: action.VariantSecondary,
	Visible: func(item hub.Task, _ *action.Context) bool {
		return item.State == hub.TaskRunning || item.State == hub.TaskWaiting
	},
	OnClick: func(_ context.Context, item hub.Task, ctx *action.Context) error {
		ctx.State.Set(stateTaskStop, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		task, _ := ctx.State.Get(stateTaskStop).(*hub.Task)
		if task == nil {
			return nil
		}
		name := task.DisplayName()
		return action.NewModal(
			"task-stop",
			"Stop task?",
			fmt.Sprintf("%s will be cancelled.", name),
			"Yes, stop",
			func(c context.Context) error { return stopTask(c, task, ctx) },
			func() { ctx.State.Delete(stateTaskStop) },
		)
	},
})

func stopTask(c context.Context, task *hub.Task, ctx *action.Context) error {
	name := task.DisplayName()

	if _, err := ctx.Hub.CancelTask(c, hub.PulpIDFromHref(task.PulpHref)); err != nil {
		ctx.State.Delete(stateTaskStop)
		ctx.AddAlert(failure(fmt.Sprintf("Task %q could not be stopped.", name), err))
		return nil
	}

	ctx.State.Delete(stateTaskStop)
	ctx.AddAlert(alerts.Success(name, fmt.Sprintf("Task %q stopped successfully.", name)))
	ctx.Refresh(c)
	return nil
}
