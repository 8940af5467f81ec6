package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

const stateEEDelete = "executionEnvironmentDeleteModal"

// ExecutionEnvironmentDelete deletes an execution environment after
// confirmation.
var ExecutionEnvironmentDelete = action.Define(action.Params[hub.ExecutionEnvironment]{
	Title:         "Delete",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteExecutionEnvironment,
	OnClick: func(_ context.Context, item hub.ExecutionEnvironment, ctx *action.Context) error {
		ctx.State.Set(stateEEDelete, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ee, _ := ctx.State.Get(stateEEDelete).(*hub.ExecutionEnvironment)
		if ee == nil {
			return nil
		}
		m := action.NewModal(
			"execution-environment-delete",
			fmt.Sprintf("Delete execution environment %s?", ee.Name),
			fmt.Sprintf("All tags and images of %q will be removed from the registry.", ee.Name),
			"Delete",
			func(c context.Context) error { return deleteExecutionEnvironment(c, ee, ctx) },
			func() { ctx.State.Delete(stateEEDelete) },
		)
		m.Danger = true
		return m
	},
})

func deleteExecutionEnvironment(c context.Context, ee *hub.ExecutionEnvironment, ctx *action.Context) error {
	title := fmt.Sprintf("Failed to delete execution environment %s.", ee.Name)

	resp, err := ctx.Hub.DeleteExecutionEnvironment(c, ee.Name)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateEEDelete)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Deletion started for execution environment %s.", ee.Name)))
	ctx.State.Delete(stateEEDelete)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}
	ctx.Refresh(c)
	return nil
}

// ExecutionEnvironmentSync pulls the latest images from the upstream
// registry. No modal; the sync starts on click.
var ExecutionEnvironmentSync = action.Define(action.Params[hub.ExecutionEnvironment]{
	Title:     "Sync from registry",
	Condition: permissions.CanSyncExecutionEnvironment,
	OnClick: func(c context.Context, item hub.ExecutionEnvironment, ctx *action.Context) error {
		resp, err := ctx.Hub.SyncExecutionEnvironment(c, item.Name)
		if err != nil {
			ctx.AddAlert(failure(fmt.Sprintf("Failed to sync execution environment %s.", item.Name), err))
			return nil
		}
		ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Sync started for execution environment %s.", item.Name)))
		ctx.Refresh(c)
		return nil
	},
})
