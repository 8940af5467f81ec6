package actions

import (
	"context"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// OrphanCleanup starts an orphan cleanup run on the hub. Offered from the
// task list; superuser only.
var OrphanCleanup = action.Define(action.Params[hub.Task]{
	Title:         "Cleanup orphans",
	ButtonVariant: action.VariantSecondary,
	Condition: func(_ hub.Task, ctx *action.Context) bool {
		return ctx.Allowed("core.delete_task")
	},
	OnClick: func(c context.Context, _ hub.Task, ctx *action.Context) error {
		resp, err := ctx.Hub.CleanupOrphans(c)
		if err != nil {
			ctx.AddAlert(failure("Failed to start orphan cleanup.", err))
			return nil
		}
		ctx.AddAlert(tasks.StartedAlert(resp.Task, "Orphan cleanup started."))
		ctx.Refresh(c)
		return nil
	},
})
