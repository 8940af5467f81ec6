package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

const stateRepositoryDelete = "repositoryDeleteModal"

// protectedRepositories are the pipeline repositories the hub depends on;
// deleting them would break publishing and approval.
var protectedRepositories = map[string]bool{
	"rh-certified": true,
	"validated":    true,
	"community":    true,
	"published":    true,
	"staging":      true,
	"rejected":     true,
}

// RepositoryDelete deletes a repository and its distributions after
// confirmation.
var RepositoryDelete = action.Define(action.Params[hub.Repository]{
	Title:         "Delete",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteRepository,
	Disabled: func(item hub.Repository, _ *action.Context) string {
		if protectedRepositories[item.Name] {
			return "Protected repositories cannot be deleted."
		}
		return ""
	},
	OnClick: func(_ context.Context, item hub.Repository, ctx *action.Context) error {
		ctx.State.Set(stateRepositoryDelete, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		repo, _ := ctx.State.Get(stateRepositoryDelete).(*hub.Repository)
		if repo == nil {
			return nil
		}
		m := action.NewModal(
			"repository-delete",
			fmt.Sprintf("Delete repository %s?", repo.Name),
			fmt.Sprintf("The repository %q and all of its content will be removed from the system.", repo.Name),
			"Delete",
			func(c context.Context) error { return deleteRepository(c, repo, ctx) },
			func() { ctx.State.Delete(stateRepositoryDelete) },
		)
		m.Danger = true
		return m
	},
})

func deleteRepository(c context.Context, repo *hub.Repository, ctx *action.Context) error {
	title := fmt.Sprintf("Failed to remove repository %s", repo.Name)

	resp, err := ctx.Hub.DeleteRepository(c, hub.PulpIDFromHref(repo.PulpHref))
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateRepositoryDelete)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Removal started for repository %s", repo.Name)))
	ctx.State.Delete(stateRepositoryDelete)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}
	ctx.Refresh(c)
	return nil
}
