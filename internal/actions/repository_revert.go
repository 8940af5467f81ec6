package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// revertModalState names the repository and the version being restored.
type revertModalState struct {
	Repository  *hub.Repository
	VersionHref string
	Number      int
}

const stateRepositoryRevert = "repositoryRevertModal"

// RepositoryVersionRevert resets a repository's content to an earlier
// version. The item is the repository; the target version is picked by the
// view and stored in state before the modal opens.
var RepositoryVersionRevert = action.Define(action.Params[hub.Repository]{
	Title:     "Revert to this version",
	Condition: permissions.CanEditRepository,
	Disabled: func(item hub.Repository, _ *action.Context) string {
		if item.LatestVersionHref == "" {
			return "Repository has no versions to revert to."
		}
		return ""
	},
	OnClick: func(_ context.Context, item hub.Repository, ctx *action.Context) error {
		// The view fills VersionHref/Number in before triggering; OnClick
		// only flips the modal open for that selection.
		ms, _ := ctx.State.Get(stateRepositoryRevert).(*revertModalState)
		if ms == nil {
			ms = &revertModalState{}
		}
		ms.Repository = &item
		ctx.State.Set(stateRepositoryRevert, ms)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateRepositoryRevert).(*revertModalState)
		if ms == nil || ms.Repository == nil {
			return nil
		}
		m := action.NewModal(
			"repository-revert",
			fmt.Sprintf("Revert repository %s?", ms.Repository.Name),
			fmt.Sprintf("The repository content will be rolled back to version %d. Content added since then will be removed.", ms.Number),
			"Revert",
			func(c context.Context) error { return revertRepository(c, ms, ctx) },
			func() { ctx.State.Delete(stateRepositoryRevert) },
		)
		m.Danger = true
		return m
	},
})

func revertRepository(c context.Context, ms *revertModalState, ctx *action.Context) error {
	repo := ms.Repository
	title := fmt.Sprintf("Failed to revert repository %s", repo.Name)

	resp, err := ctx.Hub.RevertRepository(c, hub.PulpIDFromHref(repo.PulpHref), ms.VersionHref)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateRepositoryRevert)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Revert started for repository %s.", repo.Name)))
	ctx.State.Delete(stateRepositoryRevert)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}
	ctx.Refresh(c)
	return nil
}
