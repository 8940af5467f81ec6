package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// syncModalState is what the sync confirmation modal edits before submitting.
type syncModalState struct {
	Repository *hub.Repository
	Options    hub.SyncOptions
}

const stateRepositorySync = "repositorySyncModal"

// RepositorySync starts a sync of the repository against its remote, with
// mirror/optimize options collected in the modal.
var RepositorySync = action.Define(action.Params[hub.Repository]{
	Title:     "Sync",
	Condition: permissions.CanSyncRepository,
	Visible: func(_ hub.Repository, ctx *action.Context) bool {
		return ctx.Allowed("ansible.change_collectionremote")
	},
	Disabled: repositorySyncDisabled,
	OnClick: func(_ context.Context, item hub.Repository, ctx *action.Context) error {
		ctx.State.Set(stateRepositorySync, &syncModalState{
			Repository: &item,
			Options:    hub.SyncOptions{Mirror: true, Optimize: true},
		})
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateRepositorySync).(*syncModalState)
		if ms == nil {
			return nil
		}
		return action.NewModal(
			"repository-sync",
			fmt.Sprintf("Sync repository %q", ms.Repository.Name),
			"If mirror is set, all content that is not present in the remote repository will be removed from the local repository; otherwise, sync will add missing content.",
			"Sync",
			func(c context.Context) error { return syncRepository(c, ms, ctx) },
			func() { ctx.State.Delete(stateRepositorySync) },
		)
	},
})

// repositorySyncDisabled explains why a sync cannot start right now, or
// returns "" when it can.
func repositorySyncDisabled(item hub.Repository, _ *action.Context) string {
	if item.Remote == "" {
		return "There are no remotes associated with this repository."
	}

	if st := item.LastSyncTask; st != nil && (st.State == hub.TaskRunning || st.State == hub.TaskWaiting) {
		return "Sync task is already queued."
	}

	// Remote detail is only resolved on the detail screen; the list view
	// carries the bare href and skips these checks.
	if remote := item.RemoteDetail; remote != nil && remote.URL == hub.CommunityGalaxyURL {
		if remote.RequirementsFile == "" {
			return fmt.Sprintf("YAML requirements are required to sync from Galaxy. You can edit the %s remote to add requirements.", remote.Name)
		}
		if remote.SignedOnly {
			return fmt.Sprintf("Community content will never be synced if the remote is set to only sync signed content. You can edit the %s remote to change it.", remote.Name)
		}
	}

	return ""
}

func syncRepository(c context.Context, ms *syncModalState, ctx *action.Context) error {
	repo := ms.Repository
	resp, err := ctx.Hub.SyncRepository(c, hub.PulpIDFromHref(repo.PulpHref), ms.Options)
	if err != nil {
		ctx.AddAlert(failure(fmt.Sprintf("Failed to sync repository %q", repo.Name), err))
		ctx.State.Delete(stateRepositorySync)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Sync started for repository %q.", repo.Name)))
	ctx.State.Delete(stateRepositorySync)
	ctx.Refresh(c)
	return nil
}
