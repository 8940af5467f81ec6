package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

const stateCollectionVersionRemove = "collectionVersionRemoveModal"

// removeVersionModalState names the repository and the version leaving it.
type removeVersionModalState struct {
	Repository *hub.Repository
	Version    hub.CollectionVersionSearch
}

// CollectionVersionRemove removes one collection version from a repository
// after confirmation.
var CollectionVersionRemove = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:         "Remove",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanModifyCollection,
	OnClick: func(_ context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		ms, _ := ctx.State.Get(stateCollectionVersionRemove).(*removeVersionModalState)
		if ms == nil {
			ms = &removeVersionModalState{}
		}
		ms.Version = item
		ctx.State.Set(stateCollectionVersionRemove, ms)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateCollectionVersionRemove).(*removeVersionModalState)
		if ms == nil || ms.Repository == nil {
			return nil
		}
		m := action.NewModal(
			"collection-version-remove",
			fmt.Sprintf("Remove %s?", ms.Version.Spec()),
			fmt.Sprintf("%s will be removed from repository %q.", ms.Version.Spec(), ms.Repository.Name),
			"Remove",
			func(c context.Context) error { return removeCollectionVersion(c, ms, ctx) },
			func() { ctx.State.Delete(stateCollectionVersionRemove) },
		)
		m.Danger = true
		return m
	},
})

func removeCollectionVersion(c context.Context, ms *removeVersionModalState, ctx *action.Context) error {
	repo := ms.Repository
	spec := ms.Version.Spec()
	title := fmt.Sprintf("Failed to remove %s from repository %q.", spec, repo.Name)

	resp, err := ctx.Hub.RemoveRepositoryContent(c,
		hub.PulpIDFromHref(repo.PulpHref),
		ms.Version.CollectionVersion.PulpHref,
	)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateCollectionVersionRemove)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf(
		"Started removing %s from repository %q.", spec, repo.Name)))
	ctx.State.Delete(stateCollectionVersionRemove)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}
	ctx.Refresh(c)
	return nil
}
