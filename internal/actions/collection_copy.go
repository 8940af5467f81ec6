package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// copyModalState carries the source version and the destination repositories
// picked in the dialog.
type copyModalState struct {
	Version      hub.CollectionVersionSearch
	Destinations []hub.Repository
}

const stateCollectionCopy = "collectionCopyModal"

// CollectionVersionCopy copies a collection version into other repositories,
// leaving the source in place.
var CollectionVersionCopy = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:     "Copy to repositories",
	Condition: permissions.CanModifyCollection,
	OnClick: func(_ context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		ctx.State.Set(stateCollectionCopy, &copyModalState{Version: item})
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateCollectionCopy).(*copyModalState)
		if ms == nil {
			return nil
		}
		return action.NewModal(
			"collection-copy",
			fmt.Sprintf("Select repositories to copy %s to", ms.Version.Spec()),
			"",
			"Copy",
			func(c context.Context) error { return copyCollectionVersion(c, ms, ctx) },
			func() { ctx.State.Delete(stateCollectionCopy) },
		)
	},
})

func copyCollectionVersion(c context.Context, ms *copyModalState, ctx *action.Context) error {
	spec := ms.Version.Spec()
	title := fmt.Sprintf("Failed to copy %s.", spec)

	destHrefs := make([]string, 0, len(ms.Destinations))
	for _, dest := range ms.Destinations {
		destHrefs = append(destHrefs, dest.PulpHref)
	}

	resp, err := ctx.Hub.CopyCollectionVersions(c,
		hub.PulpIDFromHref(ms.Version.Repository.PulpHref),
		hub.CopyRequest{
			CollectionVersions:      []string{ms.Version.CollectionVersion.PulpHref},
			DestinationRepositories: destHrefs,
		},
	)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateCollectionCopy)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf(
		"Started copying %s to %d repositories.", spec, len(ms.Destinations))))
	ctx.State.Delete(stateCollectionCopy)
	ctx.Refresh(c)
	return nil
}
