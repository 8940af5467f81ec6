package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// addVersionsModalState carries the target repository and the collection
// versions picked in the selection dialog.
type addVersionsModalState struct {
	Repository *hub.Repository
	Selected   []hub.CollectionVersionSearch
}

const stateCollectionVersionAdd = "collectionVersionAddModal"

// CollectionVersionAdd adds selected collection versions to a repository.
var CollectionVersionAdd = action.Define(action.Params[hub.Repository]{
	Title:     "Add collection",
	Condition: permissions.CanEditRepository,
	OnClick: func(_ context.Context, item hub.Repository, ctx *action.Context) error {
		ctx.State.Set(stateCollectionVersionAdd, &addVersionsModalState{Repository: &item})
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateCollectionVersionAdd).(*addVersionsModalState)
		if ms == nil {
			return nil
		}
		return action.NewModal(
			"collection-version-add",
			"Select a collection",
			"",
			"Select",
			func(c context.Context) error { return addCollectionVersions(c, ms, ctx) },
			func() { ctx.State.Delete(stateCollectionVersionAdd) },
		)
	},
})

func addCollectionVersions(c context.Context, ms *addVersionsModalState, ctx *action.Context) error {
	repo := ms.Repository
	failTitle := fmt.Sprintf("Failed to add collection to repository %q.", repo.Name)
	if len(ms.Selected) > 1 {
		failTitle = fmt.Sprintf("Failed to add collections to repository %q.", repo.Name)
	}

	hrefs := make([]string, 0, len(ms.Selected))
	for _, sel := range ms.Selected {
		hrefs = append(hrefs, sel.CollectionVersion.PulpHref)
	}

	resp, err := ctx.Hub.AddRepositoryContent(c, hub.PulpIDFromHref(repo.PulpHref), hrefs)
	if err != nil {
		ctx.AddAlert(failure(failTitle, err))
		ctx.State.Delete(stateCollectionVersionAdd)
		return nil
	}

	for _, sel := range ms.Selected {
		ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf(
			"Started adding %s from %q to repository %q.",
			sel.Spec(), sel.Repository.Name, repo.Name,
		)))
	}
	ctx.State.Delete(stateCollectionVersionAdd)
	ctx.Refresh(c)
	return nil
}
