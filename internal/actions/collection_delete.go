package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

const stateCollectionDelete = "collectionDeleteModal"

// CollectionDelete deletes a whole collection from its repository after
// confirmation, then navigates back to the collection list.
var CollectionDelete = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:         "Delete collection from repository",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteCollection,
	OnClick: func(_ context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		ctx.State.Set(stateCollectionDelete, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		item, _ := ctx.State.Get(stateCollectionDelete).(*hub.CollectionVersionSearch)
		if item == nil {
			return nil
		}
		cv := item.CollectionVersion
		m := action.NewModal(
			"collection-delete",
			fmt.Sprintf("Delete collection %s.%s?", cv.Namespace, cv.Name),
			fmt.Sprintf("All versions of %s.%s will be removed from repository %q.", cv.Namespace, cv.Name, item.Repository.Name),
			"Delete",
			func(c context.Context) error { return deleteCollection(c, item, ctx) },
			func() { ctx.State.Delete(stateCollectionDelete) },
		)
		m.Danger = true
		return m
	},
})

func deleteCollection(c context.Context, item *hub.CollectionVersionSearch, ctx *action.Context) error {
	cv := item.CollectionVersion
	name := cv.Namespace + "." + cv.Name
	title := fmt.Sprintf("Failed to delete collection %s", name)

	resp, err := ctx.Hub.DeleteCollection(c, item.Repository.Name, cv.Namespace, cv.Name)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateCollectionDelete)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Deletion of collection %s started.", name)))
	ctx.State.Delete(stateCollectionDelete)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}

	if ctx.Navigate != nil {
		ctx.Navigate("/collections")
	}
	ctx.Refresh(c)
	return nil
}
