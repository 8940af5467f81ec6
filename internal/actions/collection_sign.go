package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
)

// signModalState carries the version being signed and the signing service
// name resolved from server settings.
type signModalState struct {
	Version        hub.CollectionVersionSearch
	SigningService string
}

const stateCollectionSign = "collectionSignModal"

// CollectionSign signs all versions of a collection with the configured
// signing service. While the signing task runs, an "in progress" alert stays
// on screen; it is removed by ID when the task finishes.
var CollectionSign = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:     "Sign collection",
	Condition: permissions.CanSignCollection,
	Visible: func(item hub.CollectionVersionSearch, _ *action.Context) bool {
		return !item.IsSigned
	},
	OnClick: func(_ context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		ms, _ := ctx.State.Get(stateCollectionSign).(*signModalState)
		if ms == nil {
			ms = &signModalState{SigningService: "ansible-default"}
		}
		ms.Version = item
		ctx.State.Set(stateCollectionSign, ms)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateCollectionSign).(*signModalState)
		if ms == nil {
			return nil
		}
		return action.NewModal(
			"collection-sign",
			fmt.Sprintf("Sign collection %s.%s?", ms.Version.CollectionVersion.Namespace, ms.Version.CollectionVersion.Name),
			"All versions in the repository will be signed with the configured signing service.",
			"Sign all",
			func(c context.Context) error { return signCollection(c, ms, ctx) },
			func() { ctx.State.Delete(stateCollectionSign) },
		)
	},
})

func signCollection(c context.Context, ms *signModalState, ctx *action.Context) error {
	cv := ms.Version.CollectionVersion
	name := cv.Namespace + "." + cv.Name
	title := fmt.Sprintf("Failed to sign all versions in %s.", name)

	resp, err := ctx.Hub.SignCollections(c, hub.SignRequest{
		SigningService: ms.SigningService,
		Repository:     ms.Version.Repository.Name,
		Namespace:      cv.Namespace,
		Collection:     cv.Name,
	})
	if err != nil {
		ctx.AddAlert(failure(title, err))
		ctx.State.Delete(stateCollectionSign)
		return nil
	}

	inProgressID := ctx.AddAlert(alerts.Info(fmt.Sprintf("Signing %s.", name), "Signing is in progress."))
	ctx.State.Delete(stateCollectionSign)

	_, err = ctx.Poller.Wait(c, resp.Task)
	ctx.RemoveAlert(inProgressID)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}

	ctx.AddAlert(alerts.Success(fmt.Sprintf("Signed all versions in %s.", name), ""))
	ctx.Refresh(c)
	return nil
}
