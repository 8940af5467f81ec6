package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
)

// CollectionDeprecate toggles a collection's deprecation flag. No
// confirmation modal; the toggle fires directly and the alert reflects the
// new state.
var CollectionDeprecate = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:     "Deprecate",
	Condition: permissions.CanModifyCollection,
	OnClick: func(c context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		cv := item.CollectionVersion
		name := cv.Namespace + "." + cv.Name
		deprecate := !item.IsDeprecated

		verb := "deprecated"
		if !deprecate {
			verb = "restored"
		}

		resp, err := ctx.Hub.SetCollectionDeprecation(c, item.Repository.Name, cv.Namespace, cv.Name, deprecate)
		if err != nil {
			ctx.AddAlert(failure(fmt.Sprintf("Collection %s could not be %s.", name, verb), err))
			return nil
		}

		if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
			ctx.AddAlert(failure(fmt.Sprintf("Collection %s could not be %s.", name, verb), err))
			return nil
		}

		ctx.AddAlert(alerts.Success(fmt.Sprintf("Collection %s has been %s.", name, verb), ""))
		ctx.Refresh(c)
		return nil
	},
})
