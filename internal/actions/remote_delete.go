// Package actions defines the console's concrete actions: one declarative
// action.Definition per user-triggerable mutating operation, wired to the hub
// client, the task poller and the session's alert list through the action
// context.
package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// stateRemoteDelete holds the *hub.Remote pending deletion while the
// confirmation modal is open.
const stateRemoteDelete = "remoteDeleteModal"

// RemoteDelete deletes a collection remote after confirmation.
var RemoteDelete = action.Define(action.Params[hub.Remote]{
	Title:         "Delete",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteRemote,
	OnClick: func(_ context.Context, item hub.Remote, ctx *action.Context) error {
		ctx.State.Set(stateRemoteDelete, &item)
		return nil
	},
	Modal: func(c context.Context, ctx *action.Context) *action.Modal {
		remote, _ := ctx.State.Get(stateRemoteDelete).(*hub.Remote)
		if remote == nil {
			return nil
		}
		closeModal := func() { ctx.State.Delete(stateRemoteDelete) }
		return action.NewModal(
			"remote-delete",
			fmt.Sprintf("Delete remote %s?", remote.Name),
			fmt.Sprintf("The remote %q and its sync configuration will be removed.", remote.Name),
			"Delete",
			func(c context.Context) error { return deleteRemote(c, remote, ctx) },
			closeModal,
		)
	},
})

func deleteRemote(c context.Context, remote *hub.Remote, ctx *action.Context) error {
	resp, err := ctx.Hub.DeleteRemote(c, hub.PulpIDFromHref(remote.PulpHref))
	if err != nil {
		ctx.AddAlert(failure(fmt.Sprintf("Failed to remove remote %s", remote.Name), err))
		ctx.State.Delete(stateRemoteDelete)
		return nil
	}

	ctx.AddAlert(tasks.StartedAlert(resp.Task, fmt.Sprintf("Removal started for remote %s", remote.Name)))
	ctx.State.Delete(stateRemoteDelete)

	if _, err := ctx.Poller.Wait(c, resp.Task); err != nil {
		ctx.AddAlert(failure(fmt.Sprintf("Failed to remove remote %s", remote.Name), err))
		return nil
	}
	ctx.Refresh(c)
	return nil
}
