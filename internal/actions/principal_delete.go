package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
)

const (
	stateUserDelete  = "userDeleteModal"
	stateGroupDelete = "groupDeleteModal"
)

// UserDelete deletes a hub user after confirmation. The hub answers
// synchronously, so there is no task to wait on.
var UserDelete = action.Define(action.Params[hub.User]{
	Title:         "Delete",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteUser,
	Disabled: func(item hub.User, _ *action.Context) string {
		if item.IsSuperuser {
			return "Super users cannot be deleted."
		}
		return ""
	},
	OnClick: func(_ context.Context, item hub.User, ctx *action.Context) error {
		ctx.State.Set(stateUserDelete, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		user, _ := ctx.State.Get(stateUserDelete).(*hub.User)
		if user == nil {
			return nil
		}
		m := action.NewModal(
			"user-delete",
			fmt.Sprintf("Delete user %s?", user.Username),
			fmt.Sprintf("The user %q will be permanently removed.", user.Username),
			"Delete",
			func(c context.Context) error {
				defer ctx.State.Delete(stateUserDelete)
				if err := ctx.Hub.DeleteUser(c, user.ID); err != nil {
					ctx.AddAlert(failure(fmt.Sprintf("User %q could not be deleted.", user.Username), err))
					return nil
				}
				ctx.AddAlert(alerts.Success(fmt.Sprintf("User %q has been deleted.", user.Username), ""))
				ctx.Refresh(c)
				return nil
			},
			func() { ctx.State.Delete(stateUserDelete) },
		)
		m.Danger = true
		return m
	},
})

// GroupDelete deletes a hub group after confirmation.
var GroupDelete = action.Define(action.Params[hub.Group]{
	Title:         "Delete",
	ButtonVariant: action.VariantDanger,
	Condition:     permissions.CanDeleteGroup,
	OnClick: func(_ context.Context, item hub.Group, ctx *action.Context) error {
		ctx.State.Set(stateGroupDelete, &item)
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		group, _ := ctx.State.Get(stateGroupDelete).(*hub.Group)
		if group == nil {
			return nil
		}
		m := action.NewModal(
			"group-delete",
			fmt.Sprintf("Delete group %s?", group.Name),
			"Users in this group lose the permissions it granted.",
			"Delete",
			func(c context.Context) error {
				defer ctx.State.Delete(stateGroupDelete)
				if err := ctx.Hub.DeleteGroup(c, group.ID); err != nil {
					ctx.AddAlert(failure(fmt.Sprintf("Group %q could not be deleted.", group.Name), err))
					return nil
				}
				ctx.AddAlert(alerts.Success(fmt.Sprintf("Group %q has been deleted.", group.Name), ""))
				ctx.Refresh(c)
				return nil
			},
			func() { ctx.State.Delete(stateGroupDelete) },
		)
		m.Danger = true
		return m
	},
})
