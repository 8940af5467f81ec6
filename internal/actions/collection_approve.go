package actions

import (
	"context"
	"fmt"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/permissions"
)

// approveModalState is set when more than one approved repository exists and
// the operator must pick destinations. With a single approved repository the
// approval fires directly.
type approveModalState struct {
	Version      hub.CollectionVersionSearch
	Approved     []hub.Repository
	Destinations []string
}

const stateCollectionApprove = "collectionApproveModal"

// CollectionApprove moves a staged collection version into the approved
// repository (the certification step of the approval pipeline).
var CollectionApprove = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:     "Approve",
	Condition: permissions.CanApproveCollection,
	Visible: func(item hub.CollectionVersionSearch, _ *action.Context) bool {
		return item.Repository.Name != "" && item.Repository.Name != hub.PipelineApproved
	},
	OnClick: func(c context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		approved, err := ctx.Hub.ListPipelineRepositories(c, hub.PipelineApproved)
		if err != nil {
			ctx.AddAlert(failure("Approval failed.", err))
			return nil
		}
		if len(approved) == 0 {
			ctx.AddAlert(alerts.Danger("Approval failed.", "No approved repository exists."))
			return nil
		}
		if len(approved) == 1 {
			return certify(c, item, approved[0].Name, ctx)
		}
		ctx.State.Set(stateCollectionApprove, &approveModalState{Version: item, Approved: approved})
		return nil
	},
	Modal: func(_ context.Context, ctx *action.Context) *action.Modal {
		ms, _ := ctx.State.Get(stateCollectionApprove).(*approveModalState)
		if ms == nil {
			return nil
		}
		return action.NewModal(
			"collection-approve",
			fmt.Sprintf("Select the repositories to approve %s into", ms.Version.Spec()),
			"",
			"Approve",
			func(c context.Context) error {
				defer ctx.State.Delete(stateCollectionApprove)
				for _, dest := range ms.Destinations {
					if err := certify(c, ms.Version, dest, ctx); err != nil {
						return err
					}
				}
				return nil
			},
			func() { ctx.State.Delete(stateCollectionApprove) },
		)
	},
})

// CollectionReject moves a collection version into the rejected repository.
var CollectionReject = action.Define(action.Params[hub.CollectionVersionSearch]{
	Title:         "Reject",
	ButtonVariant: action.VariantSecondary,
	Condition:     permissions.CanApproveCollection,
	Visible: func(item hub.CollectionVersionSearch, _ *action.Context) bool {
		return item.Repository.Name != hub.PipelineRejected
	},
	OnClick: func(c context.Context, item hub.CollectionVersionSearch, ctx *action.Context) error {
		return certify(c, item, hub.PipelineRejected, ctx)
	},
})

// certify moves a collection version from its current repository into dest
// and waits for the remove half of the move to finish before refreshing.
func certify(c context.Context, item hub.CollectionVersionSearch, dest string, ctx *action.Context) error {
	cv := item.CollectionVersion
	spec := item.Spec()
	title := fmt.Sprintf("Changes to certification status for collection %s could not be saved.", spec)

	resp, err := ctx.Hub.MoveCollectionVersion(c, cv.Namespace, cv.Name, cv.Version, item.Repository.Name, dest)
	if err != nil {
		ctx.AddAlert(failure(title, err))
		return nil
	}

	// The move fans out into add and remove tasks; the list only reflects
	// the change once the remove half lands.
	if resp.RemoveTaskID != "" {
		if _, err := ctx.Poller.Wait(c, resp.RemoveTaskID); err != nil {
			ctx.AddAlert(failure(title, err))
			return nil
		}
	}

	ctx.AddAlert(alerts.Success(fmt.Sprintf("Certification status of collection %s has been changed.", spec), ""))
	ctx.Refresh(c)
	return nil
}
