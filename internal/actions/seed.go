package actions

import (
	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
)

// The seed helpers below let the view feed dialog selections into the action
// state. Actions whose modal collects input (a version to revert to,
// destination repositories) read these values at confirm time.

// SeedRevertTarget records which repository version the revert dialog
// restores.
func SeedRevertTarget(ctx *action.Context, versionHref string, number int) {
	ms, _ := ctx.State.Get(stateRepositoryRevert).(*revertModalState)
	if ms == nil {
		ms = &revertModalState{}
		ctx.State.Set(stateRepositoryRevert, ms)
	}
	ms.VersionHref = versionHref
	ms.Number = number
}

// SeedSyncOptions overrides the mirror/optimize options in the open sync
// dialog.
func SeedSyncOptions(ctx *action.Context, opts hub.SyncOptions) {
	if ms, _ := ctx.State.Get(stateRepositorySync).(*syncModalState); ms != nil {
		ms.Options = opts
	}
}

// SeedCopyDestinations fills the destination repositories in the open copy
// dialog.
func SeedCopyDestinations(ctx *action.Context, destinations []hub.Repository) {
	if ms, _ := ctx.State.Get(stateCollectionCopy).(*copyModalState); ms != nil {
		ms.Destinations = destinations
	}
}

// SeedAddSelection fills the picked collection versions in the open add
// dialog.
func SeedAddSelection(ctx *action.Context, selected []hub.CollectionVersionSearch) {
	if ms, _ := ctx.State.Get(stateCollectionVersionAdd).(*addVersionsModalState); ms != nil {
		ms.Selected = selected
	}
}

// SeedRemoveRepository names the repository the remove dialog detaches the
// version from.
func SeedRemoveRepository(ctx *action.Context, repo *hub.Repository) {
	ms, _ := ctx.State.Get(stateCollectionVersionRemove).(*removeVersionModalState)
	if ms == nil {
		ms = &removeVersionModalState{}
		ctx.State.Set(stateCollectionVersionRemove, ms)
	}
	ms.Repository = repo
}

// SeedApproveDestinations fills the destination repository names in the open
// approve dialog.
func SeedApproveDestinations(ctx *action.Context, destinations []string) {
	if ms, _ := ctx.State.Get(stateCollectionApprove).(*approveModalState); ms != nil {
		ms.Destinations = destinations
	}
}

// SeedSigningService sets the signing service used by the sign dialog before
// it opens.
func SeedSigningService(ctx *action.Context, service string) {
	ms, _ := ctx.State.Get(stateCollectionSign).(*signModalState)
	if ms == nil {
		ms = &signModalState{}
		ctx.State.Set(stateCollectionSign, ms)
	}
	ms.SigningService = service
}
