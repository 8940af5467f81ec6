// Package permissions names the hub permission predicates used by action
// Condition gates. The evaluation itself is delegated to the session's
// permission set through the action context; this package only fixes which
// codename guards which operation.
package permissions

import (
	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/hub"
)

// modelPerm builds a Condition predicate checking one model permission.
func modelPerm[T any](name string) func(T, *action.Context) bool {
	return func(_ T, ctx *action.Context) bool {
		return ctx.Allowed(name)
	}
}

// Collection remotes.
var (
	CanAddRemote    = modelPerm[hub.Remote]("ansible.add_collectionremote")
	CanDeleteRemote = modelPerm[hub.Remote]("ansible.delete_collectionremote")
	CanEditRemote   = modelPerm[hub.Remote]("ansible.change_collectionremote")
)

// Ansible repositories.
var (
	CanAddRepository    = modelPerm[hub.Repository]("ansible.add_ansiblerepository")
	CanDeleteRepository = modelPerm[hub.Repository]("ansible.delete_ansiblerepository")
	CanEditRepository   = modelPerm[hub.Repository]("ansible.change_ansiblerepository")
	CanSyncRepository   = modelPerm[hub.Repository]("ansible.change_ansiblerepository")
)

// Collections and the approval pipeline.
var (
	CanDeleteCollection  = modelPerm[hub.CollectionVersionSearch]("ansible.delete_collection")
	CanModifyCollection  = modelPerm[hub.CollectionVersionSearch]("ansible.modify_ansible_repo_content")
	CanApproveCollection = modelPerm[hub.CollectionVersionSearch]("ansible.modify_ansible_repo_content")
	CanSignCollection    = modelPerm[hub.CollectionVersionSearch]("galaxy.change_namespace")
)

// Principals.
var (
	CanDeleteUser  = modelPerm[hub.User]("galaxy.delete_user")
	CanDeleteGroup = modelPerm[hub.Group]("galaxy.delete_group")
)

// Execution environments.
var (
	CanDeleteExecutionEnvironment = modelPerm[hub.ExecutionEnvironment]("container.delete_containerrepository")
	CanSyncExecutionEnvironment   = modelPerm[hub.ExecutionEnvironment]("container.change_containernamespace")
)
