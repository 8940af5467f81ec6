package hub

import (
	"context"
	"time"
)

// TaskState is the lifecycle state of a hub task.
type TaskState string

// Task states reported by the hub. Waiting and running tasks eventually reach
// exactly one of the terminal states; the hub never moves a task out of a
// terminal state.
const (
	TaskWaiting   TaskState = "waiting"
	TaskRunning   TaskState = "running"
	TaskCompleted TaskState = "completed"
	TaskFailed    TaskState = "failed"
	TaskCanceled  TaskState = "canceled"
)

// Terminal reports whether no further state transitions can occur.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskCompleted, TaskFailed, TaskCanceled:
		return true
	}
	return false
}

// Task is a server-side asynchronous job handle.
type Task struct {
	PulpHref        string           `json:"pulp_href"`
	Name            string           `json:"name"`
	State           TaskState        `json:"state"`
	LoggingCID      string           `json:"logging_cid,omitempty"`
	StartedAt       *time.Time       `json:"started_at,omitempty"`
	FinishedAt      *time.Time       `json:"finished_at,omitempty"`
	Error           *TaskError       `json:"error,omitempty"`
	ParentTask      string           `json:"parent_task,omitempty"`
	ChildTasks      []string         `json:"child_tasks,omitempty"`
	ProgressReports []ProgressReport `json:"progress_reports,omitempty"`
	// ReservedResources lists the resource locks held by the task.
	ReservedResources []string `json:"reserved_resources_record,omitempty"`
}

// TaskError is the failure detail attached to a failed task.
type TaskError struct {
	Reason      string `json:"reason,omitempty"`
	Description string `json:"description,omitempty"`
	Traceback   string `json:"traceback,omitempty"`
}

// ProgressReport is one unit of work reported by a running task.
type ProgressReport struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	State   string `json:"state"`
	Done    int64  `json:"done"`
	Total   int64  `json:"total,omitempty"`
}

const tasksPath = "/pulp/api/v3/tasks/"

// ListTasks fetches one page of tasks.
func (c *Client) ListTasks(ctx context.Context, params Params) (*Page[Task], error) {
	var page Page[Task]
	if err := c.get(ctx, tasksPath, params.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTask fetches a single task by pulp ID.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.get(ctx, tasksPath+id+"/", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTaskByHref fetches a task by its full pulp href.
func (c *Client) GetTaskByHref(ctx context.Context, href string) (*Task, error) {
	return c.GetTask(ctx, PulpIDFromHref(href))
}

// CancelTask requests cancellation of a task. The hub may not honor the
// request immediately; the authoritative state is whatever the next read
// reports.
func (c *Client) CancelTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	err := c.patch(ctx, tasksPath+id+"/", map[string]string{"state": string(TaskCanceled)}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CleanupOrphans starts an orphan cleanup run on the hub.
func (c *Client) CleanupOrphans(ctx context.Context) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.post(ctx, "/pulp/api/v3/orphans/cleanup/", map[string]any{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TaskNames maps well-known hub task names to display labels.
var TaskNames = map[string]string{
	"galaxy_ng.app.tasks.curate_all_synclist_repository": "curate all synclist repositories",
	"galaxy_ng.app.tasks.import_and_auto_approve":        "import and auto approve",
	"galaxy_ng.app.tasks.promotion._remove_content_from_repository": "remove content from repository",
	"pulp_ansible.app.tasks.collections.sync":                       "pulp ansible: collections sync",
	"pulp_ansible.app.tasks.collections.update_collection_remote":   "pulp ansible: update collection remote",
	"pulp_ansible.app.tasks.copy.copy_content":                      "pulp ansible: copy content",
	"pulp_container.app.tasks.synchronize":                          "pulp container: synchronize",
	"pulpcore.tasking.tasks.orphan_cleanup":                         "orphan cleanup",
	"pulpcore.app.tasks.reclaim_space.reclaim":                      "reclaim disk space",
}

// DisplayName returns the human label for the task's name,
// falling back to the raw name for tasks the console does not know.
func (t *Task) DisplayName() string {
	if label, ok := TaskNames[t.Name]; ok {
		return label
	}
	return t.Name
}
