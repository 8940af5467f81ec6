package actions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/galaxyops/hub-console/internal/action"
	"github.com/galaxyops/hub-console/internal/alerts"
	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/tasks"
)

// newActionContext builds a context against a fake hub with every
// permission granted.
func newActionContext(client *hub.Client) (*action.Context, *alerts.List) {
	list := alerts.NewList()
	ctx := &action.Context{
		Hub:           client,
		Poller:        tasks.NewPoller(client, time.Millisecond, nil),
		Alerts:        list,
		State:         action.NewState(),
		HasPermission: func(string) bool { return true },
	}
	return ctx, list
}

func runningSyncTask() *hub.Task {
	return &hub.Task{State: hub.TaskRunning}
}

func TestRepositorySyncDisabledReasons(t *testing.T) {
	cases := []struct {
		name string
		repo hub.Repository
		want string
	}{
		{
			name: "no remote",
			repo: hub.Repository{Name: "standalone"},
			want: "There are no remotes associated with this repository.",
		},
		{
			name: "sync already queued",
			repo: hub.Repository{
				Name:         "community",
				Remote:       "/pulp/api/v3/remotes/ansible/collection/r1/",
				LastSyncTask: runningSyncTask(),
			},
			want: "Sync task is already queued.",
		},
		{
			name: "community remote without requirements",
			repo: hub.Repository{
				Name:   "community",
				Remote: "/pulp/api/v3/remotes/ansible/collection/r1/",
				RemoteDetail: &hub.Remote{
					Name: "community",
					URL:  hub.CommunityGalaxyURL,
				},
			},
			want: "YAML requirements are required to sync from Galaxy. You can edit the community remote to add requirements.",
		},
		{
			name: "community remote signed only",
			repo: hub.Repository{
				Name:   "community",
				Remote: "/pulp/api/v3/remotes/ansible/collection/r1/",
				RemoteDetail: &hub.Remote{
					Name:             "community",
					URL:              hub.CommunityGalaxyURL,
					RequirementsFile: "collections:\n  - community.general\n",
					SignedOnly:       true,
				},
			},
			want: "Community content will never be synced if the remote is set to only sync signed content. You can edit the community remote to change it.",
		},
		{
			name: "unresolved remote detail skips community checks",
			repo: hub.Repository{
				Name:   "community",
				Remote: "/pulp/api/v3/remotes/ansible/collection/r1/",
			},
			want: "",
		},
		{
			name: "syncable",
			repo: hub.Repository{
				Name:   "rh-certified",
				Remote: "/pulp/api/v3/remotes/ansible/collection/r1/",
				RemoteDetail: &hub.Remote{
					Name: "rh-certified",
					URL:  "https://cloud.redhat.com/api/automation-hub/",
				},
				LastSyncTask: &hub.Task{State: hub.TaskCompleted},
			},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := repositorySyncDisabled(tc.repo, nil); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRepositorySyncHiddenWithoutPermission(t *testing.T) {
	ctx, _ := newActionContext(nil)
	ctx.HasPermission = func(string) bool { return false }

	repo := hub.Repository{Name: "community", Remote: "/pulp/api/v3/remotes/ansible/collection/r1/"}
	if RepositorySync.Button(repo, ctx) != nil {
		t.Error("sync must not be offered without the remote permission")
	}
}

func TestRepositorySyncFlow(t *testing.T) {
	var gotOpts hub.SyncOptions
	var synced bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /pulp/api/v3/repositories/ansible/ansible/repo1/sync/", func(w http.ResponseWriter, r *http.Request) {
		synced = true
		json.NewDecoder(r.Body).Decode(&gotOpts)
		json.NewEncoder(w).Encode(hub.TaskResponse{Task: "/pulp/api/v3/tasks/sync-task-1/"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, list := newActionContext(hub.NewClient(srv.URL))
	refreshed := false
	ctx.Query = func(context.Context) error { refreshed = true; return nil }

	repo := hub.Repository{
		PulpHref: "/pulp/api/v3/repositories/ansible/ansible/repo1/",
		Name:     "community",
		Remote:   "/pulp/api/v3/remotes/ansible/collection/r1/",
	}

	control := RepositorySync.Button(repo, ctx)
	if control == nil || control.Disabled {
		t.Fatalf("expected enabled sync control, got %+v", control)
	}
	if err := control.Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	modal := RepositorySync.Modal(context.Background(), ctx)
	if modal == nil {
		t.Fatal("expected sync modal after click")
	}
	SeedSyncOptions(ctx, hub.SyncOptions{Mirror: false, Optimize: true})

	if err := modal.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !synced {
		t.Fatal("sync endpoint never called")
	}
	if gotOpts.Mirror || !gotOpts.Optimize {
		t.Errorf("got sync options %+v", gotOpts)
	}
	if !refreshed {
		t.Error("expected refresh after sync start")
	}
	if RepositorySync.Modal(context.Background(), ctx) != nil {
		t.Error("expected modal closed after confirm")
	}

	got := list.All()
	if len(got) != 1 {
		t.Fatalf("expected one alert, got %v", got)
	}
	if got[0].Variant != alerts.VariantInfo {
		t.Errorf("got variant %q", got[0].Variant)
	}
	if !strings.Contains(got[0].Title, `Sync started for repository "community".`) {
		t.Errorf("got title %q", got[0].Title)
	}
	if !strings.Contains(got[0].Description, "sync-task-1") {
		t.Errorf("description %q missing task id", got[0].Description)
	}
}

func TestRepositorySyncFailureAlerts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"detail": "remote is gone"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, list := newActionContext(hub.NewClient(srv.URL))
	repo := hub.Repository{
		PulpHref: "/pulp/api/v3/repositories/ansible/ansible/repo1/",
		Name:     "community",
		Remote:   "/pulp/api/v3/remotes/ansible/collection/r1/",
	}

	if err := RepositorySync.Button(repo, ctx).Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if err := RepositorySync.Modal(context.Background(), ctx).Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	got := list.All()
	if len(got) != 1 || got[0].Variant != alerts.VariantDanger {
		t.Fatalf("expected one danger alert, got %v", got)
	}
	if !strings.Contains(got[0].Description, "remote is gone") {
		t.Errorf("description %q missing hub detail", got[0].Description)
	}
}

func TestRepositoryDeleteProtected(t *testing.T) {
	ctx, _ := newActionContext(nil)
	for _, name := range []string{"published", "staging", "rejected", "community"} {
		control := RepositoryDelete.Button(hub.Repository{Name: name}, ctx)
		if control == nil || !control.Disabled {
			t.Errorf("repository %q: expected disabled delete control", name)
			continue
		}
		if control.DisabledReason != "Protected repositories cannot be deleted." {
			t.Errorf("repository %q: got reason %q", name, control.DisabledReason)
		}
	}

	if c := RepositoryDelete.Button(hub.Repository{Name: "scratch"}, ctx); c == nil || c.Disabled {
		t.Error("expected custom repository to be deletable")
	}
}

// fakeApprovalHub serves the endpoints the approval pipeline touches.
func fakeApprovalHub(t *testing.T, approved []hub.Repository, moves *[]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /pulp/api/v3/repositories/ansible/ansible/", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("pulp_label_select"); got != "pipeline=approved" {
			t.Errorf("unexpected label filter %q", got)
		}
		json.NewEncoder(w).Encode(hub.Page[hub.Repository]{Count: len(approved), Results: approved})
	})
	mux.HandleFunc("POST /v3/collections/", func(w http.ResponseWriter, r *http.Request) {
		*moves = append(*moves, r.URL.Path)
		json.NewEncoder(w).Encode(hub.CollectionMoveResponse{RemoveTaskID: "/pulp/api/v3/tasks/remove-1/"})
	})
	mux.HandleFunc("GET /pulp/api/v3/tasks/remove-1/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(hub.Task{PulpHref: "/pulp/api/v3/tasks/remove-1/", State: hub.TaskCompleted})
	})
	return httptest.NewServer(mux)
}

func stagedVersion() hub.CollectionVersionSearch {
	return hub.CollectionVersionSearch{
		CollectionVersion: hub.CollectionVersion{Namespace: "acme", Name: "tools", Version: "1.2.3"},
		Repository:        hub.RepositoryRef{Name: "staging"},
	}
}

func TestCollectionApproveSingleDestination(t *testing.T) {
	var moves []string
	srv := fakeApprovalHub(t, []hub.Repository{{Name: "published"}}, &moves)
	defer srv.Close()

	ctx, list := newActionContext(hub.NewClient(srv.URL))
	item := stagedVersion()

	control := CollectionApprove.Button(item, ctx)
	if control == nil {
		t.Fatal("expected approve control for staged version")
	}
	if err := control.Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	// A single approved repository certifies directly, no modal.
	if CollectionApprove.Modal(context.Background(), ctx) != nil {
		t.Error("expected no destination dialog with one approved repository")
	}
	want := "/v3/collections/acme/tools/versions/1.2.3/move/staging/published/"
	if len(moves) != 1 || moves[0] != want {
		t.Fatalf("got moves %v, want [%s]", moves, want)
	}

	got := list.All()
	if len(got) != 1 || got[0].Variant != alerts.VariantSuccess {
		t.Fatalf("expected one success alert, got %v", got)
	}
	if !strings.Contains(got[0].Title, "acme.tools v1.2.3") {
		t.Errorf("title %q missing collection spec", got[0].Title)
	}
}

func TestCollectionApproveMultipleDestinations(t *testing.T) {
	var moves []string
	srv := fakeApprovalHub(t, []hub.Repository{{Name: "published"}, {Name: "validated"}}, &moves)
	defer srv.Close()

	ctx, _ := newActionContext(hub.NewClient(srv.URL))
	item := stagedVersion()

	if err := CollectionApprove.Button(item, ctx).Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	modal := CollectionApprove.Modal(context.Background(), ctx)
	if modal == nil {
		t.Fatal("expected destination dialog with two approved repositories")
	}
	SeedApproveDestinations(ctx, []string{"validated"})

	if err := modal.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	want := "/v3/collections/acme/tools/versions/1.2.3/move/staging/validated/"
	if len(moves) != 1 || moves[0] != want {
		t.Fatalf("got moves %v, want [%s]", moves, want)
	}
	if CollectionApprove.Modal(context.Background(), ctx) != nil {
		t.Error("expected dialog closed after confirm")
	}
}

func TestCollectionApproveHiddenWhenAlreadyApproved(t *testing.T) {
	ctx, _ := newActionContext(nil)
	item := stagedVersion()
	item.Repository.Name = hub.PipelineApproved
	if CollectionApprove.Button(item, ctx) != nil {
		t.Error("approve must not be offered for an already approved version")
	}
}

func TestCollectionRejectMovesToRejected(t *testing.T) {
	var moves []string
	srv := fakeApprovalHub(t, nil, &moves)
	defer srv.Close()

	ctx, list := newActionContext(hub.NewClient(srv.URL))
	if err := CollectionReject.Button(stagedVersion(), ctx).Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	want := "/v3/collections/acme/tools/versions/1.2.3/move/staging/rejected/"
	if len(moves) != 1 || moves[0] != want {
		t.Fatalf("got moves %v, want [%s]", moves, want)
	}
	if got := list.All(); len(got) != 1 || got[0].Variant != alerts.VariantSuccess {
		t.Fatalf("expected one success alert, got %v", got)
	}
}

func TestTaskStopHiddenForTerminalTasks(t *testing.T) {
	ctx, _ := newActionContext(nil)
	for _, state := range []hub.TaskState{hub.TaskCompleted, hub.TaskFailed, hub.TaskCanceled} {
		if TaskStop.Button(hub.Task{State: state}, ctx) != nil {
			t.Errorf("stop offered for %s task", state)
		}
	}
	for _, state := range []hub.TaskState{hub.TaskRunning, hub.TaskWaiting} {
		if TaskStop.Button(hub.Task{State: state}, ctx) == nil {
			t.Errorf("stop not offered for %s task", state)
		}
	}
}

func TestTaskStopFlow(t *testing.T) {
	var patched bool
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /pulp/api/v3/tasks/t1/", func(w http.ResponseWriter, r *http.Request) {
		patched = true
		json.NewEncoder(w).Encode(hub.Task{PulpHref: "/pulp/api/v3/tasks/t1/", State: hub.TaskCanceled})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ctx, list := newActionContext(hub.NewClient(srv.URL))
	task := hub.Task{
		PulpHref: "/pulp/api/v3/tasks/t1/",
		Name:     "pulpcore.tasking.tasks.orphan_cleanup",
		State:    hub.TaskRunning,
	}

	if err := TaskStop.Button(task, ctx).Invoke(context.Background()); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	modal := TaskStop.Modal(context.Background(), ctx)
	if modal == nil {
		t.Fatal("expected confirmation dialog")
	}
	if !strings.Contains(modal.Body, "orphan cleanup") {
		t.Errorf("dialog body %q missing display name", modal.Body)
	}
	if err := modal.Confirm(context.Background()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !patched {
		t.Fatal("cancel endpoint never called")
	}
	if got := list.All(); len(got) != 1 || got[0].Variant != alerts.VariantSuccess {
		t.Fatalf("expected one success alert, got %v", got)
	}
}
