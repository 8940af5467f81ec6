package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/galaxyops/hub-console/internal/hub"
	"github.com/galaxyops/hub-console/internal/tasks"
)

func newRepoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Work with hub repositories",
	}
	cmd.AddCommand(newRepoListCommand())
	cmd.AddCommand(newRepoSyncCommand())
	return cmd
}

func newRepoListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List repositories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := hubClient(cmd)
			if err != nil {
				return err
			}

			repos, err := client.ListAllRepositories(cmd.Context(), nil)
			if err != nil {
				return fmt.Errorf("listing repositories: %w", err)
			}

			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"NAME", "DESCRIPTION", "REMOTE", "LAST SYNC"})
			for _, repo := range repos {
				remote := ""
				if repo.Remote != "" {
					remote = hub.PulpIDFromHref(repo.Remote)
				}
				lastSync := ""
				if st := repo.LastSyncTask; st != nil {
					lastSync = coloredState(st.State)
				}
				table.Append([]string{repo.Name, repo.Description, remote, lastSync})
			}
			table.Render()
			return nil
		},
	}
}

func newRepoSyncCommand() *cobra.Command {
	var mirror, optimize, wait bool

	cmd := &cobra.Command{
		Use:   "sync NAME",
		Short: "Start a repository sync and optionally wait for it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := hubClient(cmd)
			if err != nil {
				return err
			}

			repos, err := client.ListAllRepositories(cmd.Context(), map[string]string{"name": args[0]})
			if err != nil {
				return fmt.Errorf("resolving repository: %w", err)
			}
			if len(repos) == 0 {
				return fmt.Errorf("repository %q not found", args[0])
			}
			repo := repos[0]
			if repo.Remote == "" {
				return fmt.Errorf("repository %q has no remote to sync from", repo.Name)
			}

			resp, err := client.SyncRepository(cmd.Context(), hub.PulpIDFromHref(repo.PulpHref), hub.SyncOptions{
				Mirror:   mirror,
				Optimize: optimize,
			})
			if err != nil {
				return fmt.Errorf("starting sync: %w", err)
			}
			fmt.Printf("Sync started for repository %q (task %s)\n", repo.Name, hub.PulpIDFromHref(resp.Task))

			if !wait {
				return nil
			}

			poller := tasks.NewPoller(client, time.Second, nil)
			task, err := poller.Wait(cmd.Context(), resp.Task)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}
			fmt.Printf("Sync %s\n", coloredState(task.State))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mirror, "mirror", true, "remove local content missing from the remote")
	cmd.Flags().BoolVar(&optimize, "optimize", true, "skip the sync when nothing changed upstream")
	cmd.Flags().BoolVar(&wait, "wait", false, "block until the sync task finishes")
	return cmd
}

// coloredState renders a task state with the conventional severity colors.
func coloredState(state hub.TaskState) string {
	switch state {
	case hub.TaskCompleted:
		return color.GreenString(string(state))
	case hub.TaskFailed:
		return color.RedString(string(state))
	case hub.TaskCanceled:
		return color.YellowString(string(state))
	case hub.TaskRunning:
		return color.CyanString(string(state))
	default:
		return string(state)
	}
}
