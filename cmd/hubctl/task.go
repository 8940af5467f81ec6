package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/galaxyops/hub-console/internal/hub"
)

func newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work with hub tasks",
	}
	cmd.AddCommand(newTaskListCommand())
	cmd.AddCommand(newTaskStopCommand())
	return cmd
}

func newTaskListCommand() *cobra.Command {
	var limit int
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent tasks, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := hubClient(cmd)
			if err != nil {
				return err
			}

			params := hub.Params{Limit: limit, Sort: "-pulp_created"}
			if state != "" {
				params.Filters = map[string]string{"state": state}
			}
			page, err := client.ListTasks(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("listing tasks: %w", err)
			}

			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"ID", "NAME", "STATE", "STARTED", "FINISHED"})
			for _, task := range page.Results {
				table.Append([]string{
					hub.PulpIDFromHref(task.PulpHref),
					task.DisplayName(),
					coloredState(task.State),
					formatTime(task.StartedAt),
					formatTime(task.FinishedAt),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of tasks to show")
	cmd.Flags().StringVar(&state, "state", "", "filter by task state")
	return cmd
}

func newTaskStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop ID",
		Short: "Request cancellation of a waiting or running task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := hubClient(cmd)
			if err != nil {
				return err
			}

			task, err := client.GetTask(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading task: %w", err)
			}
			if task.State.Terminal() {
				return fmt.Errorf("task %s is already %s", args[0], task.State)
			}

			if _, err := client.CancelTask(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("stopping task: %w", err)
			}
			fmt.Printf("Task %q stopped successfully.\n", task.DisplayName())
			return nil
		},
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
