// Package main provides hubctl, a small CLI for hub administration tasks
// that the console exposes in the browser: listing repositories and tasks,
// starting syncs and stopping tasks.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:           "hubctl",
		Short:         "Administer an Ansible content hub from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("url", "", "hub API base URL (overrides config file)")
	cmd.PersistentFlags().String("token", "", "hub API token (overrides config file)")

	cmd.AddCommand(newRepoCommand())
	cmd.AddCommand(newTaskCommand())
	cmd.AddCommand(newCollectionCommand())

	if err := cmd.Execute(); err != nil {
		if _, writeErr := os.Stderr.WriteString(err.Error() + "\n"); writeErr != nil {
			os.Exit(1)
		}
		os.Exit(1)
	}
}
