package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/galaxyops/hub-console/internal/hub"
)

func newCollectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collection",
		Aliases: []string{"col"},
		Short:   "Work with hub collections",
	}
	cmd.AddCommand(newCollectionListCommand())
	return cmd
}

func newCollectionListCommand() *cobra.Command {
	var repository, namespace, keywords string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search collection versions across repositories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := hubClient(cmd)
			if err != nil {
				return err
			}

			params := hub.Params{Limit: limit, Filters: map[string]string{}}
			if repository != "" {
				params.Filters["repository_name"] = repository
			}
			if namespace != "" {
				params.Filters["namespace"] = namespace
			}
			if keywords != "" {
				params.Filters["keywords"] = keywords
			}

			page, err := client.SearchCollectionVersions(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("searching collections: %w", err)
			}

			table := tablewriter.NewTable(os.Stdout)
			table.Header([]string{"COLLECTION", "VERSION", "REPOSITORY", "SIGNED", "DEPRECATED"})
			for _, result := range page.Results {
				cv := result.CollectionVersion
				table.Append([]string{
					cv.Namespace + "." + cv.Name,
					cv.Version,
					result.Repository.Name,
					yesNo(result.IsSigned),
					yesNo(result.IsDeprecated),
				})
			}
			table.Render()

			if page.Count > len(page.Results) {
				fmt.Printf("Showing %d of %d results\n", len(page.Results), page.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&repository, "repository", "", "filter by repository name")
	cmd.Flags().StringVar(&namespace, "namespace", "", "filter by namespace")
	cmd.Flags().StringVar(&keywords, "keywords", "", "filter by keyword search")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of results")
	return cmd
}

func yesNo(v bool) string {
	if v {
		return color.GreenString("yes")
	}
	return "no"
}
