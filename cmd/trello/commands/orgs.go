package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewOrgsCommand creates the organizations command group.
func NewOrgsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"organizations", "org"},
		Short:   "Manage organizations",
		Long:    "List and inspect Trello organizations",
	}

	cmd.AddCommand(newOrgsListCommand())
	cmd.AddCommand(newOrgsGetCommand())
	cmd.AddCommand(newOrgsBoardsCommand())
	cmd.AddCommand(newOrgsMembersCommand())

	return cmd
}

func newOrgsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		Long:  "List all organizations the authenticated member belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			orgs, err := client.ListOrganizations(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list organizations: %w", err)
			}

			return outputOrganizations(orgs)
		},
	}
}

func newOrgsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ORG_ID",
		Short: "Show an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			org, err := client.GetOrganization(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			return outputOrganizations([]*trello.Organization{org})
		},
	}
}

func newOrgsBoardsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "boards ORG_ID",
		Short: "List an organization's boards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			org, err := client.GetOrganization(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			boards, err := org.GetBoards(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list organization boards: %w", err)
			}

			return outputBoards(boards)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "board filter (all, open, closed)")

	return cmd
}

func newOrgsMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "members ORG_ID",
		Short: "List an organization's members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			org, err := client.GetOrganization(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get organization: %w", err)
			}

			members, err := org.GetMembers(ctx)
			if err != nil {
				return fmt.Errorf("failed to list organization members: %w", err)
			}

			return outputMembers(members)
		},
	}
}

func outputOrganizations(orgs []*trello.Organization) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(orgs)
	case OutputFormatYAML:
		return StandardYAMLRenderer(orgs)
	default:
		return renderOrganizationTable(orgs)
	}
}

func renderOrganizationTable(orgs []*trello.Organization) error {
	if len(orgs) == 0 {
		_, _ = os.Stdout.WriteString("No organizations found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "URL")

	for _, org := range orgs {
		_ = table.Append(org.Name, org.ID, org.URL)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
