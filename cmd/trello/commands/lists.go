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

// NewListsCommand creates the lists command group.
func NewListsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lists",
		Aliases: []string{"list"},
		Short:   "Manage lists",
		Long:    "List and create lists on Trello boards",
	}

	cmd.AddCommand(newListsListCommand())
	cmd.AddCommand(newListsCreateCommand())
	cmd.AddCommand(newListsCardsCommand())

	return cmd
}

func newListsListCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list BOARD_ID",
		Short: "List a board's lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			board, err := client.GetBoard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get board: %w", err)
			}

			lists, err := board.GetLists(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list lists: %w", err)
			}

			return outputLists(lists)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "list filter (all, open, closed)")

	return cmd
}

func newListsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create BOARD_ID NAME",
		Short: "Create a list on a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			board, err := client.GetBoard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get board: %w", err)
			}

			list, err := board.AddList(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to create list: %w", err)
			}

			fmt.Printf("Created list %s (%s)\n", list.Name, list.ID)

			return nil
		},
	}
}

func newListsCardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cards BOARD_ID LIST_ID",
		Short: "List the cards in a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			board, err := client.GetBoard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get board: %w", err)
			}

			list, err := board.GetList(ctx, args[1])
			if err != nil {
				return fmt.Errorf("failed to get list: %w", err)
			}

			cards, err := list.ListCards(ctx)
			if err != nil {
				return fmt.Errorf("failed to list cards: %w", err)
			}

			return outputCards(cards)
		},
	}
}

func outputLists(lists []*trello.List) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(lists)
	case OutputFormatYAML:
		return StandardYAMLRenderer(lists)
	default:
		return renderListTable(lists)
	}
}

func renderListTable(lists []*trello.List) error {
	if len(lists) == 0 {
		_, _ = os.Stdout.WriteString("No lists found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Closed")

	for _, list := range lists {
		_ = table.Append(list.Name, list.ID, yesNo(list.Closed))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
