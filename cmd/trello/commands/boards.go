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

// NewBoardsCommand creates the boards command group.
func NewBoardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "boards",
		Aliases: []string{"board"},
		Short:   "Manage boards",
		Long:    "List, inspect, create, and archive Trello boards",
	}

	cmd.AddCommand(newBoardsListCommand())
	cmd.AddCommand(newBoardsGetCommand())
	cmd.AddCommand(newBoardsCreateCommand())
	cmd.AddCommand(newBoardsCloseCommand())
	cmd.AddCommand(newBoardsOpenCommand())
	cmd.AddCommand(newBoardsMembersCommand())

	return cmd
}

func newBoardsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards",
		Long:  "List all boards the authenticated member has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			boards, err := client.ListBoards(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list boards: %w", err)
			}

			return outputBoards(boards)
		},
	}
}

func newBoardsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BOARD_ID",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			board, err := client.GetBoard(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get board: %w", err)
			}

			return outputBoards([]*trello.Board{board})
		},
	}
}

func newBoardsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			board, err := client.AddBoard(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to create board: %w", err)
			}

			fmt.Printf("Created board %s (%s)\n", board.Name, board.ID)

			return nil
		},
	}
}

func newBoardsCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close BOARD_ID",
		Short: "Archive a board",
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

			if err := board.Close(ctx); err != nil {
				return fmt.Errorf("failed to close board: %w", err)
			}

			fmt.Printf("Closed board %s\n", board.Name)

			return nil
		},
	}
}

func newBoardsOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open BOARD_ID",
		Short: "Un-archive a board",
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

			if err := board.Open(ctx); err != nil {
				return fmt.Errorf("failed to open board: %w", err)
			}

			fmt.Printf("Opened board %s\n", board.Name)

			return nil
		},
	}
}

func newBoardsMembersCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "members BOARD_ID",
		Short: "List board members",
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

			var members []*trello.Member

			switch filter {
			case "normal":
				members, err = board.NormalMembers(ctx)
			case "admins":
				members, err = board.AdminMembers(ctx)
			case "owners":
				members, err = board.OwnerMembers(ctx)
			default:
				members, err = board.AllMembers(ctx)
			}

			if err != nil {
				return fmt.Errorf("failed to list board members: %w", err)
			}

			return outputMembers(members)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "all", "member filter (all, normal, admins, owners)")

	return cmd
}

func outputBoards(boards []*trello.Board) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(boards)
	case OutputFormatYAML:
		return StandardYAMLRenderer(boards)
	default:
		return renderBoardTable(boards)
	}
}

func renderBoardTable(boards []*trello.Board) error {
	if len(boards) == 0 {
		_, _ = os.Stdout.WriteString("No boards found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Closed", "URL")

	for _, board := range boards {
		_ = table.Append(board.Name, board.ID, yesNo(board.Closed), board.URL)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func outputMembers(members []*trello.Member) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(members)
	case OutputFormatYAML:
		return StandardYAMLRenderer(members)
	default:
		return renderMemberTable(members)
	}
}

func renderMemberTable(members []*trello.Member) error {
	if len(members) == 0 {
		_, _ = os.Stdout.WriteString("No members found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Username", "Full Name", "ID")

	for _, member := range members {
		_ = table.Append(member.Username, member.FullName, member.ID)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
