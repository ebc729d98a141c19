package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewCardsCommand creates the cards command group.
func NewCardsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cards",
		Aliases: []string{"card"},
		Short:   "Manage cards",
		Long:    "Inspect, create, and update Trello cards",
	}

	cmd.AddCommand(newCardsGetCommand())
	cmd.AddCommand(newCardsCreateCommand())
	cmd.AddCommand(newCardsRenameCommand())
	cmd.AddCommand(newCardsCommentCommand())
	cmd.AddCommand(newCardsMoveCommand())
	cmd.AddCommand(newCardsDueCommand())
	cmd.AddCommand(newCardsCloseCommand())
	cmd.AddCommand(newCardsAttachCommand())
	cmd.AddCommand(newCardsDeleteCommand())

	return cmd
}

func newCardsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get CARD_ID",
		Short: "Show a card",
		Long:  "Show a card along with the list and board it belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			card, err := client.GetCard(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				return StandardJSONRenderer(card)
			case OutputFormatYAML:
				return StandardYAMLRenderer(card)
			default:
				return renderCardDetail(card)
			}
		},
	}
}

func newCardsCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create BOARD_ID LIST_ID NAME",
		Short: "Create a card",
		Args:  cobra.ExactArgs(3),
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

			card, err := list.AddCard(ctx, args[2], description)
			if err != nil {
				return fmt.Errorf("failed to create card: %w", err)
			}

			fmt.Printf("Created card %s (%s)\n", card.Name, card.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "card description")

	return cmd
}

func newCardsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-name CARD_ID NAME",
		Short: "Rename a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.SetName(ctx, args[1]); err != nil {
				return fmt.Errorf("failed to rename card: %w", err)
			}

			fmt.Printf("Renamed card to %s\n", card.Name)

			return nil
		},
	}
}

func newCardsCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment CARD_ID TEXT",
		Short: "Comment on a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.Comment(ctx, args[1]); err != nil {
				return fmt.Errorf("failed to comment on card: %w", err)
			}

			fmt.Printf("Commented on card %s\n", card.Name)

			return nil
		},
	}
}

func newCardsMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move CARD_ID LIST_ID",
		Short: "Move a card to another list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.ChangeList(ctx, args[1]); err != nil {
				return fmt.Errorf("failed to move card: %w", err)
			}

			fmt.Printf("Moved card %s to list %s\n", card.Name, args[1])

			return nil
		},
	}
}

func newCardsDueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "due CARD_ID DATE",
		Short: "Set a card's due date",
		Long:  "Set a card's due date; DATE must be in YYYY-MM-DD form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			due, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid due date %q: %w", args[1], err)
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.SetDue(ctx, due); err != nil {
				return fmt.Errorf("failed to set due date: %w", err)
			}

			fmt.Printf("Card %s due %s\n", card.Name, card.Due)

			return nil
		},
	}
}

func newCardsCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close CARD_ID",
		Short: "Archive a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.SetClosed(ctx, true); err != nil {
				return fmt.Errorf("failed to close card: %w", err)
			}

			fmt.Printf("Closed card %s\n", card.Name)

			return nil
		},
	}
}

func newCardsAttachCommand() *cobra.Command {
	var (
		filePath string
		fileURL  string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "attach CARD_ID",
		Short: "Attach a file or URL to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			opts := trello.AttachOptions{Name: name, URL: fileURL}

			if filePath != "" {
				file, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("failed to open file: %w", err)
				}

				defer func() { _ = file.Close() }()

				opts.File = file
				if opts.Name == "" {
					opts.Name = file.Name()
				}
			}

			if err := card.Attach(ctx, opts); err != nil {
				return fmt.Errorf("failed to attach: %w", err)
			}

			fmt.Printf("Attached to card %s\n", card.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path of a file to attach")
	cmd.Flags().StringVar(&fileURL, "url", "", "URL to attach")
	cmd.Flags().StringVar(&name, "name", "", "attachment name")

	return cmd
}

func newCardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete CARD_ID",
		Short: "Permanently delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			card, err := client.GetCard(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get card: %w", err)
			}

			if err := card.Delete(ctx); err != nil {
				return fmt.Errorf("failed to delete card: %w", err)
			}

			fmt.Printf("Deleted card %s\n", card.Name)

			return nil
		},
	}
}

func outputCards(cards []*trello.Card) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(cards)
	case OutputFormatYAML:
		return StandardYAMLRenderer(cards)
	default:
		return renderCardTable(cards)
	}
}

func renderCardTable(cards []*trello.Card) error {
	if len(cards) == 0 {
		_, _ = os.Stdout.WriteString("No cards found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Due", "Closed")

	for _, card := range cards {
		_ = table.Append(card.Name, card.ID, card.Due, yesNo(card.Closed))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderCardDetail(card *trello.Card) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("Name", card.Name)
	_ = table.Append("ID", card.ID)
	_ = table.Append("Description", card.Description)
	_ = table.Append("Due", card.Due)
	_ = table.Append("Closed", yesNo(card.Closed))

	if card.List != nil {
		_ = table.Append("List", card.List.Name)

		if card.List.Board != nil {
			_ = table.Append("Board", card.List.Board.Name)
		}
	}

	_ = table.Append("URL", card.URL)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
