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

// NewHooksCommand creates the webhooks command group.
func NewHooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hooks",
		Aliases: []string{"webhooks", "hook"},
		Short:   "Manage webhooks",
		Long:    "List, create, and delete webhooks registered under an API token",
	}

	cmd.AddCommand(newHooksListCommand())
	cmd.AddCommand(newHooksCreateCommand())
	cmd.AddCommand(newHooksDeleteCommand())

	return cmd
}

func newHooksListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			hooks, err := client.ListHooks(context.Background(), "")
			if err != nil {
				return fmt.Errorf("failed to list hooks: %w", err)
			}

			return outputHooks(hooks)
		},
	}
}

func newHooksCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create CALLBACK_URL MODEL_ID",
		Short: "Create a webhook",
		Long:  "Register a webhook that posts changes of the given model to the callback URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			hook, err := client.CreateHook(context.Background(), args[0], args[1], description, "")
			if err != nil {
				return fmt.Errorf("failed to create hook: %w", err)
			}

			fmt.Printf("Created hook %s for model %s\n", hook.ID, hook.IDModel)

			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "d", "", "webhook description")

	return cmd
}

func newHooksDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOOK_ID",
		Short: "Delete a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			hooks, err := client.ListHooks(ctx, "")
			if err != nil {
				return fmt.Errorf("failed to list hooks: %w", err)
			}

			for _, hook := range hooks {
				if hook.ID == args[0] {
					if err := hook.Delete(ctx); err != nil {
						return fmt.Errorf("failed to delete hook: %w", err)
					}

					fmt.Printf("Deleted hook %s\n", hook.ID)

					return nil
				}
			}

			return fmt.Errorf("hook %s: %w", args[0], ErrHookNotFound)
		},
	}
}

func outputHooks(hooks []*trello.Webhook) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return StandardJSONRenderer(hooks)
	case OutputFormatYAML:
		return StandardYAMLRenderer(hooks)
	default:
		return renderHookTable(hooks)
	}
}

func renderHookTable(hooks []*trello.Webhook) error {
	if len(hooks) == 0 {
		_, _ = os.Stdout.WriteString("No hooks found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Model", "Callback URL", "Active")

	for _, hook := range hooks {
		_ = table.Append(hook.ID, hook.IDModel, hook.CallbackURL, yesNo(hook.Active))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
