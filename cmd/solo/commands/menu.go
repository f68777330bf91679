package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/solo-ai/solo/internal/menu"
	"github.com/solo-ai/solo/internal/ui/panel"
)

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect or exercise the context menu",
	}
	cmd.AddCommand(menuListCmd(), menuClickCmd())
	return cmd
}

func menuListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the context menu registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := pterm.TableData{{"ID", "Parent", "Title", "Contexts"}}
			for _, item := range menu.Items() {
				rows = append(rows, []string{
					item.ID,
					lo.Ternary(item.ParentID == "", "-", item.ParentID),
					item.Title,
					strings.Join(item.Contexts, ","),
				})
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).
				WithWriter(cmd.OutOrStdout()).Render()
		},
	}
}

// menu click <itemID> [selection|-]: the context menu path.
func menuClickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "click <itemID> [selection|-]",
		Short: "Simulate a context menu click on a selection",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := readText(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			click := menu.Click{MenuItemID: args[0], SelectionText: selection}
			inv, ok := click.Invocation()
			if !ok {
				return fmt.Errorf("menu item %q is not a Solo AI entry", args[0])
			}

			reply := dispatchWithSpinner(cmd, inv)
			fmt.Fprintln(cmd.OutOrStdout(), panel.ForReply(reply, pterm.GetTerminalWidth()))
			return exitCode(reply.IsError())
		},
	}
}
