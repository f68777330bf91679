package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/relay"
	"github.com/solo-ai/solo/internal/ui/panel"
)

// run [text|-]: the popup path. Text comes from the argument or stdin.
func runCmd() *cobra.Command {
	var action string
	cmd := &cobra.Command{
		Use:   "run [text|-]",
		Short: "Run an action over text and print the result panel",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			inv := model.NewInvocation(model.OriginPopup, model.ActionTag(action), text)
			var reply model.Reply
			if text == "" {
				reply = model.ErrorReply(inv, relay.MsgEmptyText)
			} else {
				reply = dispatchWithSpinner(cmd, inv)
			}

			fmt.Fprintln(cmd.OutOrStdout(), panel.ForReply(reply, pterm.GetTerminalWidth()))
			return exitCode(reply.IsError())
		},
	}
	cmd.Flags().StringVarP(&action, "action", "a", string(model.ActionSummarise),
		"summarise, tone_change, key_points or any freeform instruction tag")
	return cmd
}

// readText returns the trimmed text argument, or stdin when the argument is
// "-" or missing.
func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// dispatchWithSpinner runs inv while showing a spinner on stderr.
func dispatchWithSpinner(cmd *cobra.Command, inv model.Invocation) model.Reply {
	spinner, err := pterm.DefaultSpinner.
		WithWriter(cmd.ErrOrStderr()).
		WithRemoveWhenDone(true).
		Start("Thinking…")
	reply := appCtx.coord.Call(cmd.Context(), inv)
	if err == nil {
		_ = spinner.Stop()
	}
	return reply
}
