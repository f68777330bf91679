package commands

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/ui/options"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the stored OpenAI API key",
	}
	cmd.AddCommand(keySetCmd(), keyClearCmd(), keyStatusCmd())
	return cmd
}

// key set [value|-]: prompts when no value is given. An empty value clears.
func keySetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [value|-]",
		Short: "Store the API key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var value string
			switch {
			case len(args) == 1 && args[0] == "-":
				v, err := readText(cmd.InOrStdin(), nil)
				if err != nil {
					return err
				}
				value = v
			case len(args) == 1:
				value = args[0]
			default:
				err := huh.NewInput().
					Title("OpenAI API key").
					EchoMode(huh.EchoModePassword).
					Value(&value).
					Run()
				if err != nil {
					return fmt.Errorf("reading key: %w", err)
				}
			}

			configured, err := credential.Save(cmd.Context(), appCtx.keys, value)
			if err != nil {
				return fmt.Errorf("saving key: %w", err)
			}
			if configured {
				pterm.Success.Println(options.StatusSaved)
			} else {
				pterm.Success.Println(options.StatusCleared)
			}
			return nil
		},
	}
}

func keyClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.keys.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing key: %w", err)
			}
			pterm.Success.Println(options.StatusCleared)
			return nil
		},
	}
}

func keyStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether an API key is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := appCtx.keys.Get(cmd.Context())
			if err != nil && !errors.Is(err, credential.ErrNotFound) {
				return fmt.Errorf("reading key: %w", err)
			}
			if key == "" {
				pterm.Info.Println("No API key configured. Run `solo key set`.")
				return nil
			}

			source := "store"
			if env, ok := appCtx.keys.(*credential.EnvStore); ok {
				source = env.Source(cmd.Context())
			}

			rows := pterm.TableData{
				{"Property", "Value"},
				{"Key", credential.Mask(credential.Sanitize(key))},
				{"Source", source},
				{"Backend", appCtx.cfg.Storage.Backend},
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).
				WithWriter(cmd.OutOrStdout()).Render()
		},
	}
}
