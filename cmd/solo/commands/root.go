package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solo-ai/solo/internal/ai"
	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/dispatch"
	"github.com/solo-ai/solo/internal/logging"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/store"
)

// errReported marks a failure that was already shown to the user.
var errReported = errors.New("reported")

var (
	cfgPath string
	verbose bool
	appCtx  *appContext
)

// appContext is the dependency graph shared by subcommands.
type appContext struct {
	cfg      *model.AppConfig
	log      *zap.SugaredLogger
	settings *store.SQLiteStore
	keys     credential.Store
	coord    *dispatch.Coordinator
	closers  []func()
}

func (a *appContext) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if appCtx != nil {
		appCtx.close()
		appCtx = nil
	}
	if err != nil && !errors.Is(err, errReported) {
		pterm.Error.Println(err.Error())
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solo",
		Short:         "Solo AI writing assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// The full-screen app owns the terminal, so it only logs to a file.
			var console io.Writer = cmd.ErrOrStderr()
			if cmd == cmd.Root() {
				console = nil
			}
			a, err := setup(console)
			if err != nil {
				return err
			}
			appCtx = a
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.config/solo/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&withRelay, "relay", false, "also serve the HTTP relay and show context menu replies")

	root.AddCommand(runCmd(), menuCmd(), keyCmd(), serveCmd())
	return root
}

// setup builds the dependency graph from configuration.
func setup(console io.Writer) (*appContext, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	path := cfgPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}

	a := &appContext{cfg: cfg}

	log, flush, err := logging.New(cfg.Log, verbose, console)
	if err != nil {
		return nil, err
	}
	a.log = log
	a.closers = append(a.closers, flush)

	if cfg.Storage.Backend == model.BackendLocal {
		s, err := store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("opening settings store: %w", err)
		}
		a.settings = s
		a.closers = append(a.closers, func() { _ = s.Close() })
	}

	keys, err := credential.Open(cfg, settingsOrNil(a.settings))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("opening credential store: %w", err)
	}
	a.keys = keys

	client := ai.NewFromConfig(cfg.Completion)
	a.coord = dispatch.New(keys, client, dispatch.WithLogger(log))

	log.Debugw("configured",
		"config", path,
		"backend", cfg.Storage.Backend,
		"endpoint", cfg.Completion.Endpoint,
		"model", client.Model(),
		"timeout", cfg.Completion.Timeout,
	)
	return a, nil
}

// settingsOrNil avoids passing a typed nil pointer as a store.Store.
func settingsOrNil(s *store.SQLiteStore) store.Store {
	if s == nil {
		return nil
	}
	return s
}

// exitCode reports a failed reply without printing it twice.
func exitCode(failed bool) error {
	if failed {
		return errReported
	}
	return nil
}
