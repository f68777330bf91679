package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/solo-ai/solo/internal/app"
	"github.com/solo-ai/solo/internal/dispatch"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/relay"
)

// feedSize bounds how many relayed replies may wait for the side panel.
const feedSize = 16

var withRelay bool

// runTUI opens the full-screen side panel. With --relay it also serves the
// HTTP relay and mirrors context-menu replies into the panel.
func runTUI(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var opts []app.Option
	if withRelay {
		feed := make(chan model.Reply, feedSize)
		mirror := dispatch.ReplyFunc(func(r model.Reply) {
			select {
			case feed <- r:
			default:
				appCtx.log.Warnw("side panel feed full, dropping reply", "invocation", r.ID)
			}
		})

		addr := appCtx.cfg.Server.Addr
		srv := relay.NewServer(addr, appCtx.coord, appCtx.keys, appCtx.log, relay.WithMirror(mirror))
		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe(ctx)
		}()
		defer func() {
			cancel()
			if err := <-errCh; err != nil {
				appCtx.log.Errorw("relay stopped", "error", err)
			}
		}()

		opts = append(opts, app.WithReplyFeed(feed), app.WithRelayAddr(addr))
	}

	p := tea.NewProgram(
		app.New(appCtx.coord, appCtx.keys, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal app: %w", err)
	}
	return nil
}
