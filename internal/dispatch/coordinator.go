package dispatch

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/solo-ai/solo/internal/ai"
	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/model"
	"github.com/solo-ai/solo/internal/prompt"
)

// Completer sends a prompt to the completion endpoint.
type Completer interface {
	Complete(ctx context.Context, credential, prompt string) (string, error)
}

// ReplyChannel delivers the outcome of an invocation to its surface.
type ReplyChannel interface {
	Send(reply model.Reply)
}

// ReplyFunc adapts a function to ReplyChannel.
type ReplyFunc func(model.Reply)

func (f ReplyFunc) Send(r model.Reply) { f(r) }

// Observer is notified of every state transition.
type Observer func(inv model.Invocation, s State)

// Coordinator resolves the credential, builds the prompt, calls the
// completer and replies. It holds no per-invocation state, so concurrent
// dispatches are independent.
type Coordinator struct {
	keys      credential.Store
	completer Completer
	log       *zap.SugaredLogger
	observer  Observer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Coordinator) {
		c.log = l
	}
}

// WithObserver registers a state transition hook.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) {
		c.observer = o
	}
}

// New creates a coordinator reading the credential from keys.
func New(keys credential.Store, completer Completer, opts ...Option) *Coordinator {
	c := &Coordinator{
		keys:      keys,
		completer: completer,
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dispatch handles inv and sends exactly one reply on reply. It blocks
// until the completion call returns; surfaces that must not block run it
// in a goroutine (see Go).
func (c *Coordinator) Dispatch(ctx context.Context, inv model.Invocation, reply ReplyChannel) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	log := c.log.With(
		"invocation", inv.ID,
		"origin", inv.Origin,
		"action", inv.Action,
	)
	c.transition(log, inv, StateReceived)

	raw, err := c.keys.Get(ctx)
	if err != nil && !errors.Is(err, credential.ErrNotFound) {
		log.Warnw("reading credential", "error", err)
	}
	key := credential.Sanitize(raw)
	c.transition(log, inv, StateCredentialChecked)

	if key == "" {
		c.transition(log, inv, StateRejected)
		reply.Send(model.ErrorReply(inv, ai.ErrCredentialMissing.Error()))
		return
	}

	p := prompt.Build(inv.Action, inv.Text)
	c.transition(log, inv, StatePromptBuilt)

	c.transition(log, inv, StateDispatched)
	output, err := c.completer.Complete(ctx, key, p)
	if err != nil {
		c.transition(log, inv, StateFailed)
		log.Infow("invocation failed", "kind", ai.KindOf(err).String(), "error", err)
		reply.Send(model.ErrorReply(inv, err.Error()))
		return
	}

	c.transition(log, inv, StateCompleted)
	log.Infow("invocation completed", "output_len", len(output))
	reply.Send(model.ResultReply(inv, output))
}

// Go runs Dispatch in its own goroutine.
func (c *Coordinator) Go(ctx context.Context, inv model.Invocation, reply ReplyChannel) {
	go c.Dispatch(ctx, inv, reply)
}

// Call dispatches inv and returns its reply.
func (c *Coordinator) Call(ctx context.Context, inv model.Invocation) model.Reply {
	var out model.Reply
	c.Dispatch(ctx, inv, ReplyFunc(func(r model.Reply) { out = r }))
	return out
}

func (c *Coordinator) transition(log *zap.SugaredLogger, inv model.Invocation, s State) {
	log.Debugw("invocation state", "state", s.String())
	if c.observer != nil {
		c.observer(inv, s)
	}
}
