package command

import (
	"context"
	"fmt"

	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Task is a backend call run off the update loop.
type Task func(context.Context) tea.Msg

// Bus coordinates the execution of menu actions and backend tasks.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler(ctx, req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

// Run wraps task into a command bound to ctx. A task that finishes after
// ctx is cancelled has its result dropped, so a closed screen never sees
// late messages.
func (b *Bus) Run(ctx context.Context, id, label string, task Task) tea.Cmd {
	events.Command.Queue(id, label)
	return func() tea.Msg {
		if task == nil || ctx.Err() != nil {
			events.Command.Skip(id, label)
			return nil
		}
		msg := task(ctx)
		if ctx.Err() != nil {
			events.Command.Skip(id, label)
			return nil
		}
		if msg == nil {
			events.Command.NoOp(id, label)
			return nil
		}
		events.Command.Result(id, label, fmt.Sprintf("%T", msg))
		return msg
	}
}
