// Package runner runs the long-lived components of an application until they all stop.
package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/a-peyrard/shifter"
	"golang.org/x/sync/errgroup"
)

type (
	// Runnable represents a component that can be run with a context.
	Runnable interface {
		Run(ctx context.Context) error
	}

	// RunnableFunc adapts a function to a Runnable.
	RunnableFunc func(ctx context.Context) error
)

var RunnableType = shifter.TypeOf[Runnable]()

func (f RunnableFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// RunAll runs all the provided runnables concurrently and waits for all of them to finish.
//
// This method is blocking and will return an error if any of the runnables returns an error.
func RunAll(parentCtx context.Context, runnables ...Runnable) error {
	group, ctx := errgroup.WithContext(parentCtx)

	for _, runnable := range runnables {
		group.Go(func() error {
			return runnable.Run(ctx)
		})
	}

	return group.Wait()
}

// RunRegistered runs every runnable instance registered under the Runnable key.
//
// Types registered under the key are not run, as ResolveAll never builds them.
func RunRegistered(parentCtx context.Context, container *shifter.Container) error {
	return RunAll(parentCtx, shifter.ResolveAll[Runnable](container)...)
}

// WithSyscallKillableContext returns a context cancelled on SIGINT or SIGTERM.
func WithSyscallKillableContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
