package provisioning

import (
	"context"

	"github.com/imamik/redisflow/internal/config"
	"github.com/imamik/redisflow/internal/platform/azure"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Provider azure.Provider
	Observer Observer
}

// NewContext creates a new provisioning context with a console observer.
func NewContext(ctx context.Context, cfg *config.Config, provider azure.Provider) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Provider: provider,
		Observer: NewConsoleObserver(),
	}
}

// WithObserver replaces the observer and returns the context.
func (c *Context) WithObserver(o Observer) *Context {
	c.Observer = o
	return c
}
