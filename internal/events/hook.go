package events

import (
	"context"

	"github.com/jeremyjsx/minitext/internal/deploy"
)

// HookPublisher rebuilds the site directly for every event.
type HookPublisher struct {
	hook *deploy.Hook
}

func NewHookPublisher(hook *deploy.Hook) *HookPublisher {
	return &HookPublisher{hook: hook}
}

func (p *HookPublisher) PublishPostChanged(ctx context.Context, _ PostChanged) error {
	return p.hook.Trigger(ctx)
}

var _ Publisher = (*HookPublisher)(nil)
