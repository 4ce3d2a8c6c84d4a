package events

import "context"

// NoopPublisher drops every event. Used with the local filesystem backend,
// where there is no deployed site to rebuild.
type NoopPublisher struct{}

func (NoopPublisher) PublishPostChanged(context.Context, PostChanged) error {
	return nil
}

var _ Publisher = (*NoopPublisher)(nil)
