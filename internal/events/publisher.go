package events

import "context"

type Publisher interface {
	PublishPostChanged(ctx context.Context, e PostChanged) error
}
