package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypePostSaved   = "post.saved"
	TypePostDeleted = "post.deleted"
)

type PostChangedPayload struct {
	Slug  string `json:"slug"`
	Title string `json:"title,omitempty"`
}

// PostChanged is emitted after a post is written to or removed from the
// published content.
type PostChanged struct {
	ID        uuid.UUID          `json:"id"`
	Type      string             `json:"type"`
	Timestamp time.Time          `json:"timestamp"`
	Payload   PostChangedPayload `json:"payload"`
}

func NewPostSaved(slug, title string) PostChanged {
	return newPostChanged(TypePostSaved, slug, title)
}

func NewPostDeleted(slug string) PostChanged {
	return newPostChanged(TypePostDeleted, slug, "")
}

func newPostChanged(typ, slug, title string) PostChanged {
	return PostChanged{
		ID:        uuid.New(),
		Type:      typ,
		Timestamp: time.Now().UTC(),
		Payload: PostChangedPayload{
			Slug:  slug,
			Title: title,
		},
	}
}

// IsPostChanged reports whether typ is one of the post change types.
func IsPostChanged(typ string) bool {
	return typ == TypePostSaved || typ == TypePostDeleted
}
