package posts

import (
	"context"
	"log/slog"
	"time"

	"github.com/jeremyjsx/minitext/internal/events"
)

type Service struct {
	store     Store
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store Store, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) ListPosts(ctx context.Context) ([]*Post, error) {
	return s.store.List(ctx)
}

func (s *Service) GetPost(ctx context.Context, slug string) (*Post, error) {
	return s.store.Get(ctx, slug)
}

// SavePost creates or overwrites the post for slug. The date is restamped on
// every save.
func (s *Service) SavePost(ctx context.Context, slug, title, content string) (*Post, error) {
	if err := Validate(slug, title, content); err != nil {
		return nil, err
	}

	post := &Post{
		Slug:    slug,
		Title:   title,
		Date:    FormatDate(s.now()),
		Content: content,
	}
	if err := s.store.Save(ctx, post); err != nil {
		return nil, err
	}

	s.notify(ctx, events.NewPostSaved(slug, title))
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, slug string) error {
	if err := s.store.Delete(ctx, slug); err != nil {
		return err
	}
	s.notify(ctx, events.NewPostDeleted(slug))
	return nil
}

// notify is best-effort; the write already succeeded.
func (s *Service) notify(ctx context.Context, e events.PostChanged) {
	if err := s.publisher.PublishPostChanged(context.WithoutCancel(ctx), e); err != nil {
		s.logger.Error("publish post change failed",
			"event_id", e.ID,
			"type", e.Type,
			"slug", e.Payload.Slug,
			"error", err,
		)
	}
}

// Validate checks the fields required to save a post.
func Validate(slug, title, content string) error {
	errs := make(map[string]string)
	switch {
	case slug == "":
		errs["slug"] = "required"
	case !validSlug(slug):
		errs["slug"] = "invalid"
	}
	if title == "" {
		errs["title"] = "required"
	}
	if content == "" {
		errs["content"] = "required"
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
