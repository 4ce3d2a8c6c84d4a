package posts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/jeremyjsx/minitext/internal/storage"
)

const markdownContentType = "text/markdown; charset=utf-8"

var _ Store = (*ObjectStore)(nil)

// ObjectStore keeps posts as objects under a key prefix in a bucket.
type ObjectStore struct {
	storage storage.Storage
	prefix  string
	now     func() time.Time
}

func NewObjectStore(st storage.Storage, prefix string) *ObjectStore {
	return &ObjectStore{storage: st, prefix: prefix, now: time.Now}
}

func (s *ObjectStore) key(slug string) string {
	return path.Join(s.prefix, slug+Ext)
}

func (s *ObjectStore) nowString() string {
	return FormatDate(s.now())
}

func (s *ObjectStore) read(ctx context.Context, slug string) (*Post, error) {
	body, err := s.storage.Download(ctx, s.key(slug))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &UpstreamError{Op: "downloading " + s.key(slug), Err: err}
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key(slug), err)
	}
	return Unmarshal(slug, data, s.nowString)
}

func (s *ObjectStore) List(ctx context.Context) ([]*Post, error) {
	prefix := s.prefix
	if prefix != "" {
		prefix += "/"
	}
	keys, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, &UpstreamError{Op: "listing " + prefix, Err: err}
	}

	dir := path.Clean(s.prefix)
	out := make([]*Post, 0, len(keys))
	for _, key := range keys {
		// Skip objects in nested "directories".
		if path.Dir(key) != dir {
			continue
		}
		slug, ok := slugFromName(path.Base(key))
		if !ok {
			continue
		}
		post, err := s.read(ctx, slug)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	sortByDateDesc(out)
	return out, nil
}

func (s *ObjectStore) Get(ctx context.Context, slug string) (*Post, error) {
	if !validSlug(slug) {
		return nil, ErrNotFound
	}
	return s.read(ctx, slug)
}

func (s *ObjectStore) Save(ctx context.Context, post *Post) error {
	if err := checkSlug(post.Slug); err != nil {
		return err
	}
	data, err := Marshal(post)
	if err != nil {
		return err
	}
	if err := s.storage.Upload(ctx, s.key(post.Slug), bytes.NewReader(data), markdownContentType); err != nil {
		return &UpstreamError{Op: "uploading " + s.key(post.Slug), Err: err}
	}
	return nil
}

func (s *ObjectStore) Delete(ctx context.Context, slug string) error {
	if !validSlug(slug) {
		return ErrNotFound
	}
	key := s.key(slug)
	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return &UpstreamError{Op: "checking " + key, Err: err}
	}
	if !exists {
		return ErrNotFound
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return &UpstreamError{Op: "deleting " + key, Err: err}
	}
	return nil
}
