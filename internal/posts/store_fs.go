package posts

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps posts in a local directory. Writes overwrite in place.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *FileStore) path(slug string) string {
	return filepath.Join(s.dir, slug+Ext)
}

func (s *FileStore) nowString() string {
	return FormatDate(s.now())
}

func (s *FileStore) List(ctx context.Context) ([]*Post, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	out := make([]*Post, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		slug, ok := slugFromName(entry.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		post, err := Unmarshal(slug, data, s.nowString)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	sortByDateDesc(out)
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, slug string) (*Post, error) {
	if !validSlug(slug) {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return Unmarshal(slug, data, s.nowString)
}

func (s *FileStore) Save(ctx context.Context, post *Post) error {
	if err := checkSlug(post.Slug); err != nil {
		return err
	}
	data, err := Marshal(post)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return os.WriteFile(s.path(post.Slug), data, 0o644)
}

func (s *FileStore) Delete(ctx context.Context, slug string) error {
	if !validSlug(slug) {
		return ErrNotFound
	}
	err := os.Remove(s.path(slug))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	return err
}

// Ping checks the posts directory can be created and read.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	_, err := os.Stat(s.dir)
	return err
}
