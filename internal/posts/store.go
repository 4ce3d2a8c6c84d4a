package posts

import (
	"context"
	"slices"
	"strings"
)

// Store persists posts as one front-matter document per slug.
type Store interface {
	List(ctx context.Context) ([]*Post, error)
	Get(ctx context.Context, slug string) (*Post, error)
	Save(ctx context.Context, post *Post) error
	Delete(ctx context.Context, slug string) error
}

// sortByDateDesc orders posts newest first by comparing the date strings.
func sortByDateDesc(ps []*Post) {
	slices.SortStableFunc(ps, func(a, b *Post) int {
		return strings.Compare(b.Date, a.Date)
	})
}

// validSlug reports whether slug names a single file inside the posts
// directory.
func validSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`)
}

func checkSlug(slug string) error {
	if !validSlug(slug) {
		return &ValidationError{Fields: map[string]string{"slug": "invalid"}}
	}
	return nil
}

func slugFromName(name string) (string, bool) {
	if !strings.HasSuffix(name, Ext) {
		return "", false
	}
	slug := strings.TrimSuffix(name, Ext)
	return slug, validSlug(slug)
}
