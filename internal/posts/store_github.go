package posts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/google/go-github/v75/github"
)

var _ Store = (*GitHubStore)(nil)

type GitHubConfig struct {
	Token  string
	Owner  string
	Repo   string
	Branch string // empty means the repository's default branch
	Dir    string
}

// GitHubStore uses a repository's contents API as the database. Every write
// is a commit; updates and deletes carry the blob SHA they replace.
type GitHubStore struct {
	client *github.Client
	cfg    GitHubConfig
	now    func() time.Time
}

func NewGitHubStore(client *github.Client, cfg GitHubConfig) *GitHubStore {
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}
	return &GitHubStore{client: client, cfg: cfg, now: time.Now}
}

func (s *GitHubStore) path(slug string) string {
	return path.Join(s.cfg.Dir, slug+Ext)
}

func (s *GitHubStore) nowString() string {
	return FormatDate(s.now())
}

func (s *GitHubStore) check() error {
	if s.cfg.Token == "" {
		return ErrMissingCredential
	}
	if s.cfg.Owner == "" || s.cfg.Repo == "" {
		return errors.New("github: owner and repo must be configured")
	}
	return nil
}

func (s *GitHubStore) getOptions() *github.RepositoryContentGetOptions {
	if s.cfg.Branch == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: s.cfg.Branch}
}

func (s *GitHubStore) branch() *string {
	if s.cfg.Branch == "" {
		return nil
	}
	return github.Ptr(s.cfg.Branch)
}

// getFile returns the decoded file and its SHA, or ErrNotFound.
func (s *GitHubStore) getFile(ctx context.Context, filePath string) ([]byte, string, error) {
	op := fmt.Sprintf("getting file %s", filePath)
	file, _, _, err := s.client.Repositories.GetContents(ctx, s.cfg.Owner, s.cfg.Repo, filePath, s.getOptions())
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", handleGithubError(op, err)
	}
	if file == nil {
		return nil, "", fmt.Errorf("github: %s: path is a directory", op)
	}
	content, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("github: %s failed to decode content: %w", op, err)
	}
	return []byte(content), file.GetSHA(), nil
}

func (s *GitHubStore) List(ctx context.Context) ([]*Post, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	op := fmt.Sprintf("listing %s", s.cfg.Dir)
	_, dir, _, err := s.client.Repositories.GetContents(ctx, s.cfg.Owner, s.cfg.Repo, s.cfg.Dir, s.getOptions())
	if err != nil {
		if isNotFound(err) {
			return []*Post{}, nil
		}
		return nil, handleGithubError(op, err)
	}

	out := make([]*Post, 0, len(dir))
	for _, entry := range dir {
		if entry.GetType() != "file" {
			continue
		}
		slug, ok := slugFromName(entry.GetName())
		if !ok {
			continue
		}
		data, _, err := s.getFile(ctx, s.path(slug))
		if errors.Is(err, ErrNotFound) {
			// Removed between the listing and the read.
			continue
		}
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

func (s *GitHubStore) Get(ctx context.Context, slug string) (*Post, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if !validSlug(slug) {
		return nil, ErrNotFound
	}
	data, _, err := s.getFile(ctx, s.path(slug))
	if err != nil {
		return nil, err
	}
	return Unmarshal(slug, data, s.nowString)
}

func (s *GitHubStore) Save(ctx context.Context, post *Post) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := checkSlug(post.Slug); err != nil {
		return err
	}
	data, err := Marshal(post)
	if err != nil {
		return err
	}

	filePath := s.path(post.Slug)
	_, sha, err := s.getFile(ctx, filePath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr("Update post: " + post.Title),
		Content: data,
		Branch:  s.branch(),
	}
	if sha != "" {
		opts.SHA = github.Ptr(sha)
		_, _, err = s.client.Repositories.UpdateFile(ctx, s.cfg.Owner, s.cfg.Repo, filePath, opts)
	} else {
		_, _, err = s.client.Repositories.CreateFile(ctx, s.cfg.Owner, s.cfg.Repo, filePath, opts)
	}
	if err != nil {
		return handleGithubError(fmt.Sprintf("writing file %s", filePath), err)
	}
	return nil
}

func (s *GitHubStore) Delete(ctx context.Context, slug string) error {
	if err := s.check(); err != nil {
		return err
	}
	if !validSlug(slug) {
		return ErrNotFound
	}

	filePath := s.path(slug)
	_, sha, err := s.getFile(ctx, filePath)
	if err != nil {
		return err
	}

	_, _, err = s.client.Repositories.DeleteFile(ctx, s.cfg.Owner, s.cfg.Repo, filePath, &github.RepositoryContentFileOptions{
		Message: github.Ptr("Delete post: " + slug),
		SHA:     github.Ptr(sha),
		Branch:  s.branch(),
	})
	if err != nil {
		return handleGithubError(fmt.Sprintf("deleting file %s", filePath), err)
	}
	return nil
}

func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
}

// handleGithubError converts go-github errors into an UpstreamError that
// keeps the API's message.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	op = "github: " + op
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &UpstreamError{Op: op, StatusCode: errResp.Response.StatusCode, Message: errResp.Message, Err: err}
	}
	return &UpstreamError{Op: op, Err: err}
}

// Ping checks the repository is reachable with the configured token.
func (s *GitHubStore) Ping(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	_, _, err := s.client.Repositories.Get(ctx, s.cfg.Owner, s.cfg.Repo)
	return handleGithubError(fmt.Sprintf("getting repository %s/%s", s.cfg.Owner, s.cfg.Repo), err)
}
