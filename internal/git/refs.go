package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/samzong/gitpilot/internal/gitutil"
)

// Reference listing reads the object database directly; it never needs a
// child process and never writes.

func (c *Client) openRepository() (*gogit.Repository, error) {
	dir := c.dir
	if dir == "" {
		dir = "."
	}
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &gitutil.BackendError{Op: "open repository", Err: err}
	}
	return repo, nil
}

// CurrentBranch returns the checked-out branch, or "" on a detached or unborn HEAD.
func (c *Client) CurrentBranch(_ context.Context) (string, error) {
	repo, err := c.openRepository()
	if err != nil {
		return "", err
	}
	return headBranch(repo)
}

func headBranch(repo *gogit.Repository) (string, error) {
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", nil
		}
		return "", &gitutil.BackendError{Op: "resolve HEAD", Err: err}
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// ListBranches returns local branches sorted by name.
func (c *Client) ListBranches(_ context.Context) ([]Branch, error) {
	repo, err := c.openRepository()
	if err != nil {
		return nil, err
	}

	current, err := headBranch(repo)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Branches()
	if err != nil {
		return nil, &gitutil.BackendError{Op: "list branches", Err: err}
	}
	defer iter.Close()

	var branches []Branch
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		branches = append(branches, Branch{Name: name, Current: name == current})
		return nil
	})
	if err != nil {
		return nil, &gitutil.BackendError{Op: "list branches", Err: err}
	}

	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

// ListTags returns tag names sorted lexically.
func (c *Client) ListTags(_ context.Context) ([]string, error) {
	repo, err := c.openRepository()
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, &gitutil.BackendError{Op: "list tags", Err: err}
	}
	defer iter.Close()

	var tags []string
	if err := iter.ForEach(func(ref *plumbing.Reference) error {
		tags = append(tags, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, &gitutil.BackendError{Op: "list tags", Err: fmt.Errorf("iterate tags: %w", err)}
	}

	sort.Strings(tags)
	return tags, nil
}
