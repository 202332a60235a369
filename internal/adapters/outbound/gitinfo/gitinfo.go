package gitinfo

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
)

// Repo reads repository state with go-git.
type Repo struct{}

func New() *Repo {
	return &Repo{}
}

func (g *Repo) IsGitRepo(projectPath string) bool {
	_, err := git.PlainOpen(projectPath)
	return err == nil
}

// LastCommitTime returns the committer time of HEAD.
func (g *Repo) LastCommitTime(projectPath string) (time.Time, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return time.Time{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return time.Time{}, fmt.Errorf("reading HEAD commit: %w", err)
	}
	return commit.Committer.When, nil
}

// TrackedFiles lists the slash-separated paths staged in the index.
func (g *Repo) TrackedFiles(projectPath string) ([]string, error) {
	repo, err := git.PlainOpen(projectPath)
	if err != nil {
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	files := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		files = append(files, e.Name)
	}
	sort.Strings(files)
	return files, nil
}

// IsTracked reports whether the slash-separated relative path is in the index.
func (g *Repo) IsTracked(projectPath, relPath string) bool {
	files, err := g.TrackedFiles(projectPath)
	if err != nil {
		return false
	}
	i := sort.SearchStrings(files, relPath)
	return i < len(files) && files[i] == relPath
}
