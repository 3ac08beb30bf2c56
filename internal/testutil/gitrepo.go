package testutil

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// GitRepo is a throwaway repository in a temp directory for tests that need
// real history: commits, lightweight and annotated tags, remotes.
type GitRepo struct {
	t    *testing.T
	Repo *git.Repository
	Dir  string

	// Clock is the author/committer time of the next commit. Each commit
	// advances it by one minute so history order is deterministic.
	Clock time.Time
	seq   int
}

// NewGitRepo initializes an empty repository in t.TempDir().
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &GitRepo{
		t:     t,
		Repo:  repo,
		Dir:   dir,
		Clock: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (g *GitRepo) signature() *object.Signature {
	return &object.Signature{Name: "tester", Email: "tester@example.com", When: g.Clock}
}

// Commit writes a new file and commits it with msg, returning the commit hash.
func (g *GitRepo) Commit(msg string) plumbing.Hash {
	g.t.Helper()

	wt, err := g.Repo.Worktree()
	require.NoError(g.t, err)

	g.seq++
	name := "file" + strconv.Itoa(g.seq) + ".txt"
	require.NoError(g.t, os.WriteFile(filepath.Join(g.Dir, name), []byte(msg), 0o644))
	_, err = wt.Add(name)
	require.NoError(g.t, err)

	sig := g.signature()
	hash, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(g.t, err)

	g.Clock = g.Clock.Add(time.Minute)
	return hash
}

// Tag creates a lightweight tag at HEAD.
func (g *GitRepo) Tag(name string) {
	g.t.Helper()

	head, err := g.Repo.Head()
	require.NoError(g.t, err)
	_, err = g.Repo.CreateTag(name, head.Hash(), nil)
	require.NoError(g.t, err)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (g *GitRepo) AnnotatedTag(name, message string) {
	g.t.Helper()

	head, err := g.Repo.Head()
	require.NoError(g.t, err)
	_, err = g.Repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  g.signature(),
		Message: message,
	})
	require.NoError(g.t, err)
}

// AddRemote configures a remote.
func (g *GitRepo) AddRemote(name, url string) {
	g.t.Helper()

	_, err := g.Repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(g.t, err)
}

// AddRemoteWithoutURL writes a remote section with no url key straight into
// .git/config, since go-git refuses to create one. go-git also rejects such a
// config when creating further remotes, so call it after AddRemote.
func (g *GitRepo) AddRemoteWithoutURL(name string) {
	g.t.Helper()

	path := filepath.Join(g.Dir, ".git", "config")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(g.t, err)
	defer f.Close()

	_, err = f.WriteString("[remote \"" + name + "\"]\n\tfetch = +refs/heads/*:refs/remotes/" + name + "/*\n")
	require.NoError(g.t, err)
}

// WriteFile writes a file relative to the repository root without committing it.
func (g *GitRepo) WriteFile(name, content string) {
	g.t.Helper()
	require.NoError(g.t, os.WriteFile(filepath.Join(g.Dir, name), []byte(content), 0o644))
}
