package git

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/samzong/gitpilot/internal/gitutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientStatus(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "README.md", "changed\n")
	writeFile(t, dir, "new.txt", "new\n")
	writeFile(t, dir, "staged.txt", "staged\n")
	runGit(t, dir, "add", "staged.txt")

	st, err := client.Status(bg)
	require.NoError(t, err)

	assert.Equal(t, []string{"staged.txt"}, st.Staged)
	assert.Contains(t, st.Changes, FileChange{Path: "README.md", Kind: ChangeModified})
	assert.Contains(t, st.Changes, FileChange{Path: "new.txt", Kind: ChangeUntracked})
	assert.Empty(t, st.Conflicted)
}

func TestClientStatusOutsideRepository(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	client := NewClient(Options{Dir: dir, Env: []string{"GIT_CEILING_DIRECTORIES=" + filepath.Dir(dir)}})

	_, err := client.Status(bg)
	var backendErr *gitutil.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "git status", backendErr.Op)
	assert.False(t, client.IsGitRepository(bg))
	assert.Error(t, client.CheckGitRepository(bg))
}

func TestClientStagePathsAndCommit(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "b.txt", "b\n")

	require.NoError(t, client.StagePaths(bg, []string{"b.txt"}))
	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, st.Staged)

	require.NoError(t, client.Commit(bg, CommitOptions{Message: "add b"}))
	assert.Equal(t, "2", commitCount(t, dir))
	assert.Equal(t, "b.txt", runGit(t, dir, "show", "--name-only", "--format=", "HEAD"))
}

func TestClientStagePathsFromSubdirectory(t *testing.T) {
	_, dir := newTestRepo(t)

	writeFile(t, dir, "my file.txt", "root\n")
	writeFile(t, dir, "sub/x.txt", "x\n")
	writeFile(t, dir, "[ab].txt", "literal\n")
	writeFile(t, dir, "a.txt", "not matched by the glob\n")

	client := NewClient(Options{Dir: filepath.Join(dir, "sub"), Env: []string{"GIT_CONFIG_NOSYSTEM=1"}})

	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"my file.txt", "sub/x.txt", "[ab].txt", "a.txt"}, st.ChangedPaths())

	require.NoError(t, client.StagePaths(bg, []string{"my file.txt", "sub/x.txt", "[ab].txt"}))

	st, err = client.Status(bg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"my file.txt", "sub/x.txt", "[ab].txt"}, st.Staged)
	assert.Equal(t, []FileChange{{Path: "a.txt", Kind: ChangeUntracked}}, st.Changes)

	require.NoError(t, client.Commit(bg, CommitOptions{Message: "from sub"}))
	assert.Equal(t, "2", commitCount(t, dir))
}

func TestClientStageAll(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	writeFile(t, dir, "README.md", "changed\n")

	require.NoError(t, client.StageAll(bg))
	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "README.md"}, st.Staged)
	assert.Empty(t, st.Changes)
}

func TestClientCommitWithDate(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	require.NoError(t, client.StageAll(bg))
	require.NoError(t, client.Commit(bg, CommitOptions{Message: "old", Date: "2021-01-01T00:00:00Z"}))

	assert.Equal(t, "2021-01-01T00:00:00+00:00", runGit(t, dir, "log", "-1", "--format=%aI"))
}

func TestClientAmend(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	require.NoError(t, client.StageAll(bg))
	require.NoError(t, client.Commit(bg, CommitOptions{Message: "first"}))
	require.Equal(t, "2", commitCount(t, dir))

	require.NoError(t, client.Commit(bg, CommitOptions{Message: "reworded", Amend: true}))
	assert.Equal(t, "2", commitCount(t, dir))
	assert.Equal(t, "reworded", runGit(t, dir, "log", "-1", "--format=%s"))
}

func TestClientCommitRejectsEmptyMessage(t *testing.T) {
	client, _ := newTestRepo(t)
	assert.ErrorIs(t, client.Commit(bg, CommitOptions{}), ErrEmptyMessage)
}

func TestClientCommitNothingStaged(t *testing.T) {
	client, _ := newTestRepo(t)

	err := client.Commit(bg, CommitOptions{Message: "empty"})
	var backendErr *gitutil.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "git commit", backendErr.Op)
}

func TestClientUndoLastCommit(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	require.NoError(t, client.StageAll(bg))
	require.NoError(t, client.Commit(bg, CommitOptions{Message: "to undo"}))

	require.NoError(t, client.UndoLastCommit(bg))
	assert.Equal(t, "1", commitCount(t, dir))

	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, st.Staged)
}

func TestClientUnstage(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "a.txt", "a\n")
	require.NoError(t, client.StageAll(bg))
	require.NoError(t, client.Unstage(bg, []string{"a.txt"}))

	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.Empty(t, st.Staged)
	assert.Equal(t, []FileChange{{Path: "a.txt", Kind: ChangeUntracked}}, st.Changes)

	assert.Error(t, client.Unstage(bg, nil))
}

func TestClientConfig(t *testing.T) {
	client, _ := newTestRepo(t)

	_, err := client.GetConfig(bg, "gitpilot.missing")
	assert.ErrorIs(t, err, ErrConfigKeyNotFound)

	require.NoError(t, client.SetConfig(bg, "gitpilot.answer", "42", false))
	value, err := client.GetConfig(bg, "gitpilot.answer")
	require.NoError(t, err)
	assert.Equal(t, "42", value)
}

func TestClientBranchLifecycle(t *testing.T) {
	client, dir := newTestRepo(t)
	base := runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD")

	require.NoError(t, client.CreateBranch(bg, "feature-x"))
	current, err := client.CurrentBranch(bg)
	require.NoError(t, err)
	assert.Equal(t, "feature-x", current)

	runGit(t, dir, "checkout", "-q", base)
	require.NoError(t, client.DeleteBranch(bg, "feature-x"))

	branches, err := client.ListBranches(bg)
	require.NoError(t, err)
	assert.Equal(t, []Branch{{Name: base, Current: true}}, branches)

	assert.Error(t, client.CreateBranch(bg, "bad name"))
}

func TestClientTags(t *testing.T) {
	client, _ := newTestRepo(t)

	require.NoError(t, client.CreateTag(bg, "v1.0.0", "Release v1.0.0"))
	require.NoError(t, client.CreateTag(bg, "v0.9.0", "Release v0.9.0"))

	tags, err := client.ListTags(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"v0.9.0", "v1.0.0"}, tags)

	assert.Error(t, client.CreateTag(bg, "v2", " "))
}

func TestClientStash(t *testing.T) {
	client, dir := newTestRepo(t)

	writeFile(t, dir, "README.md", "stashed\n")
	require.NoError(t, client.StashSave(bg))

	entries, err := client.StashList(bg)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], "stash@{0}")

	require.NoError(t, client.StashApply(bg, 0))
	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.Equal(t, []FileChange{{Path: "README.md", Kind: ChangeModified}}, st.Changes)

	assert.Error(t, client.StashApply(bg, 5))
	assert.Error(t, client.StashApply(bg, -1))
}

func TestClientCherryPick(t *testing.T) {
	client, dir := newTestRepo(t)
	base := runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD")

	runGit(t, dir, "checkout", "-q", "-b", "side")
	writeFile(t, dir, "side.txt", "side\n")
	runGit(t, dir, "add", "side.txt")
	runGit(t, dir, "commit", "-q", "-m", "side change")
	hash := runGit(t, dir, "rev-parse", "HEAD")
	runGit(t, dir, "checkout", "-q", base)

	require.NoError(t, client.CherryPick(bg, hash))
	assert.Equal(t, "side change", runGit(t, dir, "log", "-1", "--format=%s"))

	assert.Error(t, client.CherryPick(bg, "--abort"))
}

func TestClientConflictStatus(t *testing.T) {
	client, dir := newTestRepo(t)
	base := runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD")

	runGit(t, dir, "checkout", "-q", "-b", "other")
	writeFile(t, dir, "README.md", "other\n")
	runGit(t, dir, "commit", "-q", "-am", "other")
	runGit(t, dir, "checkout", "-q", base)
	writeFile(t, dir, "README.md", "mine\n")
	runGit(t, dir, "commit", "-q", "-am", "mine")

	_ = client.runner.RunWithWriters(bg, false, nil, nil, "merge", "other")

	st, err := client.Status(bg)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md"}, st.Conflicted)
}

func TestClientPushPull(t *testing.T) {
	client, dir := newTestRepo(t)
	branch := runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD")

	remote := t.TempDir()
	runGit(t, remote, "init", "-q", "--bare")
	runGit(t, dir, "remote", "add", "origin", remote)

	require.NoError(t, client.Push(bg, "origin", branch))
	assert.Equal(t, runGit(t, dir, "rev-parse", "HEAD"), runGit(t, remote, "rev-parse", branch))
	require.NoError(t, client.Pull(bg, "origin", branch))

	err := client.Push(bg, "origin", "no-such-branch")
	var backendErr *gitutil.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "git push", backendErr.Op)
	assert.NotEmpty(t, backendErr.Message)
}

func TestClientPushVerboseStreams(t *testing.T) {
	_, dir := newTestRepo(t)
	branch := runGit(t, dir, "rev-parse", "--abbrev-ref", "HEAD")
	remote := t.TempDir()
	runGit(t, remote, "init", "-q", "--bare")
	runGit(t, dir, "remote", "add", "origin", remote)

	var echo bytes.Buffer
	client := NewClient(Options{Dir: dir, Verbose: true, Echo: &echo, Env: []string{"GIT_CONFIG_NOSYSTEM=1"}})

	require.NoError(t, client.Push(bg, "origin", branch))
	assert.Contains(t, echo.String(), "Running: git push origin "+branch)
}
