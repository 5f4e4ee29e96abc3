package icons

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgbanner/internal/domain"
)

const checkSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M9 16.17 4.83 12l-1.42 1.41L9 19 21 7l-1.41-1.41z"/></svg>`

func fixtureDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoad_ReturnsMarkup(t *testing.T) {
	dir := fixtureDir(t, map[string]string{"check.svg": checkSVG})
	repo := New(dir)

	got, err := repo.Load(context.Background(), "check")
	require.NoError(t, err)
	assert.Equal(t, checkSVG, got)
}

func TestLoad_ReadsFreshEachTime(t *testing.T) {
	dir := fixtureDir(t, map[string]string{"check.svg": "<svg>one</svg>"})
	repo := New(dir)

	first, err := repo.Load(context.Background(), "check")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "check.svg"), []byte("<svg>two</svg>"), 0o644))
	second, err := repo.Load(context.Background(), "check")
	require.NoError(t, err)

	assert.Equal(t, "<svg>one</svg>", first)
	assert.Equal(t, "<svg>two</svg>", second)
}

func TestLoad_NotFound(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.svg"), []byte("secret"), 0o644))

	dir := fixtureDir(t, map[string]string{"check.svg": checkSVG})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.svg"), 0o755))
	repo := New(dir)

	rel, err := filepath.Rel(dir, filepath.Join(outside, "secret"))
	require.NoError(t, err)

	names := []string{
		"does_not_exist",
		"",
		"../check",
		"..",
		rel,
		"/etc/passwd",
		"a/b",
		`a\b`,
		"check.svg",
		"check%2F",
		"folder",
		strings.Repeat("a", 129),
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Load(context.Background(), name)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrIconNotFound)
		})
	}
}

func TestLoad_ReadFailure(t *testing.T) {
	dir := fixtureDir(t, map[string]string{"big.svg": strings.Repeat("x", 33)})
	repo := New(dir, WithMaxBytes(32))

	_, err := repo.Load(context.Background(), "big")
	assert.ErrorIs(t, err, domain.ErrIconReadFailure)

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	locked := filepath.Join(dir, "locked.svg")
	require.NoError(t, os.WriteFile(locked, []byte(checkSVG), 0o000))
	_, err = repo.Load(context.Background(), "locked")
	assert.ErrorIs(t, err, domain.ErrIconReadFailure)
}

func TestLoad_MaxBytesBoundaryIsInclusive(t *testing.T) {
	dir := fixtureDir(t, map[string]string{"edge.svg": strings.Repeat("x", 32)})
	repo := New(dir, WithMaxBytes(32))

	got, err := repo.Load(context.Background(), "edge")
	require.NoError(t, err)
	assert.Len(t, got, 32)
}

func TestLoad_CanceledContext(t *testing.T) {
	repo := New(fixtureDir(t, map[string]string{"check.svg": checkSVG}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Load(ctx, "check")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList(t *testing.T) {
	dir := fixtureDir(t, map[string]string{
		"check.svg":         checkSVG,
		"question_mark.svg": checkSVG,
		"arrow-up.svg":      checkSVG,
		"README.md":         "docs",
		"bad name.svg":      checkSVG,
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755))

	got, err := New(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"arrow-up", "check", "question_mark"}, got)
}

func TestList_FollowsSymlinksLikeLoad(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need extra privileges on windows")
	}
	shared := fixtureDir(t, map[string]string{"target.svg": checkSVG})
	dir := fixtureDir(t, map[string]string{"check.svg": checkSVG})
	require.NoError(t, os.Symlink(filepath.Join(shared, "target.svg"), filepath.Join(dir, "linked.svg")))
	require.NoError(t, os.Symlink(filepath.Join(shared, "missing.svg"), filepath.Join(dir, "dangling.svg")))
	require.NoError(t, os.Symlink(shared, filepath.Join(dir, "folder.svg")))
	repo := New(dir)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"check", "linked"}, got)

	for _, name := range got {
		_, err := repo.Load(context.Background(), name)
		assert.NoError(t, err, name)
	}
	_, err = repo.Load(context.Background(), "dangling")
	assert.ErrorIs(t, err, domain.ErrIconNotFound)
}

func TestList_EmptyAndMissingDir(t *testing.T) {
	got, err := New(t.TempDir()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	_, err = New(filepath.Join(t.TempDir(), "missing")).List(context.Background())
	assert.ErrorIs(t, err, domain.ErrIconReadFailure)
}

func TestReady(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, New(dir).Ready())
	assert.False(t, New(filepath.Join(dir, "missing")).Ready())

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.False(t, New(file).Ready())
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("question_mark"))
	assert.True(t, ValidName("arrow-up-2"))
	assert.False(t, ValidName("dot.dot"))
	assert.False(t, ValidName("ünïcode"))
	assert.False(t, ValidName(""))
}
