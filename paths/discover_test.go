package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpriteDirForTest(t *testing.T, root, rel string) string {
	t.Helper()
	dir := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grid.txt"), []byte(".\n"), 0644))
	return dir
}

func baseNames(dirs []string) []string {
	names := make([]string, 0, len(dirs))
	for _, d := range dirs {
		names = append(names, filepath.Base(filepath.Clean(d)))
	}
	return names
}

func TestDiscoverExplicit(t *testing.T) {
	root := t.TempDir()
	b := writeSpriteDirForTest(t, root, "b")
	a := writeSpriteDirForTest(t, root, "a")

	dirs, err := Discover(nil, nil, []string{b, a})
	require.NoError(t, err)

	// Explicit directories keep their given order.
	assert.Equal(t, []string{"b", "a"}, baseNames(dirs))
}

func TestDiscoverExplicitRejectsNonSprite(t *testing.T) {
	root := t.TempDir()
	empty := filepath.Join(root, "empty")
	require.NoError(t, os.MkdirAll(empty, 0755))

	_, err := Discover(nil, nil, []string{empty})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid.txt")
}

func TestDiscoverExplicitRejectsMissing(t *testing.T) {
	root := t.TempDir()
	_, err := Discover(nil, nil, []string{filepath.Join(root, "absent")})
	assert.Error(t, err)
}

func TestDiscoverRejectsMixedModes(t *testing.T) {
	root := t.TempDir()
	a := writeSpriteDirForTest(t, root, "a")

	_, err := Discover([]string{filepath.Join(root, "*")}, nil, []string{a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot combine")
}

func TestDiscoverRequiresInput(t *testing.T) {
	_, err := Discover(nil, nil, nil)
	assert.Error(t, err)
}

func TestDiscoverGlobs(t *testing.T) {
	root := t.TempDir()
	writeSpriteDirForTest(t, root, "sprites/tree")
	writeSpriteDirForTest(t, root, "sprites/grass")
	writeSpriteDirForTest(t, root, "sprites/rock")
	writeSpriteDirForTest(t, root, "sprites/_draft")

	dirs, err := Discover(
		[]string{filepath.Join(root, "sprites", "*")},
		[]string{filepath.Join(root, "sprites", "_*")},
		nil)
	require.NoError(t, err)

	// Glob results are ordered by base name; the excluded draft is
	// gone.
	assert.Equal(t, []string{"grass", "rock", "tree"}, baseNames(dirs))
}

func TestDiscoverGlobsIgnoreNonSprites(t *testing.T) {
	root := t.TempDir()
	writeSpriteDirForTest(t, root, "sprites/tree")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sprites", "notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sprites", "readme.txt"), []byte("hi"), 0644))

	dirs, err := Discover([]string{filepath.Join(root, "sprites", "*")}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"tree"}, baseNames(dirs))
}

func TestDiscoverGlobsNoMatchesIsAnError(t *testing.T) {
	root := t.TempDir()
	_, err := Discover([]string{filepath.Join(root, "nothing", "*")}, nil, nil)
	assert.Error(t, err)
}

func TestDiscoverNameCollisionFirstWins(t *testing.T) {
	root := t.TempDir()
	writeSpriteDirForTest(t, root, "packA/slime")
	writeSpriteDirForTest(t, root, "packB/slime")
	writeSpriteDirForTest(t, root, "packB/tree")

	dirs, err := Discover([]string{filepath.Join(root, "pack*", "*")}, nil, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"slime", "tree"}, baseNames(dirs))
	// Of the two slimes, the lexically earlier path wins.
	assert.Contains(t, dirs[0], "packA")
}

func TestDiscoverSameDirTwiceIsQuietlyDeduped(t *testing.T) {
	root := t.TempDir()
	a := writeSpriteDirForTest(t, root, "a")

	dirs, err := Discover(nil, nil, []string{a, a})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, baseNames(dirs))
}
