package dialect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Default(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg.BaseSuffixedIntegers)
	assert.True(t, *cfg.BaseSuffixedIntegers)
	assert.Equal(t, "block", cfg.CommentStyle)
	assert.Equal(t, 0, cfg.MaxRetainedLines)
}

func Test_Load_emptyPathReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func Test_Load_overridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.toml")
	require.NoError(t, os.WriteFile(path, []byte(`comment_style = "line"`+"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "line", cfg.CommentStyle)
	assert.True(t, *cfg.BaseSuffixedIntegers, "fields left unset in the file keep the default")
}

func Test_Load_rejectsUnknownCommentStyle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.toml")
	require.NoError(t, os.WriteFile(path, []byte(`comment_style = "nested"`+"\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func Test_Load_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func Test_Exists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dialect.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Join(dir, "nope.toml")))
	assert.False(t, Exists(dir), "a directory is not a regular file")
}
