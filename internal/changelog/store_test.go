package changelog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewStore(memfs.New(), "store/debian/changelog")
	raw, err := s.Read()
	require.NoError(t, err)
	assert.Empty(t, raw)

	doc, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, StateEmpty, doc.State())
}

func TestStore_WriteAndLoad(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	s := NewStore(fs, "store/debian/changelog")
	require.NoError(t, s.Write(initialRecord))

	doc, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, doc.Head)
	assert.Equal(t, "test-package", doc.Head.Package)

	next, err := doc.Prepend(newEntry("0.2.0", 1))
	require.NoError(t, err)
	require.NoError(t, s.Write(next.Raw))

	data, err := util.ReadFile(fs, "store/debian/changelog")
	require.NoError(t, err)
	assert.Equal(t, next.Raw, string(data))

	// No temp files are left behind.
	entries, err := fs.ReadDir("store/debian")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_LoadMalformed(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "changelog", []byte("nonsense\n"), 0o644))

	_, err := NewStore(fs, "changelog").Load()
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestStore_OSFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewStore(fsutil.OS(dir), filepath.Join("debian", "changelog"))
	require.NoError(t, s.Write(initialRecord))

	raw, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, initialRecord, raw)
}
