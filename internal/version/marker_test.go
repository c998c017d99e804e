package version

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarker(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantErr bool
	}{
		"trailing newline":    {content: "0.3.1\n"},
		"no newline":          {content: "0.3.1"},
		"two lines":           {content: "0.3.1\n0.3.2\n", wantErr: true},
		"blank second line":   {content: "0.3.1\n\n", wantErr: true},
		"revision":            {content: "0.3.1-1\n", wantErr: true},
		"prerelease":          {content: "0.3.1~rc1\n", wantErr: true},
		"date based":          {content: "20240520-1\n", wantErr: true},
		"trailing content":    {content: "0.3.1 # current\n", wantErr: true},
		"two components":      {content: "0.3\n", wantErr: true},
		"empty":               {content: "", wantErr: true},
		"windows line ending": {content: "0.3.1\r\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseMarker(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "0.3.1", v.String())
		})
	}
}

func TestReadWriteMarker(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "VERSION", []byte("1.4.2\n"), 0o644))

	v, err := ReadMarker(fs, "VERSION")
	require.NoError(t, err)
	assert.Equal(t, New(1, 4, 2), v)

	next, err := Bump(v, LevelMinor)
	require.NoError(t, err)
	require.NoError(t, WriteMarker(fs, "VERSION", next))

	data, err := util.ReadFile(fs, "VERSION")
	require.NoError(t, err)
	assert.Equal(t, "1.5.0\n", string(data))
}

func TestWriteMarker_RejectsNonPlain(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	for _, input := range []string{"1.0.0-1", "1.0.0~rc1", "20240520-1"} {
		err := WriteMarker(fs, "VERSION", MustParse(input))
		assert.True(t, errors.Is(err, ErrUnsupportedOperation), input)
	}
	_, err := fs.Stat("VERSION")
	assert.Error(t, err)
}

func TestReadMarker_Missing(t *testing.T) {
	t.Parallel()

	_, err := ReadMarker(memfs.New(), "VERSION")
	assert.Error(t, err)
}
