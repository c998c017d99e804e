package validation

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBumpversion = `[bumpversion]
current_version = 0.2.0
commit = False
tag = False

[bumpversion:file:VERSION]
`

func TestParseBumpversion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		wantErr bool
	}{
		"valid":             {content: validBumpversion},
		"compact tag":       {content: "[bumpversion]\ntag=False\n[bumpversion:file:VERSION]\n"},
		"lowercase false":   {content: "[bumpversion]\ntag = false\n[bumpversion:file:VERSION]\n"},
		"tag true":          {content: "[bumpversion]\ntag = True\n[bumpversion:file:VERSION]\n", wantErr: true},
		"tag missing":       {content: "[bumpversion]\ncommit = False\n[bumpversion:file:VERSION]\n", wantErr: true},
		"no main section":   {content: "[bumpversion:file:VERSION]\n", wantErr: true},
		"no file section":   {content: "[bumpversion]\ntag = False\n", wantErr: true},
		"other file only":   {content: "[bumpversion]\ntag = False\n[bumpversion:file:setup.py]\n", wantErr: true},
		"tag not a boolean": {content: "[bumpversion]\ntag = sometimes\n[bumpversion:file:VERSION]\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ParseBumpversion([]byte(tt.content), ".bumpversion.cfg", "VERSION")
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrBumpversion), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckBumpversion(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, ".bumpversion.cfg", []byte(validBumpversion), 0o644))

	assert.NoError(t, CheckBumpversion(fs, ".bumpversion.cfg", "VERSION"))
	assert.Error(t, CheckBumpversion(fs, "missing.cfg", "VERSION"))
}
