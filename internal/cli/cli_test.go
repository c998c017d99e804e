package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/stretchr/testify/require"
)

const testChangelog = `marine-container-store (0.2.0-1) stable; urgency=medium

  * Version bump to 0.2.0

 -- Test User <test@example.com>  Tue, 02 Jan 2024 12:00:00 +0000
`

const testStore = `id: marine
name: Marine
description: Marine apps
filters:
  include_tags: [field::marine]
category_metadata:
  - {id: navigation, label: Navigation}
  - {id: monitoring, label: Monitoring}
`

const testBumpversion = `[bumpversion]
current_version = 0.2.0
commit = False
tag = False

[bumpversion:file:VERSION]
`

const testProjectConfig = `maintainer:
  name: Test User
  email: test@example.com
`

// newTestRepo writes a consistent catalog repository into a temp dir.
func newTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"VERSION":                           "0.2.0\n",
		"store/debian/changelog":            testChangelog,
		"store/marine.yaml":                 testStore,
		".debcatalog.yml":                   testProjectConfig,
		".bumpversion.cfg":                  testBumpversion,
		"apps/signalk-server/metadata.yaml": "version: 2.19.0~beta.4-1\ntags: [category::navigation]\n",
		"apps/grafana/metadata.yaml":        "version: 11.2.0-1\ntags: [category::monitoring]\n",
	}
	for name, content := range files {
		writeTestFile(t, dir, name, content)
	}
	return dir
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func readTestFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs the CLI against root with the user config disabled.
func execute(t *testing.T, root string, args ...string) result {
	t.Helper()
	a := &app{loadOpts: config.LoadOptions{SkipUserConfig: true, SkipWarnings: true}}
	cmd := newRootCmd(a)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if root != "" {
		args = append([]string{"--root", root}, args...)
	}
	cmd.SetArgs(args)

	code := run(context.Background(), cmd, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}
