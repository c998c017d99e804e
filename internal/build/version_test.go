package build

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	t.Parallel()

	info := Info()
	assert.Contains(t, info, "debcatalog "+Version)
	assert.Contains(t, info, runtime.GOOS+"/"+runtime.GOARCH)
	assert.Equal(t, Version == "dev", IsDevBuild())
}
