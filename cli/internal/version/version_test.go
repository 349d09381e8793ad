package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.BuildDate)
	assert.Contains(t, info.String(), "sqltree "+Version)
}

func TestStamp(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc123"},
		{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	info := Info{}
	stamp(&info, settings)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "2024-05-01T10:00:00Z", info.BuildDate)
	assert.True(t, info.Modified)
	assert.Contains(t, info.FullString(), "abc123 (modified)")

	linked := Info{GitCommit: "fromldflags"}
	stamp(&linked, settings)
	assert.Equal(t, "fromldflags", linked.GitCommit)
}
