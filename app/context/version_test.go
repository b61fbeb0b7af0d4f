package context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionInfoString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		v    VersionInfo
		exp  string
	}{
		{name: "ok/semantic", v: VersionInfo{Semantic: "v1.2.0"}, exp: "v1.2.0"},
		{
			name: "ok/commit",
			v:    VersionInfo{Semantic: "v1.2.0", Commit: "0123456789abcdef", GoVersion: "go1.24.2"},
			exp:  "v1.2.0 (commit/0123456789ab) go1.24.2",
		},
		{
			name: "ok/dirty",
			v:    VersionInfo{Semantic: "(devel)", Commit: "abc123", Dirty: true},
			exp:  "(devel) (commit/abc123-dirty)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, tc.v.String())
		})
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	v, err := GetVersion()
	require.NoError(t, err)
	assert.NotEmpty(t, v.Semantic)
	assert.NotEmpty(t, v.GoVersion)
}
