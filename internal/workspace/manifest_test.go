package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest("pnpm-workspace.yaml", []byte(`packages:
  - packages/*
  - apps/web
skip-ts:
  - apps/web
catalog:
  react: ^18
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"packages/*", "apps/web"}, m.Packages)
	assert.Equal(t, []string{"apps/web"}, m.SkipTS)
	assert.True(t, m.Skipped("apps/web"))
	assert.False(t, m.Skipped("packages/*"))
	assert.Equal(t, []string{"packages/*"}, m.Patterns())
}

func TestParseManifestWithoutSkip(t *testing.T) {
	m, err := ParseManifest("pnpm-workspace.yaml", []byte("packages: [a, b]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.Packages)
	assert.Empty(t, m.SkipTS)
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		key     string
		problem string
	}{
		{
			name:    "missing packages",
			yaml:    "skip-ts: [a]\n",
			key:     "packages",
			problem: "couldn't find packages",
		},
		{
			name:    "empty file",
			yaml:    "",
			problem: "",
		},
		{
			name:    "packages not a sequence",
			yaml:    "packages: packages/*\n",
			key:     "packages",
			problem: "must be a sequence of strings",
		},
		{
			name:    "package item not a string",
			yaml:    "packages:\n  - a\n  - 42\n",
			key:     "packages.1",
			problem: "item in `packages` key wasn't a string",
		},
		{
			name:    "skip-ts not a sequence",
			yaml:    "packages: [a]\nskip-ts: true\n",
			key:     "skip-ts",
			problem: "must be a sequence of strings",
		},
		{
			name:    "skip-ts item not a string",
			yaml:    "packages: [a]\nskip-ts:\n  - {x: 1}\n",
			key:     "skip-ts.0",
			problem: "item in `skip-ts` key wasn't a string",
		},
		{
			name:    "top level sequence",
			yaml:    "- a\n- b\n",
			problem: "mapping",
		},
		{
			name:    "malformed yaml",
			yaml:    "packages: [a, b\n",
			problem: "malformed yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest("pnpm-workspace.yaml", []byte(tt.yaml))
			require.Error(t, err)

			var me *ManifestError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, "pnpm-workspace.yaml", me.File)
			if tt.key != "" {
				assert.Equal(t, tt.key, me.Key)
			}
			assert.Contains(t, me.Problem, tt.problem)
			assert.Contains(t, err.Error(), "manifest error in pnpm-workspace.yaml")
		})
	}
}
