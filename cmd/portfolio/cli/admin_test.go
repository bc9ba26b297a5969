package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPasswordLine(t *testing.T) {
	t.Parallel()

	pw, err := readPasswordLine(strings.NewReader("s3cret-pass\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", pw)

	pw, err = readPasswordLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", pw)

	pw, err = readPasswordLine(strings.NewReader("windows\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "windows", pw)

	_, err = readPasswordLine(strings.NewReader("\n"))
	require.Error(t, err)
}

func TestRootCommandTree(t *testing.T) {
	t.Parallel()

	root := newRootCmd("test")
	assert.Equal(t, "test", root.Version)
	assert.NotNil(t, root.RunE)

	for _, path := range [][]string{{"serve"}, {"seed"}, {"admin", "create"}} {
		found, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}

	create, _, err := root.Find([]string{"admin", "create"})
	require.NoError(t, err)
	role := create.Flags().Lookup("role")
	require.NotNil(t, role)
	assert.Equal(t, "admin", role.DefValue)
}
