package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "tasktracker", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"serve", "init-db"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestInitDBCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.sqlite3")
	t.Setenv("DB_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"init-db"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(path)
	assert.NoError(t, err)

	// running it again leaves the existing table alone
	cmd = newRootCommand()
	cmd.SetArgs([]string{"init-db"})
	require.NoError(t, cmd.Execute())
}
