package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodex/internal/domain/token"
)

func TestReadPassword_Piped(t *testing.T) {
	got, err := readPassword(strings.NewReader("secret1\nignored\n"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "secret1", got)

	got, err = readPassword(strings.NewReader("no-newline"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestCreateUserCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "nodex.db"))
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("UPLOAD_ROOT", dir)

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("secret1\n"))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"createuser", "--name", "Jane Doe", "--email", "jane@example.com", "--contact", "5550100200"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	userID, err := token.NewService("cli-secret", 0).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
}
