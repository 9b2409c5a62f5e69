package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notion-mdx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database: 0123456789abcdef0123456789abcdef
output: ~/site/content/docs
skip-meta: true
auth-token-cmd:
  - pass
  - notion/token
`)

	cfg, actual, err := loadConfig(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, actual)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Database)
	assert.Equal(t, "~/site/content/docs", cfg.Output)
	require.NotNil(t, cfg.SkipMeta)
	assert.True(t, *cfg.SkipMeta)
	assert.Nil(t, cfg.Hextra)
	assert.Equal(t, []string{"pass", "notion/token"}, cfg.AuthTokenCmd)
}

func TestLoadConfigPrecedence(t *testing.T) {
	fromFlag := writeConfig(t, "database: flag\n")
	fromEnv := writeConfig(t, "database: env\n")

	cfg, actual, err := loadConfig(fromFlag, fromEnv)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Database)
	assert.Equal(t, fromFlag, actual)

	cfg, actual, err = loadConfig("", fromEnv)
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.Database)
	assert.Equal(t, fromEnv, actual)
}

func TestLoadConfigMissing(t *testing.T) {
	t.Run("explicit file must exist", func(t *testing.T) {
		_, _, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("default file may be absent", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		homedir.Reset()
		t.Cleanup(homedir.Reset)

		cfg, actual, err := loadConfig("", "")
		require.NoError(t, err)
		assert.Empty(t, actual)
		assert.Equal(t, YamlConfig{}, cfg)
	})
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "databse: typo\n")

	_, _, err := loadConfig(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestBindFlags(t *testing.T) {
	var (
		database  string
		extension string
		skipMeta  bool
		tokenCmd  []string
	)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&database, "database", "", "")
	cmd.Flags().StringVar(&extension, "extension", ".mdx", "")
	cmd.Flags().BoolVar(&skipMeta, "skip-meta", false, "")
	cmd.Flags().StringSliceVar(&tokenCmd, "auth-token-cmd", []string{}, "")

	require.NoError(t, cmd.Flags().Parse([]string{"--extension", ".md"}))

	yes := true
	err := bindFlags(cmd, YamlConfig{
		Database:     "from-config",
		Extension:    ".txt",
		SkipMeta:     &yes,
		Output:       "no such flag on this command",
		AuthTokenCmd: []string{"pass", "notion/token"},
	})
	require.NoError(t, err)

	assert.Equal(t, "from-config", database)
	assert.Equal(t, ".md", extension, "command line wins over the config file")
	assert.True(t, skipMeta)
	assert.Equal(t, []string{"pass", "notion/token"}, tokenCmd)
}

func TestResolveToken(t *testing.T) {
	saved := AuthTokenCmd
	t.Cleanup(func() { AuthTokenCmd = saved })

	t.Setenv(tokenEnv, " secret_from_env \n")
	AuthTokenCmd = nil
	token, err := resolveToken()
	require.NoError(t, err)
	assert.Equal(t, "secret_from_env", token)

	AuthTokenCmd = []string{"printf", "secret_from_cmd\nsecond line\n"}
	token, err = resolveToken()
	require.NoError(t, err)
	assert.Equal(t, "secret_from_cmd", token)
}
