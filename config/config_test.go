package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, s string) string {
	p := filepath.Join(t.TempDir(), "fcheck.toml")
	require.NoError(t, os.WriteFile(p, []byte(s), 0644))
	return p
}

func TestDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDebug, "")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	lvl, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)
}

func TestFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDebug, "")
	p := writeFile(t, `
log_level = "debug"
debug = 2

[mkfs]
size = 2048
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, uint64(2), c.Debug)
	assert.Equal(t, Mkfs{Size: 2048, Ninodes: 200}, c.Mkfs)
}

func TestEnvOverridesFile(t *testing.T) {
	p := writeFile(t, "log_level = \"debug\"\ndebug = 2\n")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvDebug, "5")
	c, err := Load(p)
	require.NoError(t, err)
	lvl, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, lvl)
	assert.Equal(t, uint64(5), c.Debug)
}

func TestErrors(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDebug, "")
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "log_level = \"loud\"\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[mkfs]\nninodes = 0\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "debug = \n"))
	assert.Error(t, err)

	t.Setenv(EnvDebug, "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLevelNames(t *testing.T) {
	for name, want := range map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"Info":    logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	} {
		lvl, err := (&Config{LogLevel: name}).Level()
		require.NoError(t, err, name)
		assert.Equal(t, want, lvl, name)
	}
}
