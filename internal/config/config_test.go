package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	C = Config{}
	t.Cleanup(func() {
		viper.Reset()
		C = Config{}
	})
}

func TestInitDefaults(t *testing.T) {
	resetViper(t)

	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))

	assert.Equal(t, "csv", GetFormat())
	assert.Equal(t, "", GetOutput())
	assert.True(t, GetClean())
	assert.Equal(t, "warn", GetLogLevel())
	assert.Equal(t, "text", GetLogFormat())
	assert.Equal(t, 16, GetColumnID())
	assert.Equal(t, 32, GetColumnField())
	assert.True(t, C.Clean)
}

func TestInitFromFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "brendatab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\nclean: false\ncolor_id: \"35\"\n"), 0644))

	require.NoError(t, Init(path))

	assert.Equal(t, "json", GetFormat())
	assert.False(t, GetClean())
	assert.Equal(t, "35", GetColorID())
	assert.Equal(t, "json", C.Format)
}

func TestInitFromEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("BRENDATAB_FORMAT", "yaml")

	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, "yaml", GetFormat())
}

func TestSetters(t *testing.T) {
	resetViper(t)
	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))

	SetFormat("tsv")
	SetOutput("out.tsv")
	SetClean(false)

	assert.Equal(t, "tsv", GetFormat())
	assert.Equal(t, "out.tsv", GetOutput())
	assert.False(t, GetClean())
	assert.Equal(t, Config{
		Format: "tsv", Output: "out.tsv", Clean: false, LogLevel: "warn", LogFormat: "text",
		ColorID: "36", ColorField: "33", ColorDesc: "90", ColumnID: 16, ColumnField: 32,
	}, C)
}
