package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bonos.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "database: /var/lib/bonos/adjustments.db\npage_size: 50\n")

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/bonos/adjustments.db", cfg.Database)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoadConfig_MissingDefaultIsNotAnError(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	require.NoError(t, err)
	assert.Empty(t, cfg.Database)
	assert.Zero(t, cfg.PageSize)
}

func TestLoadConfig_MissingExplicitIsAnError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true)
	require.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "database: [unclosed\n")
	_, err := loadConfig(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfig_NegativePageSize(t *testing.T) {
	path := writeConfig(t, "page_size: -5\n")
	_, err := loadConfig(path, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
}

func TestApplyConfig_FlagWinsOverConfig(t *testing.T) {
	path := writeConfig(t, "database: from-config.db\n")

	opts := &RootOptions{Database: "from-flag.db", Config: path}
	require.NoError(t, opts.applyConfig())
	assert.Equal(t, "from-flag.db", opts.Database)
}

func TestApplyConfig_ConfigWinsOverDefault(t *testing.T) {
	path := writeConfig(t, "database: from-config.db\npage_size: 25\n")

	opts := &RootOptions{Config: path}
	require.NoError(t, opts.applyConfig())
	assert.Equal(t, "from-config.db", opts.Database)
	assert.Equal(t, 25, opts.configPageSize)
}

func TestApplyConfig_DefaultDatabase(t *testing.T) {
	path := writeConfig(t, "page_size: 25\n")

	opts := &RootOptions{Config: path}
	require.NoError(t, opts.applyConfig())
	assert.Equal(t, defaultDatabase, opts.Database)
}
