package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbckit.yaml")
	yaml := `
app_name: dbckit-test
data:
  base_dir: dbfiles
  export_dir: patched
  schema_file: schemas.yaml
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dbckit-test", cfg.AppName)
	require.Equal(t, ".", cfg.Data.Root)
	require.Equal(t, "dbfiles", cfg.Data.BaseDir)
	require.Equal(t, "patched", cfg.Data.ExportDir)
	require.Equal(t, "schemas.yaml", cfg.Data.SchemaFile)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbckit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: x\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dbc", cfg.Data.BaseDir)
	require.Equal(t, "export", cfg.Data.ExportDir)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
