package cli

import (
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/wowemu-tools/dbckit/internal/config"
	"github.com/wowemu-tools/dbckit/internal/schema"
	"github.com/wowemu-tools/dbckit/internal/store"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "dbckit",
	Short:         "Inspect, diff and edit WDBC game tables",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "dbckit.yaml", "path to the config file")
	rootCmd.AddCommand(dumpCmd, diffCmd, replaceCmd, addCmd, exportCmd)
}

// openStore wires config, schema registry and filesystem into a session
// workspace.
func openStore() (*store.Store, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var reg schema.Registry
	if cfg.Data.SchemaFile != "" {
		reg, err = schema.LoadRegistry(cfg.Data.SchemaFile)
		if err != nil {
			return nil, err
		}
	}

	fs := osfs.New(cfg.Data.Root)
	return store.New(fs, cfg.Data.BaseDir, cfg.Data.ExportDir, reg), nil
}
