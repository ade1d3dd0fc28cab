package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	AppName string `mapstructure:"app_name"`

	Data struct {
		Root       string `mapstructure:"root"`
		BaseDir    string `mapstructure:"base_dir"`
		ExportDir  string `mapstructure:"export_dir"`
		SchemaFile string `mapstructure:"schema_file"`
	} `mapstructure:"data"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "dbckit")
	v.SetDefault("data.root", ".")
	v.SetDefault("data.base_dir", "dbc")
	v.SetDefault("data.export_dir", "export")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
