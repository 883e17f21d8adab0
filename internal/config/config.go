package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/galmarket/eddn-ingest/internal/constant"
	"github.com/spf13/viper"
)

var (
	ServiceName    = "eddn-ingest"
	ServiceVersion = ""
)

var (
	Env *EnvConfig
)

type EnvConfig struct {
	Env      string         `mapstructure:"env"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	EDDN     EDDNConfig     `mapstructure:"eddn"`
}

type LogConfig struct {
	ShowCaller bool   `mapstructure:"show_caller"`
	LogLevel   string `mapstructure:"log_level"`
}

type DatabaseConfig struct {
	// Path to the pre-populated catalog database file.
	Path            string        `mapstructure:"path"`
	BusyTimeout     time.Duration `mapstructure:"busy_timeout"`
	ReconnectFactor float64       `mapstructure:"reconnect_factor"`
	MinJitter       time.Duration `mapstructure:"min_jitter"`
	MaxJitter       time.Duration `mapstructure:"max_jitter"`
	MaxRetry        int           `mapstructure:"max_retry"`
}

type EDDNConfig struct {
	Host          string `mapstructure:"host"`
	ReceiveBuffer int    `mapstructure:"receive_buffer"`
	ScratchDir    string `mapstructure:"scratch_dir"`
}

func LoadConfig(configPath string) error {
	viper.Reset()

	configPath = strings.TrimSpace(configPath)
	if configPath == "" {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(".")
	} else {
		ext := strings.ToLower(filepath.Ext(configPath))
		if ext == ".yml" || ext == ".yaml" {
			viper.SetConfigFile(configPath)
		} else {
			viper.SetConfigName(filepath.Base(configPath))
			viper.SetConfigType("yml")
			configDir := filepath.Dir(configPath)
			if configDir == "." || configDir == "" {
				viper.AddConfigPath(".")
			} else {
				viper.AddConfigPath(configDir)
			}
		}
	}

	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	setDefaults()

	// The desktop front end exports TD_EDDN_HOST instead of editing the
	// config file.
	if err := viper.BindEnv("eddn.host", "TD_EDDN_HOST"); err != nil {
		return err
	}

	err := viper.ReadInConfig()
	if err != nil {
		// The listener runs fine on defaults; only a malformed file is
		// an error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err = viper.Unmarshal(&Env)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("env", "development")
	viper.SetDefault("log.log_level", "info")
	viper.SetDefault("log.show_caller", false)
	viper.SetDefault("database.path", "data/TradeDangerous.db")
	viper.SetDefault("database.busy_timeout", 5*time.Second)
	viper.SetDefault("eddn.host", constant.DefaultRelayHost)
	viper.SetDefault("eddn.receive_buffer", 64)
	viper.SetDefault("eddn.scratch_dir", "tmp")
}
