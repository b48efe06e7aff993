package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds application configuration. Precedence, lowest to highest:
// built-in defaults, TOML config file, environment, flags (applied in main).
type Config struct {
	ServerURL string `toml:"server_url"` // chat backend base URL
	DBPath    string `toml:"db_path"`    // client-local state database
	LogDir    string `toml:"log_dir"`
	Debug     bool   `toml:"debug"`
}

const defaultConfigFile = "papelaria.toml"

// Load reads the optional config file and environment overrides. A missing
// file is only an error when its path was given explicitly.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ServerURL: "http://localhost:5000",
		DBPath:    "papelaria.db",
		LogDir:    "logs",
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("PAPELARIA_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("PAPELARIA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PAPELARIA_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("PAPELARIA_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}

	return cfg, nil
}
