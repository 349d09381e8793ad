package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// AppFs is the filesystem configuration and tree files are read from.
var AppFs = afero.NewOsFs()

const (
	configName = ".sqltree"
	envPrefix  = "SQLTREE"
)

// Config holds the application configuration
type Config struct {
	Dialect      string
	Escape       string
	Provider     string
	DatabaseURL  string
	DefaultOrder string
	Debug        bool

	// File is the configuration file that was read, if any.
	File string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("dialect", "sqlite")
	v.SetDefault("escape", "")
	v.SetDefault("provider", "sqlite")
	v.SetDefault("default_order", "")
	v.SetDefault("debug", false)
	return v
}

// Load reads .sqltree.yaml from the working directory, the home directory
// or ~/.config/sqltree, then SQLTREE_* environment variables. A .env and
// a .env.local file in the working directory are loaded first, the latter
// overriding existing variables.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	if err := loadEnvFile(".env", false); err != nil {
		return nil, err
	}
	if err := loadEnvFile(".env.local", true); err != nil {
		return nil, err
	}

	v := newViper()
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "sqltree"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = v.GetString("database_url")
	}

	return &Config{
		Dialect:      v.GetString("dialect"),
		Escape:       v.GetString("escape"),
		Provider:     v.GetString("provider"),
		DatabaseURL:  databaseURL,
		DefaultOrder: v.GetString("default_order"),
		Debug:        v.GetBool("debug"),
		File:         v.ConfigFileUsed(),
	}, nil
}

// loadEnvFile exports the variables of a dotenv file. Unless overload is
// set, variables already present in the environment win.
func loadEnvFile(name string, overload bool) error {
	f, err := AppFs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for key, value := range vars {
		if _, exists := os.LookupEnv(key); exists && !overload {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Save writes cfg to ~/.config/sqltree/.sqltree.yaml and returns the path.
func Save(cfg *Config) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "sqltree")
	if err := AppFs.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	v := newViper()
	v.Set("dialect", cfg.Dialect)
	v.Set("escape", cfg.Escape)
	v.Set("provider", cfg.Provider)
	v.Set("default_order", cfg.DefaultOrder)
	v.Set("debug", cfg.Debug)

	file := filepath.Join(dir, configName+".yaml")
	if err := v.WriteConfigAs(file); err != nil {
		return "", err
	}
	return file, nil
}
