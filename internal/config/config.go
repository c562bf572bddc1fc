// Package config loads readme settings from file and environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Dir                 string        // directory the config file was looked up in
	DataDir             string        // where books, prefs and articles live
	Storage             string        // "json", "sqlite" or "" for auto
	LogLevel            string        // debug, info, warn, error
	LogFile             string        // empty disables logging
	FetchTimeout        time.Duration // per feed or article request
	FetchRetries        uint64        // extra attempts on server errors
	ReaderCacheSize     int           // articles kept in memory
	CheckConcurrency    int           // parallel link checks in cull
	CheckTimeout        time.Duration // per link check
	CheckExcludeDomains []string      // skipped by cull
}

// PrefsPath returns the path of the user preferences file.
func (c Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.json")
}

// ArticlesDir returns the directory of offline article copies.
func (c Config) ArticlesDir() string {
	return filepath.Join(c.DataDir, "articles")
}

// DefaultDir returns ~/.config/readme, or README_CONFIG_DIR when set.
func DefaultDir() (string, error) {
	if override := os.Getenv("README_CONFIG_DIR"); override != "" {
		return homedir.Expand(override)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "readme"), nil
}

// Load reads config.json from dir, if present, and README_* environment variables.
// An empty dir means DefaultDir.
func Load(dir string) (Config, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return Config{}, err
		}
	}

	v := viper.New()
	v.SetDefault("data_dir", dir)
	v.SetDefault("storage", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "readme.log"))
	v.SetDefault("fetch_timeout", "10s")
	v.SetDefault("fetch_retries", 2)
	v.SetDefault("reader_cache_size", 64)
	v.SetDefault("check_concurrency", 10)
	v.SetDefault("check_timeout", "10s")
	v.SetDefault("check_exclude_domains", []string{"github.com", "gitlab.com"})

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("README")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return Config{}, err
	}
	logFile, err := homedir.Expand(v.GetString("log_file"))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Dir:                 dir,
		DataDir:             dataDir,
		Storage:             v.GetString("storage"),
		LogLevel:            v.GetString("log_level"),
		LogFile:             logFile,
		FetchTimeout:        v.GetDuration("fetch_timeout"),
		FetchRetries:        uint64(v.GetInt("fetch_retries")),
		ReaderCacheSize:     v.GetInt("reader_cache_size"),
		CheckConcurrency:    v.GetInt("check_concurrency"),
		CheckTimeout:        v.GetDuration("check_timeout"),
		CheckExcludeDomains: v.GetStringSlice("check_exclude_domains"),
	}, nil
}
