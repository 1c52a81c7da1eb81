package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/PikeCameron/recipebox/internal/logging"
	"github.com/PikeCameron/recipebox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "RECIPEBOX"

	cfgKeyDataDir  = "data_dir"
	cfgKeyDatabase = "database"
	cfgKeySeedFile = "seed_file"
	cfgKeyLogFile  = "log_file"
	cfgKeyLogLevel = "log_level"

	cfgKeyLogMaxSizeMB = "log_max_size_mb"
	cfgKeyLogMaxFiles  = "log_max_files"

	defaultLogLevel = "warn"

	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5
)

// configFile is the structure written to a fresh config.yaml.
type configFile struct {
	Database string `yaml:"database"`
	LogLevel string `yaml:"log_level"`
	DataDir  string `yaml:"data_dir,omitempty"`
	SeedFile string `yaml:"seed_file,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
}

const configHeader = `# recipebox configuration
#
# data_dir:  directory holding the database (overridden by --data-dir)
# seed_file: CSV with a "name" column used by reset (default: built-in list)
# log_file:  rotate JSON logs into this file instead of stderr
#            (relative paths are under the config directory)
# log_max_size_mb, log_max_files: rotation limits for log_file
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. Every key except data_dir can be overridden
// with a RECIPEBOX_* variable. data_dir is left to
// paths.ResolveDataDir, which ranks the file above RECIPEBOX_DATA_DIR.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDatabase, types.DefaultDatabase)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogMaxSizeMB, defaultLogMaxSizeMB)
	v.SetDefault(cfgKeyLogMaxFiles, defaultLogMaxFiles)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{
		cfgKeyDatabase, cfgKeySeedFile,
		cfgKeyLogFile, cfgKeyLogLevel, cfgKeyLogMaxSizeMB, cfgKeyLogMaxFiles,
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile writes config.yaml with default values unless it
// already exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(configFile{
		Database: types.DefaultDatabase,
		LogLevel: defaultLogLevel,
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// logConfig builds the logging settings from cfg. A relative log_file is
// resolved against configDir.
func logConfig(cfg *viper.Viper, configDir string) logging.Config {
	file := cfg.GetString(cfgKeyLogFile)
	if file != "" && !filepath.IsAbs(file) {
		file = filepath.Join(configDir, file)
	}
	return logging.Config{
		File:      file,
		Level:     cfg.GetString(cfgKeyLogLevel),
		MaxSizeMB: cfg.GetInt(cfgKeyLogMaxSizeMB),
		MaxFiles:  cfg.GetInt(cfgKeyLogMaxFiles),
	}
}
