/*
Package config manages TOML config for the chewing conversion service.

InitConfig handles automatic config file creation and loading with fallback to defaults.
LoadConfig and SaveConfig provide direct fs for runtime changes.
Update allows targeted parameter changes with persistence.
*/
package config

import (
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/hanzikit/chewing/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxBufferLen  int  `toml:"max_buffer_len"`
	MaxCandidates int  `toml:"max_candidates"`
	EnableGlue    bool `toml:"enable_glue"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	SystemDictPath string `toml:"system_dict_path"`
	UserDictPath   string `toml:"user_dict_path"`
	SoftwareName   string `toml:"software_name"`
}

// CliConfig holds interactive CLI options.
type CliConfig struct {
	DefaultCandidateCount int  `toml:"default_candidate_count"`
	EchoIntervals         bool `toml:"echo_intervals"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxBufferLen:  64,
			MaxCandidates: 10,
			EnableGlue:    true,
		},
		Dict: DictConfig{
			SystemDictPath: "data/system.trie",
			UserDictPath:   "data/user.trie",
			SoftwareName:   "chewing",
		},
		CLI: CliConfig{
			DefaultCandidateCount: 5,
			EchoIntervals:         true,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return nil, err
	}
	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: ( %s )", utils.GetAbsolutePath(configPath))
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// LoadConfigWithPriority resolves the config file to use (an explicit
// path if given, else the platform config directory) and loads it,
// creating a default config on first use. It returns the loaded config
// and the path it came from.
func LoadConfigWithPriority(explicitPath string) (*Config, string, error) {
	path := explicitPath
	if path == "" {
		resolver, err := utils.NewPathResolver()
		if err != nil {
			log.Warnf("Could not resolve platform config directory, using ./config.toml: %v", err)
			path = "config.toml"
		} else {
			resolved, err := resolver.GetConfigPath("config.toml")
			if err != nil {
				log.Warnf("Could not resolve config path, using ./config.toml: %v", err)
				path = "config.toml"
			} else {
				path = resolved
			}
		}
	}
	cfg, err := InitConfig(path)
	return cfg, path, err
}

// Update changes the server config values and saves to file.
func (c *Config) Update(configPath string, maxBufferLen, maxCandidates *int, enableGlue *bool) error {
	server := &c.Server
	if maxBufferLen != nil {
		server.MaxBufferLen = *maxBufferLen
	}
	if maxCandidates != nil {
		server.MaxCandidates = *maxCandidates
	}
	if enableGlue != nil {
		server.EnableGlue = *enableGlue
	}
	return SaveConfig(c, configPath)
}
