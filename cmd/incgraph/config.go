// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/katalvlaran/incgraph/depgraph"
)

// envPrefix namespaces environment overrides, e.g. INCGRAPH_LOG_LEVEL.
const envPrefix = "INCGRAPH"

// config is the resolved CLI configuration.
type config struct {
	LogLevel       log.Level
	ReachCacheSize int
	Color          bool
}

// loadConfig layers defaults, the optional TOML file at path and
// INCGRAPH_* environment variables, in increasing priority.
func loadConfig(path string) (*config, error) {
	v := viper.New()

	// 1) Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("graph.reach_cache_size", depgraph.DefaultReachCacheSize)
	v.SetDefault("output.color", true)

	// 2) Environment
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 3) File
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	level, err := log.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	size := v.GetInt("graph.reach_cache_size")
	if size <= 0 {
		return nil, fmt.Errorf("graph.reach_cache_size must be positive, got %d", size)
	}

	return &config{
		LogLevel:       level,
		ReachCacheSize: size,
		Color:          v.GetBool("output.color"),
	}, nil
}
