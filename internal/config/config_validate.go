// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package config

import (
	"fmt"
	"strings"
)

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validDataSources = map[string]bool{
		"csv": true, "duckdb": true,
	}
	validHistoryStores = map[string]bool{
		"memory": true, "badger": true, "duckdb": true,
	}
	validEnvironments = map[string]bool{
		"development": true, "staging": true, "production": true,
	}
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateData(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateData() error {
	if !validDataSources[c.Data.Source] {
		return fmt.Errorf("DATA_SOURCE must be one of: csv, duckdb")
	}
	if strings.TrimSpace(c.Data.Path) == "" {
		return fmt.Errorf("DATA_PATH is required")
	}
	if c.Data.Watch && c.Data.WatchDebounce < 0 {
		return fmt.Errorf("DATA_WATCH_DEBOUNCE must not be negative")
	}
	if c.Data.ReloadInterval < 0 {
		return fmt.Errorf("DATA_RELOAD_INTERVAL must not be negative")
	}
	return nil
}

// validateRecommend delegates to the engine's own validation so both
// layers agree on what a usable configuration is.
func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if !c.History.Enabled {
		return nil
	}
	if !validHistoryStores[c.History.Store] {
		return fmt.Errorf("HISTORY_STORE must be one of: memory, badger, duckdb")
	}
	if c.History.Store != "memory" && strings.TrimSpace(c.History.Path) == "" {
		return fmt.Errorf("HISTORY_PATH is required when HISTORY_STORE=%s", c.History.Store)
	}
	if c.History.BreakerFailureRatio <= 0 || c.History.BreakerFailureRatio > 1 {
		return fmt.Errorf("HISTORY_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.History.DefaultLimit < 1 || c.History.MaxLimit < c.History.DefaultLimit {
		return fmt.Errorf("history limits invalid: default %d, max %d", c.History.DefaultLimit, c.History.MaxLimit)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Environment != "" && !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Server.Environment == "production" {
		for _, origin := range c.Security.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
