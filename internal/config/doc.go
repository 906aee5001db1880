// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package config loads service configuration from layered sources.

Sources are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. A YAML file: CONFIG_PATH, ./config.yaml or /etc/cinecluster/config.yaml
 3. Environment variables such as DATA_PATH, HTTP_PORT, LOG_LEVEL

Only the environment variables listed in envMappings are honoured.
Comma-separated values are accepted for CORS_ORIGINS.

Each section converts to the configuration type of the package it drives:
DataConfig.NewSource, RecommendConfig.EngineConfig, HistoryConfig.StoreConfig
and so on.
*/
package config
