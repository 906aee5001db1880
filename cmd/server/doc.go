// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

/*
Package main is the entry point for the Cinecluster server.

Cinecluster serves movie recommendations from a pre-clustered movie table.
Every movie carries a cluster ID and a text embedding; recommendations for a
seed title come only from the seed's cluster and are ranked by embedding
similarity blended with popularity, vote average and runtime.

# Application Architecture

	RootSupervisor ("cinecluster")
	├── DataSupervisor ("data-layer")
	│   └── Dataset watcher / periodic reload (optional)
	├── MessagingSupervisor ("messaging-layer")
	│   └── History consumer (Watermill GoChannel router)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (Chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, YAML file, environment)
 2. Logging: zerolog with JSON or console output
 3. Dataset: CSV or DuckDB source, initial load
 4. Recommendation engine and cluster analytics
 5. History store (memory, Badger or DuckDB) and recorder
 6. Supervisor tree and HTTP server

A failed initial load is not fatal: /api/v1/health/ready answers 503 until a
file change, a scheduled reload or POST /api/v1/admin/dataset/reload
succeeds.

# Configuration

	Priority: Environment variables > Config file > Defaults

	# Dataset
	DATA_SOURCE=csv               # csv or duckdb
	DATA_PATH=/data/movies.csv    # CSV, or CSV/Parquet for duckdb
	DATA_WATCH=false              # reload when the file changes
	DATA_RELOAD_INTERVAL=0        # periodic reload, e.g. 1h

	# Recommendations
	RECOMMEND_WEIGHT_SIMILARITY=0.5
	RECOMMEND_WEIGHT_POPULARITY=0.2
	RECOMMEND_WEIGHT_VOTE=0.2
	RECOMMEND_WEIGHT_RUNTIME=0.1
	RECOMMEND_DEFAULT_K=5
	RECOMMEND_MAX_K=50

	# History
	HISTORY_ENABLED=true
	HISTORY_STORE=memory          # memory, badger or duckdb
	HISTORY_PATH=/data/history

	# Server
	HTTP_PORT=8080
	CORS_ORIGINS=*                # comma separated; '*' rejected in production
	LOG_LEVEL=info                # trace, debug, info, warn, error
	LOG_FORMAT=json               # json or console

CONFIG_PATH points at a YAML file with the same keys grouped by section.
Changes to the file's logging section are applied without a restart.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT, the history consumer stops,
and the recorder, store and dataset source are closed in that order.
*/
package main
