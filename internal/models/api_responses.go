// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package models

import (
	"time"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "success": true,
//	  "data": {"seed": "Alien", "items": [...]},
//	  "meta": {"request_id": "9b0c...", "timestamp": "2026-01-02T12:00:00Z", "duration_ms": 3}
//	}
//
// Example error response:
//
//	{
//	  "success": false,
//	  "error": {
//	    "code": "TITLE_NOT_FOUND",
//	    "message": "title not found: Alein",
//	    "details": {"suggestions": ["Alien", "Aliens"]},
//	    "request_id": "9b0c..."
//	  },
//	  "meta": {"request_id": "9b0c...", "timestamp": "2026-01-02T12:00:00Z"}
//	}
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    Metadata    `json:"meta"`
}

// Metadata is attached to every response.
type Metadata struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms"`
	Cached     bool      `json:"cached,omitempty"`
}

// APIError carries a machine-readable code and a human-readable message.
//
// Codes:
//   - TITLE_NOT_FOUND: the seed title is not in the dataset (404)
//   - NOT_FOUND: unknown movie, cluster or route (404)
//   - VALIDATION_FAILED: bad query parameters or body (400)
//   - DATA_SOURCE_ERROR: the dataset could not be loaded (500, 503 before the first load)
//   - HISTORY_UNAVAILABLE: the history store is failing or disabled (503)
//   - RATE_LIMIT_EXCEEDED: too many requests from one client (429)
//   - INTERNAL_ERROR: anything else (500)
type APIError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// Error codes.
const (
	ErrCodeTitleNotFound      = "TITLE_NOT_FOUND"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeDataSource         = "DATA_SOURCE_ERROR"
	ErrCodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternal           = "INTERNAL_ERROR"
)
