// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/logging"
	"github.com/tomtom215/cinecluster/internal/middleware"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/validation"
)

type startTimeKey struct{}

// requestTiming stores the arrival time so responses can report duration_ms.
func requestTiming(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startTimeKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func buildMeta(r *http.Request) models.Metadata {
	meta := models.Metadata{
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	}
	if start, ok := r.Context().Value(startTimeKey{}).(time.Time); ok {
		meta.DurationMS = time.Since(start).Milliseconds()
	}
	return meta
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData sends a success envelope around data.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &models.APIResponse{
		Success: true,
		Data:    data,
		Meta:    buildMeta(r),
	})
}

// respondError sends an error envelope. err is logged, never returned to
// the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	meta := buildMeta(r)
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, &models.APIResponse{
		Success: false,
		Error: &models.APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: meta.RequestID,
		},
		Meta: meta,
	})
}

// respondServiceError maps domain errors to status codes and error codes.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var dse *dataset.DataSourceError
	switch {
	case errors.Is(err, dataset.ErrNotLoaded):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeDataSource, "Dataset is not loaded yet", nil, nil)
	case errors.As(err, &dse):
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeDataSource, "Dataset could not be loaded", nil, err)
	case errors.Is(err, analytics.ErrUnknownCluster):
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Cluster not found", nil, nil)
	case errors.Is(err, history.ErrInvalidEntry):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil, nil)
	case errors.Is(err, history.ErrUnavailable), errors.Is(err, history.ErrStoreClosed):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeHistoryUnavailable, "History store is unavailable", nil, err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeInternal, "Request timed out", nil, err)
	default:
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error", nil, err)
	}
}

// validateRequest validates a request struct using go-playground/validator.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *models.APIError) {
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// getIntParam reads an integer query parameter. Absent values yield
// defaultValue; malformed ones yield a validation error.
func getIntParam(r *http.Request, key string, defaultValue int) (int, *models.APIError) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &models.APIError{
			Code:    models.ErrCodeValidation,
			Message: fmt.Sprintf("%s must be an integer", key),
			Details: map[string]interface{}{"field": key, "value": value},
		}
	}
	return n, nil
}

// pathParam returns the unescaped chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
