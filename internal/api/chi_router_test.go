// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/tomtom215/cinecluster/internal/models"
)

func TestHealthLiveAndReady(t *testing.T) {
	t.Parallel()

	t.Run("loaded", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, serverOptions{})

		rec, env := ts.get(t, "/api/v1/health/live")
		if rec.Code != http.StatusOK || !env.Success {
			t.Fatalf("live status = %d", rec.Code)
		}

		rec, env = ts.get(t, "/api/v1/health/ready")
		if rec.Code != http.StatusOK {
			t.Fatalf("ready status = %d", rec.Code)
		}
		var status models.HealthStatus
		decodeData(t, env, &status)
		if status.Status != "ready" || status.Records != 5 || status.DatasetVersion != 1 {
			t.Errorf("unexpected status %+v", status)
		}
		if status.HistoryBreaker != "closed" {
			t.Errorf("history_breaker = %q, want closed", status.HistoryBreaker)
		}
	})

	t.Run("not loaded", func(t *testing.T) {
		t.Parallel()
		ts := newTestServer(t, serverOptions{noLoad: true})

		rec, _ := ts.get(t, "/api/v1/health/live")
		if rec.Code != http.StatusOK {
			t.Errorf("live must not depend on the dataset, got %d", rec.Code)
		}
		rec, env := ts.get(t, "/api/v1/health/ready")
		if rec.Code != http.StatusServiceUnavailable || env.Success {
			t.Errorf("ready status = %d, want 503", rec.Code)
		}
	})
}

func TestReloadDataset(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	extra := testMoviesCSV + "Sicario,\"Crime, Thriller\",25,7,121,1,\"[0.2, 0.8]\"\n"
	if err := os.WriteFile(ts.csvPath, []byte(extra), 0o600); err != nil {
		t.Fatalf("rewrite csv: %v", err)
	}

	rec, env := ts.do(t, http.MethodPost, "/api/v1/admin/dataset/reload", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", rec.Code, rec.Body.String())
	}
	var out models.ReloadResponse
	decodeData(t, env, &out)
	if out.Version != 2 || out.Records != 6 || out.Clusters != 2 {
		t.Errorf("unexpected reload %+v", out)
	}

	// The new title is immediately servable.
	rec, _ = ts.get(t, "/api/v1/movies/Sicario")
	if rec.Code != http.StatusOK {
		t.Errorf("new movie status = %d", rec.Code)
	}
}

func TestReloadDataset_FailureKeepsPrevious(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	if err := os.Remove(ts.csvPath); err != nil {
		t.Fatalf("remove csv: %v", err)
	}

	rec, env := ts.do(t, http.MethodPost, "/api/v1/admin/dataset/reload", nil)
	expectError(t, rec, env, http.StatusInternalServerError, models.ErrCodeDataSource)

	rec, _ = ts.get(t, "/api/v1/recommendations?title=Alien")
	if rec.Code != http.StatusOK {
		t.Errorf("previous dataset must keep serving, got %d", rec.Code)
	}
	if v := ts.data.Current(); v == nil {
		t.Error("dataset must remain loaded")
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	rec, env := ts.get(t, "/api/v1/nope")
	expectError(t, rec, env, http.StatusNotFound, models.ErrCodeNotFound)

	rec, _ = ts.do(t, http.MethodDelete, "/api/v1/genres", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE status = %d, want 405", rec.Code)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	_, _ = ts.get(t, "/api/v1/genres")
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics exposition must include api_requests_total")
	}
}

func TestRouter_CORSAndSecurityHeaders(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin must not be echoed, got %q", got)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t, serverOptions{rateLimit: 2})

	var last *httptest.ResponseRecorder
	var env envelope
	for i := 0; i < 3; i++ {
		last, env = ts.get(t, "/api/v1/genres")
	}
	expectError(t, last, env, http.StatusTooManyRequests, models.ErrCodeRateLimited)
}
