// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinecluster/internal/analytics"
	"github.com/tomtom215/cinecluster/internal/dataset"
	"github.com/tomtom215/cinecluster/internal/history"
	"github.com/tomtom215/cinecluster/internal/models"
	"github.com/tomtom215/cinecluster/internal/recommend"
)

// Recommendations for Alien (default weights, pool maxima pop=60 vote=8
// runtime=137): Aliens 0.997, Predator 0.662.
const testMoviesCSV = `title,genres,popularity,vote_average,runtime,cluster,text_embedding
Alien,"Horror, Science Fiction",50,8,117,0,"[1.0, 0.0]"
Aliens,"Action, Science Fiction",60,8,137,0,"[0.9, 0.1]"
Predator,"Action, Science Fiction",40,7,,0,"[0.5, 0.5]"
Heat,"Crime, Drama",30,8,170,1,"[0.0, 1.0]"
Ronin,"Action, Crime",20,7,122,1,"[0.1, 0.9]"
`

type testServer struct {
	handler  http.Handler
	data     *dataset.Handle
	recorder *history.Recorder
	csvPath  string
}

type serverOptions struct {
	noLoad     bool
	noHistory  bool
	rateLimit  int
	csvContent string
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()

	content := opts.csvContent
	if content == "" {
		content = testMoviesCSV
	}
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	logger := zerolog.Nop()
	data := dataset.NewHandle(dataset.NewCSVSource(path), logger)
	if !opts.noLoad {
		if _, err := data.Reload(context.Background()); err != nil {
			t.Fatalf("initial load: %v", err)
		}
	}

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), data, logger)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(engine.Close)

	ts := &testServer{data: data, csvPath: path}
	var hist HistoryRecorder
	if !opts.noHistory {
		rec, err := history.NewRecorder(history.NewMemoryStore(), history.StoreMemory, history.DefaultRecorderConfig(), logger)
		if err != nil {
			t.Fatalf("NewRecorder: %v", err)
		}
		t.Cleanup(func() { _ = rec.Close() })
		ts.recorder = rec
		hist = rec
	}

	h, err := NewHandler(data, engine, analytics.NewService(data, logger), hist, DefaultHandlerConfig(), logger)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	mw := DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = []string{"https://app.example"}
	if opts.rateLimit > 0 {
		mw.RateLimitRequests = opts.rateLimit
	} else {
		mw.RateLimitDisabled = true
	}
	ts.handler = NewRouter(h, RouterConfig{Middleware: mw}).SetupChi()
	return ts
}

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *models.APIError `json:"error"`
	Meta    models.Metadata  `json:"meta"`
}

func (ts *testServer) do(t *testing.T, method, target string, body io.Reader) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s: %v (body %q)", method, target, err, rec.Body.String())
		}
	}
	return rec, env
}

func (ts *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return ts.do(t, http.MethodGet, target, nil)
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	if env.Success || env.Error == nil {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
	if env.Error.RequestID == "" || env.Error.RequestID != env.Meta.RequestID {
		t.Errorf("error request_id %q must match meta %q", env.Error.RequestID, env.Meta.RequestID)
	}
}
