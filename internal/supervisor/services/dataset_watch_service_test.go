// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinecluster/internal/dataset"
)

var _ suture.Service = (*DatasetWatchService)(nil)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (c *countingReloader) Reload(context.Context) (dataset.Snapshot, error) {
	n := c.calls.Add(1)
	if c.err != nil {
		return dataset.Snapshot{}, c.err
	}
	return dataset.Snapshot{Version: uint64(n)}, nil
}

type fakeWatcher struct {
	err     error
	started chan struct{}
}

func (f *fakeWatcher) Run(ctx context.Context) error {
	close(f.started)
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func serveAsync(svc suture.Service) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()
	return cancel, errCh
}

func TestDatasetService_PeriodicReload(t *testing.T) {
	t.Parallel()

	for _, failing := range []bool{false, true} {
		reloader := &countingReloader{}
		if failing {
			reloader.err = errors.New("source unreadable")
		}
		svc := NewDatasetWatchService(reloader, nil, DatasetWatchConfig{ReloadInterval: 10 * time.Millisecond}, zerolog.Nop())
		cancel, errCh := serveAsync(svc)

		deadline := time.Now().Add(2 * time.Second)
		for reloader.calls.Load() < 3 && time.Now().Before(deadline) {
			time.Sleep(5 * time.Millisecond)
		}
		cancel()

		if got := reloader.calls.Load(); got < 3 {
			t.Errorf("failing=%v: reloads = %d, want >= 3", failing, got)
		}
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("failing=%v: expected context.Canceled, got %v", failing, err)
		}
	}
}

func TestDatasetService_WatcherLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("stops with context", func(t *testing.T) {
		t.Parallel()
		w := &fakeWatcher{started: make(chan struct{})}
		svc := NewDatasetWatchService(&countingReloader{}, w, DatasetWatchConfig{}, zerolog.Nop())
		cancel, errCh := serveAsync(svc)
		<-w.started
		cancel()
		if err := <-errCh; !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("watcher failure is returned", func(t *testing.T) {
		t.Parallel()
		watchErr := errors.New("inotify limit reached")
		w := &fakeWatcher{started: make(chan struct{}), err: watchErr}
		svc := NewDatasetWatchService(&countingReloader{}, w, DatasetWatchConfig{}, zerolog.Nop())
		cancel, errCh := serveAsync(svc)
		defer cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, watchErr) {
				t.Errorf("expected watcher error, got %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return after watcher failure")
		}
	})
}

func TestDatasetService_ReloadsHandleOnFileChange(t *testing.T) {
	t.Parallel()

	const header = "title,genres,popularity,vote_average,runtime,cluster,text_embedding\n"
	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte(header+"Alien,Horror,50,8,117,0,\"[1.0, 0.0]\"\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	handle := dataset.NewHandle(dataset.NewCSVSource(path), zerolog.Nop())
	if _, err := handle.Reload(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	watcher := dataset.NewWatcher(handle, path, 20*time.Millisecond, zerolog.Nop())
	svc := NewDatasetWatchService(handle, watcher, DatasetWatchConfig{}, zerolog.Nop())
	cancel, errCh := serveAsync(svc)
	defer func() {
		cancel()
		<-errCh
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	updated := header +
		"Alien,Horror,50,8,117,0,\"[1.0, 0.0]\"\n" +
		"Aliens,Action,60,8,137,0,\"[0.9, 0.1]\"\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if ds := handle.Current(); ds != nil && ds.Len() == 2 {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Errorf("dataset was not reloaded after the file changed")
}
