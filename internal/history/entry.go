// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package history

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxUserIDLength bounds user identifiers, in characters.
const MaxUserIDLength = 128

// DefaultListLimit is used when ListByUser is called with limit <= 0.
const DefaultListLimit = 50

var (
	// ErrInvalidEntry wraps every validation failure.
	ErrInvalidEntry = errors.New("invalid history entry")

	// ErrStoreClosed is returned by stores after Close.
	ErrStoreClosed = errors.New("history store closed")

	// ErrUnavailable is returned while the store circuit breaker is open.
	ErrUnavailable = errors.New("history store unavailable")
)

// Entry is one recommendation shown to a user.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Similarity float64   `json:"similarity"`
	RecordedAt time.Time `json:"recorded_at"`
}

// NewEntry returns an entry stamped with a fresh ID and the current time.
func NewEntry(userID, title string, similarity float64) Entry {
	return Entry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Title:      title,
		Similarity: similarity,
		RecordedAt: time.Now().UTC(),
	}
}

// Validate checks the entry fields. Errors wrap ErrInvalidEntry.
func (e *Entry) Validate() error {
	switch {
	case e.UserID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidEntry)
	case utf8.RuneCountInString(e.UserID) > MaxUserIDLength:
		return fmt.Errorf("%w: user id exceeds %d characters", ErrInvalidEntry, MaxUserIDLength)
	case strings.ContainsRune(e.UserID, 0):
		return fmt.Errorf("%w: user id contains a NUL byte", ErrInvalidEntry)
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidEntry)
	case math.IsNaN(e.Similarity) || math.IsInf(e.Similarity, 0):
		return fmt.Errorf("%w: similarity must be finite", ErrInvalidEntry)
	}
	return nil
}

// fill assigns an ID and timestamp when missing.
func (e *Entry) fill() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
}

// Store persists history entries.
type Store interface {
	// Save persists one entry.
	Save(ctx context.Context, e Entry) error

	// ListByUser returns up to limit entries for userID, newest first.
	// Entries sharing a timestamp are returned most recently saved first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Entry, error)

	// Close releases the store's resources.
	Close() error
}
