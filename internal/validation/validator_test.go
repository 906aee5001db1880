// Cinecluster - Cluster-Aware Movie Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinecluster

package validation

import (
	"math"
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestValidateStruct_Requests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:  "valid recommendations request",
			input: &RecommendationsRequest{Title: "Alien", K: 5, Genre: "Horror", UserID: "u1"},
		},
		{
			name:  "zero k selects the default",
			input: &RecommendationsRequest{Title: "Alien"},
		},
		{
			name:      "missing title",
			input:     &RecommendationsRequest{K: 5},
			wantField: "title",
			wantTag:   "required",
			wantMsg:   "title is required",
		},
		{
			name:      "negative k",
			input:     &RecommendationsRequest{Title: "Alien", K: -1},
			wantField: "k",
			wantTag:   "min",
			wantMsg:   "k must be at least 0",
		},
		{
			name:      "title too long",
			input:     &RecommendationsRequest{Title: strings.Repeat("x", MaxTitleLength+1)},
			wantField: "title",
			wantTag:   "max",
			wantMsg:   "title must be at most 512 characters",
		},
		{
			name:      "user id too long",
			input:     &RecommendationsRequest{Title: "Alien", UserID: strings.Repeat("u", MaxUserIDLength+1)},
			wantField: "user_id",
			wantTag:   "max",
		},
		{
			name:      "suggest n zero",
			input:     &SuggestRequest{Query: "alien", N: 0},
			wantField: "n",
			wantTag:   "min",
			wantMsg:   "n must be at least 1",
		},
		{
			name:      "autocomplete n too large",
			input:     &AutocompleteRequest{Prefix: "al", N: MaxResults + 1},
			wantField: "n",
			wantTag:   "max",
			wantMsg:   "n must be at most 100",
		},
		{
			name:  "negative cluster id",
			input: &ClusterRequest{ClusterID: -1, N: 3},
		},
		{
			name:      "history limit too large",
			input:     &HistoryListRequest{UserID: "u1", Limit: MaxHistoryLimit + 1},
			wantField: "limit",
			wantTag:   "max",
		},
		{
			name:      "similarity NaN",
			input:     &HistoryRecordRequest{UserID: "u1", Title: "Alien", Similarity: math.NaN()},
			wantField: "similarity",
			wantTag:   "finite",
			wantMsg:   "similarity must be a finite number",
		},
		{
			name:  "negative similarity is allowed",
			input: &HistoryRecordRequest{UserID: "u1", Title: "Alien", Similarity: -0.25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected validation error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			errs := err.Fields
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), err)
			}
			if errs[0].Field != tt.wantField || errs[0].Tag != tt.wantTag {
				t.Errorf("field/tag = %s/%s, want %s/%s", errs[0].Field, errs[0].Tag, tt.wantField, tt.wantTag)
			}
			if tt.wantMsg != "" && errs[0].Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Error(), tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single error", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&SuggestRequest{Query: "", N: 5})
		if err == nil {
			t.Fatal("expected error")
		}
		apiErr := err.ToAPIError()
		if apiErr.Code != ErrorCode {
			t.Errorf("Code = %q, want %q", apiErr.Code, ErrorCode)
		}
		if apiErr.Details["field"] != "q" {
			t.Errorf("Details[field] = %v, want q", apiErr.Details["field"])
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		t.Parallel()
		err := ValidateStruct(&HistoryListRequest{UserID: "", Limit: 0})
		if err == nil {
			t.Fatal("expected error")
		}
		apiErr := err.ToAPIError()
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 2 {
			t.Fatalf("Details[fields] = %v, want 2 entries", apiErr.Details["fields"])
		}
		if !strings.Contains(apiErr.Message, "user_id is required") || !strings.Contains(apiErr.Message, "limit must be at least 1") {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if err.Error() != apiErr.Message {
			t.Errorf("Error() = %q, want %q", err.Error(), apiErr.Message)
		}
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		apiErr := (&RequestValidationError{}).ToAPIError()
		if apiErr.Code != ErrorCode || apiErr.Message != "Validation failed" {
			t.Errorf("unexpected %+v", apiErr)
		}
	})
}
