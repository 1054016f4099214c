// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/topiclens/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func validRequest() models.QueryRequest {
	return models.QueryRequest{
		Type:      models.QueryChannel,
		DatasetID: "base",
		Versions:  []string{"1", "2"},
	}
}

func TestValidateStruct_QueryRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *models.QueryRequest)
		wantField string
		wantTag   string
	}{
		{"valid", func(r *models.QueryRequest) {}, "", ""},
		{"valid custom", func(r *models.QueryRequest) {
			r.Type = models.QueryCustom
			r.CustomQuestion = "what is trending?"
		}, "", ""},
		{"missing type", func(r *models.QueryRequest) { r.Type = "" }, "type", "required"},
		{"unknown type", func(r *models.QueryRequest) { r.Type = "vibes" }, "type", "oneof"},
		{"missing dataset", func(r *models.QueryRequest) { r.DatasetID = "" }, "datasetId", "required"},
		{"bad dataset", func(r *models.QueryRequest) { r.DatasetID = "../etc" }, "datasetId", "dataset_id"},
		{"no versions", func(r *models.QueryRequest) { r.Versions = nil }, "versions", "required"},
		{"too many versions", func(r *models.QueryRequest) { r.Versions = []string{"1", "2", "3", "4"} }, "versions", "max"},
		{"duplicate versions", func(r *models.QueryRequest) { r.Versions = []string{"1", "1"} }, "versions", "unique"},
		{"bad version label", func(r *models.QueryRequest) { r.Versions = []string{"1 OR 1"} }, "versions[0]", "version_label"},
		{"question too long", func(r *models.QueryRequest) { r.CustomQuestion = strings.Repeat("x", 2001) }, "customQuestion", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := ValidateStruct(&req)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			first := err.Errors()[0]
			if first.Field() != tt.wantField || first.Tag() != tt.wantTag {
				t.Errorf("first error = %s/%s (%q), want %s/%s", first.Field(), first.Tag(), first.Error(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	req := validRequest()
	req.Type = ""
	single := ValidateStruct(&req).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Message != "type is required" {
		t.Errorf("single = %+v", single)
	}
	if single.Details["field"] != "type" {
		t.Errorf("details = %v", single.Details)
	}

	req.DatasetID = ""
	multi := ValidateStruct(&req).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("details = %v, want two fields", multi.Details)
	}
	if !strings.Contains(multi.Message, "; ") {
		t.Errorf("message = %q, want joined messages", multi.Message)
	}
}

func TestTranslateMinMax_Units(t *testing.T) {
	req := validRequest()
	req.Versions = []string{"1", "2", "3", "4"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error")
	}
	if msg := err.Errors()[0].Error(); msg != "versions must have at most 3 items" {
		t.Errorf("message = %q", msg)
	}
}
