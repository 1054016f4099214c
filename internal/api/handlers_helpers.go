// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/topiclens/internal/datasets"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/pipeline"
	"github.com/tomtom215/topiclens/internal/query"
	"github.com/tomtom215/topiclens/internal/validation"
)

// maxRequestBodySize bounds JSON request bodies. Trees posted to
// /analyze/tree are the largest.
const maxRequestBodySize = 16 << 20

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// decodeJSONBody decodes the request body into v, writing a 400 response
// and returning false on failure.
func decodeJSONBody(rw *ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		rw.BadRequest("Request body is required")
		return false
	}

	body, err := io.ReadAll(http.MaxBytesReader(rw.w, r.Body, maxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large")
			return false
		}
		rw.BadRequest("Failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		logging.Ctx(r.Context()).Debug().Str("error", sanitizeLogValue(err.Error())).Msg("Invalid JSON body")
		rw.BadRequest("Invalid JSON body")
		return false
	}
	return true
}

// upstreamDetails is the error detail of a failed query service call.
type upstreamDetails struct {
	Endpoint string                 `json:"endpoint,omitempty"`
	Params   map[string]interface{} `json:"params,omitempty"`
	Status   int                    `json:"status,omitempty"`
}

// respondServiceError maps errors from the pipeline, query client and
// registry to envelope responses.
func respondServiceError(rw *ResponseWriter, r *http.Request, err error) {
	var (
		verr  *validation.RequestValidationError
		upErr *query.UpstreamError
	)

	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
	case errors.Is(err, pipeline.ErrTooManyVersions):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, datasets.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, pipeline.ErrStaleResult):
		rw.Conflict(err.Error())
	case errors.Is(err, query.ErrCircuitOpen):
		rw.ServiceUnavailable("Query service temporarily unavailable")
	case errors.As(err, &upErr):
		rw.UpstreamError(upErr.Error(), upstreamDetails{
			Endpoint: upErr.Endpoint,
			Params:   upErr.Params,
			Status:   upErr.Status,
		})
	case errors.Is(err, context.DeadlineExceeded):
		rw.Error(http.StatusGatewayTimeout, ErrCodeGatewayTimeout, "Query timed out")
	case errors.Is(err, context.Canceled):
		rw.ServiceUnavailable("Request canceled")
	default:
		logging.Ctx(r.Context()).Error().Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
		rw.InternalError("Internal server error")
	}
}
