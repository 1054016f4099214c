// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/topiclens/internal/config"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/metrics"
	"github.com/tomtom215/topiclens/internal/models"
)

// SummaryHeader opens the enhanced insight list.
const SummaryHeader = "AI Analysis:"

var (
	// ErrDisabled is returned by New when enhancement is turned off.
	ErrDisabled = errors.New("enhancement disabled")

	ErrCircuitOpen       = errors.New("enhancement circuit breaker open")
	ErrUnsuccessful      = errors.New("enhancement service returned an error")
	ErrMalformedResponse = errors.New("malformed enhancement response")
	ErrEmptyResponse     = errors.New("empty enhancement response")
	ErrNoQuestion        = errors.New("no question to enhance")
)

// Summarizer produces a free-text answer from aggregate statistics.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, req Request) (string, error)
}

// Adapter merges summaries into version results.
type Adapter struct {
	provider        Summarizer
	cb              *gobreaker.CircuitBreaker[string]
	breakerName     string
	timeout         time.Duration
	maxQuestion     int
	maxResponse     int
	maxTopics       int
	maxContributors int
}

// New builds the configured provider. It returns ErrDisabled when
// enhancement is off.
func New(ctx context.Context, cfg *config.EnhanceConfig) (*Adapter, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	var provider Summarizer
	switch cfg.Provider {
	case "gemini":
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		provider = p
	case "http", "":
		provider = NewHTTPProvider(cfg.URL, cfg.APIKey, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown enhancement provider %q", cfg.Provider)
	}
	return NewAdapter(provider, cfg), nil
}

// NewAdapter wraps provider. The breaker opens after five consecutive
// failures and probes again after 30 seconds.
func NewAdapter(provider Summarizer, cfg *config.EnhanceConfig) *Adapter {
	name := "enhance-" + provider.Name()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A caller giving up is not a provider failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Adapter{
		provider:        provider,
		cb:              cb,
		breakerName:     name,
		timeout:         timeout,
		maxQuestion:     cfg.MaxQuestionChars,
		maxResponse:     cfg.MaxResponseChars,
		maxTopics:       cfg.MaxTopics,
		maxContributors: cfg.MaxContributors,
	}
}

// Applies reports whether req is eligible for enhancement.
func Applies(req models.QueryRequest) bool {
	return req.Type == models.QueryCustom && req.Question() != ""
}

// Enhance returns result with the summary merged in, or result unchanged
// when the adapter is nil, req is not eligible, or the provider fails.
func (a *Adapter) Enhance(ctx context.Context, result models.VersionedResult, req models.QueryRequest) models.VersionedResult {
	if a == nil || !Applies(req) {
		return result
	}

	enhanced, err := a.TryEnhance(ctx, result, req.Question())
	metrics.RecordEnhancement(a.provider.Name(), err == nil)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("provider", a.provider.Name()).
			Str("version", result.Version).
			Msg("Enhancement failed, keeping local insights")
		return result
	}
	return enhanced
}

// TryEnhance is Enhance without the fallback.
func (a *Adapter) TryEnhance(ctx context.Context, result models.VersionedResult, question string) (models.VersionedResult, error) {
	question = truncate(strings.TrimSpace(question), a.maxQuestion)
	if question == "" {
		return result, ErrNoQuestion
	}

	req := Request{
		Question: question,
		Context:  BuildContext(&result, a.maxTopics, a.maxContributors),
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.cb.Execute(func() (string, error) {
		text, err := a.provider.Summarize(callCtx, req)
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(a.breakerName, "rejected").Inc()
			return result, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(a.breakerName, "failure").Inc()
		return result, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(a.breakerName, "success").Inc()

	return Merge(result, truncate(text, a.maxResponse)), nil
}

// Merge prepends SummaryHeader and the non-empty summary lines to the
// original insights.
func Merge(result models.VersionedResult, summary string) models.VersionedResult {
	lines := SummaryLines(summary)
	insights := make([]string, 0, 1+len(lines)+len(result.Insights))
	insights = append(insights, SummaryHeader)
	insights = append(insights, lines...)
	insights = append(insights, result.Insights...)

	result.Insights = insights
	result.AISummary = summary
	return result
}

// SummaryLines splits a summary into trimmed non-empty lines.
func SummaryLines(summary string) []string {
	var lines []string
	for _, line := range strings.Split(summary, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
