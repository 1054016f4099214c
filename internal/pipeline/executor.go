// Topiclens - Conversation Topic Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/topiclens

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/topiclens/internal/analysis"
	"github.com/tomtom215/topiclens/internal/cache"
	"github.com/tomtom215/topiclens/internal/delta"
	"github.com/tomtom215/topiclens/internal/logging"
	"github.com/tomtom215/topiclens/internal/metrics"
	"github.com/tomtom215/topiclens/internal/models"
	"github.com/tomtom215/topiclens/internal/query"
	"github.com/tomtom215/topiclens/internal/topictree"
	"github.com/tomtom215/topiclens/internal/validation"
)

// LocalVersion and LocalDataset label a caller-supplied tree that names
// neither.
const (
	LocalVersion = "local"
	LocalDataset = "local"
)

var (
	// ErrStaleResult is returned when a newer run of the same session
	// started before this one finished.
	ErrStaleResult = errors.New("analysis superseded by a newer query")

	ErrTooManyVersions = errors.New("too many versions requested")
)

// Publisher receives incremental results. Implemented by *websocket.Hub.
type Publisher interface {
	BroadcastVersionResult(sessionID string, generation uint64, version string, result *models.VersionedResult, verr *models.VersionError)
	BroadcastAnalysisCompleted(report *models.AnalysisReport)
}

// Enhancer optionally rewrites a version result. Implemented by
// *enhance.Adapter.
type Enhancer interface {
	Enhance(ctx context.Context, result models.VersionedResult, req models.QueryRequest) models.VersionedResult
}

// Option configures an Executor.
type Option func(*Executor)

// WithEnhancer enables enhancement of custom questions.
func WithEnhancer(e Enhancer) Option {
	return func(x *Executor) { x.enhancer = e }
}

// WithPublisher streams version results as they complete.
func WithPublisher(p Publisher) Option {
	return func(x *Executor) { x.publisher = p }
}

// WithMaxVersions lowers the per-query version limit below
// models.MaxVersions.
func WithMaxVersions(n int) Option {
	return func(x *Executor) {
		if n > 0 && n < models.MaxVersions {
			x.maxVersions = n
		}
	}
}

// Executor runs analysis queries.
type Executor struct {
	source      query.Service
	sessions    *cache.Cache[*Session]
	enhancer    Enhancer
	publisher   Publisher
	maxVersions int
}

// NewExecutor creates an executor fetching trees from source.
func NewExecutor(source query.Service, sessions *cache.Cache[*Session], opts ...Option) *Executor {
	e := &Executor{
		source:      source,
		sessions:    sessions,
		maxVersions: models.MaxVersions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// slot holds the outcome of one version.
type slot struct {
	tree   *models.RawTree
	result *models.VersionedResult
	err    *models.VersionError
}

// Execute runs req for sessionID, creating the session if needed. An empty
// sessionID starts a new session. Validation failures are returned as
// *validation.RequestValidationError.
func (e *Executor) Execute(ctx context.Context, sessionID string, req models.QueryRequest) (*models.AnalysisReport, error) {
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr
	}
	if len(req.Versions) > e.maxVersions {
		return nil, fmt.Errorf("%w: %d requested, at most %d allowed", ErrTooManyVersions, len(req.Versions), e.maxVersions)
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session, _ := e.sessions.GetOrCreate(sessionID, func() *Session { return newSession(sessionID) })
	gen := session.Begin()

	ctx = logging.ContextWithSessionID(ctx, sessionID)
	start := time.Now()
	versions := models.SortVersions(req.Versions)

	slots := make(map[string]*slot, len(versions))
	for _, v := range versions {
		slots[v] = &slot{}
	}

	// Fetch every version concurrently.
	g, gctx := errgroup.WithContext(ctx)
	for _, v := range versions {
		s := slots[v]
		g.Go(func() error {
			return e.fetchVersion(gctx, session, gen, req, v, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, v := range versions {
		if s := slots[v]; s.tree != nil {
			session.Resolver.ExtractNames(s.tree)
		}
	}

	// Analyze and enhance concurrently.
	g, gctx = errgroup.WithContext(ctx)
	for _, v := range versions {
		s := slots[v]
		if s.tree == nil {
			continue
		}
		g.Go(func() error {
			return e.analyzeVersion(gctx, session, gen, req, v, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !session.IsCurrent(gen) {
		metrics.StaleResultsDiscarded.Inc()
		logging.Ctx(ctx).Info().
			Uint64("generation", gen).
			Uint64("latest", session.Generation()).
			Msg("Discarding superseded analysis")
		return nil, ErrStaleResult
	}

	report := buildReport(sessionID, gen, req, versions, slots, start)
	metrics.RecordAnalysis(string(req.Type), report.Duration)
	if e.publisher != nil {
		e.publisher.BroadcastAnalysisCompleted(report)
	}

	logging.Ctx(ctx).Info().
		Str("dataset", req.DatasetID).
		Str("query_type", string(req.Type)).
		Uint64("generation", gen).
		Int("versions", len(versions)).
		Int("failed", len(report.Errors)).
		Int64("duration_ms", report.DurationMS).
		Msg("Analysis completed")
	return report, nil
}

// fetchVersion fills s.tree or s.err. It only returns an error when ctx
// is done, which aborts the whole run.
func (e *Executor) fetchVersion(ctx context.Context, session *Session, gen uint64, req models.QueryRequest, version string, s *slot) error {
	tree, endpoint, params, err := e.fetch(ctx, req, version)
	if err == nil {
		s.tree = tree
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.err = versionError(version, endpoint, params, err)
	metrics.RecordVersion(0, err)
	logging.Ctx(ctx).Warn().Err(err).
		Str("version", version).
		Str("endpoint", endpoint).
		Msg("Version fetch failed")

	if e.publisher != nil && session.IsCurrent(gen) {
		e.publisher.BroadcastVersionResult(session.ID, gen, version, nil, s.err)
	}
	return nil
}

func (e *Executor) analyzeVersion(ctx context.Context, session *Session, gen uint64, req models.QueryRequest, version string, s *slot) error {
	result := analysis.Analyze(s.tree, req, version, session.Resolver)
	if e.enhancer != nil {
		result = e.enhancer.Enhance(ctx, result, req)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.result = &result
	metrics.RecordVersion(result.MessageCount, nil)

	if e.publisher != nil && session.IsCurrent(gen) {
		e.publisher.BroadcastVersionResult(session.ID, gen, version, s.result, nil)
	}
	return nil
}

// fetch picks the narrowest endpoint for req. Filtering is repeated
// locally, so the broad endpoint is always correct.
func (e *Executor) fetch(ctx context.Context, req models.QueryRequest, version string) (*models.RawTree, string, map[string]interface{}, error) {
	var (
		resp     *query.TreeResponse
		err      error
		endpoint string
		params   = map[string]interface{}{"channelId": req.DatasetID, "version": version}
	)

	filter := req.UserIDFilter
	switch {
	case req.Type == models.QueryUser && len(filter) == 1:
		endpoint = query.EndpointChannelTreeByUser
		params["userId"] = filter[0]
		resp, err = e.source.FetchTreeByUser(ctx, req.DatasetID, version, filter[0])
	case (req.Type == models.QueryUser || req.Type == models.QueryUsers) && len(filter) > 0:
		endpoint = query.EndpointChannelTreeByUsers
		params["userIds"] = []int64(filter)
		resp, err = e.source.FetchTreeByUsers(ctx, req.DatasetID, version, filter)
	default:
		endpoint = query.EndpointChannelTree
		resp, err = e.source.FetchTree(ctx, req.DatasetID, version)
	}
	if err != nil {
		return nil, endpoint, params, err
	}
	return &resp.Tree, endpoint, params, nil
}

func versionError(version, endpoint string, params map[string]interface{}, err error) *models.VersionError {
	verr := &models.VersionError{
		Version:  version,
		Endpoint: endpoint,
		Params:   params,
		Message:  err.Error(),
	}
	var upErr *query.UpstreamError
	if errors.As(err, &upErr) {
		verr.Endpoint = upErr.Endpoint
		verr.Params = upErr.Params
		verr.Status = upErr.Status
		verr.Message = upErr.Message
	}
	return verr
}

func buildReport(sessionID string, gen uint64, req models.QueryRequest, versions []string, slots map[string]*slot, start time.Time) *models.AnalysisReport {
	report := &models.AnalysisReport{
		SessionID:  sessionID,
		Generation: gen,
		Request:    req,
		Versions:   versions,
		Results:    make([]models.VersionedResult, 0, len(versions)),
		Timestamp:  time.Now().UTC(),
	}

	for _, v := range versions {
		s := slots[v]
		switch {
		case s.result != nil:
			report.Results = append(report.Results, *s.result)
		case s.err != nil:
			report.Errors = append(report.Errors, *s.err)
		}
	}

	if d, ok := delta.CompareEndpoints(report.Results); ok {
		report.Delta = &d
		report.DeltaLines = delta.Describe(d)
	}
	if table, ok := delta.Tabulate(report.Results); ok {
		report.Evolution = &table
	}

	report.Duration = time.Since(start)
	report.DurationMS = report.Duration.Milliseconds()
	return report
}

// AnalyzeTree runs the local pipeline on a caller-supplied tree with a
// fresh name resolver. No remote call is made and no enhancement runs.
func (e *Executor) AnalyzeTree(tree *models.RawTree, req models.QueryRequest) (*models.VersionedResult, error) {
	if len(req.Versions) == 0 {
		req.Versions = []string{LocalVersion}
	}
	if req.DatasetID == "" {
		req.DatasetID = LocalDataset
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr
	}

	result := analysis.ProcessTree(tree, req, req.Versions[0], topictree.NewNameResolver())
	return &result, nil
}

// Session returns a live session.
func (e *Executor) Session(id string) (*Session, bool) {
	return e.sessions.Get(id)
}

// ResetSession drops a session. Runs still in flight for it are
// discarded when they finish.
func (e *Executor) ResetSession(id string) bool {
	s, ok := e.sessions.Get(id)
	if !ok {
		return false
	}
	s.Begin()
	return e.sessions.Delete(id)
}

// SessionCount returns the number of live sessions.
func (e *Executor) SessionCount() int {
	return e.sessions.Len()
}
