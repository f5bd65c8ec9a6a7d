package versioning

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/statekit"

	"github.com/relicta-tech/cursor-rules/internal/domain/changes"
	"github.com/relicta-tech/cursor-rules/internal/domain/sourcecontrol"
	rperrors "github.com/relicta-tech/cursor-rules/internal/errors"
)

// SyncOptions configures the best-effort remote refresh.
type SyncOptions struct {
	Enabled bool
	Remote  string
	Branch  string
}

// Report describes one resolution run.
type Report struct {
	// Result is set once the computation step has succeeded.
	Result *Result
	// Baseline is the resolved baseline, empty if resolution failed.
	Baseline Baseline
	// Recommendation is the classification, zero if it failed.
	Recommendation changes.Recommendation
	// Trace lists the visited states in order.
	Trace []State
}

// Resolver runs sync, baseline resolution, classification, computation and
// emission in order.
type Resolver struct {
	syncer   sourcecontrol.RemoteSyncer
	sync     SyncOptions
	source   *VersionSource
	analyzer *CommitBumpAnalyzer
	computer *VersionComputer
	emitter  ResultEmitter
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRemoteSync enables the best-effort fetch before resolution.
func WithRemoteSync(syncer sourcecontrol.RemoteSyncer, opts SyncOptions) ResolverOption {
	return func(r *Resolver) {
		r.syncer = syncer
		r.sync = opts
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = orDiscard(logger)
	}
}

// NewResolver creates a Resolver.
func NewResolver(
	source *VersionSource,
	analyzer *CommitBumpAnalyzer,
	computer *VersionComputer,
	emitter ResultEmitter,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		source:   source,
		analyzer: analyzer,
		computer: computer,
		emitter:  emitter,
		logger:   orDiscard(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one resolution. On failure the report holds the trace up to
// the failed state and nothing has been emitted.
func (r *Resolver) Run(ctx context.Context) (*Report, error) {
	const op = "versioning.Run"

	m, err := newRunMachine()
	if err != nil {
		return nil, rperrors.Wrap(err, rperrors.KindInternal, op, "failed to start resolution")
	}

	report := &Report{}
	fail := func(err error) (*Report, error) {
		m.fail()
		report.Trace = m.Trace()
		r.logger.Debug("resolution failed", "state", m.current(), "kind", rperrors.GetKind(err), "error", err)
		return report, err
	}
	advance := func(event statekit.EventType, next State) error {
		if err := m.send(event, next); err != nil {
			return rperrors.Wrap(err, rperrors.KindInternal, op, "state machine")
		}
		return nil
	}

	r.syncRemote(ctx)
	if err := ctx.Err(); err != nil {
		return fail(rperrors.CanceledWrap(err, op))
	}
	if err := advance(EventSync, StateSyncedOrSkipped); err != nil {
		return fail(err)
	}

	baseline, err := r.source.Resolve(ctx)
	if err != nil {
		return fail(err)
	}
	report.Baseline = baseline
	r.logger.Debug("baseline resolved", "version", baseline.Version, "source", baseline.Source)
	if err := advance(EventResolve, StateBaselineResolved); err != nil {
		return fail(err)
	}

	rec, err := r.analyzer.Analyze(ctx)
	if err != nil {
		return fail(err)
	}
	report.Recommendation = rec
	r.logger.Debug("commits classified", "type", rec.Kind, "preset", presetLabel(rec.Preset))
	if err := advance(EventClassify, StateClassified); err != nil {
		return fail(err)
	}

	next, err := r.computer.Apply(baseline.Version, rec.Kind)
	if err != nil {
		return fail(err)
	}
	result := Result{
		Current: baseline.Version,
		Next:    next,
		Type:    releaseTypeLabel(rec),
		Reason:  rec.Reason,
	}
	report.Result = &result
	if err := advance(EventCompute, StateComputed); err != nil {
		return fail(err)
	}

	// Last point where an interrupt can still prevent any output.
	if err := ctx.Err(); err != nil {
		return fail(rperrors.CanceledWrap(err, op))
	}
	if err := r.emitter.Emit(result); err != nil {
		return fail(err)
	}
	if err := advance(EventEmit, StateEmitted); err != nil {
		return fail(err)
	}

	if err := advance(EventFinish, StateDone); err != nil {
		return fail(err)
	}
	report.Trace = m.Trace()
	return report, nil
}

// syncRemote refreshes tags from the remote. Failures are logged at debug
// level and otherwise ignored.
func (r *Resolver) syncRemote(ctx context.Context) {
	if !r.sync.Enabled || r.syncer == nil {
		r.logger.Debug("remote sync skipped")
		return
	}
	if err := r.syncer.FetchTags(ctx, r.sync.Remote, r.sync.Branch); err != nil {
		r.logger.Debug("remote sync failed, continuing with local data",
			"remote", r.sync.Remote, "branch", r.sync.Branch, "error", err)
	}
}

func releaseTypeLabel(rec changes.Recommendation) string {
	if !rec.RequiresRelease() {
		return changes.ReleaseTypeNone.String()
	}
	return rec.Kind.String()
}
