// Package engine sequences context aggregation, historical retrieval and
// suggestion generation into a decision package, and persists the operator's
// chosen action.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"railops/internal/advisor"
	"railops/internal/history"
	"railops/internal/keywords"
	"railops/internal/snapshot"
	"railops/internal/store"
)

// #region errors

// ErrValidation reports a request missing required input. It is surfaced to
// the caller before any store access.
var ErrValidation = errors.New("invalid request")

// #endregion errors

// #region types

// Source identifies which strategy produced the suggestion in a package.
type Source string

const (
	// SourceAdvisory means the external advisory service answered.
	SourceAdvisory Source = "advisory"
	// SourceRules means the rule-based strategy was selected at
	// construction time because no advisory service is configured.
	SourceRules Source = "rules"
	// SourceFallback means the advisory service failed at request time
	// and the rule-based strategy answered instead.
	SourceFallback Source = "rules (advisory unavailable)"
)

// Package is the bundle returned per decision request: snapshot, historical
// matches, suggestion and metadata. Degraded data (missing zone, empty
// history, advisory fallback) is represented inside a successful package,
// never as an error.
type Package struct {
	ID         string
	ZoneID     int64
	Issue      string
	Keywords   []string
	Snapshot   snapshot.Snapshot
	History    []history.Match
	Suggestion string
	Source     Source
	CreatedAt  time.Time
}

// Config bounds the engine's retrieval stages.
type Config struct {
	Snapshot     snapshot.Config
	HistoryLimit int
}

// DefaultConfig returns the standard engine bounds.
func DefaultConfig() Config {
	return Config{
		Snapshot:     snapshot.DefaultConfig(),
		HistoryLimit: 5,
	}
}

// #endregion types

// #region engine-struct

// Engine is the top-level coordinator for decision requests.
type Engine struct {
	store   *store.Store
	agg     *snapshot.Aggregator
	matcher *history.Matcher
	primary advisor.Advisor // nil when no advisory service is configured
	rules   advisor.Advisor
	config  Config
	log     *zap.Logger
}

// NewEngine creates a fully wired engine. Pass a nil primary advisor to run
// on the rule-based strategy alone.
func NewEngine(st *store.Store, primary advisor.Advisor, config Config, log *zap.Logger) *Engine {
	return &Engine{
		store:   st,
		agg:     snapshot.NewAggregator(st, config.Snapshot, log),
		matcher: history.NewMatcher(st, log),
		primary: primary,
		rules:   advisor.NewRules(),
		config:  config,
		log:     log,
	}
}

// #endregion engine-struct

// #region analyze

// Analyze runs the decision stages strictly in sequence: validate, gather
// context, retrieve history, generate suggestion, package. Each request is
// self-contained; no state is held between requests.
func (e *Engine) Analyze(ctx context.Context, zoneID int64, issue string) (Package, error) {
	if zoneID <= 0 {
		return Package{}, fmt.Errorf("%w: zone id required", ErrValidation)
	}
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return Package{}, fmt.Errorf("%w: issue description required", ErrValidation)
	}

	e.log.Info("decision request",
		zap.Int64("zone_id", zoneID),
		zap.String("issue", issue))

	snap, err := e.agg.Take(zoneID)
	if err != nil {
		return Package{}, fmt.Errorf("gather context: %w", err)
	}

	kws := keywords.Extract(issue)
	past, err := e.matcher.SearchByKeywords(kws, e.config.HistoryLimit)
	if err != nil {
		return Package{}, fmt.Errorf("retrieve history: %w", err)
	}

	suggestion, source := e.suggest(ctx, snap, past, issue)

	pkg := Package{
		ID:         uuid.New().String(),
		ZoneID:     zoneID,
		Issue:      issue,
		Keywords:   kws,
		Snapshot:   snap,
		History:    past,
		Suggestion: suggestion,
		Source:     source,
		CreatedAt:  time.Now().UTC(),
	}

	e.log.Info("decision package ready",
		zap.String("package_id", pkg.ID),
		zap.Int("keywords", len(kws)),
		zap.Int("history_matches", len(past)),
		zap.String("suggestion_source", string(source)))

	return pkg, nil
}

// suggest selects the strategy: the primary advisor when configured, the
// rule-based one otherwise. A primary failure is absorbed into a fallback
// suggestion, never propagated.
func (e *Engine) suggest(ctx context.Context, snap snapshot.Snapshot, past []history.Match, issue string) (string, Source) {
	if e.primary == nil {
		text, _ := e.rules.Suggest(ctx, snap, past, issue)
		return text, SourceRules
	}

	text, err := e.primary.Suggest(ctx, snap, past, issue)
	if err == nil {
		return text, SourceAdvisory
	}

	e.log.Warn("advisory strategy failed, using rule-based fallback", zap.Error(err))
	fallback, _ := e.rules.Suggest(ctx, snap, past, issue)
	return advisor.UnavailableNotice + "\n\n" + fallback, SourceFallback
}

// #endregion analyze

// #region commit

// Commit persists the operator's chosen action as a new decision record
// referencing the package's zone and timestamp, and returns the record id.
// Commit is intentionally not idempotent: every call creates a new row, so
// callers invoke it at most once per operator confirmation. A wrong commit
// is corrected with a new record, never by editing the old one.
func (e *Engine) Commit(pkg Package, action string, outcome store.Outcome) (int64, error) {
	if pkg.ZoneID <= 0 {
		return 0, fmt.Errorf("%w: zone id required", ErrValidation)
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return 0, fmt.Errorf("%w: chosen action required", ErrValidation)
	}
	if outcome == "" {
		outcome = store.OutcomeResolved
	}
	switch outcome {
	case store.OutcomeResolved, store.OutcomePartiallyResolved, store.OutcomeEscalated:
	default:
		return 0, fmt.Errorf("%w: unknown outcome %q", ErrValidation, outcome)
	}

	ts := pkg.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id, err := e.store.InsertDecision(store.Decision{
		ZoneID:    pkg.ZoneID,
		Action:    action,
		Timestamp: ts,
		Outcome:   outcome,
	})
	if err != nil {
		return 0, fmt.Errorf("commit decision: %w", err)
	}

	e.log.Info("decision committed",
		zap.Int64("decision_id", id),
		zap.Int64("zone_id", pkg.ZoneID),
		zap.String("outcome", string(outcome)))

	return id, nil
}

// #endregion commit
