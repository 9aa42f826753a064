// Package advisor produces a single textual recommendation for an
// operational issue, either by delegating to an external advisory service
// or by applying local heuristic rules.
package advisor

import (
	"context"
	"errors"

	"railops/internal/history"
	"railops/internal/snapshot"
)

// #region contract

// Advisor is the shared contract of the two suggestion strategies. Which
// implementation serves a request is decided at construction time by
// availability, never by runtime type inspection.
type Advisor interface {
	Suggest(ctx context.Context, snap snapshot.Snapshot, past []history.Match, issue string) (string, error)
}

// ErrUnavailable reports that the external advisory service is unreachable
// or not configured. Callers recover by switching to the rule-based
// strategy; it is never surfaced as a request failure.
var ErrUnavailable = errors.New("advisory service unavailable")

// UnavailableNotice is prepended to fallback suggestions so the operator
// can see the external service did not answer.
const UnavailableNotice = "Advisory service unavailable; applying rule-based guidance."

// #endregion contract
