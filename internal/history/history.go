// Package history retrieves past decisions whose recorded action matches a
// set of keywords.
package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"railops/internal/store"
)

// #region types

// Match is a past decision joined with its zone name.
type Match struct {
	store.Decision
	ZoneName string
}

// Matcher searches the decision log. It issues its own SQL against the
// store's database handle.
type Matcher struct {
	db  *sql.DB
	log *zap.Logger
}

// NewMatcher creates a Matcher over the given store.
func NewMatcher(st *store.Store, log *zap.Logger) *Matcher {
	return &Matcher{db: st.DB(), log: log}
}

// #endregion types

// #region keyword-search

// SearchByKeywords returns past decisions whose action text contains any of
// the keywords as a substring, newest first, capped at limit. An empty
// keyword set matches nothing. There is no relevance scoring beyond
// "matched at all"; ties break purely by recency.
//
// Matching uses SQL LIKE, which in SQLite is case-insensitive for ASCII.
// That is the intended behavior: keywords are lowercased by extraction
// while recorded actions keep their original casing.
func (m *Matcher) SearchByKeywords(keywords []string, limit int) ([]Match, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conditions := make([]string, len(keywords))
	params := make([]interface{}, 0, len(keywords)+1)
	for i, kw := range keywords {
		conditions[i] = "d.action LIKE ?"
		params = append(params, "%"+kw+"%")
	}
	params = append(params, limit)

	query := fmt.Sprintf(
		`SELECT d.decision_id, d.issue_id, d.zone_id, d.action, d.timestamp, d.outcome, z.name
		 FROM decisions d
		 JOIN zones z ON d.zone_id = z.zone_id
		 WHERE %s
		 ORDER BY d.timestamp DESC
		 LIMIT ?`, strings.Join(conditions, " OR "))

	matches, err := m.queryMatches(query, params...)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	m.log.Debug("keyword search complete",
		zap.Strings("keywords", keywords),
		zap.Int("matches", len(matches)))
	return matches, nil
}

// #endregion keyword-search

// #region most-similar

// MostSimilar returns past decisions whose action text contains the issue
// category, with same-zone decisions sorted ahead of the rest and recency
// breaking ties within each tier. A zoneID of 0 disables the zone tier.
func (m *Matcher) MostSimilar(category string, zoneID int64, limit int) ([]Match, error) {
	var (
		matches []Match
		err     error
	)
	if zoneID != 0 {
		matches, err = m.queryMatches(
			`SELECT d.decision_id, d.issue_id, d.zone_id, d.action, d.timestamp, d.outcome, z.name
			 FROM decisions d
			 JOIN zones z ON d.zone_id = z.zone_id
			 WHERE d.action LIKE ?
			 ORDER BY CASE WHEN d.zone_id = ? THEN 0 ELSE 1 END, d.timestamp DESC
			 LIMIT ?`,
			"%"+category+"%", zoneID, limit)
	} else {
		matches, err = m.queryMatches(
			`SELECT d.decision_id, d.issue_id, d.zone_id, d.action, d.timestamp, d.outcome, z.name
			 FROM decisions d
			 JOIN zones z ON d.zone_id = z.zone_id
			 WHERE d.action LIKE ?
			 ORDER BY d.timestamp DESC
			 LIMIT ?`,
			"%"+category+"%", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("similar search: %w", err)
	}
	return matches, nil
}

// #endregion most-similar

// #region scan

func (m *Matcher) queryMatches(query string, params ...interface{}) ([]Match, error) {
	rows, err := m.db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var match Match
		var issueID sql.NullInt64
		var ts string
		if err := rows.Scan(&match.ID, &issueID, &match.ZoneID, &match.Action, &ts, &match.Outcome, &match.ZoneName); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		match.IssueID = issueID.Int64
		match.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// #endregion scan
