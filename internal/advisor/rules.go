package advisor

import (
	"context"
	"fmt"
	"strings"

	"railops/internal/history"
	"railops/internal/snapshot"
	"railops/internal/store"
)

// #region rule-table

// rule is one condition in the fallback heuristic. Rules are evaluated in
// table order and every firing rule contributes its recommendations; firing
// order is part of the observable output.
type rule struct {
	name  string
	apply func(snap snapshot.Snapshot, issue string) []string
}

var ruleTable = []rule{
	{
		name: "signal",
		apply: func(snap snapshot.Snapshot, issue string) []string {
			if snap.Zone == nil || !strings.Contains(issue, "signal") || snap.Zone.Signal == store.SignalNormal {
				return nil
			}
			return []string{
				"Implement manual working procedures for signal failure",
				"Coordinate with signal maintainer for immediate repair",
			}
		},
	},
	{
		name: "power",
		apply: func(snap snapshot.Snapshot, issue string) []string {
			if snap.Zone == nil || !strings.Contains(issue, "power") || snap.Zone.Power == store.PowerNormal {
				return nil
			}
			return []string{
				"Coordinate with traction power controller",
				"Arrange diesel locomotives if electric traction unavailable",
			}
		},
	},
	{
		name: "congestion",
		apply: func(snap snapshot.Snapshot, issue string) []string {
			if snap.Zone == nil || snap.Zone.Congestion != store.CongestionHigh {
				return nil
			}
			return []string{
				"Give precedence to high-priority vehicles (Superfast/Express)",
				"Hold freight vehicles at stations to clear the mainline",
			}
		},
	},
	{
		name: "delayed",
		apply: func(snap snapshot.Snapshot, issue string) []string {
			delayed := 0
			for _, v := range snap.Vehicles {
				if v.Status == store.StatusDelayed {
					delayed++
				}
			}
			if delayed == 0 {
				return nil
			}
			return []string{
				fmt.Sprintf("Address %d delayed vehicles, prioritized by class", delayed),
			}
		},
	},
	{
		name: "weather",
		apply: func(snap snapshot.Snapshot, issue string) []string {
			if !strings.Contains(issue, "weather") {
				return nil
			}
			return []string{
				"Implement speed restrictions where necessary",
				"Increase vigilance for track safety",
			}
		},
	},
}

// genericAdvice is used when no rule fires.
var genericAdvice = []string{
	"Assess the situation and coordinate with adjacent zones",
	"Monitor vehicle movements and update as the situation develops",
}

// #endregion rule-table

// #region rules-advisor

// Rules is the local heuristic strategy. It is deterministic: identical
// snapshot and issue text always produce identical output.
type Rules struct{}

// NewRules creates the rule-based advisor.
func NewRules() *Rules {
	return &Rules{}
}

// Suggest evaluates the rule table against the snapshot and issue text and
// concatenates every firing rule's recommendations into one bulleted
// suggestion. Never fails.
func (r *Rules) Suggest(_ context.Context, snap snapshot.Snapshot, _ []history.Match, issue string) (string, error) {
	issueLower := strings.ToLower(issue)

	var recs []string
	for _, ru := range ruleTable {
		recs = append(recs, ru.apply(snap, issueLower)...)
	}
	if len(recs) == 0 {
		recs = genericAdvice
	}

	var b strings.Builder
	b.WriteString("RULE-BASED SUGGESTIONS:\n")
	for _, rec := range recs {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// #endregion rules-advisor
