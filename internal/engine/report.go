package engine

import (
	"fmt"
	"strings"
	"time"
)

// #region report

const reportRule = "============================================================"

// Render formats a decision package as the operator-facing analysis report.
func Render(pkg Package) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("DECISION ANALYSIS REPORT\n")
	b.WriteString(reportRule + "\n\n")

	fmt.Fprintf(&b, "ISSUE: %s\n", pkg.Issue)
	fmt.Fprintf(&b, "ZONE: %d\n", pkg.ZoneID)
	fmt.Fprintf(&b, "TIMESTAMP: %s\n", pkg.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "KEYWORDS: %s\n", strings.Join(pkg.Keywords, ", "))

	if z := pkg.Snapshot.Zone; z != nil {
		b.WriteString("\nZONE STATUS:\n")
		fmt.Fprintf(&b, "  Name: %s\n", z.Name)
		fmt.Fprintf(&b, "  Track: %s\n", z.TrackType)
		fmt.Fprintf(&b, "  Congestion: %s\n", z.Congestion)
		fmt.Fprintf(&b, "  Block: %s\n", z.Block)
		fmt.Fprintf(&b, "  Power: %s\n", z.Power)
		fmt.Fprintf(&b, "  Signals: %s\n", z.Signal)
		fmt.Fprintf(&b, "  Weather: %s\n", z.Weather)
	} else {
		b.WriteString("\nZONE STATUS: no matching zone record\n")
	}

	if len(pkg.Snapshot.Vehicles) > 0 {
		fmt.Fprintf(&b, "\nVEHICLES SURFACED: %d\n", len(pkg.Snapshot.Vehicles))
		for i, v := range pkg.Snapshot.Vehicles {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "  %s (%s), %s", v.Number, v.Category, v.Status)
			if v.DelayMinutes > 0 {
				fmt.Fprintf(&b, " (+%dmin)", v.DelayMinutes)
			}
			b.WriteString("\n")
		}
	}

	if len(pkg.History) > 0 {
		fmt.Fprintf(&b, "\nSIMILAR PAST DECISIONS: %d\n", len(pkg.History))
		for i, match := range pkg.History {
			if i >= 3 {
				break
			}
			action := match.Action
			if len(action) > 80 {
				action = action[:80] + "..."
			}
			fmt.Fprintf(&b, "  %d. %s\n", i+1, action)
			fmt.Fprintf(&b, "     Outcome: %s\n", match.Outcome)
		}
	}

	fmt.Fprintf(&b, "\nSUGGESTION (%s):\n%s\n", pkg.Source, pkg.Suggestion)
	b.WriteString(reportRule + "\n")

	return b.String()
}

// #endregion report
