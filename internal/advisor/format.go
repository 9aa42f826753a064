package advisor

import (
	"fmt"
	"sort"
	"strings"

	"railops/internal/history"
	"railops/internal/snapshot"
	"railops/internal/store"
)

// #region system-prompt

const systemPrompt = `You are an expert railway zone controller support AI. Provide detailed, actionable operating decisions considering the ENTIRE zone.

Priority rules: Superfast (1) > Express (2) > Passenger (3) > Freight (4)
Focus: safety first, then zone-wide efficiency.

CRITICAL: consider the impact on ALL vehicles in the zone, not just the problem vehicle.

Response format:
1. DETAILED ACTIONS (step-by-step with specific vehicles, stations, and timing)
2. ZONE-WIDE COORDINATION (how other vehicles will be managed during the operation)
3. RESOURCE DEPLOYMENT (specific stations, facilities, and personnel)
4. EXPECTED TIMELINE (estimated duration and sequence)`

// #endregion system-prompt

// #region snapshot-format

// FormatSnapshot renders a snapshot as prompt context: zone status line,
// vehicles grouped by priority class, station capacity summary, external
// factors and recent incidents.
func FormatSnapshot(snap snapshot.Snapshot) string {
	var b strings.Builder

	if snap.Zone != nil {
		z := snap.Zone
		fmt.Fprintf(&b, "Zone: %s (%s)\n", z.Name, z.TrackType)
		fmt.Fprintf(&b, "Infrastructure: Block=%s, Power=%s, Signals=%s\n", z.Block, z.Power, z.Signal)
		fmt.Fprintf(&b, "Conditions: Weather=%s, Congestion=%s\n", z.Weather, z.Congestion)
	} else {
		b.WriteString("Zone: unknown (no matching record)\n")
	}

	if len(snap.Vehicles) > 0 {
		b.WriteString("\nVEHICLES:\n")
		byPriority := make(map[int][]store.Vehicle)
		for _, v := range snap.Vehicles {
			byPriority[v.Priority] = append(byPriority[v.Priority], v)
		}
		priorities := make([]int, 0, len(byPriority))
		for p := range byPriority {
			priorities = append(priorities, p)
		}
		sort.Ints(priorities)

		for _, p := range priorities {
			group := byPriority[p]
			fmt.Fprintf(&b, "\n%s (priority %d):\n", strings.ToUpper(string(group[0].Category)), p)
			for _, v := range group {
				fmt.Fprintf(&b, "  - %s: %s", v.Number, v.Status)
				if v.DelayMinutes > 0 {
					fmt.Fprintf(&b, " (+%dmin)", v.DelayMinutes)
				}
				var details []string
				if v.CrewStatus != "" && v.CrewStatus != "Fresh Crew" {
					details = append(details, "Crew: "+v.CrewStatus)
				}
				if v.LocoHealth == "Poor" || v.LocoHealth == "Fair" {
					details = append(details, "Loco: "+v.LocoHealth)
				}
				if len(details) > 0 {
					fmt.Fprintf(&b, " [%s]", strings.Join(details, ", "))
				}
				b.WriteString("\n")
			}
		}
	}

	if len(snap.Stations) > 0 {
		b.WriteString("\nSTATION RESOURCES:\n")
		for _, st := range snap.Stations {
			fmt.Fprintf(&b, "  - Station %d: %d/%d occupied (%s)",
				st.ID, st.Occupancy, st.YardCapacity, capacityStatus(st))
			if st.SpecialFacility != "" {
				fmt.Fprintf(&b, ", %s", st.SpecialFacility)
			}
			b.WriteString("\n")
		}
	}

	if len(snap.Factors) > 0 {
		b.WriteString("\nEXTERNAL FACTORS:\n")
		for _, f := range snap.Factors {
			fmt.Fprintf(&b, "  - %s (%s severity): %s\n", f.Type, f.Severity, f.Remarks)
		}
	}

	if len(snap.RecentIncidents) > 0 {
		b.WriteString("\nRECENT INCIDENTS:\n")
		for _, in := range snap.RecentIncidents {
			fmt.Fprintf(&b, "  - %s", in.Type)
			if in.VehicleID != 0 {
				fmt.Fprintf(&b, " (vehicle %d)", in.VehicleID)
			}
			resolution := in.Resolution
			if resolution == "" {
				resolution = "under investigation"
			}
			fmt.Fprintf(&b, ": %s\n", resolution)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// capacityStatus tags yard occupancy the way an operator would read it.
func capacityStatus(st store.Station) string {
	if st.YardCapacity <= 0 {
		return "UNKNOWN"
	}
	pct := 100 * st.Occupancy / st.YardCapacity
	switch {
	case pct >= 100:
		return "FULL"
	case pct >= 75:
		return "HIGH"
	default:
		return "AVAILABLE"
	}
}

// #endregion snapshot-format

// #region history-format

// historyLimit caps how many past actions go into the prompt.
const historyLimit = 3

// maxActionLen truncates past action text in the prompt.
const maxActionLen = 80

// FormatHistory renders up to the 3 most relevant past actions with
// truncated text and their outcome.
func FormatHistory(past []history.Match) string {
	if len(past) == 0 {
		return "No similar cases found."
	}
	var b strings.Builder
	for i, match := range past {
		if i >= historyLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s -> %s\n", i+1, truncate(match.Action, maxActionLen), match.Outcome)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// #endregion history-format

// #region prompt

// buildPrompt assembles the user-turn prompt sent to the advisory service.
func buildPrompt(snap snapshot.Snapshot, past []history.Match, issue string) string {
	return fmt.Sprintf(`INCIDENT: %s

COMPLETE ZONE STATUS:
%s

HISTORICAL CONTEXT:
%s

INSTRUCTIONS:
Analyze the entire zone situation. Consider all vehicles currently in the
zone, approaching vehicles that may need to be halted, station capacities,
and the ripple effects of your actions. Provide a comprehensive zone
controller decision with a detailed coordination plan.`,
		issue, FormatSnapshot(snap), FormatHistory(past))
}

// #endregion prompt
