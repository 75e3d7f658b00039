package insight

import "fmt"

// maxWeekly caps the moderate items carried into the weekly tier.
const maxWeekly = 3

// PlanItem is the part of an insight a plan tier shows.
type PlanItem struct {
	Title  string `json:"title"`
	Action string `json:"action"`
	Expert string `json:"expert"`
}

// ActionPlan prioritizes a set of insights into tiers.
type ActionPlan struct {
	Immediate     []PlanItem `json:"immediate"`
	Weekly        []PlanItem `json:"weekly"`
	TotalInsights int        `json:"totalInsights"`
	HighPriority  int        `json:"highPriority"`
	Summary       string     `json:"summary"`
}

// BuildActionPlan puts every high insight in the immediate tier and the
// first three moderate ones, by position, in the weekly tier. Insights with
// any other severity count toward the total only.
func BuildActionPlan(insights []Insight) ActionPlan {
	plan := ActionPlan{
		Immediate:     []PlanItem{},
		Weekly:        []PlanItem{},
		TotalInsights: len(insights),
	}

	moderate := 0
	for _, in := range insights {
		switch in.Severity {
		case SeverityHigh:
			plan.Immediate = append(plan.Immediate, itemOf(in))
		case SeverityModerate:
			moderate++
			if len(plan.Weekly) < maxWeekly {
				plan.Weekly = append(plan.Weekly, itemOf(in))
			}
		}
	}
	plan.HighPriority = len(plan.Immediate)
	plan.Summary = summarize(plan.HighPriority, moderate)
	return plan
}

func itemOf(in Insight) PlanItem {
	return PlanItem{Title: in.Title, Action: in.Action, Expert: in.Expert}
}

func summarize(high, moderate int) string {
	switch {
	case high > 0:
		return fmt.Sprintf("We found %d high-priority pattern%s that may be significantly impacting your relationship. Start here.", high, plural(high))
	case moderate > 0:
		return fmt.Sprintf("Your assessments reveal %d growth area%s that can deepen your relationship. Here's your roadmap.", moderate, plural(moderate))
	default:
		return "Your assessment profile is strong. Keep doing what you're doing and watch for the growth edges below."
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
