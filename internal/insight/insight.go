// Package insight cross-references completed assessments and turns the
// combinations that match a rule into attributed guidance.
package insight

// Severity decides which tier of an action plan an insight lands in.
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
)

// Valid reports whether s is one of the two known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityModerate:
		return true
	default:
		return false
	}
}

// Insight is a derived, attributed piece of guidance. The ID is fixed per
// rule so the same rule always yields the same ID.
type Insight struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Expert    string   `json:"expert"`
	Severity  Severity `json:"severity"`
	Insight   string   `json:"insight"`
	Action    string   `json:"action"`
	Framework string   `json:"framework"`
}
