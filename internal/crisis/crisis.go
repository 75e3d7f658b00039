// Package crisis classifies a couple's situation into a severity level and
// the intervention pathway that should follow.
package crisis

import (
	"fmt"

	"github.com/loverescue/coachcore/internal/assessment"
)

// ErrInvalidArgument is returned when no signals are supplied at all.
var ErrInvalidArgument = assessment.ErrInvalidArgument

// Level is the triage severity.
type Level string

const (
	LevelSafety   Level = "safety"
	LevelAcute    Level = "acute"
	LevelElevated Level = "elevated"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
)

func (l Level) Valid() bool {
	switch l {
	case LevelSafety, LevelAcute, LevelElevated, LevelModerate, LevelLow:
		return true
	default:
		return false
	}
}

// Pathway names the follow-up a triage result points to.
type Pathway string

const (
	PathwaySafetyFirst          Pathway = "safety_first"
	PathwayInfidelityResponse   Pathway = "infidelity_response"
	PathwaySeparationPrevention Pathway = "separation_prevention"
	PathwayPostFightRepair      Pathway = "post_fight_repair"
	PathwayStandardRepair       Pathway = "standard_repair"
	PathwayGeneralSupport       Pathway = "general_support"
)

func (p Pathway) Valid() bool {
	switch p {
	case PathwaySafetyFirst, PathwayInfidelityResponse, PathwaySeparationPrevention,
		PathwayPostFightRepair, PathwayStandardRepair, PathwayGeneralSupport:
		return true
	default:
		return false
	}
}

// Signals are the situational answers. Each field is tri-state: nil means
// the question was not answered.
type Signals struct {
	RecentFight       *bool `json:"recentFight,omitempty"`
	SeparationThreat  *bool `json:"separationThreat,omitempty"`
	Infidelity        *bool `json:"infidelity,omitempty"`
	EmotionalShutdown *bool `json:"emotionalShutdown,omitempty"`
	// PhysicalSafety answers "are you safe?". Only an explicit false
	// escalates; an unanswered question does not.
	PhysicalSafety *bool `json:"physicalSafety,omitempty"`
}

// Resource is an emergency contact. Hotline strings are shown as is.
type Resource struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Assessment is the triage result.
type Assessment struct {
	Level     Level      `json:"level"`
	Message   string     `json:"message"`
	Pathway   Pathway    `json:"pathway"`
	Resources []Resource `json:"resources,omitempty"`
}

const (
	msgSafety     = `Your safety is the most important thing right now. If you are in danger, please contact the National Domestic Violence Hotline: 1-800-799-7233 or text START to 88788.`
	msgInfidelity = `Discovering infidelity is one of the most painful experiences in a relationship. What you're feeling right now — shock, rage, grief, disbelief — is completely normal. You don't have to decide anything right now.`
	msgSeparation = `When separation feels like the only option, everything hurts. Before making any permanent decisions, let's create some space for your nervous system to calm down. Major decisions made during flooding are almost always regretted.`
	msgPostFight  = `After a big fight where someone has shut down, the most important thing is NOT to resolve the argument right now. It's to re-establish safety. Gottman's research: when heart rate exceeds 100 BPM, you literally cannot hear each other.`
	msgRepair     = `Arguments happen in every relationship. What matters isn't that you fought — it's what you do next. Let's walk through a repair process.`
	msgSupport    = `It sounds like things are difficult right now. Let's work through this together.`
)

var safetyResources = []Resource{
	{Name: "National Domestic Violence Hotline", Phone: "1-800-799-7233", Text: "START to 88788"},
	{Name: "Crisis Text Line", Text: "HOME to 741741"},
	{Name: "988 Suicide & Crisis Lifeline", Phone: "988"},
}

// Assess walks the decision list top to bottom and returns the first match.
// Every non-nil input yields an assessment.
func Assess(s *Signals) (Assessment, error) {
	if s == nil {
		return Assessment{}, fmt.Errorf("%w: crisis signals are required", ErrInvalidArgument)
	}

	switch {
	case isFalse(s.PhysicalSafety):
		return Assessment{
			Level:     LevelSafety,
			Message:   msgSafety,
			Pathway:   PathwaySafetyFirst,
			Resources: append([]Resource(nil), safetyResources...),
		}, nil
	case isTrue(s.Infidelity):
		return Assessment{Level: LevelAcute, Message: msgInfidelity, Pathway: PathwayInfidelityResponse}, nil
	case isTrue(s.SeparationThreat):
		return Assessment{Level: LevelAcute, Message: msgSeparation, Pathway: PathwaySeparationPrevention}, nil
	case isTrue(s.RecentFight) && isTrue(s.EmotionalShutdown):
		return Assessment{Level: LevelElevated, Message: msgPostFight, Pathway: PathwayPostFightRepair}, nil
	case isTrue(s.RecentFight):
		return Assessment{Level: LevelModerate, Message: msgRepair, Pathway: PathwayStandardRepair}, nil
	default:
		return Assessment{Level: LevelLow, Message: msgSupport, Pathway: PathwayGeneralSupport}, nil
	}
}

// Bool is a convenience for building tri-state signals.
func Bool(v bool) *bool {
	return &v
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }
