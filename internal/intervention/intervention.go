// Package intervention holds the step-by-step programs each crisis pathway
// leads to.
package intervention

import (
	"github.com/loverescue/coachcore/internal/crisis"
)

// Step is one numbered instruction of a program. The list fields are only
// set on the steps that carry them.
type Step struct {
	Step        int      `json:"step"`
	Title       string   `json:"title"`
	Instruction string   `json:"instruction,omitempty"`
	Format      string   `json:"format,omitempty"`
	Script      string   `json:"script,omitempty"`
	Expert      string   `json:"expert,omitempty"`
	Important   string   `json:"important,omitempty"`
	Options     []string `json:"options,omitempty"`
	Actions     []string `json:"actions,omitempty"`
	Instead     string   `json:"instead,omitempty"`
	Do          []string `json:"do,omitempty"`
	DoNot       []string `json:"doNot,omitempty"`
}

// Program is an ordered intervention. Steps are numbered 1..n.
type Program struct {
	Title        string `json:"title"`
	Expert       string `json:"expert"`
	Timeframe    string `json:"timeframe,omitempty"`
	Prerequisite string `json:"prerequisite,omitempty"`
	Steps        []Step `json:"steps"`
}

// fallback serves every pathway without a dedicated program.
const fallback = crisis.PathwayStandardRepair

var pathways = []crisis.Pathway{
	crisis.PathwayPostFightRepair,
	crisis.PathwayInfidelityResponse,
	crisis.PathwaySeparationPrevention,
	crisis.PathwayStandardRepair,
}

var programs = map[crisis.Pathway]Program{
	crisis.PathwayPostFightRepair:      postFightRepair,
	crisis.PathwayInfidelityResponse:   infidelityResponse,
	crisis.PathwaySeparationPrevention: separationPrevention,
	crisis.PathwayStandardRepair:       standardRepair,
}

// Lookup returns the program for a pathway id. Unknown ids, including
// safety_first and general_support, get the standard repair program.
func Lookup(pathway string) Program {
	return For(crisis.Pathway(pathway))
}

// For is Lookup for a typed pathway. The returned program is a copy the
// caller may modify.
func For(p crisis.Pathway) Program {
	prog, ok := programs[p]
	if !ok {
		prog = programs[fallback]
	}
	return prog.clone()
}

// Has reports whether p has a dedicated program.
func Has(p crisis.Pathway) bool {
	_, ok := programs[p]
	return ok
}

// Pathways lists the pathways with a dedicated program, in catalog order.
func Pathways() []crisis.Pathway {
	return append([]crisis.Pathway(nil), pathways...)
}

func (p Program) clone() Program {
	p.Steps = cloneSteps(p.Steps)
	return p
}

func cloneSteps(steps []Step) []Step {
	if steps == nil {
		return nil
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		s.Options = cloneStrings(s.Options)
		s.Actions = cloneStrings(s.Actions)
		s.Do = cloneStrings(s.Do)
		s.DoNot = cloneStrings(s.DoNot)
		out[i] = s
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}
