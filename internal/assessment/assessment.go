package assessment

import "errors"

// ErrInvalidArgument is returned when a required top-level argument is
// structurally absent. It is the only error the decision core surfaces.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind identifies an assessment type owned by the result provider.
type Kind string

const (
	KindAttachment            Kind = "attachment"
	KindLoveLanguage          Kind = "love_language"
	KindHumanNeeds            Kind = "human_needs"
	KindGottmanCheckup        Kind = "gottman_checkup"
	KindShameVulnerability    Kind = "shame_vulnerability"
	KindDesireAliveness       Kind = "desire_aliveness"
	KindTacticalEmpathy       Kind = "tactical_empathy"
	KindConflictStyle         Kind = "conflict_style"
	KindEmotionalIntelligence Kind = "emotional_intelligence"
)

// Kinds lists the kinds this package has a typed record for.
func Kinds() []Kind {
	return []Kind{
		KindAttachment,
		KindLoveLanguage,
		KindHumanNeeds,
		KindGottmanCheckup,
		KindShameVulnerability,
		KindDesireAliveness,
		KindTacticalEmpathy,
		KindConflictStyle,
		KindEmotionalIntelligence,
	}
}

// Valid reports whether k has a typed record shape.
func (k Kind) Valid() bool {
	switch k {
	case KindAttachment, KindLoveLanguage, KindHumanNeeds, KindGottmanCheckup,
		KindShameVulnerability, KindDesireAliveness, KindTacticalEmpathy,
		KindConflictStyle, KindEmotionalIntelligence:
		return true
	default:
		return false
	}
}

// Record is one scored assessment result.
type Record interface {
	Kind() Kind
}

// Results maps each completed assessment kind to its score record.
// A nil map is an empty result set.
type Results map[Kind]Record

// Has reports whether every kind in kinds is present.
func (r Results) Has(kinds ...Kind) bool {
	for _, k := range kinds {
		if _, ok := r[k]; !ok {
			return false
		}
	}
	return true
}

// Attachment returns the attachment record if present and well-formed.
func (r Results) Attachment() (*Attachment, bool) {
	rec, ok := r[KindAttachment].(*Attachment)
	return rec, ok && rec != nil
}

func (r Results) LoveLanguage() (*LoveLanguage, bool) {
	rec, ok := r[KindLoveLanguage].(*LoveLanguage)
	return rec, ok && rec != nil
}

func (r Results) HumanNeeds() (*HumanNeeds, bool) {
	rec, ok := r[KindHumanNeeds].(*HumanNeeds)
	return rec, ok && rec != nil
}

func (r Results) GottmanCheckup() (*GottmanCheckup, bool) {
	rec, ok := r[KindGottmanCheckup].(*GottmanCheckup)
	return rec, ok && rec != nil
}

func (r Results) ShameVulnerability() (*ShameVulnerability, bool) {
	rec, ok := r[KindShameVulnerability].(*ShameVulnerability)
	return rec, ok && rec != nil
}

func (r Results) DesireAliveness() (*DesireAliveness, bool) {
	rec, ok := r[KindDesireAliveness].(*DesireAliveness)
	return rec, ok && rec != nil
}

func (r Results) TacticalEmpathy() (*TacticalEmpathy, bool) {
	rec, ok := r[KindTacticalEmpathy].(*TacticalEmpathy)
	return rec, ok && rec != nil
}

func (r Results) ConflictStyle() (*ConflictStyle, bool) {
	rec, ok := r[KindConflictStyle].(*ConflictStyle)
	return rec, ok && rec != nil
}

func (r Results) EmotionalIntelligence() (*EmotionalIntelligence, bool) {
	rec, ok := r[KindEmotionalIntelligence].(*EmotionalIntelligence)
	return rec, ok && rec != nil
}
