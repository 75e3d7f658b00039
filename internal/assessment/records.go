package assessment

import "encoding/json"

// Optional fields: numbers are pointers, enums use "" for absent.

type Attachment struct {
	Style string `json:"style,omitempty"`
}

func (*Attachment) Kind() Kind { return KindAttachment }

type LanguageRank struct {
	Language string   `json:"language,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

type LoveLanguage struct {
	Primary  string         `json:"primary,omitempty"`
	Rankings []LanguageRank `json:"rankings,omitempty"`
}

func (*LoveLanguage) Kind() Kind { return KindLoveLanguage }

// PrimaryLanguage returns primary, falling back to the top ranking.
func (l *LoveLanguage) PrimaryLanguage() string {
	if l == nil {
		return ""
	}
	if l.Primary != "" {
		return l.Primary
	}
	if len(l.Rankings) > 0 {
		return l.Rankings[0].Language
	}
	return ""
}

type NeedRank struct {
	Need  string   `json:"need,omitempty"`
	Score *float64 `json:"score,omitempty"`
}

type HumanNeeds struct {
	TopNeed  string     `json:"topNeed,omitempty"`
	Rankings []NeedRank `json:"rankings,omitempty"`
}

func (*HumanNeeds) Kind() Kind { return KindHumanNeeds }

// TopNeedValue prefers the top ranking and falls back to topNeed.
func (h *HumanNeeds) TopNeedValue() string {
	if h == nil {
		return ""
	}
	if len(h.Rankings) > 0 && h.Rankings[0].Need != "" {
		return h.Rankings[0].Need
	}
	return h.TopNeed
}

type GottmanCheckup struct {
	Conflict *float64 `json:"conflict,omitempty"`
}

func (*GottmanCheckup) Kind() Kind { return KindGottmanCheckup }

type ShameVulnerability struct {
	ShameTriggers         *float64 `json:"shameTriggers,omitempty"`
	PrimaryArmor          string   `json:"primaryArmor,omitempty"`
	VulnerabilityCapacity *float64 `json:"vulnerabilityCapacity,omitempty"`
}

func (*ShameVulnerability) Kind() Kind { return KindShameVulnerability }

type DesireAliveness struct {
	RelationshipState string `json:"relationshipState,omitempty"`
	IdentityMergeRisk bool   `json:"identityMergeRisk,omitempty"`
}

func (*DesireAliveness) Kind() Kind { return KindDesireAliveness }

type TacticalEmpathy struct {
	EmpathyAccuracy  *float64 `json:"empathyAccuracy,omitempty"`
	ListeningQuality *float64 `json:"listeningQuality,omitempty"`
}

func (*TacticalEmpathy) Kind() Kind { return KindTacticalEmpathy }

type ConflictStyle struct {
	PrimaryStyle string `json:"primaryStyle,omitempty"`
	Style        string `json:"style,omitempty"`
}

func (*ConflictStyle) Kind() Kind { return KindConflictStyle }

// Primary returns primaryStyle, falling back to style.
func (c *ConflictStyle) Primary() string {
	if c == nil {
		return ""
	}
	if c.PrimaryStyle != "" {
		return c.PrimaryStyle
	}
	return c.Style
}

type EmotionalIntelligence struct {
	SelfAwareness *float64 `json:"selfAwareness,omitempty"`
}

func (*EmotionalIntelligence) Kind() Kind { return KindEmotionalIntelligence }

// Opaque carries a record for a kind without a typed shape.
type Opaque struct {
	K   Kind            `json:"-"`
	Raw json.RawMessage `json:"raw,omitempty"`
}

func (o *Opaque) Kind() Kind { return o.K }

// Malformed marks a record that is not a JSON object.
// Rules that need it never match.
type Malformed struct {
	K   Kind  `json:"-"`
	Err error `json:"-"`
}

func (m *Malformed) Kind() Kind { return m.K }

// Less reports whether v is present and strictly below limit.
func Less(v *float64, limit float64) bool {
	return v != nil && *v < limit
}

// Greater reports whether v is present and strictly above limit.
func Greater(v *float64, limit float64) bool {
	return v != nil && *v > limit
}

// NonZero reports whether v is present and not zero. Scores of zero are
// treated like missing ones by the conflict and self-awareness rules.
func NonZero(v *float64) bool {
	return v != nil && *v != 0
}

// Score is a convenience for building optional numeric fields.
func Score(v float64) *float64 {
	return &v
}
