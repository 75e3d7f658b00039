package assessment

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeResults parses a provider payload of the form {kind: record}.
//
// A payload that is not a JSON object returns ErrInvalidArgument. A record
// that is not itself an object is kept as *Malformed so the remaining kinds
// are still usable. Null records are treated as absent.
func DecodeResults(data []byte) (Results, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: assessments must be a JSON object", ErrInvalidArgument)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return FromRaw(raw), nil
}

// FromRaw decodes every entry of raw into its typed record.
func FromRaw(raw map[string]json.RawMessage) Results {
	out := make(Results, len(raw))
	for name, msg := range raw {
		kind := Kind(name)
		if isNull(msg) {
			continue
		}
		out[kind] = Decode(kind, msg)
	}
	return out
}

// Decode converts one raw record. It never fails: unknown kinds become
// *Opaque and records that are not JSON objects become *Malformed. Inside an
// object, a known field holding the wrong JSON type is dropped and the other
// fields are kept.
func Decode(kind Kind, msg json.RawMessage) Record {
	rec := newRecord(kind)
	if rec == nil {
		return &Opaque{K: kind, Raw: append(json.RawMessage(nil), msg...)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(msg, &fields); err != nil {
		return &Malformed{K: kind, Err: fmt.Errorf("decode %s: %w", kind, err)}
	}
	if err := json.Unmarshal(msg, rec); err == nil {
		return rec
	}

	// json.Unmarshal leaves partial values behind on a type error, so each
	// field is tried on a scratch record before it is applied.
	rec = newRecord(kind)
	for name, value := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{name: value})
		if err != nil {
			continue
		}
		if json.Unmarshal(one, newRecord(kind)) != nil {
			continue
		}
		_ = json.Unmarshal(one, rec)
	}
	return rec
}

func newRecord(kind Kind) Record {
	switch kind {
	case KindAttachment:
		return &Attachment{}
	case KindLoveLanguage:
		return &LoveLanguage{}
	case KindHumanNeeds:
		return &HumanNeeds{}
	case KindGottmanCheckup:
		return &GottmanCheckup{}
	case KindShameVulnerability:
		return &ShameVulnerability{}
	case KindDesireAliveness:
		return &DesireAliveness{}
	case KindTacticalEmpathy:
		return &TacticalEmpathy{}
	case KindConflictStyle:
		return &ConflictStyle{}
	case KindEmotionalIntelligence:
		return &EmotionalIntelligence{}
	default:
		return nil
	}
}

func isNull(msg json.RawMessage) bool {
	t := bytes.TrimSpace(msg)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}
