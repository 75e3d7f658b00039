package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loverescue/coachcore/internal/assessment"
)

// Domain packages assert with testify; the transport, audit and command
// packages keep plain t.Fatalf with httptest.
func ids(in []Insight) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.ID)
	}
	return out
}

func TestGenerateEmptyInput(t *testing.T) {
	got := Generate(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = Generate(assessment.Results{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerateSingleRuleMatches(t *testing.T) {
	cases := []struct {
		name    string
		results assessment.Results
		want    string
	}{
		{
			name: "anxious words",
			results: assessment.Results{
				assessment.KindAttachment:   &assessment.Attachment{Style: "anxious"},
				assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "words_of_affirmation"},
			},
			want: "att_anxious_ll_words",
		},
		{
			name: "avoidant acts via rankings",
			results: assessment.Results{
				assessment.KindAttachment: &assessment.Attachment{Style: "avoidant"},
				assessment.KindLoveLanguage: &assessment.LoveLanguage{Rankings: []assessment.LanguageRank{
					{Language: "acts_of_service"}, {Language: "physical_touch"},
				}},
			},
			want: "att_avoidant_ll_acts",
		},
		{
			name: "avoidant touch",
			results: assessment.Results{
				assessment.KindAttachment:   &assessment.Attachment{Style: "avoidant"},
				assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "physical_touch"},
			},
			want: "att_avoidant_ll_touch",
		},
		{
			name: "anxious quality time",
			results: assessment.Results{
				assessment.KindAttachment:   &assessment.Attachment{Style: "anxious"},
				assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "quality_time"},
			},
			want: "att_anxious_ll_quality",
		},
		{
			name: "anxious certainty via top need",
			results: assessment.Results{
				assessment.KindAttachment: &assessment.Attachment{Style: "anxious"},
				assessment.KindHumanNeeds: &assessment.HumanNeeds{TopNeed: "certainty"},
			},
			want: "att_anxious_hn_certainty",
		},
		{
			name: "avoidant significance via rankings",
			results: assessment.Results{
				assessment.KindAttachment: &assessment.Attachment{Style: "avoidant"},
				assessment.KindHumanNeeds: &assessment.HumanNeeds{
					TopNeed:  "love",
					Rankings: []assessment.NeedRank{{Need: "significance"}},
				},
			},
			want: "att_avoidant_hn_significance",
		},
		{
			name: "flatline secure",
			results: assessment.Results{
				assessment.KindAttachment:      &assessment.Attachment{Style: "secure"},
				assessment.KindDesireAliveness: &assessment.DesireAliveness{RelationshipState: "flatline"},
			},
			want: "desire_flatline_secure",
		},
		{
			name: "merged anxious",
			results: assessment.Results{
				assessment.KindAttachment:      &assessment.Attachment{Style: "anxious"},
				assessment.KindDesireAliveness: &assessment.DesireAliveness{IdentityMergeRisk: true},
			},
			want: "desire_merged_anxious",
		},
		{
			name: "low empathy competing",
			results: assessment.Results{
				assessment.KindTacticalEmpathy: &assessment.TacticalEmpathy{EmpathyAccuracy: assessment.Score(20)},
				assessment.KindConflictStyle:   &assessment.ConflictStyle{PrimaryStyle: "competing"},
			},
			want: "te_low_empathy_competing",
		},
		{
			name: "low listening avoiding via style",
			results: assessment.Results{
				assessment.KindTacticalEmpathy: &assessment.TacticalEmpathy{ListeningQuality: assessment.Score(10)},
				assessment.KindConflictStyle:   &assessment.ConflictStyle{Style: "avoiding"},
			},
			want: "te_low_listening_avoiding",
		},
		{
			name: "aware not vulnerable",
			results: assessment.Results{
				assessment.KindEmotionalIntelligence: &assessment.EmotionalIntelligence{SelfAwareness: assessment.Score(85)},
				assessment.KindShameVulnerability:    &assessment.ShameVulnerability{VulnerabilityCapacity: assessment.Score(30)},
			},
			want: "ei_aware_not_vulnerable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, []string{tc.want}, ids(Generate(tc.results)))
		})
	}
}

func TestGenerateShameAndBlameUnderLowConflict(t *testing.T) {
	results := assessment.Results{
		assessment.KindShameVulnerability: &assessment.ShameVulnerability{
			ShameTriggers: assessment.Score(75),
			PrimaryArmor:  "blame",
		},
		assessment.KindGottmanCheckup: &assessment.GottmanCheckup{Conflict: assessment.Score(30)},
	}

	got := Generate(results)
	require.Len(t, got, 2)
	assert.Equal(t, "shame_high_conflict_low", got[0].ID)
	assert.Equal(t, SeverityHigh, got[0].Severity)
	assert.Equal(t, "armor_blame_conflict", got[1].ID)
	assert.Equal(t, SeverityModerate, got[1].Severity)
}

func TestGenerateConflictThresholds(t *testing.T) {
	shame := &assessment.ShameVulnerability{ShameTriggers: assessment.Score(90), PrimaryArmor: "blame"}

	cases := []struct {
		name     string
		conflict *float64
		want     []string
	}{
		{"missing", nil, []string{}},
		{"zero", assessment.Score(0), []string{}},
		{"at forty", assessment.Score(40), []string{"armor_blame_conflict"}},
		{"at fifty", assessment.Score(50), []string{}},
		{"just under forty", assessment.Score(39.5), []string{"shame_high_conflict_low", "armor_blame_conflict"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := assessment.Results{
				assessment.KindShameVulnerability: shame,
				assessment.KindGottmanCheckup:     &assessment.GottmanCheckup{Conflict: tc.conflict},
			}
			assert.Equal(t, tc.want, ids(Generate(results)))
		})
	}
}

func TestGenerateShameTriggersMustExceedSixty(t *testing.T) {
	results := assessment.Results{
		assessment.KindShameVulnerability: &assessment.ShameVulnerability{ShameTriggers: assessment.Score(60)},
		assessment.KindGottmanCheckup:     &assessment.GottmanCheckup{Conflict: assessment.Score(10)},
	}
	assert.Empty(t, Generate(results))
}

func TestGenerateSelfAwarenessBoundaries(t *testing.T) {
	for _, score := range []float64{0, 70} {
		results := assessment.Results{
			assessment.KindEmotionalIntelligence: &assessment.EmotionalIntelligence{SelfAwareness: assessment.Score(score)},
			assessment.KindShameVulnerability:    &assessment.ShameVulnerability{VulnerabilityCapacity: assessment.Score(10)},
		}
		assert.Empty(t, Generate(results), "selfAwareness=%v", score)
	}

	results := assessment.Results{
		assessment.KindEmotionalIntelligence: &assessment.EmotionalIntelligence{SelfAwareness: assessment.Score(71)},
		assessment.KindShameVulnerability:    &assessment.ShameVulnerability{},
	}
	assert.Empty(t, Generate(results), "missing vulnerabilityCapacity never matches")
}

func TestGenerateSkipsRulesWithMissingKinds(t *testing.T) {
	results := assessment.Results{
		assessment.KindAttachment: &assessment.Attachment{Style: "anxious"},
	}
	assert.Empty(t, Generate(results))
}

func TestGenerateMalformedRecordNeverMatches(t *testing.T) {
	results := assessment.Results{
		assessment.KindAttachment:   &assessment.Malformed{K: assessment.KindAttachment},
		assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "words_of_affirmation"},
		assessment.KindTacticalEmpathy: &assessment.TacticalEmpathy{
			EmpathyAccuracy: assessment.Score(5),
		},
		assessment.KindConflictStyle: &assessment.ConflictStyle{PrimaryStyle: "competing"},
	}
	assert.Equal(t, []string{"te_low_empathy_competing"}, ids(Generate(results)))
}

func TestGenerateMistypedFieldOnlyAffectsRulesReadingIt(t *testing.T) {
	results, err := assessment.DecodeResults([]byte(`{
		"shame_vulnerability": {"shameTriggers": "n/a", "primaryArmor": "blame"},
		"gottman_checkup": {"conflict": 30}
	}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"armor_blame_conflict"}, ids(Generate(results)))
}

func TestGenerateFollowsCatalogOrder(t *testing.T) {
	results := assessment.Results{
		assessment.KindAttachment:            &assessment.Attachment{Style: "anxious"},
		assessment.KindLoveLanguage:          &assessment.LoveLanguage{Primary: "quality_time"},
		assessment.KindHumanNeeds:            &assessment.HumanNeeds{TopNeed: "certainty"},
		assessment.KindDesireAliveness:       &assessment.DesireAliveness{IdentityMergeRisk: true},
		assessment.KindEmotionalIntelligence: &assessment.EmotionalIntelligence{SelfAwareness: assessment.Score(90)},
		assessment.KindShameVulnerability:    &assessment.ShameVulnerability{VulnerabilityCapacity: assessment.Score(20)},
	}
	want := []string{
		"att_anxious_ll_quality",
		"att_anxious_hn_certainty",
		"desire_merged_anxious",
		"ei_aware_not_vulnerable",
	}
	assert.Equal(t, want, ids(Generate(results)))
}

func TestGenerateIsolatesPanickingRule(t *testing.T) {
	saved := catalog
	t.Cleanup(func() { catalog = saved })

	boom := Rule{
		ID:       "boom",
		Requires: []assessment.Kind{assessment.KindAttachment},
		Match:    func(assessment.Results) bool { panic("bad record") },
		Template: Insight{ID: "boom", Severity: SeverityHigh},
	}
	catalog = append([]Rule{boom}, saved...)

	results := assessment.Results{
		assessment.KindAttachment:   &assessment.Attachment{Style: "anxious"},
		assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "words_of_affirmation"},
	}
	assert.Equal(t, []string{"att_anxious_ll_words"}, ids(Generate(results)))
}

func TestGenerateReturnsFreshCopies(t *testing.T) {
	results := assessment.Results{
		assessment.KindAttachment:   &assessment.Attachment{Style: "anxious"},
		assessment.KindLoveLanguage: &assessment.LoveLanguage{Primary: "words_of_affirmation"},
	}
	first := Generate(results)
	require.Len(t, first, 1)
	first[0].Title = "changed"

	second := Generate(results)
	require.Len(t, second, 1)
	assert.Equal(t, "Your Reassurance Pattern", second[0].Title)
}

func TestCatalogInvariants(t *testing.T) {
	rules := Catalog()
	require.Len(t, rules, 13)

	seen := map[string]bool{}
	for _, r := range rules {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.True(t, r.Severity.Valid(), "rule %s severity %q", r.ID, r.Severity)
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Expert)
		require.Len(t, r.Requires, 2)
		for _, k := range r.Requires {
			assert.True(t, k.Valid(), "rule %s requires %q", r.ID, k)
		}
	}

	for _, r := range catalog {
		assert.Equal(t, r.ID, r.Template.ID, "template id must match rule id")
		assert.NotEmpty(t, r.Template.Insight, "rule %s insight", r.ID)
		assert.NotEmpty(t, r.Template.Action, "rule %s action", r.ID)
		assert.NotEmpty(t, r.Template.Framework, "rule %s framework", r.ID)
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0].Requires[0] = "mutated"
	assert.Equal(t, assessment.KindAttachment, Catalog()[0].Requires[0])
}
