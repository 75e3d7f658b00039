package insight

import (
	"github.com/loverescue/coachcore/internal/assessment"
)

// Rule pairs the assessments it needs with a predicate over them and the
// insight it emits when the predicate holds.
type Rule struct {
	ID       string
	Requires []assessment.Kind
	Match    func(assessment.Results) bool
	Template Insight
}

// RuleInfo describes a catalog entry without its predicate.
type RuleInfo struct {
	ID       string            `json:"id"`
	Requires []assessment.Kind `json:"requires"`
	Severity Severity          `json:"severity"`
	Title    string            `json:"title"`
	Expert   string            `json:"expert"`
}

const (
	attachmentAnxious  = "anxious"
	attachmentAvoidant = "avoidant"
	attachmentSecure   = "secure"
)

var catalog = stampIDs(ruleDefs())

func stampIDs(rules []Rule) []Rule {
	for i := range rules {
		rules[i].Template.ID = rules[i].ID
	}
	return rules
}

// Catalog lists the rules in evaluation order.
func Catalog() []RuleInfo {
	out := make([]RuleInfo, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, RuleInfo{
			ID:       r.ID,
			Requires: append([]assessment.Kind(nil), r.Requires...),
			Severity: r.Template.Severity,
			Title:    r.Template.Title,
			Expert:   r.Template.Expert,
		})
	}
	return out
}

func ruleDefs() []Rule {
	attLL := []assessment.Kind{assessment.KindAttachment, assessment.KindLoveLanguage}
	attHN := []assessment.Kind{assessment.KindAttachment, assessment.KindHumanNeeds}
	svGC := []assessment.Kind{assessment.KindShameVulnerability, assessment.KindGottmanCheckup}
	daAtt := []assessment.Kind{assessment.KindDesireAliveness, assessment.KindAttachment}
	teCS := []assessment.Kind{assessment.KindTacticalEmpathy, assessment.KindConflictStyle}
	eiSV := []assessment.Kind{assessment.KindEmotionalIntelligence, assessment.KindShameVulnerability}

	return []Rule{
		// attachment x love language
		{
			ID:       "att_anxious_ll_words",
			Requires: attLL,
			Match:    attachmentWithLanguage(attachmentAnxious, "words_of_affirmation"),
			Template: Insight{
				Title:     `Your Reassurance Pattern`,
				Expert:    `Levine + Chapman`,
				Severity:  SeverityHigh,
				Insight:   `Your anxious attachment style combined with Words of Affirmation as your primary love language means verbal reassurance is your lifeline. When your partner goes quiet, your anxiety doesn't just notice — it SCREAMS. You're not "needy." Your nervous system is wired to seek verbal confirmation of safety.`,
				Action:    `Instead of escalating bids for reassurance, try saying directly: "I'm feeling anxious right now. A simple 'I love you' would really help me." Direct requests work better than protest behaviors.`,
				Framework: `Levine identifies this as "hyperactivation of the attachment system." Chapman shows that your love language amplifies the need. Together, they explain why silence feels like abandonment.`,
			},
		},
		{
			ID:       "att_avoidant_ll_acts",
			Requires: attLL,
			Match:    attachmentWithLanguage(attachmentAvoidant, "acts_of_service"),
			Template: Insight{
				Title:     `Love Through Doing (Not Feeling)`,
				Expert:    `Levine + Chapman`,
				Severity:  SeverityModerate,
				Insight:   `Your avoidant attachment style combined with Acts of Service as your love language creates a specific pattern: you show love through DOING — fixing things, helping, providing — because it lets you express care without emotional vulnerability. Your partner may feel served but not emotionally connected.`,
				Action:    `This week, pair one act of service with one vulnerable statement: "I fixed the sink AND I want you to know I was thinking about you all day." The action + the words together bridges the gap.`,
				Framework: `Levine calls this a "deactivating strategy." Chapman shows that your love language is the vehicle. The insight: you're not cold — you're expressing love in the safest way you know.`,
			},
		},
		{
			ID:       "att_avoidant_ll_touch",
			Requires: attLL,
			Match:    attachmentWithLanguage(attachmentAvoidant, "physical_touch"),
			Template: Insight{
				Title:     `The Touch Paradox`,
				Expert:    `Levine + Chapman + Gottman`,
				Severity:  SeverityModerate,
				Insight:   `You value physical closeness (Physical Touch is your language) but your avoidant attachment makes emotional closeness feel threatening. This creates a paradox: you crave touch but may pull away when it leads to deeper emotional intimacy.`,
				Action:    `Practice non-sexual touch without it "leading anywhere." A 20-second hug, holding hands during a movie. Train your nervous system that physical closeness doesn't always mean emotional demand.`,
				Framework: `Gottman's research: 96% of non-cuddlers reported poor sex lives. Your avoidant system may be blocking the very thing your love language needs.`,
			},
		},
		{
			ID:       "att_anxious_ll_quality",
			Requires: attLL,
			Match:    attachmentWithLanguage(attachmentAnxious, "quality_time"),
			Template: Insight{
				Title:     `Your Presence Hunger`,
				Expert:    `Levine + Chapman + Johnson`,
				Severity:  SeverityModerate,
				Insight:   `Your anxious attachment combined with Quality Time as your love language means your partner's distraction feels like abandonment. When they're on their phone during dinner, your nervous system reads it as rejection — not just inattention.`,
				Action:    `Create a ritual: 20 minutes of phone-free time together each evening. Frame it as something you BOTH benefit from, not a demand. "I feel so much more connected when it's just us."`,
				Framework: `Johnson: "Are you there for me?" is the core question. For you, "there" literally means present, focused, and undistracted.`,
			},
		},

		// attachment x human needs
		{
			ID:       "att_anxious_hn_certainty",
			Requires: attHN,
			Match:    attachmentWithNeed(attachmentAnxious, "certainty"),
			Template: Insight{
				Title:     `The Double Lock`,
				Expert:    `Levine + Robbins`,
				Severity:  SeverityHigh,
				Insight:   `Your anxious attachment AND your top human need being Certainty create a double lock: you need to know the relationship is safe, AND you need to know what's coming next. Surprise plans your partner makes with good intentions may trigger anxiety instead of joy.`,
				Action:    `Build internal certainty: each morning, write one sentence about what YOU can control today. The goal is to shift certainty from "my partner proves it" to "I trust myself to handle whatever comes."`,
				Framework: `Robbins: "True certainty comes from within." Levine: anxious attachment outsources security to the partner. Both point to the same solution: build the safety inside.`,
			},
		},
		{
			ID:       "att_avoidant_hn_significance",
			Requires: attHN,
			Match:    attachmentWithNeed(attachmentAvoidant, "significance"),
			Template: Insight{
				Title:     `The Intellectual Armor`,
				Expert:    `Levine + Robbins + Brown`,
				Severity:  SeverityModerate,
				Insight:   `Your avoidant attachment combined with Significance as your top need may manifest as intellectual superiority in arguments. You maintain emotional distance through being "right" — which meets your significance need while protecting you from vulnerability.`,
				Action:    `Next disagreement, try this: before making your point, summarize your partner's position so well they say "That's right." Voss proves this builds MORE influence than winning the argument.`,
				Framework: `Brown: contempt (the worst of Gottman's Four Horsemen) is often significance-seeking armor over shame. If you need to feel smarter than your partner, ask yourself what you're protecting.`,
			},
		},

		// shame x gottman
		{
			ID:       "shame_high_conflict_low",
			Requires: svGC,
			Match: func(r assessment.Results) bool {
				sv, ok := r.ShameVulnerability()
				if !ok {
					return false
				}
				gc, ok := r.GottmanCheckup()
				if !ok {
					return false
				}
				return assessment.Greater(sv.ShameTriggers, 60) &&
					assessment.NonZero(gc.Conflict) && assessment.Less(gc.Conflict, 40)
			},
			Template: Insight{
				Title:     `Shame Is Driving Your Conflict Pattern`,
				Expert:    `Brown + Gottman`,
				Severity:  SeverityHigh,
				Insight:   `Your high shame triggers combined with low conflict scores reveal something important: you're not bad at conflict — you're terrified that conflict will expose your unworthiness. Defensiveness, stonewalling, or people-pleasing during arguments aren't communication failures. They're shame responses.`,
				Action:    `Before your next disagreement, tell your partner: "When we fight, sometimes I feel like I'm not good enough — not just wrong about the issue, but wrong as a person. I'm working on separating those." This is the most vulnerable and most powerful thing you can say.`,
				Framework: `Brown: "Shame says 'I am bad.' Guilt says 'I did something bad.'" Gottman: defensiveness is one of the Four Horsemen. The connection: your defensiveness IS your shame response.`,
			},
		},
		{
			ID:       "armor_blame_conflict",
			Requires: svGC,
			Match: func(r assessment.Results) bool {
				sv, ok := r.ShameVulnerability()
				if !ok {
					return false
				}
				gc, ok := r.GottmanCheckup()
				if !ok {
					return false
				}
				return sv.PrimaryArmor == "blame" &&
					assessment.NonZero(gc.Conflict) && assessment.Less(gc.Conflict, 50)
			},
			Template: Insight{
				Title:     `Your Blame Pattern`,
				Expert:    `Brown + Gottman + Voss`,
				Severity:  SeverityModerate,
				Insight:   `Your primary armor pattern is blame, and your conflict scores reflect it. Brown found that blame is the discharge of discomfort — it feels powerful for 15 seconds but solves nothing. Gottman found that criticism (blame's cousin) predicts relationship failure.`,
				Action:    `Replace "Whose fault is this?" with "What am I feeling right now?" The shift from blame to self-awareness is the single most important habit change you can make.`,
				Framework: `Brown: blame has an inverse relationship with accountability. Voss: labeling your OWN emotion ("I'm feeling frustrated") is more powerful than naming someone else's fault.`,
			},
		},

		// desire x attachment
		{
			ID:       "desire_flatline_secure",
			Requires: daAtt,
			Match: func(r assessment.Results) bool {
				da, ok := r.DesireAliveness()
				if !ok {
					return false
				}
				att, ok := r.Attachment()
				if !ok {
					return false
				}
				return da.RelationshipState == "flatline" && att.Style == attachmentSecure
			},
			Template: Insight{
				Title:     `Safe But Asleep`,
				Expert:    `Perel + Levine`,
				Severity:  SeverityModerate,
				Insight:   `You have a secure attachment — which is wonderful — but your relationship has flatlined. Perel's research shows this is common: you've built such a safe harbor that there's no wind in the sails. Security without adventure leads to "roommate syndrome."`,
				Action:    `This week, do ONE thing your partner wouldn't expect. Break a pattern. Perel: "Whatever is going to just happen in a long-term relationship, already has. Committed passion is premeditated."`,
				Framework: `Perel: "Fire needs air." Your secure attachment gives you the safest possible base to take erotic risks FROM. Use your security as a launchpad, not a resting place.`,
			},
		},
		{
			ID:       "desire_merged_anxious",
			Requires: daAtt,
			Match: func(r assessment.Results) bool {
				da, ok := r.DesireAliveness()
				if !ok {
					return false
				}
				att, ok := r.Attachment()
				if !ok {
					return false
				}
				return da.IdentityMergeRisk && att.Style == attachmentAnxious
			},
			Template: Insight{
				Title:     `You've Disappeared Into the Relationship`,
				Expert:    `Perel + Levine + Finlayson-Fife`,
				Severity:  SeverityHigh,
				Insight:   `Your anxious attachment has led you to merge your identity with your partner's. Perel found that desire requires a SELF — someone to desire and be desired. When you lose yourself in the relationship, there's no one left to want.`,
				Action:    `Reclaim one thing this week that is entirely YOURS. A hobby. A friend. A goal. Not as rebellion — as an act of self-creation that ultimately serves your relationship.`,
				Framework: `Perel: "The secret to desire is not to seek it in the other person, but to cultivate it in yourself." Finlayson-Fife: differentiation means holding your own position while staying emotionally present.`,
			},
		},

		// tactical empathy x conflict style
		{
			ID:       "te_low_empathy_competing",
			Requires: teCS,
			Match: func(r assessment.Results) bool {
				te, ok := r.TacticalEmpathy()
				if !ok {
					return false
				}
				cs, ok := r.ConflictStyle()
				if !ok {
					return false
				}
				return assessment.Less(te.EmpathyAccuracy, 40) && cs.Primary() == "competing"
			},
			Template: Insight{
				Title:     `Winning Arguments, Losing Connection`,
				Expert:    `Voss + Gottman`,
				Severity:  SeverityHigh,
				Insight:   `Your low empathy accuracy combined with a competing conflict style means you're optimized for winning arguments — and terrible at making your partner feel heard. Voss found that "the only way to be powerful in a negotiation is to accept influence." Gottman found the same in marriage.`,
				Action:    `In your next disagreement, your ONLY job is to get your partner to say "That's right." Summarize their position. Label their emotion. Don't make your point until they feel fully understood. This will feel like losing. It's actually winning.`,
				Framework: `Gottman: accepting influence is the strongest predictor of relationship success. Voss: "That's right" creates a chemical change — epiphany + empathy simultaneously.`,
			},
		},
		{
			ID:       "te_low_listening_avoiding",
			Requires: teCS,
			Match: func(r assessment.Results) bool {
				te, ok := r.TacticalEmpathy()
				if !ok {
					return false
				}
				cs, ok := r.ConflictStyle()
				if !ok {
					return false
				}
				return assessment.Less(te.ListeningQuality, 40) && cs.Primary() == "avoiding"
			},
			Template: Insight{
				Title:     `The Silent Treatment Isn't Listening`,
				Expert:    `Voss + Johnson + Gottman`,
				Severity:  SeverityModerate,
				Insight:   `Your low listening quality combined with an avoiding conflict style means silence has become your default. But silence isn't peace — it's the absence of engagement. Johnson calls this "Freeze and Flee" — the most dangerous demon dialogue because neither partner is fighting FOR the relationship.`,
				Action:    `Practice one Voss mirror per day: when your partner says something, repeat their last 3 words with a questioning tone. That's it. You don't have to fix anything. Just mirror.`,
				Framework: `Gottman: stonewalling (85% men) is the final horseman. Voss: mirroring is the simplest tool — repeat their words, and they feel heard. Johnson: the withdrawer's message is "I'm afraid I'll make it worse" — name THAT.`,
			},
		},

		// emotional intelligence x shame
		{
			ID:       "ei_aware_not_vulnerable",
			Requires: eiSV,
			Match: func(r assessment.Results) bool {
				ei, ok := r.EmotionalIntelligence()
				if !ok {
					return false
				}
				sv, ok := r.ShameVulnerability()
				if !ok {
					return false
				}
				return assessment.NonZero(ei.SelfAwareness) && assessment.Greater(ei.SelfAwareness, 70) &&
					assessment.Less(sv.VulnerabilityCapacity, 40)
			},
			Template: Insight{
				Title:     `You See It But Can't Say It`,
				Expert:    `Brown + Goleman`,
				Severity:  SeverityModerate,
				Insight:   `You have high self-awareness but low vulnerability capacity. You KNOW what you're feeling — you just can't bring yourself to share it. This is the awareness-expression gap, and it's often driven by shame: "If I show them this, they'll think less of me."`,
				Action:    `Start small. Share one feeling per day that isn't anger or frustration. "I felt proud today." "I felt sad about something." Build the muscle of emotional disclosure in safe territory before bringing it into conflict.`,
				Framework: `Brown: "Vulnerability is the birthplace of connection." Goleman: emotional intelligence without vulnerability is just emotional surveillance — you watch yourself but never let anyone in.`,
			},
		},
	}
}

func attachmentWithLanguage(style, language string) func(assessment.Results) bool {
	return func(r assessment.Results) bool {
		att, ok := r.Attachment()
		if !ok {
			return false
		}
		ll, ok := r.LoveLanguage()
		if !ok {
			return false
		}
		return att.Style == style && ll.PrimaryLanguage() == language
	}
}

func attachmentWithNeed(style, need string) func(assessment.Results) bool {
	return func(r assessment.Results) bool {
		att, ok := r.Attachment()
		if !ok {
			return false
		}
		hn, ok := r.HumanNeeds()
		if !ok {
			return false
		}
		return att.Style == style && hn.TopNeedValue() == need
	}
}
