package intervention

var postFightRepair = Program{
	Title:        `After the Storm — Post-Fight Repair`,
	Expert:       `Gottman + Voss + Johnson`,
	Timeframe:    `Do this within 24 hours of the fight`,
	Prerequisite: `Both partners must be calm (heart rate below 100 BPM). If either person is still flooded, use the Flooding First Aid protocol first.`,
	Steps: []Step{
		{
			Step:        1,
			Title:       `Name Your Emotions`,
			Instruction: `Each person identifies which emotions they felt during the fight. Don't explain or justify — just name them.`,
			Options:     []string{"Hurt", "Angry", "Scared", "Sad", "Ashamed", "Lonely", "Overwhelmed", "Defensive", "Misunderstood", "Rejected", "Attacked", "Shut down"},
			Expert:      `Gottman: "The first step is naming what you actually felt — not what you thought."`,
		},
		{
			Step:        2,
			Title:       `Share Your Perspective (Partner Takes Notes)`,
			Instruction: `Each person describes what happened from THEIR point of view using "I felt... I saw... I heard... I imagined..." The other person TAKES NOTES — does not respond, defend, or correct.`,
			Format:      `"I felt [emotion] when [situation]. I saw [behavior]. I heard [words]. I imagined [interpretation]."`,
			Expert:      `Gottman: "I one time filled up an entire yellow pad." The notebook method calms the prefrontal cortex and makes the speaker feel valued.`,
		},
		{
			Step:        3,
			Title:       `Summarize and Validate`,
			Instruction: `After listening, summarize what you heard. Then say: "From your point of view, I can see why you felt that way." You don't have to AGREE — just validate their experience.`,
			Script:      `"What I heard you say is [summary]. From your perspective, that makes sense because [reason]."`,
			Expert:      `Voss: Getting someone to say "That's right" creates a chemical change — epiphany + empathy simultaneously.`,
		},
		{
			Step:        4,
			Title:       `Identify Triggers (Enduring Vulnerabilities)`,
			Instruction: `Ask: "Did any feelings from BEFORE this relationship get triggered?" Share where the pain originally started — childhood, past relationships, old wounds.`,
			Expert:      `Johnson: Attachment injuries from the past get reactivated in present conflicts. Naming them reduces their power.`,
		},
		{
			Step:        5,
			Title:       `Take Responsibility and Apologize`,
			Instruction: `Each person names what THEY contributed to the fight. State your regret specifically. Then say one thing you'll do differently next time.`,
			Format:      `"I was [state of mind]. I regret [specific thing I said/did]. Next time, I will [specific change]."`,
			Expert:      `Gottman: "Note how late the apology comes. You can't apologize effectively if you haven't first understood the impact."`,
			Important:   `The apology comes LAST because you need to understand the full impact before you can meaningfully say sorry.`,
		},
	},
}

var infidelityResponse = Program{
	Title:     `After Discovery — Infidelity Response`,
	Expert:    `Perel + Gottman + Brown`,
	Timeframe: `Immediate (first 48 hours) and ongoing`,
	Steps: []Step{
		{
			Step:        1,
			Title:       `Breathe. You Don't Have to Decide Anything Right Now.`,
			Instruction: `Your nervous system is in shock. This is trauma. You cannot make good decisions in this state. The ONLY job right now is to take care of yourself.`,
			Actions:     []string{"Call someone you trust", "Don't make permanent decisions today", "Eat something, drink water, try to sleep", "It's okay to feel everything and nothing at once"},
			Expert:      `Brown: "When your heart is broken, you cannot trust what your mind is telling you." Your brain is flooding you with narratives. Not all of them are true.`,
		},
		{
			Step:        2,
			Title:       `Resist the Sordid Details`,
			Instruction: `Your mind will DEMAND details: Where? How often? Was she/he better? These questions only deepen the wound. They are your addiction to pain disguised as a search for truth.`,
			Instead:     `Ask the MEANING questions: "What did this mean for you? What were you seeking? What about us do you value? Are you glad it's over?"`,
			Expert:      `Perel: "Investigative questions mine meaning and motive. Sordid details only inflict more pain and keep you awake at night."`,
		},
		{
			Step:        3,
			Title:       `For the One Who Strayed`,
			Instruction: `End the affair completely. Express genuine remorse for the PAIN you caused (the impact on your partner). Become the protector of the boundaries. Bring it up proactively — don't make your partner police the memory.`,
			Expert:      `Perel: "The perpetrator must hold vigil for the relationship." Gottman: trust is rebuilt through consistent, transparent action over time — not a single apology.`,
		},
		{
			Step:        4,
			Title:       `The Reframe`,
			Instruction: `When you're ready (not today, maybe not this month): "Your first marriage is over. Would you like to create a second one together?" This isn't about forgetting — it's about choosing what comes next.`,
			Expert:      `Perel: "The majority of couples who experience affairs stay together. Some merely survive. Others turn a crisis into a generative experience."`,
		},
	},
}

var separationPrevention = Program{
	Title:  `Before You Walk Away`,
	Expert: `Gottman + Johnson + Robbins`,
	Steps: []Step{
		{
			Step:        1,
			Title:       `72-Hour Rule`,
			Instruction: `Make no permanent decisions for 72 hours. Gottman's research: major relationship decisions made during physiological flooding are almost always regretted. Your brain is in survival mode — it cannot evaluate a 10-year relationship in this state.`,
			Expert:      `Gottman: "Go to bed angry. A rested brain tomorrow beats a flooded brain at midnight."`,
		},
		{
			Step:        2,
			Title:       `Ask the Real Question`,
			Instruction: `Johnson says every conflict asks: "Are you there for me?" Before leaving, ask yourself: "Have I truly told my partner what I need? Not what's wrong with them — what I NEED from them?"`,
			Script:      `"I need to feel [specific need]. When [specific situation], I feel [emotion]. What I'm really asking is: are you still here for me?"`,
			Expert:      `Johnson: "Under every criticism is a cry for connection." Have you made that cry clearly?`,
		},
		{
			Step:        3,
			Title:       `Separate the Person from the Pattern`,
			Instruction: `You may be leaving the PATTERN, not the person. The pursue-withdraw cycle, the criticism loop, the emotional distance — those are PATTERNS that can be changed. The person underneath those patterns may be exactly who you need.`,
			Expert:      `Johnson: "The cycle is the enemy, not your partner." Gottman: "69% of problems are perpetual. If you leave this person, you'll inherit a new set of unsolvable problems with the next one."`,
		},
	},
}

var standardRepair = Program{
	Title:  `Quick Repair After a Disagreement`,
	Expert: `Gottman + Voss`,
	Steps: []Step{
		{
			Step:        1,
			Title:       `Cool Down (if needed)`,
			Instruction: `If either person's heart rate is elevated, take 20-30 minutes apart. Do something soothing — NOT replaying the argument.`,
		},
		{
			Step:        2,
			Title:       `Lead with Ownership`,
			Instruction: `The person who can move first says: "I think I contributed to that. Can we talk about it?"`,
			Expert:      `Gottman: "The earlier repair attempts are made, the more effective they are."`,
		},
		{
			Step:        3,
			Title:       `Label, Don't Blame`,
			Instruction: `Use Voss's labeling: "It seems like that conversation made you feel [emotion]." Then listen.`,
			Expert:      `Voss: labeling deactivates the amygdala. It's the fastest de-escalation tool there is.`,
		},
	},
}
