package intervention

// Myth corrects a piece of popular advice.
type Myth struct {
	Title string `json:"title"`
	Truth string `json:"truth"`
}

// FirstAid is the always-available de-escalation protocol for a flooded
// partner.
type FirstAid struct {
	Title       string   `json:"title"`
	Expert      string   `json:"expert"`
	Description string   `json:"description"`
	Signals     []string `json:"signals"`
	Protocol    []Step   `json:"protocol"`
	Myth        Myth     `json:"myth"`
}

// FloodingFirstAid returns a fresh copy of the flooding protocol.
func FloodingFirstAid() FirstAid {
	fa := floodingFirstAid
	fa.Signals = cloneStrings(fa.Signals)
	fa.Protocol = cloneSteps(fa.Protocol)
	return fa
}

var floodingFirstAid = FirstAid{
	Title:       `Flooding First Aid — When Your Body Hits the Panic Button`,
	Expert:      `Gottman + Johnson + Tatkin`,
	Description: `When your heart is racing, your palms are sweating, and you can't think straight — you're flooded. Your nervous system has hijacked your brain. You CANNOT listen, problem-solve, or empathize in this state. Here's what to do.`,
	Signals: []string{
		`Heart racing or pounding`,
		`Sweaty palms or hot face`,
		`Tunnel vision — can only see the threat`,
		`Urge to yell, run, or shut down completely`,
		`Repeating the same point louder`,
		`Feeling like you might say something you'll regret`,
		`Body is tense — jaw clenched, fists tight`,
	},
	Protocol: []Step{
		{
			Step:        1,
			Title:       `NAME IT`,
			Instruction: `Say out loud: "I'm flooding right now. I need a break."`,
			Important:   `Say "I need a break" — NOT "You need to stop."`,
			Expert:      `Gottman: the word "I" keeps it about YOUR state. The word "you" escalates.`,
		},
		{
			Step:        2,
			Title:       `SET A TIME`,
			Instruction: `Say: "I'll be back in [20-30 minutes]." Give a specific time.`,
			Important:   `This prevents your partner from feeling abandoned. They know you're coming back.`,
			Expert:      `Johnson: abandonment fear is the core wound. Stating when you'll return addresses it directly.`,
		},
		{
			Step:        3,
			Title:       `SEPARATE`,
			Instruction: `Go to a different room or outside. Do NOT continue the conversation from another room.`,
		},
		{
			Step:   4,
			Title:  `CALM YOUR BODY (not your mind)`,
			Do:     []string{"Deep breathing (4 counts in, 7 counts hold, 8 counts out)", "Walk or light exercise", "Cold water on wrists or face", "Listen to music", "Read something unrelated"},
			DoNot:  []string{"Do NOT replay the argument", "Do NOT plan your rebuttal", "Do NOT text/call anyone to vent about your partner", "Do NOT watch anything violent or stressful"},
			Expert: `Gottman: "Thinking about the fight keeps you flooded." The goal is to bring your heart rate below 100 BPM.`,
		},
		{
			Step:        5,
			Title:       `RETURN`,
			Instruction: `Come back at the time you promised. Start with: "I'm calmer now. I want to understand what you were saying."`,
			Expert:      `Gottman: returning when promised rebuilds trust. Not returning is a form of stonewalling.`,
		},
	},
	Myth: Myth{
		Title: `"Never Go to Bed Angry" — MYTH`,
		Truth: `Gottman says: St. Paul started this advice — "and he wasn't married." If it's late and you're flooded, go to bed. Give a quick kiss, say "I love you, we'll figure this out tomorrow." A rested brain always wins.`,
	},
}
