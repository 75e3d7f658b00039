// Package ritual schedules the starter rituals of connection, unlocking more
// of them as a couple progresses through the program weeks.
package ritual

// Frequency is how often a ritual is practiced.
type Frequency string

const (
	Daily    Frequency = "daily"
	Weekly   Frequency = "weekly"
	AsNeeded Frequency = "as_needed"
	Yearly   Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, AsNeeded, Yearly:
		return true
	default:
		return false
	}
}

// Ritual is one habit. Difficulty runs 1 to 3.
type Ritual struct {
	Name        string    `json:"name"`
	Frequency   Frequency `json:"frequency"`
	When        string    `json:"when"`
	Instruction string    `json:"instruction"`
	Why         string    `json:"why"`
	Difficulty  int       `json:"difficulty"`
	UnlockWeek  int       `json:"unlockWeek"`
}

// Program is the header shown above the ritual list.
type Program struct {
	Title       string `json:"title"`
	Expert      string `json:"expert"`
	Description string `json:"description"`
}

// ForWeek returns the rituals unlocked at or before week, in catalog order.
// Weeks below 1 unlock nothing.
func ForWeek(week int) []Ritual {
	out := make([]Ritual, 0, len(starters))
	for _, r := range starters {
		if r.UnlockWeek <= week {
			out = append(out, r)
		}
	}
	return out
}

// All returns the full catalog.
func All() []Ritual {
	return append([]Ritual(nil), starters...)
}

// Builder returns the program header.
func Builder() Program {
	return Program{
		Title:       `Rituals of Connection — The Architecture of Love`,
		Expert:      `Gottman + Tatkin`,
		Description: `Small daily rituals beat grand gestures. Gottman found that couples who maintain rituals of connection have dramatically better outcomes. These are non-negotiable building blocks.`,
	}
}

var starters = []Ritual{
	{
		Name:        `The 6-Second Kiss`,
		Frequency:   Daily,
		When:        `Parting (morning) and reunion (evening)`,
		Instruction: `Kiss your partner for a full 6 seconds when you leave and when you reunite. Not a peck — 6 seconds.`,
		Why:         `Triggers oxytocin release. Creates bonding and psychological safety. German study: men who kiss their wives goodbye live 4 years longer.`,
		Difficulty:  1,
		UnlockWeek:  1,
	},
	{
		Name:        `The Morning Check-In`,
		Frequency:   Daily,
		When:        `Morning, before the day begins`,
		Instruction: `Ask: "What's on your plate today? Anything I should know about?" Listen. Don't fix.`,
		Why:         `Gottman: "We kind of check in with each other... in that way you don't lose touch, you don't make assumptions."`,
		Difficulty:  1,
		UnlockWeek:  1,
	},
	{
		Name:        `The 20-Second Hug`,
		Frequency:   Daily,
		When:        `At least once per day`,
		Instruction: `Hold your partner for a full 20 seconds. Not a pat-on-the-back hug — a real, full-body embrace.`,
		Why:         `20 seconds triggers oxytocin release, same as the 6-second kiss. Creates physical safety and emotional bonding.`,
		Difficulty:  1,
		UnlockWeek:  1,
	},
	{
		Name:        `Stress-Reducing Conversation`,
		Frequency:   Daily,
		When:        `End of day (before screens/dinner)`,
		Instruction: `20 minutes of uninterrupted talking about what happened today OUTSIDE the relationship. No problem-solving — just listen, empathize, take your partner's side.`,
		Why:         `Gottman: this is the single most powerful daily ritual. It builds Love Maps and shows your partner you're interested in their world.`,
		Difficulty:  2,
		UnlockWeek:  2,
	},
	{
		Name:        `Weekly "What Do You Need?" Check-In`,
		Frequency:   Weekly,
		When:        `Sunday evening or whenever works`,
		Instruction: `Ask: "What is one thing I can do next week to make you feel more loved?" Listen. Do it.`,
		Why:         `Gottman's card deck approach: "Rather than leaving it to chance... she can tell you what two things you can do to make her happy this week."`,
		Difficulty:  2,
		UnlockWeek:  3,
	},
	{
		Name:        `The Date Night`,
		Frequency:   Weekly,
		When:        `Any evening you protect from other obligations`,
		Instruction: `Planned, intentional time together. Alternate who plans. No phones. No kids talk. No logistics. Just be together.`,
		Why:         `Perel: "Committed sex is premeditated sex." The same applies to connection — it doesn't happen by accident in a long-term relationship.`,
		Difficulty:  2,
		UnlockWeek:  4,
	},
	{
		Name:        `The Repair Phrase`,
		Frequency:   AsNeeded,
		When:        `During or after any conflict`,
		Instruction: `Memorize ONE repair phrase. Use it when things get heated: "I'm sorry. Let me try that again." or "I'm starting to feel defensive. Can you say that differently?"`,
		Why:         `Gottman: repair attempts are the #1 predictor of relationship success. The earlier, the better.`,
		Difficulty:  3,
		UnlockWeek:  4,
	},
	{
		Name:        `Annual State of the Union`,
		Frequency:   Yearly,
		When:        `Anniversary, New Year, or any meaningful date`,
		Instruction: `Three questions (Gottman's honeymoon tradition): 1) What sucked this year? 2) What did we love? 3) What do we want next year to be like?`,
		Why:         `Gottman and Julie have done this for 23 years: "we can really take a hard look at our lives and see what needs to change."`,
		Difficulty:  3,
		UnlockWeek:  6,
	},
}
