package coach

import "time"

// DefaultRevealInterval is the fixed pacing between chat bubbles.
const DefaultRevealInterval = 1200 * time.Millisecond

type Line struct {
	Role string `json:"role"` // "user" or "coach"
	Text string `json:"text"`
}

// scripts is the closed set of canned Pocket Coach exchanges the page replays.
var scripts = map[string][]Line{
	"sore-legs": {
		{Role: "user", Text: "Legs are wrecked from yesterday. Still train today?"},
		{Role: "coach", Text: "Yes — swap squats for an easy spin and hit upper body. Recovery volume, not zero volume."},
		{Role: "coach", Text: "Logged it. Tomorrow's session auto-adjusts."},
	},
	"missed-week": {
		{Role: "user", Text: "Travel ate my whole week. Do I start over?"},
		{Role: "coach", Text: "No restart. We re-ramp at 70% and you're back on plan by Friday."},
	},
	"protein": {
		{Role: "user", Text: "How much protein actually matters?"},
		{Role: "coach", Text: "Aim for 1.6g per kg. For you that's about 120g a day."},
		{Role: "coach", Text: "I've split it across your meals — check your plan."},
	},
}

// Scenarios lists the available scenario keys in a stable order.
func Scenarios() []string {
	return []string{"sore-legs", "missed-week", "protein"}
}

// Script returns the lines for a scenario key, or false for an unknown key.
func Script(key string) ([]Line, bool) {
	lines, ok := scripts[key]
	return lines, ok
}
