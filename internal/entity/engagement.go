package entity

import "time"

// AwardReason tags what earned the reps. Only the tap trigger is subject to
// the cooldown; everything else is limited by the cap alone.
type AwardReason string

const (
	ReasonTap      AwardReason = "tap"      // the interactive click target
	ReasonScenario AwardReason = "scenario" // finished a coach replay
	ReasonPreview  AwardReason = "preview"  // revealed the week-1 preview
)

const dayLayout = "2006-01-02"

// CounterConfig holds the knobs of the rep meter. Defaults match the page.
type CounterConfig struct {
	Cap              int
	Milestones       map[int]string
	CooldownBase     time.Duration
	CooldownJitter   time.Duration // max extra on top of base
	MilestoneDisplay time.Duration
}

func DefaultCounterConfig() CounterConfig {
	return CounterConfig{
		Cap: 50,
		Milestones: map[int]string{
			10: "Warm-up done — 10 reps banked.",
			25: "Halfway there. 25 reps today.",
			50: "Daily max hit. Come back tomorrow for more.",
		},
		CooldownBase:     800 * time.Millisecond,
		CooldownJitter:   700 * time.Millisecond,
		MilestoneDisplay: 4 * time.Second,
	}
}

// CounterState is the persisted rep-meter state. It is a plain value; the
// Award transition below is the only thing that mutates it, so the counter
// logic is testable without storage or timers.
type CounterState struct {
	Count         int       `json:"count"`
	Day           string    `json:"day"` // last active calendar day, YYYY-MM-DD
	CooldownUntil time.Time `json:"cooldown_until"`
	Milestone     string    `json:"milestone,omitempty"`
	MilestoneAt   time.Time `json:"milestone_at,omitempty"`
}

// Award applies one award to the state and reports whether it was accepted.
// The daily reset happens lazily here, on the first award of a new day.
// jitter is the randomized part of the cooldown, supplied by the caller so
// the transition itself stays deterministic.
//
// Milestones are checked by membership of the post-award count only: a single
// award that jumps over an intermediate threshold reports just the value it
// lands on (or nothing, if it lands between thresholds). That mirrors the
// page's behavior and is kept on purpose.
func (cfg CounterConfig) Award(s CounterState, delta int, reason AwardReason, now time.Time, jitter time.Duration) (CounterState, bool) {
	today := now.Format(dayLayout)
	if s.Day != today {
		s.Count = 0
		s.Day = today
		s.CooldownUntil = time.Time{}
	}

	if s.Count >= cfg.Cap {
		return s, false
	}
	if reason == ReasonTap && now.Before(s.CooldownUntil) {
		return s, false
	}
	if delta <= 0 {
		return s, false
	}

	s.Count += delta
	if s.Count > cfg.Cap {
		s.Count = cfg.Cap
	}

	if msg, ok := cfg.Milestones[s.Count]; ok {
		s.Milestone = msg
		s.MilestoneAt = now
	}

	if reason == ReasonTap {
		s.CooldownUntil = now.Add(cfg.CooldownBase + jitter)
	}

	return s, true
}

// ActiveMilestone returns the milestone text while it is still on display,
// or "" once its fixed duration has elapsed.
func (cfg CounterConfig) ActiveMilestone(s CounterState, now time.Time) string {
	if s.Milestone == "" || now.After(s.MilestoneAt.Add(cfg.MilestoneDisplay)) {
		return ""
	}
	return s.Milestone
}
