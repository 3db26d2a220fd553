package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testClock() time.Time {
	return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
}

func TestAwardAccumulatesUpToCap(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	var state CounterState
	var accepted bool

	// Cooldown only throttles taps; use a non-tap reason to hammer it.
	for i := 0; i < 100; i++ {
		state, accepted = cfg.Award(state, 1, ReasonPreview, now, 0)
		if state.Count < cfg.Cap {
			assert.True(t, accepted)
		}
	}

	assert.Equal(t, cfg.Cap, state.Count)
	assert.False(t, accepted, "awards at the cap must be refused")
}

func TestAwardClampsOvershootToCap(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 45, Day: now.Format("2006-01-02")}
	state, accepted := cfg.Award(state, 40, ReasonPreview, now, 0)

	assert.True(t, accepted)
	assert.Equal(t, 50, state.Count)
}

func TestTapRefusedDuringCooldown(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state, accepted := cfg.Award(CounterState{}, 1, ReasonTap, now, 0)
	assert.True(t, accepted)
	assert.Equal(t, 1, state.Count)

	// Immediately again, still inside the cooldown window.
	state, accepted = cfg.Award(state, 1, ReasonTap, now.Add(100*time.Millisecond), 0)
	assert.False(t, accepted)
	assert.Equal(t, 1, state.Count)

	// After the cooldown has elapsed the tap lands.
	later := now.Add(cfg.CooldownBase + time.Millisecond)
	state, accepted = cfg.Award(state, 1, ReasonTap, later, 0)
	assert.True(t, accepted)
	assert.Equal(t, 2, state.Count)
}

func TestNonTapReasonsIgnoreCooldown(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state, _ := cfg.Award(CounterState{}, 1, ReasonTap, now, 0)

	state, accepted := cfg.Award(state, 1, ReasonScenario, now.Add(time.Millisecond), 0)
	assert.True(t, accepted, "scenario awards are never throttled by cooldown")

	state, accepted = cfg.Award(state, 1, ReasonPreview, now.Add(2*time.Millisecond), 0)
	assert.True(t, accepted)
	assert.Equal(t, 3, state.Count)
}

func TestLazyDailyReset(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 42, Day: "2026-03-13"} // yesterday

	state, accepted := cfg.Award(state, 3, ReasonPreview, now, 0)
	assert.True(t, accepted)
	assert.Equal(t, 3, state.Count, "count resets to 0 before the delta applies")
	assert.Equal(t, "2026-03-14", state.Day)
}

func TestDailyResetUnlocksCap(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: cfg.Cap, Day: "2026-03-13"}

	state, accepted := cfg.Award(state, 1, ReasonTap, now, 0)
	assert.True(t, accepted)
	assert.Equal(t, 1, state.Count)
}

func TestMilestoneOnExactLanding(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 9, Day: now.Format("2006-01-02")}
	state, _ = cfg.Award(state, 1, ReasonPreview, now, 0)

	assert.Equal(t, cfg.Milestones[10], state.Milestone)
	assert.Equal(t, cfg.Milestones[10], cfg.ActiveMilestone(state, now))
}

func TestMilestoneExpiresAfterDisplayDuration(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 9, Day: now.Format("2006-01-02")}
	state, _ = cfg.Award(state, 1, ReasonPreview, now, 0)

	assert.NotEmpty(t, cfg.ActiveMilestone(state, now.Add(cfg.MilestoneDisplay-time.Millisecond)))
	assert.Empty(t, cfg.ActiveMilestone(state, now.Add(cfg.MilestoneDisplay+time.Second)))
}

// A single award that jumps over intermediate thresholds reports only the
// value it lands on. Kept from the page's logic, which tests membership of
// the post-award count alone.
func TestMilestoneJumpSkipsIntermediateThresholds(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 10, Day: now.Format("2006-01-02")}
	state, _ = cfg.Award(state, 40, ReasonPreview, now, 0)

	assert.Equal(t, 50, state.Count)
	assert.Equal(t, cfg.Milestones[50], state.Milestone, "only the landing threshold fires")
}

func TestMilestoneJumpBetweenThresholdsFiresNothing(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 5, Day: now.Format("2006-01-02")}
	state, _ = cfg.Award(state, 7, ReasonPreview, now, 0) // 5 -> 12, over 10

	assert.Equal(t, 12, state.Count)
	assert.Empty(t, state.Milestone, "jumping over 10 without landing on it shows nothing")
}

// The worked example: ten taps of 1 reach exactly 10 and show the 10-rep
// milestone; a follow-up award of 40 clamps to 50 and shows only the 50 one.
func TestWorkedExampleTenTapsThenBigAward(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	var state CounterState
	milestones := []string{}

	for i := 0; i < 10; i++ {
		// Space taps out so each cooldown has elapsed.
		tick := now.Add(time.Duration(i) * 2 * time.Second)
		var accepted bool
		state, accepted = cfg.Award(state, 1, ReasonTap, tick, 0)
		assert.True(t, accepted)
		if state.Milestone != "" && (len(milestones) == 0 || milestones[len(milestones)-1] != state.Milestone) {
			milestones = append(milestones, state.Milestone)
		}
	}

	assert.Equal(t, 10, state.Count)
	assert.Equal(t, []string{cfg.Milestones[10]}, milestones)

	state, accepted := cfg.Award(state, 40, ReasonPreview, now.Add(time.Minute), 0)
	assert.True(t, accepted)
	assert.Equal(t, 50, state.Count)
	assert.Equal(t, cfg.Milestones[50], state.Milestone)
}

func TestZeroAndNegativeDeltasRefused(t *testing.T) {
	cfg := DefaultCounterConfig()
	now := testClock()

	state := CounterState{Count: 7, Day: now.Format("2006-01-02")}

	next, accepted := cfg.Award(state, 0, ReasonPreview, now, 0)
	assert.False(t, accepted)
	assert.Equal(t, 7, next.Count)

	next, accepted = cfg.Award(state, -5, ReasonPreview, now, 0)
	assert.False(t, accepted)
	assert.Equal(t, 7, next.Count)
}
