package coach

import (
	"sync"
	"time"
)

// Player replays one canned scenario at a time, one line per interval.
//
// It is a small explicit state machine: Idle -> Playing(scenario) -> Idle.
// Each run owns a stop channel as its revocable handle, so teardown or a
// forced restart cancels every pending reveal instead of letting timers fire
// into a dead consumer.
type Player struct {
	Interval time.Duration

	// OnPlay fires synchronously when a run starts, before any line reveals.
	OnPlay func(key string)
	// OnLine fires per revealed line, from the playback goroutine.
	OnLine func(line Line)
	// OnDone fires once when a run reveals its last line. Cancelled runs
	// never reach it.
	OnDone func(key string)

	mu       sync.Mutex
	running  bool
	current  string
	revealed []Line
	stop     chan struct{}
	autoKey  string
}

func NewPlayer(interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultRevealInterval
	}
	return &Player{Interval: interval}
}

// Play starts a run for key. While a run is in flight, further calls are
// ignored (single-flight). Returns false for an ignored call or unknown key.
func (p *Player) Play(key string) bool {
	return p.play(key, false)
}

// SetAutoKey is the externally driven playback path: a changed key always
// forces a fresh run, cancelling whatever was still revealing.
func (p *Player) SetAutoKey(key string) bool {
	p.mu.Lock()
	if key == "" || key == p.autoKey {
		p.mu.Unlock()
		return false
	}
	p.autoKey = key
	p.mu.Unlock()

	return p.play(key, true)
}

func (p *Player) play(key string, force bool) bool {
	script, ok := Script(key)
	if !ok {
		return false
	}

	p.mu.Lock()
	if p.running {
		if !force {
			p.mu.Unlock()
			return false
		}
		close(p.stop)
	}

	stop := make(chan struct{})
	p.running = true
	p.current = key
	p.revealed = nil
	p.stop = stop
	p.mu.Unlock()

	if p.OnPlay != nil {
		p.OnPlay(key)
	}

	go p.run(key, script, stop)
	return true
}

func (p *Player) run(key string, script []Line, stop chan struct{}) {
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	for i, line := range script {
		select {
		case <-stop:
			return
		case <-timer.C:
		}

		p.mu.Lock()
		if p.stop != stop {
			// A forced restart swapped the run out between the tick and here.
			p.mu.Unlock()
			return
		}
		p.revealed = append(p.revealed, line)
		last := i == len(script)-1
		if last {
			p.running = false
		}
		p.mu.Unlock()

		if p.OnLine != nil {
			p.OnLine(line)
		}
		if last {
			if p.OnDone != nil {
				p.OnDone(key)
			}
			return
		}

		timer.Reset(p.Interval)
	}
}

// Stop cancels the in-flight run, if any. Safe to call on teardown and safe
// to call twice.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		close(p.stop)
		p.running = false
		p.stop = nil
	}
}

func (p *Player) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Lines returns the lines revealed so far for the current scenario.
func (p *Player) Lines() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Line, len(p.revealed))
	copy(out, p.revealed)
	return out
}
