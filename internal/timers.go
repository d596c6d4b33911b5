package internal

import "sync"

// Timers holds the delay and sound timers. The host ticks them at 60 Hz on its
// own goroutine while instructions read and write them, so every access goes
// through the mutex.
type Timers struct {
	mu    sync.Mutex
	delay uint8
	sound uint8
}

// Tick decrements both timers, stopping at zero.
func (t *Timers) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the value of DT
func (t *Timers) Delay() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.delay
}

// Sound returns the value of ST
func (t *Timers) Sound() uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sound
}

// SetDelay sets the value of DT
func (t *Timers) SetDelay(v uint8) {
	t.mu.Lock()
	t.delay = v
	t.mu.Unlock()
}

// SetSound sets the value of ST
func (t *Timers) SetSound(v uint8) {
	t.mu.Lock()
	t.sound = v
	t.mu.Unlock()
}

func (t *Timers) reset() {
	t.mu.Lock()
	t.delay, t.sound = 0, 0
	t.mu.Unlock()
}
