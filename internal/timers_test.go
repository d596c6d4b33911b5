package internal

import (
	"errors"
	"sync"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimersFloorAtZero(t *testing.T) {
	var timers Timers
	timers.SetDelay(2)
	timers.SetSound(1)
	for i := 0; i < 4; i++ {
		timers.Tick()
	}
	assert.Equal(t, uint8(0), timers.Delay())
	assert.Equal(t, uint8(0), timers.Sound())
}

func TestTimersConcurrentTick(t *testing.T) {
	var timers Timers
	timers.SetDelay(200)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			timers.Tick()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = timers.Delay()
		}
	}()
	wg.Wait()
	assert.Equal(t, uint8(100), timers.Delay())
}

func TestCallStack(t *testing.T) {
	s := newCallStack(2)
	_, err := s.pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	assert.NoError(t, s.push(0x202))
	assert.NoError(t, s.push(0x304))
	assert.True(t, errors.Is(s.push(0x406), ErrStackOverflow))
	assert.Equal(t, 2, s.depth())

	addr, err := s.pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x304), addr)
	addr, err = s.pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x202), addr)
}

func TestKeypad(t *testing.T) {
	var k Keypad
	_, ok := k.takePress()
	assert.False(t, ok)

	k.Set(0x1A, true) // only the low nibble counts
	assert.True(t, k.IsPressed(0xA))
	key, ok := k.takePress()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xA), key)
	_, ok = k.takePress()
	assert.False(t, ok)

	k.Set(0xA, false)
	assert.False(t, k.IsPressed(0xA))
	_, ok = k.takePress()
	assert.False(t, ok)
}
