package internal

import "sync"

// KeyCount is the number of keys on the hexadecimal keypad
const KeyCount = 16

// Keypad holds the pressed state of the 16 keys. It is written by the host's
// input layer and read by the VM.
//
// Besides the current state, the keypad latches the most recent transition
// from released to pressed. The wait-for-key instruction consumes that latch,
// so a key held down since before the wait started does not satisfy it.
type Keypad struct {
	mu      sync.Mutex
	pressed [KeyCount]bool

	latched  uint8
	hasPress bool
}

// Set records a key press or release. Only the low nibble of key is used.
func (k *Keypad) Set(key uint8, pressed bool) {
	key &= 0xF
	k.mu.Lock()
	defer k.mu.Unlock()
	if pressed && !k.pressed[key] {
		k.latched = key
		k.hasPress = true
	}
	k.pressed[key] = pressed
}

// IsPressed returns whether the key is currently held down.
func (k *Keypad) IsPressed(key uint8) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key&0xF]
}

// takePress returns and clears the latched key press, if any.
func (k *Keypad) takePress() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.hasPress {
		return 0, false
	}
	k.hasPress = false
	return k.latched, true
}

func (k *Keypad) clearPress() {
	k.mu.Lock()
	k.hasPress = false
	k.mu.Unlock()
}
