package keymap

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		r   rune
		key int
		ok  bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'x', 0x0, true},
		{'X', 0x0, true},
		{'v', 0xF, true},
		{'P', 0, false},
		{' ', 0, false},
	}
	for _, tt := range tests {
		key, ok := Lookup(tt.r)
		assert.Equal(t, tt.ok, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestLayoutCoversKeypad(t *testing.T) {
	seen := make(map[int]bool)
	for _, r := range Keys() {
		key, ok := Lookup(r)
		assert.True(t, ok)
		seen[key] = true
	}
	assert.Equal(t, 16, len(seen))
}
