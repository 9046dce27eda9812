package phantom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		name     string
		key      Key
		expected string
	}{
		{
			name:     "j",
			key:      Key{Codepoint: 'j'},
			expected: "j",
		},
		{
			name:     "ctrl+a",
			key:      Key{Codepoint: 'a', Modifiers: ModCtrl},
			expected: "<c-a>",
		},
		{
			name:     "alt+a",
			key:      Key{Codepoint: 'a', Modifiers: ModAlt},
			expected: "<a-a>",
		},
		{
			name:     "shift+tab",
			key:      Key{Codepoint: KeyTab, Modifiers: ModShift},
			expected: "<s-tab>",
		},
		{
			name:     "ctrl+alt+shift+up",
			key:      Key{Codepoint: KeyUp, Modifiers: ModCtrl | ModAlt | ModShift},
			expected: "<c-a-s-up>",
		},
		{
			name:     "enter",
			key:      Key{Codepoint: KeyEnter},
			expected: "<enter>",
		},
		{
			name:     "escape",
			key:      Key{Codepoint: KeyEsc},
			expected: "<esc>",
		},
		{
			name:     "space",
			key:      Key{Codepoint: KeySpace},
			expected: "<space>",
		},
		{
			name:     "backspace",
			key:      Key{Codepoint: KeyBackspace},
			expected: "<bs>",
		},
		{
			name:     "f1",
			key:      Key{Codepoint: KeyF01},
			expected: "<f1>",
		},
		{
			name:     "raw control byte",
			key:      Key{Codepoint: 0x01},
			expected: "<c-a>",
		},
		{
			name:     "super+meta+hyper+x",
			key:      Key{Codepoint: 'x', Modifiers: ModSuper | ModMeta | ModHyper},
			expected: "<meta-hyper-super-x>",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.key.String())
		})
	}
}

func TestPriorityString(t *testing.T) {
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "normal", PriorityNormal.String())
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "critical", PriorityCritical.String())
}
