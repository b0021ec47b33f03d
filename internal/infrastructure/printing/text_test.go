package printing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ascii unchanged", "Board TI 100", "Board TI 100"},
		{"latin letters", "Ñandú", "\xd1and\xfa"},
		{"dashes", "a – b — c", "a \x96 b \x97 c"},
		{"decomposed accent is composed", "é", "\xe9"},
		{"tab becomes space", "a\tb", "a b"},
		{"line feed kept", "a\nb", "a\nb"},
		{"carriage return dropped", "a\r\nb", "a\nb"},
		{"control characters dropped", "a\x00b\x1bc", "abc"},
		{"unsupported rune replaced", "漢字 ok", "?? ok"},
		{"euro sign", "€", "\x80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, encodeText(tt.input))
		})
	}
}

func TestMeasurer_Wrap(t *testing.T) {
	m := newMeasurer()
	f := styleBody.font

	t.Run("short text stays on one line", func(t *testing.T) {
		lines := m.wrap(f, "Replace luminaire", 100)
		assert.Equal(t, []string{"Replace luminaire"}, lines)
	})

	t.Run("lines fit and keep every word", func(t *testing.T) {
		text := encodeText(longText(5))
		lines := m.wrap(f, text, 80)

		assert.Greater(t, len(lines), 1)
		for _, line := range lines {
			assert.LessOrEqual(t, m.width(f, line), 80.0)
		}
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
	})

	t.Run("explicit line feeds break", func(t *testing.T) {
		lines := m.wrap(f, "first\n\nthird", 100)
		assert.Equal(t, []string{"first", "", "third"}, lines)
	})

	t.Run("over-long word is split", func(t *testing.T) {
		word := strings.Repeat("W", 120)
		lines := m.wrap(f, "start "+word, 30)

		assert.Greater(t, len(lines), 2)
		assert.Equal(t, "start", lines[0])
		assert.Equal(t, word, strings.Join(lines[1:], ""))
		for _, line := range lines {
			assert.LessOrEqual(t, m.width(f, line), 30.0)
		}
	})

	t.Run("repeated spaces collapse", func(t *testing.T) {
		assert.Equal(t, []string{"A B"}, m.wrap(f, "A    B", 100))
	})

	t.Run("empty text yields one empty line", func(t *testing.T) {
		assert.Equal(t, []string{""}, m.wrap(f, "", 100))
	})

	t.Run("trailing line feed keeps a blank line", func(t *testing.T) {
		assert.Equal(t, []string{"done", ""}, m.wrap(f, "done\n", 100))
	})

	t.Run("long digit run is split without loss", func(t *testing.T) {
		digits := strings.Repeat("9", 400)
		lines := m.wrap(styleCell.font, digits, 41)

		assert.Greater(t, len(lines), 5)
		assert.Equal(t, digits, strings.Join(lines, ""))
		for _, line := range lines {
			assert.NotEmpty(t, line)
			assert.LessOrEqual(t, m.width(styleCell.font, line), 41.0)
		}
	})

	t.Run("narrower than one glyph still progresses", func(t *testing.T) {
		assert.Equal(t, []string{"W", "W"}, m.wrap(f, "WW", 0.5))
	})
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", collapseSpaces("  a   b c "))
	assert.Equal(t, "", collapseSpaces("   "))
	assert.Equal(t, "\xd1and\xfa", collapseSpaces("\xd1and\xfa"))
}
