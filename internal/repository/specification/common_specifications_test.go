package specification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain prefix untouched", "alice:algorithms:", "alice:algorithms:"},
		{"percent escaped", "a%:math:", `a\%:math:`},
		{"underscore escaped", "bob_a:db_1:", `bob\_a:db\_1:`},
		{"backslash escaped first", `a\%:x:`, `a\\\%:x:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.input))
		})
	}
}

// A scope named "a%" must not produce a pattern matching "axe"'s threads.
func TestEscapeLikePreventsPrefixWidening(t *testing.T) {
	pattern := EscapeLike("a%:course:") + "%"
	assert.Equal(t, `a\%:course:%`, pattern)
	assert.NotEqual(t, "a%:course:%", pattern)
}
