package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberFromRef(t *testing.T) {
	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"42", "AMG-0042", true},
		{"7", "AMG-0007", true},
		{"1234", "AMG-1234", true},
		{"123456", "AMG-123456", true}, // longer ids keep every digit
		{" 42 ", "AMG-0042", true},
		{"0", "", false},
		{"-3", "", false},
		{"abc", "", false},
		{"42abc", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NumberFromRef(tt.ref)
		assert.Equal(t, tt.wantOK, ok, "ref %q", tt.ref)
		assert.Equal(t, tt.want, got, "ref %q", tt.ref)
	}
}

func TestNumberFromRefDeterministic(t *testing.T) {
	a, _ := NumberFromRef("42")
	b, _ := NumberFromRef("42")
	assert.Equal(t, a, b)
}

func TestPriceWithOff(t *testing.T) {
	assert.Equal(t, 100, PriceWithOff(100, 0))
	assert.Equal(t, 90, PriceWithOff(100, 10))
	assert.Equal(t, 67, PriceWithOff(100, 33)) // rounded
	assert.Equal(t, 0, PriceWithOff(100, 100))
	assert.Equal(t, 100, PriceWithOff(100, -5))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusPaid.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}
