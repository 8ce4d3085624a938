package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeHash_KnownValues(t *testing.T) {
	tests := []struct {
		code  string
		hash  int64
		index int
	}{
		{"426247", 1536550333, 5},
		{"782523", 1627862565, 5},
		{"934721", 1680564764, 4},
		{"000000", 1420005888, 0},
		{"", 0, 0},
		{"a", 97, 1},
		{"Ωx", 29167, 7},
		// Переполнение 32 бит при сдвиге
		{"1234567890", 2240804507, 3},
		{"patient-code-long", -1466338924, 4},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.hash, CodeHash(tt.code))
			assert.Equal(t, tt.index, ColorIndex(tt.code))
		})
	}
}

func TestColorFor_Deterministic(t *testing.T) {
	for _, code := range []string{"426247", "782523", "934721", "", "x"} {
		first := ColorFor(code)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, ColorFor(code))
		}
	}
}

func TestColorFor_CollisionsAllowed(t *testing.T) {
	assert.Equal(t, ColorFor("426247"), ColorFor("782523"))
	assert.Equal(t, "indigo", ColorFor("426247").Name)
	assert.Equal(t, "pink", ColorFor("934721").Name)
}

func TestDisplayCode(t *testing.T) {
	assert.Equal(t, FallbackCode, DisplayCode(""))
	assert.Equal(t, "426247", DisplayCode("426247"))
}
