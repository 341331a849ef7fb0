package service

import (
	"testing"
	"wardenbot/state"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	for _, tc := range []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"15m", 15, true},
		{"30m", 30, true},
		{"1h", 60, true},
		{"12h", 720, true},
		{"1d", 1440, true},
		{"30d", 43200, true},
		{"2w", 20160, true},
		{"90", 90, true},
		{"  3H ", 180, true},
		{"0", 0, false},
		{"-5m", 0, false},
		{"soon", 0, false},
		{"", 0, false},
	} {
		minutes, ok := parseDuration(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.minutes, minutes, "input %q", tc.in)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "15m", formatMinutes(15))
	assert.Equal(t, "1h", formatMinutes(60))
	assert.Equal(t, "12h", formatMinutes(720))
	assert.Equal(t, "1d", formatMinutes(1440))
	assert.Equal(t, "3d", formatMinutes(4320))
	assert.Equal(t, "1w", formatMinutes(10080))
	assert.Equal(t, "4w", formatMinutes(43200))
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "this user is already banned", errorText(state.ErrAlreadyBanned))
	assert.Equal(t, "you cannot target yourself", errorText(state.ErrSelfTarget))
	assert.Equal(t, "you need admin rights for that",
		errorText(&state.PermissionDeniedError{Required: state.TierAdmin}))
}
