package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want Minutes
	}{
		{in: "10:30 AM", want: 630},
		{in: "9:05 am", want: 545},
		{in: "12:00 pm", want: 720},
		{in: "12:15 am", want: 15},
		{in: "1:45 pm", want: 825},
		{in: "EOD", want: EndOfDay},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseClock("noon")
	assert.Error(t, err)
	_, err = ParseClock("13:00 pm")
	assert.Error(t, err)
}

func TestParseWallClock(t *testing.T) {
	got, err := ParseWallClock("13:07")
	require.NoError(t, err)
	assert.Equal(t, Minutes(787), got)

	_, err = ParseWallClock("24:00")
	assert.Error(t, err)
	_, err = ParseWallClock("9")
	assert.Error(t, err)
}

func TestMinutesString(t *testing.T) {
	assert.Equal(t, "9:05", Minutes(545.9).String())
	assert.Equal(t, "13:00", Minutes(780).String())
	assert.Equal(t, "EOD", EndOfDay.String())
}
