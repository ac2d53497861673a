package resolution

import (
	"testing"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/resolution"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/civildate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWeeklyOff_SundayUnderEveryPolicy(t *testing.T) {
	t.Parallel()

	policies := []resolution.WeeklyOffPolicy{
		resolution.PolicyAllSaturdaysWorking,
		resolution.PolicyAllSaturdaysOff,
		resolution.PolicyFirstThirdOff,
		resolution.PolicySecondFourthOff,
	}
	for _, policy := range policies {
		assert.True(t, isWeeklyOff("2025-01-26", policy), "policy %q", policy)
	}
}

func TestIsWeeklyOff_Saturdays(t *testing.T) {
	t.Parallel()

	// March 2025 Saturdays: 1st, 8th, 15th, 22nd, 29th.
	tests := []struct {
		name   string
		date   string
		policy resolution.WeeklyOffPolicy
		off    bool
	}{
		{"all working, 1st saturday", "2025-03-01", resolution.PolicyAllSaturdaysWorking, false},
		{"all working, 5th saturday", "2025-03-29", resolution.PolicyAllSaturdaysWorking, false},
		{"all off", "2025-03-15", resolution.PolicyAllSaturdaysOff, true},
		{"week 1&3, 1st", "2025-03-01", resolution.PolicyFirstThirdOff, true},
		{"week 1&3, 2nd", "2025-03-08", resolution.PolicyFirstThirdOff, false},
		{"week 1&3, 3rd", "2025-03-15", resolution.PolicyFirstThirdOff, true},
		{"week 1&3, 4th", "2025-03-22", resolution.PolicyFirstThirdOff, false},
		{"week 2&4, 1st", "2025-03-01", resolution.PolicySecondFourthOff, false},
		{"week 2&4, 2nd", "2025-03-08", resolution.PolicySecondFourthOff, true},
		{"week 2&4, 4th", "2025-03-22", resolution.PolicySecondFourthOff, true},
		{"week 2&4, 5th", "2025-03-29", resolution.PolicySecondFourthOff, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.off, isWeeklyOff(tt.date, tt.policy))
		})
	}
}

func TestIsWeeklyOff_WeekdayNeverOff(t *testing.T) {
	t.Parallel()

	// 2025-03-05 is a Wednesday.
	assert.False(t, isWeeklyOff("2025-03-05", resolution.PolicyAllSaturdaysOff))
}

func TestSanitizePolicy(t *testing.T) {
	t.Parallel()

	policy, ok := resolution.SanitizePolicy("Week 1 & 3 Off")
	require.True(t, ok)
	assert.Equal(t, resolution.PolicyFirstThirdOff, policy)

	policy, ok = resolution.SanitizePolicy("every other tuesday")
	assert.False(t, ok)
	assert.Equal(t, resolution.PolicyAllSaturdaysWorking, policy)

	policy, ok = resolution.SanitizePolicy("")
	assert.False(t, ok)
	assert.Equal(t, resolution.PolicyAllSaturdaysWorking, policy)
}

func TestMonthdayOrdinal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date string
		want int
	}{
		{"2025-03-01", 1},
		{"2025-03-07", 1},
		{"2025-03-08", 2},
		{"2025-03-22", 4},
		{"2025-03-29", 5},
	}
	for _, tt := range tests {
		got, err := civildate.MonthdayOrdinal(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "date %s", tt.date)
	}
}
