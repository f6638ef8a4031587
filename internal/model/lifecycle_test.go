package model

import (
	"testing"
	"time"

	"calixo/pkg/daykey"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestIsExpired(t *testing.T) {
	loc := daykey.Location()
	finishedAt := time.Date(2024, time.March, 1, 23, 0, 0, 0, loc)

	tests := []struct {
		name     string
		uc       *UserChallenge
		now      time.Time
		expected bool
	}{
		{
			name:     "nil attempt",
			uc:       nil,
			now:      finishedAt,
			expected: false,
		},
		{
			name:     "in progress never expires",
			uc:       &UserChallenge{Status: StatusInProgress},
			now:      finishedAt.AddDate(0, 0, 5),
			expected: false,
		},
		{
			name:     "finished same day",
			uc:       &UserChallenge{Status: StatusFinished, FinishedAt: &finishedAt},
			now:      finishedAt.Add(30 * time.Minute),
			expected: false,
		},
		{
			name:     "finished before rollover of next day",
			uc:       &UserChallenge{Status: StatusFinished, FinishedAt: &finishedAt},
			now:      time.Date(2024, time.March, 2, 1, 59, 0, 0, loc),
			expected: false,
		},
		{
			name:     "finished past rollover of next day",
			uc:       &UserChallenge{Status: StatusFinished, FinishedAt: &finishedAt},
			now:      time.Date(2024, time.March, 2, 2, 0, 0, 0, loc),
			expected: true,
		},
		{
			name:     "finished without timestamp",
			uc:       &UserChallenge{Status: StatusFinished},
			now:      finishedAt.AddDate(0, 0, 3),
			expected: false,
		},
		{
			name:     "claimed is terminal",
			uc:       &UserChallenge{Status: StatusClaimed, FinishedAt: &finishedAt},
			now:      finishedAt.AddDate(0, 0, 3),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsExpired(tt.uc, tt.now))
		})
	}
}

func TestEffectiveReward(t *testing.T) {
	focus := &Challenge{Type: ChallengeTypeFocus, Reward: 5, DurationMinutes: intPtr(30)}
	daily := &Challenge{Type: ChallengeTypeDaily, Reward: 3}

	assert.Equal(t, 5, EffectiveReward(focus, nil))
	assert.Equal(t, 2, EffectiveReward(focus, FocusSession{DurationMinutes: intPtr(150)}))
	assert.Equal(t, 2, EffectiveReward(focus, TimerSession{DurationMinutes: intPtr(125)}))
	assert.Equal(t, 0, EffectiveReward(focus, FocusSession{DurationMinutes: intPtr(59)}))
	assert.Equal(t, 0, EffectiveReward(focus, FocusSession{DurationMinutes: intPtr(-10)}))
	assert.Equal(t, 5, EffectiveReward(focus, FocusSession{BlockedApps: []string{"x"}}))
	assert.Equal(t, 3, EffectiveReward(daily, TimerSession{DurationMinutes: intPtr(240)}))
	assert.Equal(t, 0, EffectiveReward(nil, nil))
}

func TestEffectiveDuration(t *testing.T) {
	withDefault := &Challenge{Type: ChallengeTypeFocus, DurationMinutes: intPtr(45)}
	withoutDefault := &Challenge{Type: ChallengeTypeDaily}

	assert.Equal(t, 90, EffectiveDuration(withDefault, FocusSession{DurationMinutes: intPtr(90)}))
	assert.Equal(t, 45, EffectiveDuration(withDefault, nil))
	assert.Equal(t, 45, EffectiveDuration(withDefault, FocusSession{}))
	assert.Equal(t, DefaultDurationMinutes, EffectiveDuration(withoutDefault, nil))
	assert.Equal(t, DefaultDurationMinutes, EffectiveDuration(nil, nil))
}

func TestNewActiveChallenge(t *testing.T) {
	ch := &Challenge{Type: ChallengeTypeFocus, Reward: 1, DurationMinutes: intPtr(60)}
	uc := &UserChallenge{Status: StatusFinished, SessionData: FocusSession{DurationMinutes: intPtr(125)}}

	active := NewActiveChallenge(uc, ch)
	assert.Equal(t, 2, active.Reward)
	assert.Equal(t, 125, active.DurationMinutes)
	assert.Same(t, uc, active.UserChallenge)
	assert.Same(t, ch, active.Challenge)
}

func TestChallengeStatus(t *testing.T) {
	assert.True(t, StatusInProgress.Active())
	assert.True(t, StatusFinished.Active())
	assert.False(t, StatusPending.Active())
	assert.False(t, StatusClaimed.Active())
	assert.True(t, StatusClaimed.Terminal())
	assert.True(t, StatusNotClaimed.Terminal())
	assert.False(t, StatusFinished.Terminal())
}
