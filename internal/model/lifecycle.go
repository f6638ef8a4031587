package model

import (
	"time"

	"calixo/pkg/daykey"
)

// IsExpired reports whether a finished attempt was left unclaimed past the
// challenge day it was finished in.
func IsExpired(uc *UserChallenge, now time.Time) bool {
	if uc == nil || uc.Status != StatusFinished || uc.FinishedAt == nil {
		return false
	}
	return daykey.Before(daykey.For(*uc.FinishedAt), daykey.Today(now))
}

// EffectiveDuration is the session override, then the catalog default, then
// DefaultDurationMinutes.
func EffectiveDuration(ch *Challenge, sd SessionData) int {
	if sd != nil {
		if d := sd.DurationOverride(); d != nil {
			return *d
		}
	}
	if ch != nil && ch.DurationMinutes != nil {
		return *ch.DurationMinutes
	}
	return DefaultDurationMinutes
}

// EffectiveReward pays focus challenges with a duration override one unit per
// full hour. Everything else pays the catalog reward.
func EffectiveReward(ch *Challenge, sd SessionData) int {
	if ch == nil {
		return 0
	}
	if ch.Type == ChallengeTypeFocus && sd != nil {
		if d := sd.DurationOverride(); d != nil {
			if *d <= 0 {
				return 0
			}
			return *d / 60
		}
	}
	return ch.Reward
}
