package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromoFormatRules_Valid(t *testing.T) {
	rules := DefaultPromoFormatRules()

	cases := []struct {
		name string
		code string
		want bool
	}{
		{"trial marker code", "prEmio42!x", true},
		{"lifetime marker code", "nestor42!bc", true},
		{"too short", "pb1!a", false},
		{"too long", "pbcdeaio12!aaaaaa", false},
		{"missing symbol", "prestor42ab", false},
		{"missing digits", "prestor!?abc", false},
		{"one digit only", "prestor4!ab", false},
		{"missing vowels", "prstnr42!x", false},
		{"too few consonants", "pa1a2!aeio", false},
		{"no marker letter", "doctors42!ae", false},
		{"symbol outside allowed set", "prestor42+ab", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.Valid(tc.code), "code %q", tc.code)
		})
	}
}

func TestPromoFormatRules_IsTrial(t *testing.T) {
	rules := DefaultPromoFormatRules()

	assert.True(t, rules.IsTrial("prEmio42!x"))
	assert.True(t, rules.IsTrial("PREMIO42!X"), "marker match is case-insensitive")
	assert.False(t, rules.IsTrial("nestor42!bc"))
}

func TestSubscription_TrialExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	sub := &Subscription{PlanType: PlanTrial, TrialEndsAt: &past}
	assert.True(t, sub.TrialExpired(now))

	sub = &Subscription{PlanType: PlanTrial, TrialEndsAt: &future}
	assert.False(t, sub.TrialExpired(now))

	sub = &Subscription{PlanType: PlanTrial}
	assert.False(t, sub.TrialExpired(now), "trial with no end date never expires")

	sub = &Subscription{PlanType: PlanPremium, ExpiresAt: &past}
	assert.False(t, sub.TrialExpired(now), "only trial plans can be trial-expired")
}
