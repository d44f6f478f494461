package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMember_RemainingBenefit(t *testing.T) {
	m := Member{
		Status:       MemberActive,
		BenefitLimit: decimal.RequireFromString("50000.00"),
		UsedBenefit:  decimal.RequireFromString("10000.00"),
	}
	if got := m.RemainingBenefit(); !got.Equal(decimal.RequireFromString("40000.00")) {
		t.Errorf("remaining = %s, want 40000.00", got)
	}
}

func TestMember_IsEligible(t *testing.T) {
	limit := decimal.RequireFromString("1000.00")

	t.Run("active with balance", func(t *testing.T) {
		m := Member{Status: MemberActive, BenefitLimit: limit, UsedBenefit: decimal.Zero}
		if !m.IsEligible() {
			t.Error("expected eligible")
		}
	})
	t.Run("inactive", func(t *testing.T) {
		m := Member{Status: MemberInactive, BenefitLimit: limit, UsedBenefit: decimal.Zero}
		if m.IsEligible() {
			t.Error("inactive member must not be eligible")
		}
	})
	t.Run("exhausted", func(t *testing.T) {
		m := Member{Status: MemberActive, BenefitLimit: limit, UsedBenefit: limit}
		if m.IsEligible() {
			t.Error("exhausted member must not be eligible")
		}
	})
	t.Run("overdrawn", func(t *testing.T) {
		m := Member{Status: MemberActive, BenefitLimit: limit,
			UsedBenefit: decimal.RequireFromString("1200.00")}
		if m.IsEligible() {
			t.Error("overdrawn member must not be eligible")
		}
	})
}
