package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member represents an insurance member as stored in the `members` table.
// The member identifier is assigned externally (e.g. by the insurer's
// enrollment system) and used verbatim as the primary key.  Benefit amounts
// are exact decimals; used_benefit only ever grows through the claims
// ledger, which locks the row while adjudicating.
//
// Fields:
//  ID           – external member identifier (members.id).
//  Name         – member full name.
//  Email        – contact email.
//  PhoneNumber  – optional contact phone.
//  Status       – lifecycle state (ACTIVE, INACTIVE, SUSPENDED).
//  BenefitLimit – total insurance allowance in currency units.
//  UsedBenefit  – allowance consumed by approved claims so far.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Member struct {
	ID           string          // members.id
	Name         string          // members.name
	Email        string          // members.email
	PhoneNumber  *string         // members.phone_number (nullable)
	Status       MemberStatus    // members.status
	BenefitLimit decimal.Decimal // members.benefit_limit DECIMAL(12,2)
	UsedBenefit  decimal.Decimal // members.used_benefit DECIMAL(12,2)
	CreatedAt    time.Time       // members.created_at
	UpdatedAt    time.Time       // members.updated_at
}

// RemainingBenefit is the allowance still available to the member.  It can
// read negative only transiently; adjudication rejects further consumption
// once it reaches zero.
func (m Member) RemainingBenefit() decimal.Decimal {
	return m.BenefitLimit.Sub(m.UsedBenefit)
}

// IsEligible reports whether the member may have claims adjudicated: the
// account must be ACTIVE with benefit remaining.
func (m Member) IsEligible() bool {
	return m.Status == MemberActive && m.RemainingBenefit().IsPositive()
}
