// Package claims implements claim adjudication: the validation and
// fraud-detection pipeline and the ledger that persists its decisions.
package claims

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// fraudMultiplier is the fixed fraud threshold factor: a claim above
// 2.0x the procedure's average cost gets flagged.
var fraudMultiplier = decimal.RequireFromString("2.0")

// ValidationError reports a claim that failed a validation stage.  The
// message is written verbatim into the rejected claim's fraud_reason, so it
// must be self-explanatory for whoever reads the claim record later.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func failf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Store supplies the reference data the validator checks a claim against.
// The ledger binds an implementation to its transaction so that the member
// row stays locked for the duration of adjudication; tests substitute an
// in-memory fake.  Absent rows are reported as repository.ErrNotFound.
type Store interface {
	Member(ctx context.Context, id string) (model.Member, error)
	Provider(ctx context.Context, id string) (model.Provider, error)
	Diagnosis(ctx context.Context, code string) (model.Diagnosis, error)
	Procedure(ctx context.Context, code string) (model.Procedure, error)
}

// Decision is the validator's adjudication outcome for a claim.
type Decision struct {
	Status         model.ClaimStatus
	ApprovedAmount decimal.Decimal
	FraudFlag      bool
	FraudReason    *string
}

// Validator runs the five-stage claim pipeline: member, provider,
// diagnosis, procedure, fraud.  Stages run strictly in that order and the
// first failure short-circuits the rest.
type Validator struct {
	store Store
}

// NewValidator returns a Validator reading reference data from store.
func NewValidator(store Store) *Validator { return &Validator{store: store} }

// ValidateAndProcess validates the claim and computes the approval
// decision.  A *ValidationError means the claim itself is bad (unknown
// entities, ineligible member); any other error is an infrastructure
// failure.  Calling it twice with the same inputs and reference data yields
// the same decision; nothing is mutated here.
func (v *Validator) ValidateAndProcess(ctx context.Context, memberID, providerID, diagnosisCode, procedureCode string, claimAmount decimal.Decimal) (Decision, error) {
	member, err := v.validateMember(ctx, memberID)
	if err != nil {
		return Decision{}, err
	}
	if err := v.validateProvider(ctx, providerID); err != nil {
		return Decision{}, err
	}
	if err := v.validateDiagnosis(ctx, diagnosisCode); err != nil {
		return Decision{}, err
	}
	procedure, err := v.validateProcedure(ctx, procedureCode)
	if err != nil {
		return Decision{}, err
	}

	fraud, reason := checkFraud(claimAmount, procedure)
	status, approved := determineApproval(claimAmount, member.RemainingBenefit(), fraud)

	d := Decision{Status: status, ApprovedAmount: approved, FraudFlag: fraud}
	if fraud {
		d.FraudReason = &reason
	}
	return d, nil
}

func (v *Validator) validateMember(ctx context.Context, id string) (model.Member, error) {
	member, err := v.store.Member(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Member{}, failf("Member %s not found", id)
		}
		return model.Member{}, err
	}
	if member.Status != model.MemberActive {
		return model.Member{}, failf("Member %s is not active (status: %s)", id, member.Status)
	}
	if !member.RemainingBenefit().IsPositive() {
		return model.Member{}, failf("Member %s has exhausted benefit limit", id)
	}
	return member, nil
}

func (v *Validator) validateProvider(ctx context.Context, id string) error {
	provider, err := v.store.Provider(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failf("Provider %s not found", id)
		}
		return err
	}
	if !provider.IsActive {
		return failf("Provider %s is not active", id)
	}
	return nil
}

func (v *Validator) validateDiagnosis(ctx context.Context, code string) error {
	if _, err := v.store.Diagnosis(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return failf("Diagnosis code %s not found", code)
		}
		return err
	}
	return nil
}

func (v *Validator) validateProcedure(ctx context.Context, code string) (model.Procedure, error) {
	procedure, err := v.store.Procedure(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Procedure{}, failf("Procedure code %s not found", code)
		}
		return model.Procedure{}, err
	}
	return procedure, nil
}

// checkFraud applies the fixed multiplier rule.  A claim exactly at the
// threshold is not fraud; only strictly above counts.
func checkFraud(claimAmount decimal.Decimal, procedure model.Procedure) (bool, string) {
	threshold := procedure.AverageCost.Mul(fraudMultiplier)
	if claimAmount.GreaterThan(threshold) {
		reason := fmt.Sprintf("Claim amount (%s) exceeds 2.0x average procedure cost (%s)",
			claimAmount, procedure.AverageCost)
		return true, reason
	}
	return false, ""
}

// determineApproval maps (claim amount, remaining benefit, fraud flag) to a
// final status and approved amount.  Fraud overrides benefit sufficiency;
// a claim above the remaining benefit is approved only up to what remains.
func determineApproval(claimAmount, remainingBenefit decimal.Decimal, fraud bool) (model.ClaimStatus, decimal.Decimal) {
	if fraud {
		return model.ClaimRejected, decimal.RequireFromString("0.00")
	}
	if claimAmount.GreaterThan(remainingBenefit) {
		return model.ClaimPartial, remainingBenefit
	}
	return model.ClaimApproved, claimAmount
}
