package claims

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// Ledger applies adjudication decisions: it persists the claim record and,
// for granted claims, books the approved amount against the member's
// benefit.  Both writes happen in one transaction, with the member row
// locked first, so concurrent claims for the same member serialize and the
// balance can never drift from the recorded claims.
type Ledger struct {
	db        *sql.DB
	members   *repository.MemberRepo
	providers *repository.ProviderRepo
	refs      *repository.ReferenceRepo
	claims    *repository.ClaimRepo
}

// NewLedger constructs a Ledger and panics if any dependency is nil.
func NewLedger(db *sql.DB, members *repository.MemberRepo, providers *repository.ProviderRepo, refs *repository.ReferenceRepo, claimRepo *repository.ClaimRepo) *Ledger {
	if db == nil || members == nil || providers == nil || refs == nil || claimRepo == nil {
		panic("nil dependency passed to NewLedger")
	}
	return &Ledger{db: db, members: members, providers: providers, refs: refs, claims: claimRepo}
}

// SubmitInput is one inbound claim submission.
type SubmitInput struct {
	MemberID      string
	ProviderID    string
	DiagnosisCode string
	ProcedureCode string
	ClaimAmount   decimal.Decimal
	Notes         *string
}

// txStore binds the validator's reference lookups to the submission
// transaction.  Member acquires the row lock that serializes benefit
// updates per member.
type txStore struct {
	tx *sql.Tx
	l  *Ledger
}

func (s txStore) Member(ctx context.Context, id string) (model.Member, error) {
	return s.l.members.GetForUpdateTx(ctx, s.tx, id)
}

func (s txStore) Provider(ctx context.Context, id string) (model.Provider, error) {
	return s.l.providers.GetTx(ctx, s.tx, id)
}

func (s txStore) Diagnosis(ctx context.Context, code string) (model.Diagnosis, error) {
	return s.l.refs.DiagnosisTx(ctx, s.tx, code)
}

func (s txStore) Procedure(ctx context.Context, code string) (model.Procedure, error) {
	return s.l.refs.ProcedureTx(ctx, s.tx, code)
}

// Submit validates and records one claim.  Validation failures are not
// errors to the caller: the claim is stored REJECTED with the failure
// message as its reason and returned normally.  Exactly one claim row is
// created per call, and at most one member row is mutated.
func (l *Ledger) Submit(ctx context.Context, in SubmitInput) (model.Claim, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Claim{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	validator := NewValidator(txStore{tx: tx, l: l})
	decision, err := validator.ValidateAndProcess(ctx,
		in.MemberID, in.ProviderID, in.DiagnosisCode, in.ProcedureCode, in.ClaimAmount)

	now := time.Now().UTC()
	claim := model.Claim{
		MemberID:      in.MemberID,
		ProviderID:    in.ProviderID,
		DiagnosisCode: in.DiagnosisCode,
		ProcedureCode: in.ProcedureCode,
		ClaimAmount:   in.ClaimAmount,
		Notes:         in.Notes,
		ProcessedAt:   &now,
	}

	var vErr *ValidationError
	switch {
	case err == nil:
		claim.Status = decision.Status
		claim.ApprovedAmount = decision.ApprovedAmount
		claim.FraudFlag = decision.FraudFlag
		claim.FraudReason = decision.FraudReason
	case errors.As(err, &vErr):
		// A malformed claim is data, not an exception: record the rejection.
		claim.Status = model.ClaimRejected
		claim.ApprovedAmount = decimal.RequireFromString("0.00")
		claim.FraudFlag = false
		claim.FraudReason = &vErr.Reason
	default:
		return model.Claim{}, err
	}

	if err := l.claims.CreateTx(ctx, tx, &claim); err != nil {
		return model.Claim{}, err
	}

	if claim.Status == model.ClaimApproved || claim.Status == model.ClaimPartial {
		if err := l.members.AddUsedBenefitTx(ctx, tx, in.MemberID, claim.ApprovedAmount); err != nil {
			return model.Claim{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Claim{}, err
	}
	committed = true
	return claim, nil
}

// Get returns a stored claim or repository.ErrNotFound.
func (l *Ledger) Get(ctx context.Context, id string) (model.Claim, error) {
	return l.claims.GetByID(ctx, id)
}

// List returns claims matching the filter, newest first, and the total
// match count before pagination.
func (l *Ledger) List(ctx context.Context, f repository.ClaimFilter, page, pageSize int) ([]model.Claim, int, error) {
	offset := (page - 1) * pageSize
	return l.claims.List(ctx, f, offset, pageSize)
}
