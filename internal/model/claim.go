package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim is a health insurance claim as stored in the `claims` table.  A
// claim row is written exactly once, after adjudication completes, and is
// immutable afterwards: the stored status is always APPROVED, PARTIAL or
// REJECTED, never PENDING.
//
// Fields:
//  ID             – generated UUID primary key.
//  MemberID       – member the claim is filed for.
//  ProviderID     – provider that rendered the service.
//  DiagnosisCode  – diagnosis reference code.
//  ProcedureCode  – procedure reference code.
//  ClaimAmount    – amount requested, always positive.
//  ApprovedAmount – amount granted by adjudication, zero when rejected.
//  Status         – adjudication outcome.
//  FraudFlag      – whether the fraud rule fired.
//  FraudReason    – human-readable reason; also carries the validation
//                   failure message for rejected claims.
//  Notes          – optional free-form text from the submitter.
//  CreatedAt      – row creation timestamp.
//  UpdatedAt      – last update timestamp.
//  ProcessedAt    – when adjudication completed.
type Claim struct {
	ID             string          // claims.id (UUID)
	MemberID       string          // claims.member_id
	ProviderID     string          // claims.provider_id
	DiagnosisCode  string          // claims.diagnosis_code
	ProcedureCode  string          // claims.procedure_code
	ClaimAmount    decimal.Decimal // claims.claim_amount DECIMAL(12,2)
	ApprovedAmount decimal.Decimal // claims.approved_amount DECIMAL(12,2)
	Status         ClaimStatus     // claims.status
	FraudFlag      bool            // claims.fraud_flag
	FraudReason    *string         // claims.fraud_reason (nullable)
	Notes          *string         // claims.notes (nullable)
	CreatedAt      time.Time       // claims.created_at
	UpdatedAt      time.Time       // claims.updated_at
	ProcessedAt    *time.Time      // claims.processed_at (nullable)
}
