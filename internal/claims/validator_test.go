package claims

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/medinova/health-claims-api/internal/model"
	"github.com/medinova/health-claims-api/internal/repository"
)

// fakeStore serves reference data from maps, standing in for the
// transaction-bound store the ledger uses in production.
type fakeStore struct {
	members    map[string]model.Member
	providers  map[string]model.Provider
	diagnoses  map[string]model.Diagnosis
	procedures map[string]model.Procedure
}

func (s *fakeStore) Member(_ context.Context, id string) (model.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return model.Member{}, repository.ErrNotFound
	}
	return m, nil
}

func (s *fakeStore) Provider(_ context.Context, id string) (model.Provider, error) {
	p, ok := s.providers[id]
	if !ok {
		return model.Provider{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *fakeStore) Diagnosis(_ context.Context, code string) (model.Diagnosis, error) {
	d, ok := s.diagnoses[code]
	if !ok {
		return model.Diagnosis{}, repository.ErrNotFound
	}
	return d, nil
}

func (s *fakeStore) Procedure(_ context.Context, code string) (model.Procedure, error) {
	p, ok := s.procedures[code]
	if !ok {
		return model.Procedure{}, repository.ErrNotFound
	}
	return p, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newTestStore mirrors the demo data the seeder loads.
func newTestStore() *fakeStore {
	return &fakeStore{
		members: map[string]model.Member{
			"M123": {ID: "M123", Name: "John Doe", Status: model.MemberActive,
				BenefitLimit: dec("100000.00"), UsedBenefit: dec("10000.00")},
			"M124": {ID: "M124", Name: "Jane Smith", Status: model.MemberActive,
				BenefitLimit: dec("50000.00"), UsedBenefit: dec("10000.00")},
			"M125": {ID: "M125", Name: "Bob Johnson", Status: model.MemberInactive,
				BenefitLimit: dec("75000.00"), UsedBenefit: dec("0.00")},
			"M130": {ID: "M130", Name: "Low Balance", Status: model.MemberActive,
				BenefitLimit: dec("10000.00"), UsedBenefit: dec("7000.00")},
			"M131": {ID: "M131", Name: "Spent Out", Status: model.MemberActive,
				BenefitLimit: dec("10000.00"), UsedBenefit: dec("10000.00")},
		},
		providers: map[string]model.Provider{
			"H456": {ID: "H456", Name: "Nairobi General Hospital", IsActive: true},
			"H458": {ID: "H458", Name: "Kisumu Health Clinic", IsActive: false},
		},
		diagnoses: map[string]model.Diagnosis{
			"D001": {Code: "D001", Description: "Malaria"},
		},
		procedures: map[string]model.Procedure{
			"P001": {Code: "P001", Description: "General Consultation", AverageCost: dec("5000.00")},
			"P005": {Code: "P005", Description: "Hospital Admission (3 days)", AverageCost: dec("45000.00")},
		},
	}
}

func process(t *testing.T, amount string) (Decision, error) {
	t.Helper()
	v := NewValidator(newTestStore())
	return v.ValidateAndProcess(context.Background(), "M123", "H456", "D001", "P001", dec(amount))
}

func TestValidateAndProcess_ApprovesWithinBenefit(t *testing.T) {
	d, err := process(t, "7500.00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != model.ClaimApproved {
		t.Errorf("expected APPROVED, got %s", d.Status)
	}
	if !d.ApprovedAmount.Equal(dec("7500.00")) {
		t.Errorf("expected approved amount 7500.00, got %s", d.ApprovedAmount)
	}
	if d.FraudFlag {
		t.Error("expected no fraud flag")
	}
	if d.FraudReason != nil {
		t.Errorf("expected nil fraud reason, got %q", *d.FraudReason)
	}
}

func TestValidateAndProcess_ExactDecimalBookkeeping(t *testing.T) {
	// M123 carries limit 100000.00 with 10000.00 used. A 15000.00 claim
	// against the 45000.00 admission procedure approves in full, and booking
	// it must land on exactly 25000.00 used with no floating drift.
	v := NewValidator(newTestStore())
	d, err := v.ValidateAndProcess(context.Background(), "M123", "H456", "D001", "P005", dec("15000.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != model.ClaimApproved {
		t.Fatalf("expected APPROVED, got %s", d.Status)
	}
	if !d.ApprovedAmount.Equal(dec("15000.00")) {
		t.Errorf("approved = %s, want 15000.00", d.ApprovedAmount)
	}
	after := dec("10000.00").Add(d.ApprovedAmount)
	if !after.Equal(dec("25000.00")) {
		t.Errorf("used benefit after booking = %s, want exactly 25000.00", after)
	}
}

func TestValidateAndProcess_PartialWhenBenefitInsufficient(t *testing.T) {
	v := NewValidator(newTestStore())
	// M130 has 3000.00 remaining; a 5000.00 claim sits under the fraud
	// threshold but over the balance, so it is granted only what remains.
	d, err := v.ValidateAndProcess(context.Background(), "M130", "H456", "D001", "P001", dec("5000.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != model.ClaimPartial {
		t.Errorf("expected PARTIAL, got %s", d.Status)
	}
	if !d.ApprovedAmount.Equal(dec("3000.00")) {
		t.Errorf("expected approved amount 3000.00, got %s", d.ApprovedAmount)
	}
}

func TestValidateAndProcess_FraudBoundary(t *testing.T) {
	t.Run("exactly at threshold passes", func(t *testing.T) {
		// 2.0 x 5000.00 = 10000.00; exactly at the line is not fraud.
		d, err := process(t, "10000.00")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.FraudFlag {
			t.Error("claim at exactly 2x average cost must not be flagged")
		}
		if d.Status != model.ClaimApproved {
			t.Errorf("expected APPROVED, got %s", d.Status)
		}
	})

	t.Run("one cent above is flagged", func(t *testing.T) {
		d, err := process(t, "10000.01")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !d.FraudFlag {
			t.Fatal("claim above 2x average cost must be flagged")
		}
		if d.Status != model.ClaimRejected {
			t.Errorf("expected REJECTED, got %s", d.Status)
		}
		if !d.ApprovedAmount.IsZero() {
			t.Errorf("expected approved amount 0, got %s", d.ApprovedAmount)
		}
	})
}

func TestValidateAndProcess_FraudReasonMessage(t *testing.T) {
	d, err := process(t, "150000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.FraudReason == nil {
		t.Fatal("expected a fraud reason")
	}
	want := "Claim amount (150000) exceeds 2.0x average procedure cost (5000.00)"
	if *d.FraudReason != want {
		t.Errorf("fraud reason mismatch:\n got  %q\n want %q", *d.FraudReason, want)
	}
}

func TestValidateAndProcess_FraudOverridesBenefitShortfall(t *testing.T) {
	v := NewValidator(newTestStore())
	// 12000.00 exceeds both M130's 3000.00 remaining benefit and 2x the
	// 5000.00 consultation cost. Fraud must win over PARTIAL.
	d, err := v.ValidateAndProcess(context.Background(), "M130", "H456", "D001", "P001", dec("12000.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Status != model.ClaimRejected {
		t.Errorf("expected REJECTED, got %s", d.Status)
	}
	if !d.FraudFlag {
		t.Error("expected fraud flag")
	}
}

func TestValidateAndProcess_StageFailures(t *testing.T) {
	cases := []struct {
		name       string
		member     string
		provider   string
		diagnosis  string
		procedure  string
		wantReason string
	}{
		{"unknown member", "M999", "H456", "D001", "P001", "Member M999 not found"},
		{"inactive member", "M125", "H456", "D001", "P001", "Member M125 is not active (status: INACTIVE)"},
		{"exhausted member", "M131", "H456", "D001", "P001", "Member M131 has exhausted benefit limit"},
		{"unknown provider", "M123", "H999", "D001", "P001", "Provider H999 not found"},
		{"inactive provider", "M123", "H458", "D001", "P001", "Provider H458 is not active"},
		{"unknown diagnosis", "M123", "H456", "D999", "P001", "Diagnosis code D999 not found"},
		{"unknown procedure", "M123", "H456", "D001", "P999", "Procedure code P999 not found"},
	}

	v := NewValidator(newTestStore())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.ValidateAndProcess(context.Background(), tc.member, tc.provider, tc.diagnosis, tc.procedure, dec("1000.00"))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Reason != tc.wantReason {
				t.Errorf("reason mismatch:\n got  %q\n want %q", verr.Reason, tc.wantReason)
			}
		})
	}
}

func TestValidateAndProcess_StageOrder(t *testing.T) {
	// Everything about this claim is wrong; the member check runs first and
	// its failure is the one reported.
	v := NewValidator(newTestStore())
	_, err := v.ValidateAndProcess(context.Background(), "M999", "H999", "D999", "P999", dec("1.00"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != "Member M999 not found" {
		t.Errorf("expected member failure first, got %q", verr.Reason)
	}
}

func TestDetermineApproval(t *testing.T) {
	t.Run("full approval", func(t *testing.T) {
		status, amount := determineApproval(dec("100.00"), dec("500.00"), false)
		if status != model.ClaimApproved || !amount.Equal(dec("100.00")) {
			t.Errorf("got %s/%s", status, amount)
		}
	})
	t.Run("partial caps at remaining", func(t *testing.T) {
		status, amount := determineApproval(dec("600.00"), dec("500.00"), false)
		if status != model.ClaimPartial || !amount.Equal(dec("500.00")) {
			t.Errorf("got %s/%s", status, amount)
		}
	})
	t.Run("exact remaining is full approval", func(t *testing.T) {
		status, amount := determineApproval(dec("500.00"), dec("500.00"), false)
		if status != model.ClaimApproved || !amount.Equal(dec("500.00")) {
			t.Errorf("got %s/%s", status, amount)
		}
	})
	t.Run("fraud rejects regardless of benefit", func(t *testing.T) {
		status, amount := determineApproval(dec("100.00"), dec("500.00"), true)
		if status != model.ClaimRejected || !amount.IsZero() {
			t.Errorf("got %s/%s", status, amount)
		}
	})
}
