package model

import "testing"

func TestParseClaimStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "PARTIAL", "REJECTED"} {
		if _, err := ParseClaimStatus(s); err != nil {
			t.Errorf("ParseClaimStatus(%q): %v", s, err)
		}
	}
	for _, s := range []string{"", "approved", "DONE"} {
		if _, err := ParseClaimStatus(s); err == nil {
			t.Errorf("ParseClaimStatus(%q) accepted an invalid status", s)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	if r, err := ParseUserRole("ADMIN"); err != nil || r != RoleAdmin {
		t.Errorf("got %q, %v", r, err)
	}
	if _, err := ParseUserRole("OWNER"); err == nil {
		t.Error("unknown role accepted")
	}
}

func TestParseVerificationType(t *testing.T) {
	for _, s := range []string{"LOGIN", "INITIAL_VERIFICATION", "PASSWORD_RESET"} {
		if _, err := ParseVerificationType(s); err != nil {
			t.Errorf("ParseVerificationType(%q): %v", s, err)
		}
	}
	if _, err := ParseVerificationType("MFA"); err == nil {
		t.Error("unknown verification type accepted")
	}
}
