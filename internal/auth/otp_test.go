package auth

import (
	"strconv"
	"testing"
)

func TestGenerateOTP_SixDigits(t *testing.T) {
	// The generator is random; sample it enough times to catch range bugs.
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric: %v", code, err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d outside [100000, 999999]", n)
		}
	}
}

func TestHashOTP_Deterministic(t *testing.T) {
	a := HashOTP("123456")
	b := HashOTP("123456")
	if a != b {
		t.Errorf("same code hashed to %q and %q", a, b)
	}
	if a == HashOTP("123457") {
		t.Error("different codes produced the same hash")
	}
	// sha256 hex digest
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestVerifyOTP(t *testing.T) {
	hash := HashOTP("654321")
	if !VerifyOTP(hash, "654321") {
		t.Error("correct code rejected")
	}
	if VerifyOTP(hash, "654320") {
		t.Error("wrong code accepted")
	}
	if VerifyOTP(hash, "") {
		t.Error("empty code accepted")
	}
}
