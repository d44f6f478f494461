package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	sid := NewSessionID("u-1")
	signed, err := NewAccessToken(testSecret, "u-1", sid, 15)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	tc, err := DecodeToken(testSecret, signed.Token, true, false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tc.UserID != "u-1" {
		t.Errorf("user_id = %q, want u-1", tc.UserID)
	}
	if tc.SessionID != sid {
		t.Errorf("session_id = %q, want %q", tc.SessionID, sid)
	}
	if tc.Type != TokenTypeAccess {
		t.Errorf("type = %q, want %q", tc.Type, TokenTypeAccess)
	}
	if tc.ExpiresAt.Before(time.Now().UTC()) {
		t.Error("freshly minted token already expired")
	}
}

func TestDecodeToken_TypeEnforcement(t *testing.T) {
	sid := NewSessionID("u-1")
	access, err := NewAccessToken(testSecret, "u-1", sid, 15)
	if err != nil {
		t.Fatalf("mint access: %v", err)
	}
	refresh, err := NewRefreshToken(testSecret, "u-1", sid, 7)
	if err != nil {
		t.Fatalf("mint refresh: %v", err)
	}

	t.Run("refresh token rejected where access expected", func(t *testing.T) {
		if _, err := DecodeToken(testSecret, refresh.Token, true, false); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
	t.Run("access token rejected where refresh expected", func(t *testing.T) {
		if _, err := DecodeToken(testSecret, access.Token, false, true); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("expected ErrTokenInvalid, got %v", err)
		}
	})
	t.Run("refresh token accepted where refresh expected", func(t *testing.T) {
		tc, err := DecodeToken(testSecret, refresh.Token, false, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tc.Type != TokenTypeRefresh {
			t.Errorf("type = %q, want %q", tc.Type, TokenTypeRefresh)
		}
	})
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	signed, err := NewAccessToken(testSecret, "u-1", NewSessionID("u-1"), 15)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := DecodeToken("other-secret", signed.Token, true, false); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestDecodeToken_Expired(t *testing.T) {
	// Mint directly with a negative TTL so exp is already in the past.
	signed, err := mint(testSecret, "u-1", NewSessionID("u-1"), TokenTypeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := DecodeToken(testSecret, signed.Token, true, false); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestDecodeToken_Garbage(t *testing.T) {
	if _, err := DecodeToken(testSecret, "not.a.jwt", true, false); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestNewSessionID(t *testing.T) {
	a := NewSessionID("u-1")
	b := NewSessionID("u-1")
	if len(a) != 40 || len(b) != 40 {
		t.Fatalf("expected 40-char sha1 hex, got %q and %q", a, b)
	}
	// Nanosecond timestamps make collisions for successive calls practically
	// impossible.
	if a == b {
		t.Error("two logins produced the same session id")
	}
}
