package auth

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Token type discriminators embedded in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// SignedToken couples a serialized JWT with its expiry for response
// building.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims is the decoded payload of an access or refresh token.
type TokenClaims struct {
	UserID    string
	SessionID string
	Type      string
	ExpiresAt time.Time
}

// NewSessionID derives a per-login correlator from the user identity and
// the issuance instant.  The same session id is embedded in the access and
// refresh tokens minted together, and survives refresh-token presentations:
// the refresh flow copies it into each newly minted access token.
func NewSessionID(userID string) string {
	content := userID + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// NewAccessToken builds and signs a short-lived HS256 access token.  The
// JWT carries the user id, the session id, a type discriminator, the
// expiration (exp) and issued-at (iat) claims.
func NewAccessToken(secret, userID, sessionID string, ttlMin int) (SignedToken, error) {
	return mint(secret, userID, sessionID, TokenTypeAccess,
		time.Duration(ttlMin)*time.Minute)
}

// NewRefreshToken builds and signs a long-lived HS256 refresh token
// carrying the same claim set as an access token but with type "refresh".
func NewRefreshToken(secret, userID, sessionID string, ttlDays int) (SignedToken, error) {
	return mint(secret, userID, sessionID, TokenTypeRefresh,
		time.Duration(ttlDays)*24*time.Hour)
}

func mint(secret, userID, sessionID, tokenType string, ttl time.Duration) (SignedToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"user_id":    userID,
		"session_id": sessionID,
		"type":       tokenType,
		"exp":        exp.Unix(),
		"iat":        time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// DecodeToken parses and verifies a token, enforcing the expected type
// discriminator.  It returns ErrTokenExpired for tokens past expiry and
// ErrTokenInvalid for bad signatures, wrong algorithms, wrong types or
// malformed claims.
func DecodeToken(secret, raw string, expectAccess, expectRefresh bool) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return TokenClaims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrTokenInvalid
	}

	tc := TokenClaims{}
	if v, ok := mc["user_id"].(string); ok {
		tc.UserID = v
	}
	if v, ok := mc["session_id"].(string); ok {
		tc.SessionID = v
	}
	if v, ok := mc["type"].(string); ok {
		tc.Type = v
	}
	if v, ok := mc["exp"].(float64); ok {
		tc.ExpiresAt = time.Unix(int64(v), 0).UTC()
	}

	if (expectAccess && !expectRefresh && tc.Type != TokenTypeAccess) ||
		(expectRefresh && tc.Type != TokenTypeRefresh) {
		return TokenClaims{}, ErrTokenInvalid
	}
	return tc, nil
}
